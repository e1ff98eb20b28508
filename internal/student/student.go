// Package student simulates a learner for demos and engine-level tests.
package student

import (
	"math"
	"math/rand/v2"

	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

// DefaultVariance controls how much simulated performance fluctuates
// around the level-matched base probability.
const DefaultVariance = 0.5

// Student answers questions according to a hidden true knowledge level.
// The probability of a correct answer falls as the topic level moves away
// from the true level, with Gaussian noise on top.
type Student struct {
	TrueLevel int
	Variance  float64

	rng     *rand.Rand
	total   int
	correct int
}

// New creates a simulated student. The rng drives both the noise and the
// answer draw, so a fixed seed reproduces the full answer sequence.
func New(trueLevel int, rng *rand.Rand) *Student {
	return &Student{
		TrueLevel: trueLevel,
		Variance:  DefaultVariance,
		rng:       rng,
	}
}

// Answer simulates answering a question on the topic. The base probability
// is max(0.1, 1 - 0.2*|level - trueLevel|), clamped to [0, 1] after noise.
func (s *Student) Answer(topic topicgraph.Topic) bool {
	diff := math.Abs(float64(topic.Level - s.TrueLevel))
	base := math.Max(0.1, 1.0-diff*0.2)

	p := base + s.rng.NormFloat64()*s.Variance
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}

	correct := s.rng.Float64() < p

	s.total++
	if correct {
		s.correct++
	}
	return correct
}

// Totals returns the questions answered and the number correct.
func (s *Student) Totals() (total, correct int) {
	return s.total, s.correct
}

// Accuracy returns the running fraction of correct answers, 0 before any.
func (s *Student) Accuracy() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.correct) / float64(s.total)
}
