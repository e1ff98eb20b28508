// Package policy chooses the next topic to present given the prerequisite
// graph and the current beliefs. Selection is a pure function of its inputs:
// it never mutates graph or belief state, so callers may invoke it
// repeatedly, including for previews.
package policy

import (
	"math"
	"sort"

	"github.com/rsarkar/bayestutor/internal/belief"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

// DefaultMasteredThreshold is the expected-λ level at which a topic counts
// as mastered for prerequisite purposes.
const DefaultMasteredThreshold = 0.7

// SelectNext picks the next topic to present, or reports false when every
// reachable topic is already mastered (the terminal signal).
//
// Eligible topics are scored by distance between their difficulty and the
// learner's average expected λ across attempted topics (0 before the first
// answer, so sessions open on the easiest material). Ties prefer the lowest
// expected λ (weakest first; untouched topics carry the prior mean), then
// ascending level, then lexicographic ID, making selection reproducible for
// identical belief states.
func SelectNext(g *topicgraph.Graph, st *belief.Store, threshold float64) (topicgraph.Topic, bool) {
	mastered := st.MasteredSet(threshold)
	eligible := g.EligibleTopics(mastered)
	if len(eligible) == 0 {
		return topicgraph.Topic{}, false
	}

	target := st.AverageExpectedLambda()

	type candidate struct {
		topic  topicgraph.Topic
		score  float64
		lambda float64
	}
	candidates := make([]candidate, 0, len(eligible))
	for _, t := range eligible {
		candidates = append(candidates, candidate{
			topic:  t,
			score:  math.Abs(t.Difficulty - target),
			lambda: st.Peek(t.ID).ExpectedLambda(),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score < candidates[j].score
		}
		if candidates[i].lambda != candidates[j].lambda {
			return candidates[i].lambda < candidates[j].lambda
		}
		if candidates[i].topic.Level != candidates[j].topic.Level {
			return candidates[i].topic.Level < candidates[j].topic.Level
		}
		return candidates[i].topic.ID < candidates[j].topic.ID
	})

	return candidates[0].topic, true
}
