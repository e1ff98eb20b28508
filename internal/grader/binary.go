package grader

import (
	"context"
	"strings"

	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

// Binary grades self-reported answers: the learner states whether they got
// the question right. Affirmative forms count as correct, everything else
// as incorrect. It never errors and performs no I/O.
type Binary struct{}

// NewBinary creates a self-report grader.
func NewBinary() *Binary {
	return &Binary{}
}

// affirmative holds the accepted forms for a correct self-report.
var affirmative = map[string]bool{
	"true":    true,
	"correct": true,
	"yes":     true,
	"y":       true,
	"1":       true,
}

func (b *Binary) Grade(_ context.Context, _ topicgraph.Topic, _ string, answer string) (Verdict, error) {
	normalized := strings.ToLower(strings.TrimSpace(answer))
	return Verdict{Correct: affirmative[normalized]}, nil
}
