// Package grader evaluates learner answers. The session engine only ever
// sees the resulting boolean; how an answer was judged stays here.
package grader

import (
	"context"

	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

// Verdict is the outcome of grading one answer.
type Verdict struct {
	Correct  bool
	Feedback string
}

// Grader judges a learner's answer to a question on a topic.
type Grader interface {
	Grade(ctx context.Context, topic topicgraph.Topic, question, answer string) (Verdict, error)
}
