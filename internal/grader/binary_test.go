package grader

import (
	"context"
	"testing"

	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

func TestBinary_Grade(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"correct", true},
		{"yes", true},
		{"y", true},
		{"1", true},
		{"TRUE", true},
		{" Yes ", true},
		{"false", false},
		{"no", false},
		{"n", false},
		{"0", false},
		{"", false},
		{"maybe", false},
	}

	b := NewBinary()
	for _, tc := range tests {
		v, err := b.Grade(context.Background(), topicgraph.Topic{}, "", tc.input)
		if err != nil {
			t.Fatalf("Grade(%q) returned error: %v", tc.input, err)
		}
		if v.Correct != tc.want {
			t.Errorf("Grade(%q).Correct = %v, want %v", tc.input, v.Correct, tc.want)
		}
	}
}
