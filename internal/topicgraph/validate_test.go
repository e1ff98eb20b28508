package topicgraph

import (
	"errors"
	"strings"
	"testing"
)

func TestNew_ThreeCycle(t *testing.T) {
	topics := []Topic{
		{ID: "A", Name: "A", Prerequisites: []string{"C"}},
		{ID: "B", Name: "B", Prerequisites: []string{"A"}},
		{ID: "C", Name: "C", Prerequisites: []string{"B"}},
	}
	g, err := New(topics)
	if err == nil {
		t.Fatal("expected GraphError for 3-cycle, got nil")
	}
	if g != nil {
		t.Fatal("graph must not be constructed when validation fails")
	}
	var ge *GraphError
	if !errors.As(err, &ge) {
		t.Fatalf("got error %T, want *GraphError", err)
	}
	if !strings.Contains(err.Error(), "cycle detected") {
		t.Errorf("error should mention the cycle: %v", err)
	}
}

func TestNew_DanglingPrerequisite(t *testing.T) {
	topics := []Topic{
		{ID: "A", Name: "A"},
		{ID: "B", Name: "B", Prerequisites: []string{"missing"}},
	}
	_, err := New(topics)
	var ge *GraphError
	if !errors.As(err, &ge) {
		t.Fatalf("got error %T, want *GraphError", err)
	}
	if !strings.Contains(err.Error(), `nonexistent prerequisite "missing"`) {
		t.Errorf("error should name the dangling prerequisite: %v", err)
	}
}

func TestNew_CollectsAllIssues(t *testing.T) {
	topics := []Topic{
		{ID: "A", Name: "A", Level: -1},
		{ID: "A", Name: "A again"},
		{ID: "B", Name: "B", Prerequisites: []string{"missing", "B"}},
	}
	_, err := New(topics)
	var ge *GraphError
	if !errors.As(err, &ge) {
		t.Fatalf("got error %T, want *GraphError", err)
	}
	// One issue each: duplicate ID, dangling prereq, self-reference, negative level.
	if len(ge.Issues) != 4 {
		t.Errorf("got %d issues, want 4: %v", len(ge.Issues), ge.Issues)
	}
}

func TestNew_NoRoots(t *testing.T) {
	topics := []Topic{
		{ID: "A", Name: "A", Prerequisites: []string{"B"}},
		{ID: "B", Name: "B", Prerequisites: []string{"A"}},
	}
	_, err := New(topics)
	if err == nil {
		t.Fatal("expected error for graph with no roots, got nil")
	}
}

func TestNew_EmptyCatalog(t *testing.T) {
	_, err := New(nil)
	var ge *GraphError
	if !errors.As(err, &ge) {
		t.Fatalf("got error %T, want *GraphError", err)
	}
}

func TestNew_ValidCatalog(t *testing.T) {
	if err := validateTopics(testTopics()); err != nil {
		t.Fatalf("valid catalog rejected: %v", err)
	}
}
