package topicgraph

import (
	"errors"
	"testing"
)

// testTopics returns a small catalog fixture:
//
//	algebra-intro ──► linear-eq ──► quadratics
//	variables ──► inequalities
func testTopics() []Topic {
	return []Topic{
		{ID: "algebra-intro", Name: "Introduction to Algebra", Level: 0, Difficulty: 0.2},
		{ID: "variables", Name: "Variables and Expressions", Level: 0, Difficulty: 0.3},
		{ID: "linear-eq", Name: "Linear Equations", Level: 1, Difficulty: 0.4, Prerequisites: []string{"algebra-intro"}},
		{ID: "inequalities", Name: "Basic Inequalities", Level: 1, Difficulty: 0.5, Prerequisites: []string{"variables"}},
		{ID: "quadratics", Name: "Quadratic Equations", Level: 2, Difficulty: 0.6, Prerequisites: []string{"linear-eq"}},
	}
}

func buildTestGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := New(testTopics())
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	return g
}

func TestGet_Exists(t *testing.T) {
	g := buildTestGraph(t)
	topic, err := g.Get("linear-eq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topic.Name != "Linear Equations" {
		t.Errorf("got name %q, want %q", topic.Name, "Linear Equations")
	}
	if topic.Level != 1 {
		t.Errorf("got level %d, want 1", topic.Level)
	}
}

func TestGet_NotFound(t *testing.T) {
	g := buildTestGraph(t)
	_, err := g.Get("nonexistent")
	if err == nil {
		t.Fatal("expected error for nonexistent topic, got nil")
	}
	var ute *UnknownTopicError
	if !errors.As(err, &ute) {
		t.Fatalf("got error %T, want *UnknownTopicError", err)
	}
	if ute.TopicID != "nonexistent" {
		t.Errorf("got topic ID %q, want %q", ute.TopicID, "nonexistent")
	}
}

func TestTopics_CatalogOrder(t *testing.T) {
	g := buildTestGraph(t)
	all := g.Topics()
	if len(all) != 5 {
		t.Fatalf("got %d topics, want 5", len(all))
	}
	want := []string{"algebra-intro", "variables", "linear-eq", "inequalities", "quadratics"}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, all[i].ID, id)
		}
	}
}

func TestTopics_ReturnsCopy(t *testing.T) {
	g := buildTestGraph(t)
	all := g.Topics()
	all[0].ID = "mutated"
	again := g.Topics()
	if again[0].ID != "algebra-intro" {
		t.Errorf("internal state mutated through returned slice: got %q", again[0].ID)
	}
}

func TestRoots(t *testing.T) {
	g := buildTestGraph(t)
	roots := g.Roots()
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}
	for _, topic := range roots {
		if len(topic.Prerequisites) != 0 {
			t.Errorf("root topic %q has prerequisites: %v", topic.ID, topic.Prerequisites)
		}
	}
}

func TestPrerequisitesAndDependents(t *testing.T) {
	g := buildTestGraph(t)

	prereqs := g.Prerequisites("quadratics")
	if len(prereqs) != 1 || prereqs[0].ID != "linear-eq" {
		t.Errorf("quadratics prereqs: got %v, want [linear-eq]", prereqs)
	}

	deps := g.Dependents("algebra-intro")
	if len(deps) != 1 || deps[0].ID != "linear-eq" {
		t.Errorf("algebra-intro dependents: got %v, want [linear-eq]", deps)
	}

	if got := g.Prerequisites("algebra-intro"); len(got) != 0 {
		t.Errorf("algebra-intro: got %d prereqs, want 0", len(got))
	}
}

func TestPrerequisitesSatisfied(t *testing.T) {
	g := buildTestGraph(t)
	empty := map[string]bool{}

	if !g.PrerequisitesSatisfied("algebra-intro", empty) {
		t.Error("root topic should be satisfied with empty mastered set")
	}
	if g.PrerequisitesSatisfied("linear-eq", empty) {
		t.Error("linear-eq should not be satisfied with empty mastered set")
	}
	if !g.PrerequisitesSatisfied("linear-eq", map[string]bool{"algebra-intro": true}) {
		t.Error("linear-eq should be satisfied once algebra-intro is mastered")
	}
	if g.PrerequisitesSatisfied("nonexistent", empty) {
		t.Error("unknown topic should never be satisfied")
	}
}

func TestEligibleTopics_PrerequisiteFlip(t *testing.T) {
	topics := []Topic{
		{ID: "A", Name: "A", Level: 0, Difficulty: 0.2},
		{ID: "B", Name: "B", Level: 1, Difficulty: 0.4, Prerequisites: []string{"A"}},
	}
	g, err := New(topics)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}

	// Before A is mastered, only A is eligible.
	eligible := g.EligibleTopics(map[string]bool{})
	if len(eligible) != 1 || eligible[0].ID != "A" {
		t.Fatalf("got eligible %v, want [A]", eligible)
	}

	// Once A is mastered, only B is eligible.
	eligible = g.EligibleTopics(map[string]bool{"A": true})
	if len(eligible) != 1 || eligible[0].ID != "B" {
		t.Fatalf("got eligible %v, want [B]", eligible)
	}

	// Everything mastered: nothing eligible.
	eligible = g.EligibleTopics(map[string]bool{"A": true, "B": true})
	if len(eligible) != 0 {
		t.Fatalf("got eligible %v, want empty", eligible)
	}
}

func TestEligibleTopics_Recomputed(t *testing.T) {
	g := buildTestGraph(t)
	mastered := map[string]bool{}

	first := g.EligibleTopics(mastered)
	mastered["algebra-intro"] = true
	second := g.EligibleTopics(mastered)

	if len(first) != 2 {
		t.Errorf("initial eligible count: got %d, want 2", len(first))
	}
	// linear-eq unlocks, algebra-intro drops out.
	found := map[string]bool{}
	for _, topic := range second {
		found[topic.ID] = true
	}
	if !found["linear-eq"] || !found["variables"] || found["algebra-intro"] {
		t.Errorf("eligible after mastering algebra-intro: got %v", found)
	}
}

func TestTopologicalOrder(t *testing.T) {
	g := buildTestGraph(t)
	order := g.TopologicalOrder()
	if len(order) != 5 {
		t.Fatalf("got %d topics in topo order, want 5", len(order))
	}
	pos := make(map[string]int, len(order))
	for i, topic := range order {
		pos[topic.ID] = i
	}
	for _, topic := range g.Topics() {
		for _, prereqID := range topic.Prerequisites {
			if pos[prereqID] > pos[topic.ID] {
				t.Errorf("topic %q appears before its prerequisite %q", topic.ID, prereqID)
			}
		}
	}
}

func TestView(t *testing.T) {
	g := buildTestGraph(t)
	view := g.View()
	if len(view.Topics) != 5 {
		t.Errorf("got %d topics in view, want 5", len(view.Topics))
	}
	if len(view.Edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(view.Edges))
	}
	want := []Edge{
		{From: "algebra-intro", To: "linear-eq"},
		{From: "variables", To: "inequalities"},
		{From: "linear-eq", To: "quadratics"},
	}
	for i, e := range want {
		if view.Edges[i] != e {
			t.Errorf("edge %d: got %+v, want %+v", i, view.Edges[i], e)
		}
	}
}
