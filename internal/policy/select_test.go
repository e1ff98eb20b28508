package policy

import (
	"testing"

	"github.com/rsarkar/bayestutor/internal/belief"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

func buildGraph(t *testing.T, topics []topicgraph.Topic) *topicgraph.Graph {
	t.Helper()
	g, err := topicgraph.New(topics)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	return g
}

func newStore(t *testing.T) *belief.Store {
	t.Helper()
	st, err := belief.NewStore(belief.DefaultPrior())
	if err != nil {
		t.Fatalf("NewStore: unexpected error: %v", err)
	}
	return st
}

func mustUpdate(t *testing.T, st *belief.Store, topicID string, correct bool) {
	t.Helper()
	if _, err := st.Update(topicID, correct, 1); err != nil {
		t.Fatalf("Update(%q): unexpected error: %v", topicID, err)
	}
}

func TestSelectNext_FreshSessionPicksEasiest(t *testing.T) {
	g := buildGraph(t, []topicgraph.Topic{
		{ID: "hard", Name: "Hard", Level: 2, Difficulty: 0.8},
		{ID: "easy", Name: "Easy", Level: 0, Difficulty: 0.2},
		{ID: "medium", Name: "Medium", Level: 1, Difficulty: 0.5},
	})
	st := newStore(t)

	// No answers yet: average lambda is 0, so lowest difficulty wins.
	next, ok := SelectNext(g, st, DefaultMasteredThreshold)
	if !ok {
		t.Fatal("expected a topic, got terminal signal")
	}
	if next.ID != "easy" {
		t.Errorf("got %q, want %q", next.ID, "easy")
	}
}

func TestSelectNext_TargetsDifficultyNearAverage(t *testing.T) {
	g := buildGraph(t, []topicgraph.Topic{
		{ID: "low", Name: "Low", Level: 0, Difficulty: 0.1},
		{ID: "mid", Name: "Mid", Level: 1, Difficulty: 0.5},
		{ID: "high", Name: "High", Level: 2, Difficulty: 0.95},
	})
	st := newStore(t)

	// One topic attempted once wrong: lambda 0.5, so average is 0.5 and
	// "mid" (difficulty 0.5) is the closest eligible topic.
	mustUpdate(t, st, "low", false)

	next, ok := SelectNext(g, st, DefaultMasteredThreshold)
	if !ok {
		t.Fatal("expected a topic, got terminal signal")
	}
	if next.ID != "mid" {
		t.Errorf("got %q, want %q", next.ID, "mid")
	}
}

func TestSelectNext_WeaknessBreaksScoreTies(t *testing.T) {
	g := buildGraph(t, []topicgraph.Topic{
		{ID: "anchor", Name: "Anchor", Level: 0, Difficulty: 0.9},
		{ID: "fresh", Name: "Fresh", Level: 0, Difficulty: 0.4},
		{ID: "weak", Name: "Weak", Level: 1, Difficulty: 0.6},
	})
	st := newStore(t)

	// anchor and weak each answered once wrong: both lambda 0.5, average 0.5.
	// fresh (0.4) and weak (0.6) are then equidistant from the target, and
	// weak's lambda 0.5 beats fresh's prior mean 1.0.
	mustUpdate(t, st, "anchor", false)
	mustUpdate(t, st, "weak", false)

	next, ok := SelectNext(g, st, DefaultMasteredThreshold)
	if !ok {
		t.Fatal("expected a topic, got terminal signal")
	}
	if next.ID != "weak" {
		t.Errorf("got %q, want %q", next.ID, "weak")
	}
}

func TestSelectNext_LevelThenIDTieBreaks(t *testing.T) {
	g := buildGraph(t, []topicgraph.Topic{
		{ID: "z-topic", Name: "Z", Level: 1, Difficulty: 0.3},
		{ID: "deeper", Name: "Deeper", Level: 2, Difficulty: 0.3},
		{ID: "a-topic", Name: "A", Level: 1, Difficulty: 0.3},
	})
	st := newStore(t)

	// Identical difficulty and untouched beliefs: level sorts first, then ID.
	next, ok := SelectNext(g, st, DefaultMasteredThreshold)
	if !ok {
		t.Fatal("expected a topic, got terminal signal")
	}
	if next.ID != "a-topic" {
		t.Errorf("got %q, want %q", next.ID, "a-topic")
	}
}

func TestSelectNext_HonorsPrerequisites(t *testing.T) {
	g := buildGraph(t, []topicgraph.Topic{
		{ID: "A", Name: "A", Level: 0, Difficulty: 0.2},
		{ID: "B", Name: "B", Level: 1, Difficulty: 0.4, Prerequisites: []string{"A"}},
	})
	st := newStore(t)

	next, ok := SelectNext(g, st, DefaultMasteredThreshold)
	if !ok || next.ID != "A" {
		t.Fatalf("before mastering A: got (%q, %v), want (A, true)", next.ID, ok)
	}

	// Master A: lambda stays 1.0 >= 0.7 after a correct answer.
	mustUpdate(t, st, "A", true)

	next, ok = SelectNext(g, st, DefaultMasteredThreshold)
	if !ok || next.ID != "B" {
		t.Fatalf("after mastering A: got (%q, %v), want (B, true)", next.ID, ok)
	}
}

func TestSelectNext_TerminalWhenAllMastered(t *testing.T) {
	g := buildGraph(t, []topicgraph.Topic{
		{ID: "A", Name: "A", Level: 0, Difficulty: 0.2},
		{ID: "B", Name: "B", Level: 1, Difficulty: 0.4, Prerequisites: []string{"A"}},
	})
	st := newStore(t)
	mustUpdate(t, st, "A", true)
	mustUpdate(t, st, "B", true)

	if next, ok := SelectNext(g, st, DefaultMasteredThreshold); ok {
		t.Errorf("expected terminal signal, got topic %q", next.ID)
	}
}

func TestSelectNext_DeterministicAndPure(t *testing.T) {
	g := buildGraph(t, []topicgraph.Topic{
		{ID: "algebra-intro", Name: "Intro", Level: 0, Difficulty: 0.2},
		{ID: "variables", Name: "Variables", Level: 0, Difficulty: 0.3},
		{ID: "linear-eq", Name: "Linear", Level: 1, Difficulty: 0.4, Prerequisites: []string{"algebra-intro"}},
	})
	st := newStore(t)
	mustUpdate(t, st, "algebra-intro", true)
	mustUpdate(t, st, "variables", false)

	tracked := len(st.Tracked())

	first, ok1 := SelectNext(g, st, DefaultMasteredThreshold)
	second, ok2 := SelectNext(g, st, DefaultMasteredThreshold)

	if ok1 != ok2 || first.ID != second.ID {
		t.Errorf("selection not deterministic: (%q, %v) then (%q, %v)",
			first.ID, ok1, second.ID, ok2)
	}
	if len(st.Tracked()) != tracked {
		t.Error("selection created belief state; it must be side-effect free")
	}
}
