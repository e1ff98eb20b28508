package session

import (
	"errors"
	"testing"

	"github.com/rsarkar/bayestutor/internal/belief"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

func testTopics() []topicgraph.Topic {
	return []topicgraph.Topic{
		{ID: "algebra-intro", Name: "Introduction to Algebra", Level: 0, Difficulty: 0.2},
		{ID: "linear-equations", Name: "Linear Equations", Level: 1, Difficulty: 0.4, Prerequisites: []string{"algebra-intro"}},
		{ID: "quadratics", Name: "Quadratic Equations", Level: 2, Difficulty: 0.6, Prerequisites: []string{"linear-equations"}},
	}
}

func testGraph(t *testing.T) *topicgraph.Graph {
	t.Helper()
	g, err := topicgraph.New(testTopics())
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func testSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	s, err := NewSession("test-session-id", testGraph(t), cfg)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNewSession_SelectsFirstTopic(t *testing.T) {
	s := testSession(t, DefaultConfig())

	topic, ok := s.CurrentTopic()
	if !ok {
		t.Fatal("expected a current topic on a fresh session")
	}
	if topic.ID != "algebra-intro" {
		t.Errorf("current topic = %q, want algebra-intro (only eligible root)", topic.ID)
	}
}

func TestConfigDefaults(t *testing.T) {
	s := testSession(t, Config{})

	cfg := s.Config()
	if cfg.Prior != belief.DefaultPrior() {
		t.Errorf("prior = %+v, want default", cfg.Prior)
	}
	if cfg.MasteredThreshold <= 0 {
		t.Errorf("threshold = %v, want positive default", cfg.MasteredThreshold)
	}
	if cfg.ExposureWeight != 1 {
		t.Errorf("exposure weight = %v, want 1", cfg.ExposureWeight)
	}
}

func TestSubmitAnswer_UpdatesBeliefAndStats(t *testing.T) {
	s := testSession(t, DefaultConfig())

	res, err := s.SubmitAnswer("algebra-intro", true)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if res.Belief.Alpha != 2 || res.Belief.Beta != 2 {
		t.Errorf("posterior = (%v, %v), want (2, 2)", res.Belief.Alpha, res.Belief.Beta)
	}
	if res.Belief.ExpectedLambda != 1.0 {
		t.Errorf("expected lambda = %v, want 1.0", res.Belief.ExpectedLambda)
	}
	if res.Stats.TotalAnswered != 1 || res.Stats.CorrectCount != 1 {
		t.Errorf("stats = %d/%d, want 1/1", res.Stats.CorrectCount, res.Stats.TotalAnswered)
	}
	if res.Next == nil {
		t.Fatal("expected a next topic")
	}
}

func TestSubmitAnswer_MasteryUnlocksDependent(t *testing.T) {
	s := testSession(t, DefaultConfig())

	// One correct answer pushes algebra-intro to E[lambda] = 1.0, past the
	// default threshold, so linear-equations becomes the next pick.
	res, err := s.SubmitAnswer("algebra-intro", true)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Next == nil {
		t.Fatal("expected a next topic")
	}
	if res.Next.ID != "linear-equations" {
		t.Errorf("next = %q, want linear-equations", res.Next.ID)
	}
}

func TestSubmitAnswer_UnknownTopic(t *testing.T) {
	s := testSession(t, DefaultConfig())

	_, err := s.SubmitAnswer("no-such-topic", true)
	if err == nil {
		t.Fatal("expected error for unknown topic")
	}
	var unknownErr *topicgraph.UnknownTopicError
	if !errors.As(err, &unknownErr) {
		t.Errorf("error type = %T, want *topicgraph.UnknownTopicError", err)
	}

	// A failed submission leaves history and beliefs untouched.
	if got := s.Progress().Stats.TotalAnswered; got != 0 {
		t.Errorf("total answered = %d, want 0", got)
	}
	sum, err := s.Belief("algebra-intro")
	if err != nil {
		t.Fatalf("belief: %v", err)
	}
	if sum.Alpha != 1 || sum.Beta != 1 || sum.Observations != 0 {
		t.Errorf("belief = (%v, %v, %d obs), want untouched prior (1, 1, 0)", sum.Alpha, sum.Beta, sum.Observations)
	}
}

func TestSubmitAnswer_Done(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetQuestions = 2
	s := testSession(t, cfg)

	res, err := s.SubmitAnswer("algebra-intro", false)
	if err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	if res.Done {
		t.Error("done after 1 of 2 questions")
	}

	res, err = s.SubmitAnswer("algebra-intro", false)
	if err != nil {
		t.Fatalf("submit 2: %v", err)
	}
	if !res.Done {
		t.Error("expected done after reaching the question target")
	}
}

func TestSubmitAnswer_TerminalWhenAllMastered(t *testing.T) {
	s := testSession(t, DefaultConfig())

	// One correct answer masters each topic under the (1,1) prior, so
	// walking the chain exhausts the graph.
	for _, id := range []string{"algebra-intro", "linear-equations"} {
		res, err := s.SubmitAnswer(id, true)
		if err != nil {
			t.Fatalf("submit %s: %v", id, err)
		}
		if res.Terminal() {
			t.Fatalf("terminal too early after %s", id)
		}
	}

	res, err := s.SubmitAnswer("quadratics", true)
	if err != nil {
		t.Fatalf("submit quadratics: %v", err)
	}
	if !res.Terminal() {
		t.Error("expected terminal result once every topic is mastered")
	}
	if _, ok := s.CurrentTopic(); ok {
		t.Error("expected no current topic on a terminal session")
	}
}

func TestReset_RestoresPriorAndSelection(t *testing.T) {
	s := testSession(t, DefaultConfig())

	if _, err := s.SubmitAnswer("algebra-intro", true); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.SubmitAnswer("linear-equations", false); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if got := s.Progress().Stats.TotalAnswered; got != 0 {
		t.Errorf("total answered after reset = %d, want 0", got)
	}
	sum, err := s.Belief("algebra-intro")
	if err != nil {
		t.Fatalf("belief: %v", err)
	}
	if sum.Alpha != 1 || sum.Beta != 1 {
		t.Errorf("belief after reset = (%v, %v), want prior (1, 1)", sum.Alpha, sum.Beta)
	}
	topic, ok := s.CurrentTopic()
	if !ok || topic.ID != "algebra-intro" {
		t.Errorf("current topic after reset = %q, want algebra-intro", topic.ID)
	}
}

func TestReset_SwapsAccumulator(t *testing.T) {
	s := testSession(t, DefaultConfig())

	if _, err := s.SubmitAnswer("algebra-intro", true); err != nil {
		t.Fatalf("submit: %v", err)
	}
	report := s.Progress()
	old := s.acc

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if s.acc == old {
		t.Error("expected reset to swap in a fresh accumulator")
	}
	if old.Len() != 1 {
		t.Errorf("old accumulator length = %d, want 1 (discarded, not cleared)", old.Len())
	}
	if len(report.History) != 1 {
		t.Errorf("earlier report history = %d entries, want 1", len(report.History))
	}
}

func TestRestoreBeliefs_Reselects(t *testing.T) {
	s := testSession(t, DefaultConfig())

	err := s.RestoreBeliefs(map[string]belief.State{
		"algebra-intro": {Alpha: 5, Beta: 5, Observations: 4},
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	topic, ok := s.CurrentTopic()
	if !ok {
		t.Fatal("expected a current topic")
	}
	if topic.ID != "linear-equations" {
		t.Errorf("current topic = %q, want linear-equations (intro restored as mastered)", topic.ID)
	}
}

func TestExportBeliefs_Roundtrip(t *testing.T) {
	s := testSession(t, DefaultConfig())
	if _, err := s.SubmitAnswer("algebra-intro", true); err != nil {
		t.Fatalf("submit: %v", err)
	}

	exported := s.ExportBeliefs()
	st, ok := exported["algebra-intro"]
	if !ok {
		t.Fatal("expected exported state for algebra-intro")
	}
	if st.Alpha != 2 || st.Beta != 2 || st.Observations != 1 {
		t.Errorf("exported state = %+v, want {2 2 1}", st)
	}

	other := testSession(t, DefaultConfig())
	if err := other.RestoreBeliefs(exported); err != nil {
		t.Fatalf("restore: %v", err)
	}
	sum, err := other.Belief("algebra-intro")
	if err != nil {
		t.Fatalf("belief: %v", err)
	}
	if sum.Alpha != 2 || sum.Beta != 2 {
		t.Errorf("restored belief = (%v, %v), want (2, 2)", sum.Alpha, sum.Beta)
	}
}
