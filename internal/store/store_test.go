package store

import (
	"context"
	"testing"
	"time"

	"github.com/rsarkar/bayestutor/internal/belief"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx, SnapshotKindBeliefs)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	// Save a snapshot carrying belief state.
	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: SnapshotVersion,
			Prior:   belief.Prior{Alpha0: 1, Beta0: 1},
			Beliefs: map[string]belief.State{
				"linear-equations": {Alpha: 3, Beta: 4, Observations: 3},
			},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// Retrieve it.
	snap, err = repo.Latest(ctx, SnapshotKindBeliefs)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if snap.Kind != SnapshotKindBeliefs {
		t.Errorf("kind = %q, want %q", snap.Kind, SnapshotKindBeliefs)
	}
	st, ok := snap.Data.Beliefs["linear-equations"]
	if !ok {
		t.Fatal("expected belief state for linear-equations")
	}
	if st.Alpha != 3 || st.Beta != 4 || st.Observations != 3 {
		t.Errorf("state = %+v, want {3 4 3}", st)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx, SnapshotKindBeliefs)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func TestSnapshotSequenceAssignedWhenZero(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &Snapshot{
			Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: SnapshotVersion},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx, SnapshotKindBeliefs)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 2 {
		t.Errorf("sequence = %d, want 2 (assigned from counter)", snap.Sequence)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune to keep 5.
	if err := repo.Prune(ctx, SnapshotKindBeliefs, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	// Count remaining snapshots.
	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	// Latest should still be sequence 7.
	snap, err := repo.Latest(ctx, SnapshotKindBeliefs)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// Save only 2 snapshots.
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune with keep=5 should be a no-op.
	if err := repo.Prune(ctx, SnapshotKindBeliefs, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("remaining snapshots = %d, want 2", count)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAppendAndQueryAnswerEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s1", TopicID: "algebra-intro", Level: 0, Correct: true, Alpha: 2, Beta: 2, ExpectedLambda: 1.0},
		{SessionID: "s1", TopicID: "algebra-intro", Level: 0, Correct: true, Alpha: 3, Beta: 3, ExpectedLambda: 1.0},
		{SessionID: "s1", TopicID: "linear-equations", Level: 1, Correct: false, Alpha: 1, Beta: 2, ExpectedLambda: 0.5},
	}
	for i, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	// Most recent first.
	if events[0].TopicID != "linear-equations" {
		t.Errorf("events[0].TopicID = %q, want linear-equations", events[0].TopicID)
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("expected descending sequence, got %d then %d", events[0].Sequence, events[1].Sequence)
	}
	if events[0].ExpectedLambda != 0.5 {
		t.Errorf("expected_lambda = %v, want 0.5", events[0].ExpectedLambda)
	}

	// Limit applies.
	events, err = repo.QueryAnswerEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query with limit: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events with limit 2, want 2", len(events))
	}
}

func TestAnswerTotals(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s1", TopicID: "algebra-intro", Level: 0, Correct: true},
		{SessionID: "s1", TopicID: "algebra-intro", Level: 0, Correct: false},
		{SessionID: "s1", TopicID: "linear-equations", Level: 1, Correct: true},
	}
	for i, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	byTopic, err := repo.AnswerTotalsByTopic(ctx)
	if err != nil {
		t.Fatalf("totals by topic: %v", err)
	}
	if len(byTopic) != 2 {
		t.Fatalf("got %d topics, want 2", len(byTopic))
	}
	// Sorted by topic ID.
	if byTopic[0].TopicID != "algebra-intro" || byTopic[0].Total != 2 || byTopic[0].Correct != 1 {
		t.Errorf("byTopic[0] = %+v, want {algebra-intro 2 1}", byTopic[0])
	}
	if byTopic[1].TopicID != "linear-equations" || byTopic[1].Total != 1 || byTopic[1].Correct != 1 {
		t.Errorf("byTopic[1] = %+v, want {linear-equations 1 1}", byTopic[1])
	}

	byLevel, err := repo.AnswerTotalsByLevel(ctx)
	if err != nil {
		t.Fatalf("totals by level: %v", err)
	}
	if len(byLevel) != 2 {
		t.Fatalf("got %d levels, want 2", len(byLevel))
	}
	if byLevel[0].Level != 0 || byLevel[0].Total != 2 {
		t.Errorf("byLevel[0] = %+v, want level 0 with 2 answers", byLevel[0])
	}
}

func TestSessionAndLessonEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1",
		Action:    "started",
	})
	if err != nil {
		t.Fatalf("append session event: %v", err)
	}

	err = repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:       "s1",
		Action:          "ended",
		QuestionsServed: 5,
		CorrectAnswers:  3,
		DurationSecs:    120,
	})
	if err != nil {
		t.Fatalf("append end event: %v", err)
	}

	err = repo.AppendLessonEvent(ctx, LessonEventData{
		SessionID:         "s1",
		TopicID:           "quadratics",
		Title:             "Solving Quadratic Equations",
		Source:            "llm",
		PracticeAttempted: true,
		PracticeCorrect:   false,
	})
	if err != nil {
		t.Fatalf("append lesson event: %v", err)
	}

	sessionCount, err := s.Client().SessionEvent.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count session events: %v", err)
	}
	if sessionCount != 2 {
		t.Errorf("session events = %d, want 2", sessionCount)
	}

	lessonCount, err := s.Client().LessonEvent.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count lesson events: %v", err)
	}
	if lessonCount != 1 {
		t.Errorf("lesson events = %d, want 1", lessonCount)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	requests := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "lesson", InputTokens: 900, OutputTokens: 400, LatencyMs: 1200, Success: true, RequestBody: `{"prompt":"..."}`, ResponseBody: `{"title":"..."}`},
		{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "lesson", InputTokens: 700, OutputTokens: 300, LatencyMs: 800, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "grading", InputTokens: 100, OutputTokens: 10, LatencyMs: 400, Success: false, ErrorMessage: "timeout"},
	}
	for i, r := range requests {
		if err := repo.AppendLLMRequest(ctx, r); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Purpose != "grading" {
		t.Errorf("events[0].Purpose = %q, want grading (most recent first)", events[0].Purpose)
	}

	// Fetch one by ID, including bodies.
	got, err := repo.GetLLMEvent(ctx, events[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected event, got nil")
	}
	if got.RequestBody == "" || got.ResponseBody == "" {
		t.Errorf("expected captured bodies, got %q / %q", got.RequestBody, got.ResponseBody)
	}

	// Missing ID returns nil without error.
	got, err = repo.GetLLMEvent(ctx, 99999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing event, got %+v", got)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	// Sorted by purpose: grading, lesson.
	if byPurpose[0].Purpose != "grading" || byPurpose[0].Calls != 1 {
		t.Errorf("byPurpose[0] = %+v, want grading with 1 call", byPurpose[0])
	}
	if byPurpose[1].Purpose != "lesson" || byPurpose[1].Calls != 2 {
		t.Errorf("byPurpose[1] = %+v, want lesson with 2 calls", byPurpose[1])
	}
	if byPurpose[1].InputTokens != 1600 {
		t.Errorf("lesson input tokens = %d, want 1600", byPurpose[1].InputTokens)
	}
	if byPurpose[1].AvgLatencyMs != 1000 {
		t.Errorf("lesson avg latency = %d, want 1000", byPurpose[1].AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("got %d models, want 2", len(byModel))
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID: "s1", TopicID: "algebra-intro", Correct: true, Alpha: 2, Beta: 2, ExpectedLambda: 1.0,
	}); err != nil {
		t.Fatalf("append answer: %v", err)
	}
	if err := s.SnapshotRepo().Save(ctx, &Snapshot{
		Timestamp: time.Now(),
		Data: SnapshotData{
			Version: SnapshotVersion,
			Prior:   belief.DefaultPrior(),
			Beliefs: map[string]belief.State{"algebra-intro": {Alpha: 2, Beta: 2, Observations: 1}},
		},
	}); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	events, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query after reset: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d answer events after reset, want 0", len(events))
	}

	snap, err := s.SnapshotRepo().Latest(ctx, SnapshotKindBeliefs)
	if err != nil {
		t.Fatalf("latest after reset: %v", err)
	}
	if snap != nil {
		t.Errorf("got snapshot after reset, want none")
	}

	// Sequence restarts from 1.
	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next sequence: %v", err)
	}
	if seq != 1 {
		t.Errorf("sequence after reset = %d, want 1", seq)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"answer_events", "session_events", "lesson_events", "llm_request_events", "snapshots"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
			continue
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}
