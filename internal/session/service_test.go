package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rsarkar/bayestutor/internal/belief"
	"github.com/rsarkar/bayestutor/internal/store"
)

// fakeEventRepo records appended events in memory.
type fakeEventRepo struct {
	answers  []store.AnswerEventData
	sessions []store.SessionEventData
	lessons  []store.LessonEventData
	llm      []store.LLMRequestEventData
	failAll  bool
}

var errFakeRepo = errors.New("event log unavailable")

func (f *fakeEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	if f.failAll {
		return errFakeRepo
	}
	f.answers = append(f.answers, data)
	return nil
}

func (f *fakeEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	if f.failAll {
		return errFakeRepo
	}
	f.sessions = append(f.sessions, data)
	return nil
}

func (f *fakeEventRepo) AppendLessonEvent(_ context.Context, data store.LessonEventData) error {
	if f.failAll {
		return errFakeRepo
	}
	f.lessons = append(f.lessons, data)
	return nil
}

func (f *fakeEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	if f.failAll {
		return errFakeRepo
	}
	f.llm = append(f.llm, data)
	return nil
}

func (f *fakeEventRepo) QueryAnswerEvents(context.Context, store.QueryOpts) ([]store.AnswerEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) AnswerTotalsByTopic(context.Context) ([]store.TopicTotals, error) {
	return nil, nil
}

func (f *fakeEventRepo) AnswerTotalsByLevel(context.Context) ([]store.LevelTotals, error) {
	return nil, nil
}

func (f *fakeEventRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) GetLLMEvent(context.Context, int) (*store.LLMEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) LLMUsageByPurpose(context.Context) ([]store.PurposeUsage, error) {
	return nil, nil
}

func (f *fakeEventRepo) LLMUsageByModel(context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}

// fakeSnapshotRepo keeps snapshots in a slice, newest last.
type fakeSnapshotRepo struct {
	snaps []*store.Snapshot
}

func (f *fakeSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	cp := *snap
	if cp.Kind == "" {
		cp.Kind = store.SnapshotKindBeliefs
	}
	if cp.Sequence == 0 {
		cp.Sequence = int64(len(f.snaps) + 1)
	}
	f.snaps = append(f.snaps, &cp)
	return nil
}

func (f *fakeSnapshotRepo) Latest(_ context.Context, kind string) (*store.Snapshot, error) {
	for i := len(f.snaps) - 1; i >= 0; i-- {
		if f.snaps[i].Kind == kind {
			return f.snaps[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSnapshotRepo) Prune(_ context.Context, kind string, keep int) error {
	var kept []*store.Snapshot
	// Walk newest to oldest, keep the first N of the kind.
	count := 0
	for i := len(f.snaps) - 1; i >= 0; i-- {
		if f.snaps[i].Kind == kind {
			count++
			if count > keep {
				continue
			}
		}
		kept = append([]*store.Snapshot{f.snaps[i]}, kept...)
	}
	f.snaps = kept
	return nil
}

func TestServiceStartAndGet(t *testing.T) {
	svc := NewService(testGraph(t), DefaultConfig(), nil, nil)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.ID() == "" {
		t.Error("expected a generated session ID")
	}

	got, err := svc.Get(sess.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != sess {
		t.Error("expected Get to return the started session")
	}

	_, err = svc.Get("no-such-session")
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	var unknownErr *UnknownSessionError
	if !errors.As(err, &unknownErr) {
		t.Errorf("error type = %T, want *UnknownSessionError", err)
	}
}

func TestServiceSubmitAnswer_LogsEvent(t *testing.T) {
	events := &fakeEventRepo{}
	svc := NewService(testGraph(t), DefaultConfig(), events, nil)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	res, err := svc.SubmitAnswer(ctx, sess.ID(), "algebra-intro", true)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Belief.Alpha != 2 {
		t.Errorf("alpha = %v, want 2", res.Belief.Alpha)
	}

	if len(events.answers) != 1 {
		t.Fatalf("logged %d answer events, want 1", len(events.answers))
	}
	logged := events.answers[0]
	if logged.TopicID != "algebra-intro" || logged.SessionID != sess.ID() {
		t.Errorf("logged event = %+v, want algebra-intro for session %s", logged, sess.ID())
	}
	if logged.Alpha != 2 || logged.Beta != 2 || logged.ExpectedLambda != 1.0 {
		t.Errorf("logged posterior = (%v, %v, %v), want (2, 2, 1.0)", logged.Alpha, logged.Beta, logged.ExpectedLambda)
	}
	if logged.Level != 0 {
		t.Errorf("logged level = %d, want 0", logged.Level)
	}

	if len(events.sessions) != 1 || events.sessions[0].Action != "started" {
		t.Errorf("session events = %+v, want one started event", events.sessions)
	}
}

func TestServiceSubmitAnswer_LogFailureIsNonFatal(t *testing.T) {
	events := &fakeEventRepo{failAll: true}
	svc := NewService(testGraph(t), DefaultConfig(), events, nil)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	res, err := svc.SubmitAnswer(ctx, sess.ID(), "algebra-intro", true)
	if err != nil {
		t.Fatalf("submit should not fail when the event log is down: %v", err)
	}
	if res.Stats.TotalAnswered != 1 {
		t.Errorf("total answered = %d, want 1", res.Stats.TotalAnswered)
	}
}

func TestServiceCurrentBeliefAndProgress(t *testing.T) {
	svc := NewService(testGraph(t), DefaultConfig(), nil, nil)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, sess.ID(), "algebra-intro", false); err != nil {
		t.Fatalf("submit: %v", err)
	}

	sum, err := svc.CurrentBelief(sess.ID(), "algebra-intro")
	if err != nil {
		t.Fatalf("current belief: %v", err)
	}
	if sum.Alpha != 1 || sum.Beta != 2 {
		t.Errorf("belief = (%v, %v), want (1, 2) after one incorrect", sum.Alpha, sum.Beta)
	}

	report, err := svc.Progress(sess.ID())
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if report.Stats.TotalAnswered != 1 || report.Stats.CorrectCount != 0 {
		t.Errorf("report stats = %d/%d, want 0/1", report.Stats.CorrectCount, report.Stats.TotalAnswered)
	}
	if report.SessionID != sess.ID() {
		t.Errorf("report session = %q, want %q", report.SessionID, sess.ID())
	}
}

func TestServiceGraphView(t *testing.T) {
	svc := NewService(testGraph(t), DefaultConfig(), nil, nil)

	view := svc.GraphView()
	if len(view.Topics) != 3 {
		t.Errorf("view topics = %d, want 3", len(view.Topics))
	}
	if len(view.Edges) != 2 {
		t.Errorf("view edges = %d, want 2", len(view.Edges))
	}
}

func TestServiceResetSession(t *testing.T) {
	events := &fakeEventRepo{}
	svc := NewService(testGraph(t), DefaultConfig(), events, nil)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, sess.ID(), "algebra-intro", true); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.ResetSession(ctx, sess.ID()); err != nil {
		t.Fatalf("reset: %v", err)
	}

	report, err := svc.Progress(sess.ID())
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if report.Stats.TotalAnswered != 0 {
		t.Errorf("total answered after reset = %d, want 0", report.Stats.TotalAnswered)
	}

	var actions []string
	for _, e := range events.sessions {
		actions = append(actions, e.Action)
	}
	if len(actions) != 2 || actions[1] != "reset" {
		t.Errorf("session event actions = %v, want [started reset]", actions)
	}
}

func TestServiceEndSession(t *testing.T) {
	events := &fakeEventRepo{}
	snaps := &fakeSnapshotRepo{}
	svc := NewService(testGraph(t), DefaultConfig(), events, snaps)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := sess.ID()
	if _, err := svc.SubmitAnswer(ctx, id, "algebra-intro", true); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, id, "linear-equations", false); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.EndSession(ctx, id); err != nil {
		t.Fatalf("end: %v", err)
	}

	if _, err := svc.Get(id); err == nil {
		t.Error("expected ended session to be deregistered")
	}

	last := events.sessions[len(events.sessions)-1]
	if last.Action != "ended" {
		t.Errorf("last session action = %q, want ended", last.Action)
	}
	if last.QuestionsServed != 2 || last.CorrectAnswers != 1 {
		t.Errorf("totals = %d served / %d correct, want 2 / 1", last.QuestionsServed, last.CorrectAnswers)
	}

	if len(snaps.snaps) != 1 {
		t.Fatalf("saved %d snapshots, want 1", len(snaps.snaps))
	}
	data := snaps.snaps[0].Data
	if data.Version != store.SnapshotVersion {
		t.Errorf("snapshot version = %d, want %d", data.Version, store.SnapshotVersion)
	}
	if st, ok := data.Beliefs["algebra-intro"]; !ok || st.Alpha != 2 {
		t.Errorf("snapshot beliefs = %+v, want algebra-intro with alpha 2", data.Beliefs)
	}
}

func TestServiceResumeSession(t *testing.T) {
	snaps := &fakeSnapshotRepo{}
	snaps.snaps = append(snaps.snaps, &store.Snapshot{
		Kind:      store.SnapshotKindBeliefs,
		Sequence:  1,
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version: store.SnapshotVersion,
			Prior:   belief.DefaultPrior(),
			Beliefs: map[string]belief.State{
				"algebra-intro": {Alpha: 4, Beta: 4, Observations: 3},
			},
		},
	})
	svc := NewService(testGraph(t), DefaultConfig(), nil, snaps)
	ctx := context.Background()

	sess, err := svc.ResumeSession(ctx)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}

	topic, ok := sess.CurrentTopic()
	if !ok {
		t.Fatal("expected a current topic")
	}
	if topic.ID != "linear-equations" {
		t.Errorf("current topic = %q, want linear-equations (intro already mastered)", topic.ID)
	}
	sum, err := sess.Belief("algebra-intro")
	if err != nil {
		t.Fatalf("belief: %v", err)
	}
	if sum.Alpha != 4 || sum.Observations != 3 {
		t.Errorf("restored belief = %+v, want alpha 4 with 3 observations", sum)
	}
}

func TestServiceResumeSession_NoSnapshot(t *testing.T) {
	svc := NewService(testGraph(t), DefaultConfig(), nil, &fakeSnapshotRepo{})
	ctx := context.Background()

	sess, err := svc.ResumeSession(ctx)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	topic, ok := sess.CurrentTopic()
	if !ok || topic.ID != "algebra-intro" {
		t.Errorf("current topic = %q, want algebra-intro on a fresh resume", topic.ID)
	}
}
