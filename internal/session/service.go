package session

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rsarkar/bayestutor/internal/belief"
	"github.com/rsarkar/bayestutor/internal/store"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

// snapshotsToKeep bounds the snapshot table; older captures are pruned
// whenever a new one is saved.
const snapshotsToKeep = 10

// Service tracks live sessions and bridges them to the event log and
// snapshot store. Both repos are optional: with nil repos the service
// runs fully in memory, which is how tests and the demo use it.
type Service struct {
	graph     *topicgraph.Graph
	cfg       Config
	events    store.EventRepo
	snapshots store.SnapshotRepo

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewService creates a session service over the given graph.
func NewService(graph *topicgraph.Graph, cfg Config, events store.EventRepo, snapshots store.SnapshotRepo) *Service {
	return &Service{
		graph:     graph,
		cfg:       cfg.withDefaults(),
		events:    events,
		snapshots: snapshots,
		sessions:  make(map[string]*Session),
	}
}

// StartSession creates and registers a new session.
func (s *Service) StartSession(ctx context.Context) (*Session, error) {
	sess, err := NewSession(uuid.NewString(), s.graph, s.cfg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	s.recordSessionEvent(ctx, store.SessionEventData{
		SessionID: sess.ID(),
		Action:    "started",
	})
	return sess, nil
}

// Get returns the live session with the given ID.
func (s *Service) Get(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, &UnknownSessionError{SessionID: sessionID}
	}
	return sess, nil
}

// SubmitAnswer records a graded answer against a session and logs the
// resulting belief transition.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, topicID string, correct bool) (*Result, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	res, err := sess.SubmitAnswer(topicID, correct)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		topic, _ := s.graph.Get(topicID) // submission already validated the ID
		data := store.AnswerEventData{
			SessionID:      sessionID,
			TopicID:        topicID,
			Level:          topic.Level,
			Correct:        correct,
			Alpha:          res.Belief.Alpha,
			Beta:           res.Belief.Beta,
			ExpectedLambda: res.Belief.ExpectedLambda,
		}
		// Log the event but don't fail the submission if logging fails.
		if logErr := s.events.AppendAnswerEvent(ctx, data); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log answer event: %v\n", logErr)
		}
	}
	return res, nil
}

// CurrentBelief returns the posterior summary for one topic in a session.
func (s *Service) CurrentBelief(sessionID, topicID string) (belief.Summary, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return belief.Summary{}, err
	}
	return sess.Belief(topicID)
}

// Progress returns a session's history and running statistics.
func (s *Service) Progress(sessionID string) (*Report, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Progress(), nil
}

// GraphView exposes the topic graph for rendering.
func (s *Service) GraphView() topicgraph.View {
	return s.graph.View()
}

// ResetSession restores a session to its prior state.
func (s *Service) ResetSession(ctx context.Context, sessionID string) error {
	sess, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	if err := sess.Reset(); err != nil {
		return err
	}
	s.recordSessionEvent(ctx, store.SessionEventData{
		SessionID: sessionID,
		Action:    "reset",
	})
	return nil
}

// EndSession deregisters a session, logs its totals, and saves a belief
// snapshot so a later run can resume from it.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	sess, err := s.Get(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	stats := sess.Progress().Stats
	s.recordSessionEvent(ctx, store.SessionEventData{
		SessionID:       sessionID,
		Action:          "ended",
		QuestionsServed: stats.TotalAnswered,
		CorrectAnswers:  stats.CorrectCount,
		DurationSecs:    int64(time.Since(sess.StartedAt()).Seconds()),
	})

	if s.snapshots == nil {
		return nil
	}
	snap := &store.Snapshot{
		Kind:      store.SnapshotKindBeliefs,
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version: store.SnapshotVersion,
			Prior:   sess.Config().Prior,
			Beliefs: sess.ExportBeliefs(),
		},
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save belief snapshot: %w", err)
	}
	if err := s.snapshots.Prune(ctx, store.SnapshotKindBeliefs, snapshotsToKeep); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to prune snapshots: %v\n", err)
	}
	return nil
}

// ResumeSession starts a session seeded from the latest snapshot. With no
// snapshot store or no saved snapshot it behaves like StartSession.
func (s *Service) ResumeSession(ctx context.Context) (*Session, error) {
	sess, err := s.StartSession(ctx)
	if err != nil {
		return nil, err
	}
	if s.snapshots == nil {
		return sess, nil
	}

	snap, err := s.snapshots.Latest(ctx, store.SnapshotKindBeliefs)
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}
	if snap == nil || len(snap.Data.Beliefs) == 0 {
		return sess, nil
	}
	if err := sess.RestoreBeliefs(snap.Data.Beliefs); err != nil {
		return nil, fmt.Errorf("restore beliefs: %w", err)
	}
	return sess, nil
}

// recordSessionEvent appends a lifecycle event, warning instead of failing
// when the log is unavailable.
func (s *Service) recordSessionEvent(ctx context.Context, data store.SessionEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendSessionEvent(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log session event: %v\n", err)
	}
}
