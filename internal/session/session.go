// Package session hosts one tutoring run per learner: it owns the belief
// store and answer history for that learner, drives topic selection, and
// exposes the engine's operations to the CLI or any other front end. Within
// a session every operation is serialized; distinct sessions are independent
// and share only the read-only topic graph.
package session

import (
	"sync"
	"time"

	"github.com/rsarkar/bayestutor/internal/belief"
	"github.com/rsarkar/bayestutor/internal/policy"
	"github.com/rsarkar/bayestutor/internal/progress"
	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

// DefaultTargetQuestions is the number of questions a session aims for
// before reporting itself done.
const DefaultTargetQuestions = 5

// Config holds the tunables fixed at session start.
type Config struct {
	// Prior is the Gamma hyperparameter pair every topic starts from.
	Prior belief.Prior

	// MasteredThreshold is the expected-λ level at which a topic counts
	// as mastered.
	MasteredThreshold float64

	// TargetQuestions is the question count after which Result.Done is
	// reported. Zero means no target; the session runs until terminal.
	TargetQuestions int

	// ExposureWeight is added to beta on every answer.
	ExposureWeight float64
}

// DefaultConfig returns the standard session settings.
func DefaultConfig() Config {
	return Config{
		Prior:             belief.DefaultPrior(),
		MasteredThreshold: policy.DefaultMasteredThreshold,
		TargetQuestions:   DefaultTargetQuestions,
		ExposureWeight:    1,
	}
}

// withDefaults fills zero-valued fields so a partially specified Config
// behaves sensibly.
func (c Config) withDefaults() Config {
	if c.Prior == (belief.Prior{}) {
		c.Prior = belief.DefaultPrior()
	}
	if c.MasteredThreshold <= 0 {
		c.MasteredThreshold = policy.DefaultMasteredThreshold
	}
	if c.ExposureWeight <= 0 {
		c.ExposureWeight = 1
	}
	return c
}

// Result is what one answer submission returns to the hosting layer.
type Result struct {
	// Belief is the updated posterior summary for the answered topic.
	Belief belief.Summary

	// Next is the topic to present next, or nil when every reachable
	// topic is mastered (the terminal signal).
	Next *topicgraph.Topic

	// Done reports that the session's question target has been reached.
	Done bool

	// Stats is the running session aggregate after this answer.
	Stats progress.Stats
}

// Terminal reports whether selection found no further topics.
func (r *Result) Terminal() bool {
	return r.Next == nil
}

// Session is one learner's tutoring run.
type Session struct {
	id        string
	graph     *topicgraph.Graph
	cfg       Config
	startedAt time.Time

	mu      sync.Mutex
	beliefs *belief.Store
	acc     *progress.Accumulator
	current *topicgraph.Topic // nil once terminal
}

// NewSession creates a session over the given graph and selects its first
// topic with the same deterministic policy used after every answer.
func NewSession(id string, graph *topicgraph.Graph, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	beliefs, err := belief.NewStore(cfg.Prior)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:        id,
		graph:     graph,
		cfg:       cfg,
		startedAt: time.Now(),
		beliefs:   beliefs,
		acc:       progress.NewAccumulator(),
	}
	s.reselectLocked()
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// StartedAt returns the session creation time.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Config returns the session's effective configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// CurrentTopic returns the topic the session is waiting on, or false when
// the session is terminal.
func (s *Session) CurrentTopic() (topicgraph.Topic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return topicgraph.Topic{}, false
	}
	return *s.current, true
}

// reselectLocked recomputes the current topic from the beliefs.
// Callers must hold s.mu (or have exclusive access during construction).
func (s *Session) reselectLocked() {
	next, ok := policy.SelectNext(s.graph, s.beliefs, s.cfg.MasteredThreshold)
	if !ok {
		s.current = nil
		return
	}
	s.current = &next
}

// SubmitAnswer applies one graded answer: belief update, history append,
// then reselection. The topic is validated first, so a failed submission
// leaves belief and history untouched. Each answer must be submitted
// exactly once.
func (s *Session) SubmitAnswer(topicID string, correct bool) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	topic, err := s.graph.Get(topicID)
	if err != nil {
		return nil, err
	}

	state, err := s.beliefs.Update(topicID, correct, s.cfg.ExposureWeight)
	if err != nil {
		return nil, err
	}

	s.acc.Record(progress.AnswerEvent{
		TopicID:        topic.ID,
		Level:          topic.Level,
		Correct:        correct,
		Timestamp:      time.Now(),
		Alpha:          state.Alpha,
		Beta:           state.Beta,
		ExpectedLambda: state.ExpectedLambda(),
	})

	s.reselectLocked()

	return &Result{
		Belief: s.beliefs.Summary(topicID),
		Next:   s.currentCopyLocked(),
		Done:   s.cfg.TargetQuestions > 0 && s.acc.Len() >= s.cfg.TargetQuestions,
		Stats:  s.acc.Snapshot(),
	}, nil
}

func (s *Session) currentCopyLocked() *topicgraph.Topic {
	if s.current == nil {
		return nil
	}
	t := *s.current
	return &t
}

// Belief returns the posterior summary for a topic without mutating
// anything. Unknown topics are rejected.
func (s *Session) Belief(topicID string) (belief.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.graph.Get(topicID); err != nil {
		return belief.Summary{}, err
	}
	return s.beliefs.Summary(topicID), nil
}

// Report bundles the session's history and running statistics.
type Report struct {
	SessionID string
	Stats     progress.Stats
	History   []progress.AnswerEvent
}

// Progress returns the session's history and statistics.
func (s *Session) Progress() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Report{
		SessionID: s.id,
		Stats:     s.acc.Snapshot(),
		History:   s.acc.History(),
	}
}

// Reset restores every belief to the prior and swaps in a fresh
// accumulator. The old accumulator is discarded, not mutated, so histories
// already handed out stay intact.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	beliefs, err := belief.NewStore(s.cfg.Prior)
	if err != nil {
		return err
	}
	s.beliefs = beliefs
	s.acc = progress.NewAccumulator()
	s.reselectLocked()
	return nil
}

// RestoreBeliefs replaces the belief states (resume from a snapshot) and
// reselects the current topic. The answer history is not rewritten; restored
// beliefs carry their own observation counts.
func (s *Session) RestoreBeliefs(states map[string]belief.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.beliefs.Restore(states); err != nil {
		return err
	}
	s.reselectLocked()
	return nil
}

// ExportBeliefs returns a copy of all belief states for persistence.
func (s *Session) ExportBeliefs() map[string]belief.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beliefs.Export()
}
