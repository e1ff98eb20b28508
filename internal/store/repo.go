package store

import (
	"context"
	"time"

	"github.com/rsarkar/bayestutor/internal/belief"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotVersion is the current SnapshotData layout version.
const SnapshotVersion = 1

// SnapshotKindBeliefs marks snapshots carrying the belief store state.
const SnapshotKindBeliefs = "beliefs"

// SnapshotData captures the learner's belief state at a point in time.
type SnapshotData struct {
	Version int                     `json:"version"`
	Prior   belief.Prior            `json:"prior"`
	Beliefs map[string]belief.State `json:"beliefs"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Kind      string
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Kind defaults to
	// SnapshotKindBeliefs; a zero Sequence is assigned from the global
	// event counter.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot of the given kind, or nil
	// if none exist.
	Latest(ctx context.Context, kind string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots of the given kind.
	Prune(ctx context.Context, kind string, keep int) error
}

// AnswerEventData captures one graded answer and the posterior it produced.
type AnswerEventData struct {
	SessionID      string
	TopicID        string
	Level          int
	Correct        bool
	Alpha          float64
	Beta           float64
	ExpectedLambda float64
}

// AnswerEvent is the stored form of an answer event.
type AnswerEvent struct {
	ID             int
	Sequence       int64
	Timestamp      time.Time
	SessionID      string
	TopicID        string
	Level          int
	Correct        bool
	Alpha          float64
	Beta           float64
	ExpectedLambda float64
}

// SessionEventData captures a session lifecycle transition.
// Totals are meaningful on "ended" only.
type SessionEventData struct {
	SessionID       string
	Action          string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int64
}

// LessonEventData records that a lesson was shown for a topic.
type LessonEventData struct {
	SessionID         string
	TopicID           string
	Title             string
	Source            string
	PracticeAttempted bool
	PracticeCorrect   bool
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is the stored form of an LLM request event.
type LLMEvent struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// TopicTotals aggregates answer counts for one topic.
type TopicTotals struct {
	TopicID string
	Total   int
	Correct int
}

// LevelTotals aggregates answer counts for one difficulty level.
type LevelTotals struct {
	Level   int
	Total   int
	Correct int
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records a graded answer and its belief transition.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendLessonEvent records that a lesson was generated and shown.
	AppendLessonEvent(ctx context.Context, data LessonEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryAnswerEvents returns answer events, most recent first.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)

	// AnswerTotalsByTopic aggregates lifetime answer counts per topic,
	// sorted by topic ID.
	AnswerTotalsByTopic(ctx context.Context) ([]TopicTotals, error)

	// AnswerTotalsByLevel aggregates lifetime answer counts per level,
	// sorted by level.
	AnswerTotalsByLevel(ctx context.Context) ([]LevelTotals, error)

	// QueryLLMEvents returns LLM request events, most recent first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event by row ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
