// Package progress aggregates the answer stream of one session into running
// statistics. The event history is the source of truth; every derived figure
// must equal a full recomputation over it.
package progress

import (
	"slices"
	"time"
)

// AnswerEvent is one graded answer, with the belief snapshot taken
// immediately after the update. Events are immutable and appended in order;
// nothing ever removes one.
type AnswerEvent struct {
	TopicID        string
	Level          int
	Correct        bool
	Timestamp      time.Time
	Alpha          float64
	Beta           float64
	ExpectedLambda float64
}

// LevelStats counts answers for one difficulty level.
type LevelStats struct {
	Total   int
	Correct int
}

// Stats is the running aggregate over a session's answer stream. It is a
// cache over the event history, recomputable from it at any time.
type Stats struct {
	TotalAnswered int
	CorrectCount  int
	Accuracy      float64 // CorrectCount / max(TotalAnswered, 1)
	Levels        map[int]LevelStats
	// CumulativeAccuracy holds one sample per answered question:
	// correct-so-far divided by questions-so-far.
	CumulativeAccuracy []float64
}

// Accumulator owns the append-only event history and its running stats. It
// updates in O(1) per event. Reset semantics live with the caller: a reset
// swaps in a fresh Accumulator rather than mutating this one, so old
// histories stay auditable for as long as someone holds them.
type Accumulator struct {
	events []AnswerEvent
	stats  Stats
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		stats: Stats{Levels: make(map[int]LevelStats)},
	}
}

// Record appends one event and updates the running stats.
func (a *Accumulator) Record(ev AnswerEvent) {
	a.events = append(a.events, ev)

	a.stats.TotalAnswered++
	if ev.Correct {
		a.stats.CorrectCount++
	}
	a.stats.Accuracy = float64(a.stats.CorrectCount) / float64(a.stats.TotalAnswered)

	ls := a.stats.Levels[ev.Level]
	ls.Total++
	if ev.Correct {
		ls.Correct++
	}
	a.stats.Levels[ev.Level] = ls

	a.stats.CumulativeAccuracy = append(a.stats.CumulativeAccuracy, a.stats.Accuracy)
}

// Snapshot returns a value copy of the current stats; mutating the copy
// cannot touch the accumulator.
func (a *Accumulator) Snapshot() Stats {
	out := a.stats
	out.Levels = make(map[int]LevelStats, len(a.stats.Levels))
	for level, ls := range a.stats.Levels {
		out.Levels[level] = ls
	}
	out.CumulativeAccuracy = slices.Clone(a.stats.CumulativeAccuracy)
	return out
}

// History returns a copy of the event sequence in record order.
func (a *Accumulator) History() []AnswerEvent {
	return slices.Clone(a.events)
}

// Len returns the number of recorded events.
func (a *Accumulator) Len() int {
	return len(a.events)
}

// Recompute folds an event history into Stats from scratch. Snapshot must
// always equal Recompute(History()); tests hold the accumulator to that law.
func Recompute(history []AnswerEvent) Stats {
	stats := Stats{Levels: make(map[int]LevelStats)}
	for _, ev := range history {
		stats.TotalAnswered++
		if ev.Correct {
			stats.CorrectCount++
		}
		stats.Accuracy = float64(stats.CorrectCount) / float64(stats.TotalAnswered)

		ls := stats.Levels[ev.Level]
		ls.Total++
		if ev.Correct {
			ls.Correct++
		}
		stats.Levels[ev.Level] = ls

		stats.CumulativeAccuracy = append(stats.CumulativeAccuracy, stats.Accuracy)
	}
	return stats
}
