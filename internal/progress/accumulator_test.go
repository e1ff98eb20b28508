package progress

import (
	"math"
	"testing"
	"time"
)

const epsilon = 0.001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func event(topicID string, level int, correct bool) AnswerEvent {
	return AnswerEvent{
		TopicID:   topicID,
		Level:     level,
		Correct:   correct,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestEmptyAccumulator(t *testing.T) {
	a := NewAccumulator()
	stats := a.Snapshot()
	if stats.TotalAnswered != 0 || stats.CorrectCount != 0 {
		t.Errorf("fresh accumulator has counts: %+v", stats)
	}
	if !almostEqual(stats.Accuracy, 0) {
		t.Errorf("fresh accumulator accuracy = %f, want 0", stats.Accuracy)
	}
	if len(a.History()) != 0 {
		t.Error("fresh accumulator has history")
	}
}

func TestRecord_RunningStats(t *testing.T) {
	a := NewAccumulator()
	a.Record(event("algebra-intro", 0, true))
	a.Record(event("algebra-intro", 0, false))
	a.Record(event("linear-eq", 1, true))

	stats := a.Snapshot()
	if stats.TotalAnswered != 3 {
		t.Errorf("TotalAnswered = %d, want 3", stats.TotalAnswered)
	}
	if stats.CorrectCount != 2 {
		t.Errorf("CorrectCount = %d, want 2", stats.CorrectCount)
	}
	if !almostEqual(stats.Accuracy, 2.0/3.0) {
		t.Errorf("Accuracy = %f, want %f", stats.Accuracy, 2.0/3.0)
	}

	if ls := stats.Levels[0]; ls.Total != 2 || ls.Correct != 1 {
		t.Errorf("level 0 stats = %+v, want {2 1}", ls)
	}
	if ls := stats.Levels[1]; ls.Total != 1 || ls.Correct != 1 {
		t.Errorf("level 1 stats = %+v, want {1 1}", ls)
	}
}

func TestRecord_CumulativeAccuracySeries(t *testing.T) {
	a := NewAccumulator()
	a.Record(event("a", 0, true))
	a.Record(event("a", 0, false))
	a.Record(event("a", 0, true))

	want := []float64{1.0, 0.5, 2.0 / 3.0}
	got := a.Snapshot().CumulativeAccuracy
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("sample %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

// The recomputation law: the running snapshot always equals a full fold
// over the history.
func TestRecomputationLaw(t *testing.T) {
	a := NewAccumulator()
	sequence := []struct {
		topicID string
		level   int
		correct bool
	}{
		{"algebra-intro", 0, true},
		{"variables", 0, false},
		{"algebra-intro", 0, true},
		{"linear-eq", 1, true},
		{"linear-eq", 1, false},
		{"quadratics", 2, false},
		{"linear-eq", 1, true},
	}

	for i, step := range sequence {
		a.Record(event(step.topicID, step.level, step.correct))

		snap := a.Snapshot()
		recomputed := Recompute(a.History())

		if snap.TotalAnswered != recomputed.TotalAnswered ||
			snap.CorrectCount != recomputed.CorrectCount {
			t.Fatalf("step %d: counts diverge: snapshot %+v, recomputed %+v",
				i, snap, recomputed)
		}
		if !almostEqual(snap.Accuracy, recomputed.Accuracy) {
			t.Fatalf("step %d: accuracy diverges: %f vs %f",
				i, snap.Accuracy, recomputed.Accuracy)
		}
		if len(snap.Levels) != len(recomputed.Levels) {
			t.Fatalf("step %d: level maps diverge: %v vs %v",
				i, snap.Levels, recomputed.Levels)
		}
		for level, ls := range snap.Levels {
			if recomputed.Levels[level] != ls {
				t.Fatalf("step %d level %d: %+v vs %+v",
					i, level, ls, recomputed.Levels[level])
			}
		}
		for j := range snap.CumulativeAccuracy {
			if !almostEqual(snap.CumulativeAccuracy[j], recomputed.CumulativeAccuracy[j]) {
				t.Fatalf("step %d: cumulative sample %d diverges: %f vs %f",
					i, j, snap.CumulativeAccuracy[j], recomputed.CumulativeAccuracy[j])
			}
		}
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	a := NewAccumulator()
	a.Record(event("a", 0, true))

	snap := a.Snapshot()
	snap.Levels[0] = LevelStats{Total: 99, Correct: 99}
	snap.CumulativeAccuracy[0] = -1

	again := a.Snapshot()
	if again.Levels[0].Total != 1 {
		t.Error("mutating a snapshot's level map changed the accumulator")
	}
	if !almostEqual(again.CumulativeAccuracy[0], 1.0) {
		t.Error("mutating a snapshot's series changed the accumulator")
	}
}

func TestHistory_IsACopy(t *testing.T) {
	a := NewAccumulator()
	a.Record(event("a", 0, true))

	history := a.History()
	history[0].TopicID = "mutated"

	if a.History()[0].TopicID != "a" {
		t.Error("mutating returned history changed the accumulator")
	}
}

func TestMonotonicCounters(t *testing.T) {
	a := NewAccumulator()
	prevTotal, prevCorrect := 0, 0
	for i := 0; i < 10; i++ {
		a.Record(event("a", 0, i%3 == 0))
		snap := a.Snapshot()
		if snap.TotalAnswered <= prevTotal {
			t.Fatalf("TotalAnswered did not increase: %d -> %d", prevTotal, snap.TotalAnswered)
		}
		if snap.CorrectCount < prevCorrect {
			t.Fatalf("CorrectCount decreased: %d -> %d", prevCorrect, snap.CorrectCount)
		}
		prevTotal, prevCorrect = snap.TotalAnswered, snap.CorrectCount
	}
}
