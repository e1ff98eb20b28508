package belief

import (
	"errors"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(DefaultPrior())
	if err != nil {
		t.Fatalf("NewStore: unexpected error: %v", err)
	}
	return st
}

func TestNewStore_RejectsBadPrior(t *testing.T) {
	tests := []struct {
		name  string
		prior Prior
	}{
		{"zero alpha0", Prior{Alpha0: 0, Beta0: 1}},
		{"zero beta0", Prior{Alpha0: 1, Beta0: 0}},
		{"negative alpha0", Prior{Alpha0: -1, Beta0: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStore(tt.prior); err == nil {
				t.Errorf("NewStore(%+v): expected error, got nil", tt.prior)
			}
		})
	}
}

func TestGet_LazyCreation(t *testing.T) {
	st := newTestStore(t)
	s := st.Get("basics")
	if !almostEqual(s.Alpha, 1) || !almostEqual(s.Beta, 1) {
		t.Errorf("first access: got alpha=%v beta=%v, want prior (1, 1)", s.Alpha, s.Beta)
	}
	if s.Observations != 0 {
		t.Errorf("first access: got %d observations, want 0", s.Observations)
	}
	if len(st.Tracked()) != 1 {
		t.Errorf("got %d tracked topics, want 1", len(st.Tracked()))
	}
}

func TestPeek_NeverCreates(t *testing.T) {
	st := newTestStore(t)
	s := st.Peek("basics")
	if !almostEqual(s.ExpectedLambda(), 1.0) {
		t.Errorf("Peek on fresh topic: got lambda %f, want prior mean 1.0", s.ExpectedLambda())
	}
	if len(st.Tracked()) != 0 {
		t.Error("Peek must not create state")
	}
}

// The canonical update walkthrough: from the Gamma(1,1) prior, a correct
// answer lifts both parameters, an incorrect answer only consumes exposure.
func TestUpdate_Walkthrough(t *testing.T) {
	st := newTestStore(t)

	steps := []struct {
		correct    bool
		wantAlpha  float64
		wantBeta   float64
		wantLambda float64
	}{
		{true, 2, 2, 1.0},
		{true, 3, 3, 1.0},
		{false, 3, 4, 0.75},
		{false, 3, 5, 0.6},
	}
	for i, step := range steps {
		s, err := st.Update("basics", step.correct, 1)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if !almostEqual(s.Alpha, step.wantAlpha) || !almostEqual(s.Beta, step.wantBeta) {
			t.Errorf("step %d: got (%v, %v), want (%v, %v)",
				i, s.Alpha, s.Beta, step.wantAlpha, step.wantBeta)
		}
		if !almostEqual(s.ExpectedLambda(), step.wantLambda) {
			t.Errorf("step %d: got lambda %f, want %f", i, s.ExpectedLambda(), step.wantLambda)
		}
		if s.Observations != i+1 {
			t.Errorf("step %d: got %d observations, want %d", i, s.Observations, i+1)
		}
	}
}

func TestUpdate_FractionalExposure(t *testing.T) {
	st := newTestStore(t)
	s, err := st.Update("basics", true, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(s.Alpha, 2) || !almostEqual(s.Beta, 1.5) {
		t.Errorf("got (%v, %v), want (2, 1.5)", s.Alpha, s.Beta)
	}
	// Non-integer shape must still yield a usable interval.
	iv := s.CredibleInterval(0.90)
	if iv.Width() <= 0 {
		t.Errorf("interval width %f, want > 0", iv.Width())
	}
}

func TestUpdate_RejectsBadExposure(t *testing.T) {
	st := newTestStore(t)
	for _, w := range []float64{0, -1} {
		_, err := st.Update("basics", true, w)
		var ise *InvalidStateError
		if !errors.As(err, &ise) {
			t.Fatalf("weight %v: got error %T, want *InvalidStateError", w, err)
		}
	}
	// State untouched after rejected updates.
	s := st.Peek("basics")
	if s.Observations != 0 {
		t.Errorf("rejected update mutated state: %+v", s)
	}
}

func TestReset(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.Update("basics", false, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st.Reset("basics")
	s := st.Peek("basics")
	if !almostEqual(s.Alpha, 1) || !almostEqual(s.Beta, 1) || s.Observations != 0 {
		t.Errorf("after reset: got %+v, want prior", s)
	}
}

func TestResetAll(t *testing.T) {
	st := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		if _, err := st.Update(id, true, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	st.ResetAll()
	for _, id := range st.Tracked() {
		if s := st.Peek(id); s.Observations != 0 {
			t.Errorf("topic %q not reset: %+v", id, s)
		}
	}
}

func TestMasteredSet_RequiresObservation(t *testing.T) {
	st := newTestStore(t)

	// Freshly created state sits at the prior mean 1.0 but must not count.
	st.Get("untouched")
	if st.MasteredSet(0.7)["untouched"] {
		t.Error("topic with no observations must not be mastered")
	}

	// One correct answer: lambda 1.0 >= 0.7.
	if _, err := st.Update("strong", true, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Two incorrect answers: lambda 1/3 < 0.7.
	for i := 0; i < 2; i++ {
		if _, err := st.Update("weak", false, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	mastered := st.MasteredSet(0.7)
	if !mastered["strong"] {
		t.Error("strong topic should be mastered")
	}
	if mastered["weak"] {
		t.Error("weak topic should not be mastered")
	}
}

func TestAverageExpectedLambda(t *testing.T) {
	st := newTestStore(t)
	if got := st.AverageExpectedLambda(); !almostEqual(got, 0) {
		t.Errorf("empty store: got %f, want 0", got)
	}

	// lambda 1.0 and lambda 0.5: average 0.75.
	if _, err := st.Update("a", true, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := st.Update("b", false, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st.Get("ignored") // no observations, must not dilute the average

	if got := st.AverageExpectedLambda(); !almostEqual(got, 0.75) {
		t.Errorf("got %f, want 0.75", got)
	}
}

func TestSummary_DoesNotMutate(t *testing.T) {
	st := newTestStore(t)
	sum := st.Summary("basics")
	if sum.TopicID != "basics" {
		t.Errorf("got topic ID %q, want %q", sum.TopicID, "basics")
	}
	if !almostEqual(sum.ExpectedLambda, 1.0) {
		t.Errorf("got lambda %f, want prior mean 1.0", sum.ExpectedLambda)
	}
	if sum.Interval.Low > sum.ExpectedLambda || sum.Interval.High < sum.ExpectedLambda {
		t.Errorf("interval [%f, %f] does not contain the mean", sum.Interval.Low, sum.Interval.High)
	}
	if len(st.Tracked()) != 0 {
		t.Error("Summary must not create state")
	}
}

func TestExportRestore(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.Update("a", true, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := st.Update("b", false, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exported := st.Export()

	fresh := newTestStore(t)
	if err := fresh.Restore(exported); err != nil {
		t.Fatalf("Restore: unexpected error: %v", err)
	}
	for _, id := range []string{"a", "b"} {
		if fresh.Peek(id) != st.Peek(id) {
			t.Errorf("topic %q: restored %+v, want %+v", id, fresh.Peek(id), st.Peek(id))
		}
	}
}

func TestRestore_RejectsCorruptState(t *testing.T) {
	st := newTestStore(t)
	err := st.Restore(map[string]State{"bad": {Alpha: 0, Beta: 1}})
	var ise *InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("got error %T, want *InvalidStateError", err)
	}
	if len(st.Tracked()) != 0 {
		t.Error("failed restore must not replace state")
	}
}

func TestExport_IsACopy(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.Update("a", true, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exported := st.Export()
	exported["a"] = State{Alpha: 99, Beta: 99}
	if st.Peek("a").Alpha == 99 {
		t.Error("mutating the export changed store state")
	}
}
