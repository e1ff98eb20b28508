package belief

import (
	"math"
	"testing"
)

const epsilon = 0.001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestExpectedLambda(t *testing.T) {
	tests := []struct {
		name  string
		alpha float64
		beta  float64
		want  float64
	}{
		{"prior", 1, 1, 1.0},
		{"two correct", 3, 3, 1.0},
		{"two correct one wrong", 3, 4, 0.75},
		{"all wrong", 1, 5, 0.2},
		{"fractional exposure", 2, 2.5, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Alpha: tt.alpha, Beta: tt.beta}
			if got := s.ExpectedLambda(); !almostEqual(got, tt.want) {
				t.Errorf("ExpectedLambda() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	s := State{Alpha: 3, Beta: 4}
	if got := s.Variance(); !almostEqual(got, 3.0/16.0) {
		t.Errorf("Variance() = %f, want %f", got, 3.0/16.0)
	}
}

func TestExpectedLambda_Monotonicity(t *testing.T) {
	// Non-decreasing in alpha with beta fixed.
	lower := State{Alpha: 2, Beta: 5}
	higher := State{Alpha: 3, Beta: 5}
	if higher.ExpectedLambda() < lower.ExpectedLambda() {
		t.Error("expected lambda should not decrease as alpha grows")
	}

	// Non-increasing in beta with alpha fixed.
	before := State{Alpha: 3, Beta: 4}
	after := State{Alpha: 3, Beta: 6}
	if after.ExpectedLambda() > before.ExpectedLambda() {
		t.Error("expected lambda should not increase as beta grows")
	}
}

func TestCredibleInterval_ContainsMean(t *testing.T) {
	states := []State{
		{Alpha: 1, Beta: 1},
		{Alpha: 3, Beta: 4},
		{Alpha: 7, Beta: 10},
		{Alpha: 2.5, Beta: 3.25}, // non-integer shape
	}
	for _, s := range states {
		iv := s.CredibleInterval(0.90)
		mean := s.ExpectedLambda()
		if iv.Low > mean || iv.High < mean {
			t.Errorf("interval [%f, %f] does not contain mean %f (alpha=%v beta=%v)",
				iv.Low, iv.High, mean, s.Alpha, s.Beta)
		}
		if iv.Width() < 0 {
			t.Errorf("interval width negative: [%f, %f]", iv.Low, iv.High)
		}
	}
}

func TestCredibleInterval_ShrinksWithExposure(t *testing.T) {
	// Same expected lambda, growing exposure: the interval must tighten.
	early := State{Alpha: 2, Beta: 2}
	late := State{Alpha: 20, Beta: 20}
	if late.Variance() >= early.Variance() {
		t.Errorf("variance should shrink with exposure: early=%f late=%f",
			early.Variance(), late.Variance())
	}
	if late.CredibleInterval(0.90).Width() >= early.CredibleInterval(0.90).Width() {
		t.Errorf("interval should shrink with exposure: early=%f late=%f",
			early.CredibleInterval(0.90).Width(), late.CredibleInterval(0.90).Width())
	}
}

func TestCredibleInterval_BadLevelFallsBack(t *testing.T) {
	s := State{Alpha: 3, Beta: 4}
	want := s.CredibleInterval(DefaultIntervalLevel)
	for _, level := range []float64{0, -0.5, 1, 2} {
		got := s.CredibleInterval(level)
		if !almostEqual(got.Low, want.Low) || !almostEqual(got.High, want.High) {
			t.Errorf("level %v: got [%f, %f], want default [%f, %f]",
				level, got.Low, got.High, want.Low, want.High)
		}
	}
}
