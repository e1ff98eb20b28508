// Package belief tracks one Gamma posterior per topic over the learner's
// latent mastery rate λ, updated with Gamma-Poisson conjugate arithmetic
// after every observed answer. The package is pure computation: no I/O, no
// clocks, no external calls.
package belief

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultIntervalLevel is the two-sided credible interval level used when
// callers do not specify one.
const DefaultIntervalLevel = 0.90

// Prior holds the Gamma hyperparameters every topic starts from. Both must
// be strictly positive so that the expected rate is always well-defined.
type Prior struct {
	Alpha0 float64 `json:"alpha0"`
	Beta0  float64 `json:"beta0"`
}

// DefaultPrior returns the uninformative Gamma(1,1) prior.
func DefaultPrior() Prior {
	return Prior{Alpha0: 1, Beta0: 1}
}

// State is the Gamma(Alpha, Beta) posterior over a topic's mastery rate.
// Alpha counts successes on top of the prior shape; Beta accumulates
// exposure on top of the prior rate. Observations counts recorded updates,
// so a state at the prior with Observations == 0 is distinguishable from
// one that was pulled back to prior-like values by evidence.
type State struct {
	Alpha        float64 `json:"alpha"`
	Beta         float64 `json:"beta"`
	Observations int     `json:"observations"`
}

// ExpectedLambda returns the posterior mean Alpha/Beta.
func (s State) ExpectedLambda() float64 {
	if s.Beta == 0 {
		return 0
	}
	return s.Alpha / s.Beta
}

// Variance returns the posterior variance Alpha/Beta².
func (s State) Variance() float64 {
	if s.Beta == 0 {
		return 0
	}
	return s.Alpha / (s.Beta * s.Beta)
}

// CredibleInterval returns the two-sided credible interval on λ at the
// given level (0.90 = 90%). The Gamma quantile routine accepts non-integer
// shape, which arises whenever fractional exposure weights are used.
// Levels outside (0, 1) fall back to DefaultIntervalLevel.
func (s State) CredibleInterval(level float64) Interval {
	if level <= 0 || level >= 1 {
		level = DefaultIntervalLevel
	}
	tail := (1 - level) / 2
	d := distuv.Gamma{Alpha: s.Alpha, Beta: s.Beta}
	return Interval{
		Low:  d.Quantile(tail),
		High: d.Quantile(1 - tail),
	}
}

// Interval is a two-sided credible interval on the mastery rate.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Width returns High - Low.
func (i Interval) Width() float64 {
	return i.High - i.Low
}

// Summary bundles a state with its derived statistics for callers that
// display or serialize beliefs. Building a Summary never mutates anything.
type Summary struct {
	TopicID        string
	Alpha          float64
	Beta           float64
	ExpectedLambda float64
	Variance       float64
	Interval       Interval
	Observations   int
}

func summarize(topicID string, s State) Summary {
	return Summary{
		TopicID:        topicID,
		Alpha:          s.Alpha,
		Beta:           s.Beta,
		ExpectedLambda: s.ExpectedLambda(),
		Variance:       s.Variance(),
		Interval:       s.CredibleInterval(DefaultIntervalLevel),
		Observations:   s.Observations,
	}
}
