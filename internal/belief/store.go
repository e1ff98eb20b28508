package belief

import (
	"fmt"
	"math"
	"sort"
)

// Store owns all belief states for one learner session. States are created
// lazily from the prior on first access and only ever change through Update
// or Reset. A Store must not be shared across sessions; each session gets
// its own (the caller serializes access within a session).
type Store struct {
	prior  Prior
	states map[string]State
}

// NewStore creates a store with the given prior hyperparameters.
// Non-positive or non-finite hyperparameters are rejected.
func NewStore(prior Prior) (*Store, error) {
	if !(prior.Alpha0 > 0) || math.IsInf(prior.Alpha0, 0) {
		return nil, fmt.Errorf("prior alpha0 must be positive and finite, got %v", prior.Alpha0)
	}
	if !(prior.Beta0 > 0) || math.IsInf(prior.Beta0, 0) {
		return nil, fmt.Errorf("prior beta0 must be positive and finite, got %v", prior.Beta0)
	}
	return &Store{
		prior:  prior,
		states: make(map[string]State),
	}, nil
}

// Prior returns the hyperparameters fixed at construction.
func (st *Store) Prior() Prior {
	return st.prior
}

func (st *Store) priorState() State {
	return State{Alpha: st.prior.Alpha0, Beta: st.prior.Beta0}
}

// Get returns the current state for a topic, creating it from the prior on
// first access.
func (st *Store) Get(topicID string) State {
	if s, ok := st.states[topicID]; ok {
		return s
	}
	s := st.priorState()
	st.states[topicID] = s
	return s
}

// Peek returns the current state for a topic, or the prior if the topic has
// never been touched. Unlike Get it never creates state, so it is safe for
// previews and summaries.
func (st *Store) Peek(topicID string) State {
	if s, ok := st.states[topicID]; ok {
		return s
	}
	return st.priorState()
}

// Update applies the conjugate update for one observed answer: alpha gains 1
// on a correct answer, beta gains exposureWeight either way. The weight must
// be positive and finite; anything else is rejected with *InvalidStateError
// and the state is untouched. Callers must apply each answer exactly once —
// replaying an answer double-counts.
func (st *Store) Update(topicID string, correct bool, exposureWeight float64) (State, error) {
	if !(exposureWeight > 0) || math.IsInf(exposureWeight, 0) {
		return State{}, &InvalidStateError{
			TopicID: topicID,
			Reason:  fmt.Sprintf("exposure weight must be positive and finite, got %v", exposureWeight),
		}
	}

	s := st.Get(topicID)
	if correct {
		s.Alpha++
	}
	s.Beta += exposureWeight
	s.Observations++

	// Unreachable given the prior and weight checks, kept as a guard on
	// the positivity invariant.
	if !(s.Alpha > 0) || !(s.Beta > 0) {
		return State{}, &InvalidStateError{
			TopicID: topicID,
			Reason:  fmt.Sprintf("update would produce alpha=%v beta=%v", s.Alpha, s.Beta),
		}
	}

	st.states[topicID] = s
	return s, nil
}

// Reset restores a single topic to the prior.
func (st *Store) Reset(topicID string) {
	if _, ok := st.states[topicID]; ok {
		st.states[topicID] = st.priorState()
	}
}

// ResetAll restores every tracked topic to the prior.
func (st *Store) ResetAll() {
	for id := range st.states {
		st.states[id] = st.priorState()
	}
}

// Summary returns the derived statistics for a topic without mutating
// anything (Peek semantics).
func (st *Store) Summary(topicID string) Summary {
	return summarize(topicID, st.Peek(topicID))
}

// MasteredSet returns the IDs of topics considered mastered: expected λ at
// or above the threshold AND at least one recorded observation. The
// observation gate matters because the Gamma(1,1) prior mean is 1.0; without
// it every untouched topic would count as mastered.
func (st *Store) MasteredSet(threshold float64) map[string]bool {
	result := make(map[string]bool)
	for id, s := range st.states {
		if s.Observations > 0 && s.ExpectedLambda() >= threshold {
			result[id] = true
		}
	}
	return result
}

// AverageExpectedLambda returns the mean expected λ across attempted topics
// (Observations > 0), or 0 when nothing has been attempted yet. It is the
// "overall mastery level" the selection policy aims difficulty at.
func (st *Store) AverageExpectedLambda() float64 {
	var sum float64
	var n int
	for _, s := range st.states {
		if s.Observations > 0 {
			sum += s.ExpectedLambda()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Tracked returns the IDs of all topics with state, sorted for
// deterministic iteration.
func (st *Store) Tracked() []string {
	ids := make([]string, 0, len(st.states))
	for id := range st.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Export returns a copy of all tracked states, keyed by topic ID, for
// persistence.
func (st *Store) Export() map[string]State {
	out := make(map[string]State, len(st.states))
	for id, s := range st.states {
		out[id] = s
	}
	return out
}

// Restore replaces all tracked states with the given set, validating the
// positivity invariants first. On error nothing is replaced.
func (st *Store) Restore(states map[string]State) error {
	for id, s := range states {
		if !(s.Alpha > 0) || !(s.Beta > 0) || math.IsInf(s.Alpha, 0) || math.IsInf(s.Beta, 0) {
			return &InvalidStateError{
				TopicID: id,
				Reason:  fmt.Sprintf("restored state has alpha=%v beta=%v", s.Alpha, s.Beta),
			}
		}
		if s.Observations < 0 {
			return &InvalidStateError{
				TopicID: id,
				Reason:  fmt.Sprintf("restored state has negative observation count %d", s.Observations),
			}
		}
	}
	st.states = make(map[string]State, len(states))
	for id, s := range states {
		st.states[id] = s
	}
	return nil
}
