package belief

import "fmt"

// InvalidStateError reports an update or restore that would violate the
// positivity invariants on a belief state. It indicates a caller bug or a
// corrupt snapshot, not a user-recoverable condition; the state it names is
// left untouched.
type InvalidStateError struct {
	TopicID string
	Reason  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid belief state for topic %q: %s", e.TopicID, e.Reason)
}
