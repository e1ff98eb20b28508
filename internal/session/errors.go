package session

import "fmt"

// UnknownSessionError reports an operation against a session ID the
// service is not tracking.
type UnknownSessionError struct {
	SessionID string
}

func (e *UnknownSessionError) Error() string {
	return fmt.Sprintf("unknown session %q", e.SessionID)
}
