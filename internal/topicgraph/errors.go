package topicgraph

import (
	"fmt"
	"strings"
)

// GraphError reports structural problems found while building a graph:
// duplicate or dangling topic IDs, or a prerequisite cycle. It is fatal at
// load time; a graph that failed construction must not be queried.
type GraphError struct {
	Issues []string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("topic graph validation failed:\n  %s", strings.Join(e.Issues, "\n  "))
}

// UnknownTopicError is returned when an operation names a topic ID that is
// not in the catalog. The operation leaves all state untouched.
type UnknownTopicError struct {
	TopicID string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("unknown topic: %q", e.TopicID)
}
