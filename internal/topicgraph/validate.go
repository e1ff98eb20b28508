package topicgraph

import (
	"fmt"
	"strings"
)

// validateTopics performs all structural checks on the given topic set.
// Returns a *GraphError describing all problems found, or nil if valid.
func validateTopics(topics []Topic) error {
	var issues []string

	idSet := make(map[string]bool, len(topics))

	// Check for duplicate IDs
	for _, t := range topics {
		if t.ID == "" {
			issues = append(issues, "topic with empty ID")
			continue
		}
		if idSet[t.ID] {
			issues = append(issues, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		idSet[t.ID] = true
	}

	// Check for dangling prerequisites and self-references
	for _, t := range topics {
		for _, prereqID := range t.Prerequisites {
			if prereqID == t.ID {
				issues = append(issues, fmt.Sprintf("topic %q lists itself as a prerequisite", t.ID))
				continue
			}
			if !idSet[prereqID] {
				issues = append(issues, fmt.Sprintf("topic %q references nonexistent prerequisite %q", t.ID, prereqID))
			}
		}
	}

	// Check level bounds
	for _, t := range topics {
		if t.Level < 0 {
			issues = append(issues, fmt.Sprintf("topic %q has negative level %d", t.ID, t.Level))
		}
	}

	// Check for cycles using Kahn's algorithm
	inDegree := make(map[string]int, len(topics))
	adjList := make(map[string][]string)
	for _, t := range topics {
		inDegree[t.ID] = len(t.Prerequisites)
		for _, prereqID := range t.Prerequisites {
			adjList[prereqID] = append(adjList[prereqID], t.ID)
		}
	}

	var queue []string
	for _, t := range topics {
		if inDegree[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if visited < len(topics) {
		var cycleNodes []string
		for _, t := range topics {
			if inDegree[t.ID] > 0 {
				cycleNodes = append(cycleNodes, t.ID)
			}
		}
		issues = append(issues, fmt.Sprintf("cycle detected involving topics: %s", strings.Join(cycleNodes, ", ")))
	}

	// Check at least one root
	hasRoot := false
	for _, t := range topics {
		if len(t.Prerequisites) == 0 {
			hasRoot = true
			break
		}
	}
	if !hasRoot {
		issues = append(issues, "no root topics found (at least one topic must have no prerequisites)")
	}

	if len(issues) > 0 {
		return &GraphError{Issues: issues}
	}
	return nil
}
