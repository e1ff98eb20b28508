package topicgraph

import (
	"slices"
	"sort"
)

// Graph holds the immutable topic DAG with precomputed indices. It is built
// once from the catalog and is safe for concurrent readers; accessors return
// copies, never views of internal state.
type Graph struct {
	topics     []Topic
	byID       map[string]*Topic
	roots      []Topic
	dependents map[string][]string
	topoOrder  []Topic
	edges      []Edge
}

// New validates the topic set and constructs the graph. Duplicate IDs,
// dangling or self-referential prerequisites, negative levels, and cycles
// all fail construction with a *GraphError listing every issue found.
// Validation runs here once, never per query.
func New(topics []Topic) (*Graph, error) {
	if err := validateTopics(topics); err != nil {
		return nil, err
	}

	g := &Graph{
		topics:     slices.Clone(topics),
		byID:       make(map[string]*Topic, len(topics)),
		dependents: make(map[string][]string),
	}

	// Build ID index
	for i := range g.topics {
		g.byID[g.topics[i].ID] = &g.topics[i]
	}

	// Build reverse edges (dependents) and the edge list, both in
	// catalog order so View output is stable across runs.
	for i := range g.topics {
		for _, prereqID := range g.topics[i].Prerequisites {
			g.dependents[prereqID] = append(g.dependents[prereqID], g.topics[i].ID)
			g.edges = append(g.edges, Edge{From: prereqID, To: g.topics[i].ID})
		}
	}

	// Topological sort (Kahn's algorithm) with sorted queues for
	// deterministic ordering.
	inDegree := make(map[string]int, len(topics))
	for i := range g.topics {
		inDegree[g.topics[i].ID] = len(g.topics[i].Prerequisites)
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		topic := g.byID[id]
		g.topoOrder = append(g.topoOrder, *topic)

		deps := slices.Clone(g.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	// Identify roots
	for i := range g.topics {
		if len(g.topics[i].Prerequisites) == 0 {
			g.roots = append(g.roots, g.topics[i])
		}
	}

	return g, nil
}

// Get returns a topic by ID, or *UnknownTopicError if not found.
func (g *Graph) Get(id string) (Topic, error) {
	t, ok := g.byID[id]
	if !ok {
		return Topic{}, &UnknownTopicError{TopicID: id}
	}
	return *t, nil
}

// Contains reports whether the given topic ID is in the catalog.
func (g *Graph) Contains(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// Topics returns all topics in catalog (insertion) order.
func (g *Graph) Topics() []Topic {
	return slices.Clone(g.topics)
}

// Len returns the number of topics in the graph.
func (g *Graph) Len() int {
	return len(g.topics)
}

// Roots returns all topics with no prerequisites, in catalog order.
func (g *Graph) Roots() []Topic {
	return slices.Clone(g.roots)
}

// TopologicalOrder returns all topics in a valid topological order.
func (g *Graph) TopologicalOrder() []Topic {
	return slices.Clone(g.topoOrder)
}

// Prerequisites returns the direct prerequisite topics for a given topic ID.
func (g *Graph) Prerequisites(id string) []Topic {
	t, ok := g.byID[id]
	if !ok {
		return nil
	}
	result := make([]Topic, 0, len(t.Prerequisites))
	for _, prereqID := range t.Prerequisites {
		if p, ok := g.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// Dependents returns topics that directly depend on the given topic ID.
func (g *Graph) Dependents(id string) []Topic {
	depIDs := g.dependents[id]
	result := make([]Topic, 0, len(depIDs))
	for _, depID := range depIDs {
		if t, ok := g.byID[depID]; ok {
			result = append(result, *t)
		}
	}
	return result
}

// PrerequisitesSatisfied returns true if every prerequisite of the given
// topic is in the mastered set. Unknown topic IDs are never satisfied.
func (g *Graph) PrerequisitesSatisfied(id string, mastered map[string]bool) bool {
	t, ok := g.byID[id]
	if !ok {
		return false
	}
	for _, prereqID := range t.Prerequisites {
		if !mastered[prereqID] {
			return false
		}
	}
	return true
}

// EligibleTopics returns all topics whose prerequisites are satisfied and
// which are not themselves in the mastered set, in catalog order. The result
// is recomputed from the given set on every call.
func (g *Graph) EligibleTopics(mastered map[string]bool) []Topic {
	var result []Topic
	for i := range g.topics {
		t := g.topics[i]
		if !mastered[t.ID] && g.PrerequisitesSatisfied(t.ID, mastered) {
			result = append(result, t)
		}
	}
	return result
}

// View returns the full graph as topic and edge lists for visualization.
func (g *Graph) View() View {
	return View{
		Topics: slices.Clone(g.topics),
		Edges:  slices.Clone(g.edges),
	}
}
