package topicgraph

// Topic represents a single node in the prerequisite graph.
// Topics come from the catalog at startup and never change afterwards.
type Topic struct {
	ID            string
	Name          string
	Level         int     // coarse difficulty tier, 0 = introductory
	Difficulty    float64 // continuous difficulty, roughly increasing with Level
	Prerequisites []string
	Content       string // short teaching text, used by the lesson fallback
}

// Edge is a single prerequisite relation: From must be mastered before To.
type Edge struct {
	From string
	To   string
}

// View is a read-only snapshot of the graph for visualization.
type View struct {
	Topics []Topic
	Edges  []Edge
}
