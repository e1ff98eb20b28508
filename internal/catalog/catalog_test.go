package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

const validJSON = `{
	"version": "v1.0.0",
	"topics": [
		{"id": "counting", "name": "Counting", "level": 0, "difficulty": 0.1},
		{"id": "addition", "name": "Addition", "level": 1, "difficulty": 0.3,
		 "prerequisites": ["counting"], "content": "Single-digit sums"}
	]
}`

const validYAML = `version: v1.2.3
topics:
  - id: counting
    name: Counting
    level: 0
    difficulty: 0.1
  - id: addition
    name: Addition
    level: 1
    difficulty: 0.3
    prerequisites: [counting]
    content: Single-digit sums
`

func writeTempCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_JSON(t *testing.T) {
	topics, err := Parse([]byte(validJSON), ".json")
	require.NoError(t, err)
	require.Len(t, topics, 2)

	assert.Equal(t, "counting", topics[0].ID)
	assert.Equal(t, 0, topics[0].Level)
	assert.Empty(t, topics[0].Prerequisites)

	assert.Equal(t, "addition", topics[1].ID)
	assert.Equal(t, []string{"counting"}, topics[1].Prerequisites)
	assert.Equal(t, "Single-digit sums", topics[1].Content)
	assert.InDelta(t, 0.3, topics[1].Difficulty, 1e-9)
}

func TestParse_YAMLMatchesJSON(t *testing.T) {
	fromJSON, err := Parse([]byte(validJSON), ".json")
	require.NoError(t, err)

	fromYAML, err := Parse([]byte(validYAML), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing version", `{"topics": [{"id": "a", "name": "A", "level": 0, "difficulty": 0.5}]}`},
		{"empty topics", `{"version": "v1.0.0", "topics": []}`},
		{"missing difficulty", `{"version": "v1.0.0", "topics": [{"id": "a", "name": "A", "level": 0}]}`},
		{"negative level", `{"version": "v1.0.0", "topics": [{"id": "a", "name": "A", "level": -1, "difficulty": 0.5}]}`},
		{"difficulty above one", `{"version": "v1.0.0", "topics": [{"id": "a", "name": "A", "level": 0, "difficulty": 1.5}]}`},
		{"uppercase id", `{"version": "v1.0.0", "topics": [{"id": "Algebra", "name": "A", "level": 0, "difficulty": 0.5}]}`},
		{"unknown field", `{"version": "v1.0.0", "topics": [{"id": "a", "name": "A", "level": 0, "difficulty": 0.5, "color": "red"}]}`},
		{"bad version format", `{"version": "1.0", "topics": [{"id": "a", "name": "A", "level": 0, "difficulty": 0.5}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), ".json")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestParse_UnsupportedMajorVersion(t *testing.T) {
	doc := `{"version": "v2.0.0", "topics": [{"id": "a", "name": "A", "level": 0, "difficulty": 0.5}]}`
	_, err := Parse([]byte(doc), ".json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported catalog version")
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := Parse([]byte(validJSON), ".toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported catalog format")
}

func TestParse_MalformedInput(t *testing.T) {
	_, err := Parse([]byte(`{"version": `), ".json")
	require.Error(t, err)

	_, err = Parse([]byte("topics: ["), ".yaml")
	require.Error(t, err)
}

func TestLoad_FromFiles(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		path := writeTempCatalog(t, "catalog.json", validJSON)
		topics, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, topics, 2)
	})

	t.Run("yml", func(t *testing.T) {
		path := writeTempCatalog(t, "catalog.yml", validYAML)
		topics, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, topics, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}

func TestDefault_BuildsValidGraph(t *testing.T) {
	topics := Default()
	require.Len(t, topics, 9)

	g, err := topicgraph.New(topics)
	require.NoError(t, err)

	// Catalog order is preserved from level 0 through level 4.
	assert.Equal(t, "algebra-intro", topics[0].ID)
	assert.Equal(t, "calculus-fundamentals", topics[8].ID)
	assert.Equal(t, 4, topics[8].Level)

	// Both level-0 topics are roots.
	var rootIDs []string
	for _, r := range g.Roots() {
		rootIDs = append(rootIDs, r.ID)
	}
	assert.ElementsMatch(t, []string{"algebra-intro", "variables-expressions"}, rootIDs)

	// The capstone requires both advanced branches.
	var prereqIDs []string
	for _, p := range g.Prerequisites("calculus-fundamentals") {
		prereqIDs = append(prereqIDs, p.ID)
	}
	assert.Equal(t, []string{"polynomial-functions", "trigonometric-basics"}, prereqIDs)
}

func TestDefault_RoundTripsThroughParse(t *testing.T) {
	// The built-in catalog and a hand-written document produce identical
	// graph inputs when the document mirrors the defaults.
	doc := `{
		"version": "v1.0.0",
		"topics": [
			{"id": "algebra-intro", "name": "Introduction to Algebra", "level": 0,
			 "difficulty": 0.2, "content": "Basic algebraic expressions and equations"}
		]
	}`
	topics, err := Parse([]byte(doc), ".json")
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, Default()[0], topics[0])
}
