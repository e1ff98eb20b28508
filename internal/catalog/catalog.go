// Package catalog loads topic catalogs from JSON or YAML documents,
// validating them against an embedded JSON Schema and a catalog format
// version gate before they reach graph construction.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/rsarkar/bayestutor/internal/topicgraph"
)

// SupportedMajor is the catalog format major version this build reads.
const SupportedMajor = "v1"

// Document is a parsed catalog file.
type Document struct {
	Version string      `json:"version"`
	Topics  []TopicSpec `json:"topics"`
}

// TopicSpec is one topic entry in a catalog document.
type TopicSpec struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Level         int      `json:"level"`
	Difficulty    float64  `json:"difficulty"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Content       string   `json:"content,omitempty"`
}

// Load reads a catalog file (.json, .yaml, or .yml) and returns its topics
// in document order.
func Load(path string) ([]topicgraph.Topic, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	topics, err := Parse(raw, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return topics, nil
}

// Parse validates and decodes a raw catalog document. ext selects the
// format (".json", ".yaml", or ".yml").
func Parse(raw []byte, ext string) ([]topicgraph.Topic, error) {
	var value any
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case ".yaml", ".yml":
		var decoded any
		if err := yaml.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		// Round-trip through JSON so the schema validator sees the same
		// value shapes for both formats.
		normalized, err := normalize(decoded)
		if err != nil {
			return nil, err
		}
		value = normalized
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (want .json, .yaml, or .yml)", ext)
	}
	return parseValue(value)
}

func parseValue(value any) ([]topicgraph.Topic, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("re-encode catalog: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if major := semver.Major(doc.Version); major != SupportedMajor {
		return nil, fmt.Errorf("unsupported catalog version %q (supported major: %s)", doc.Version, SupportedMajor)
	}

	topics := make([]topicgraph.Topic, 0, len(doc.Topics))
	for _, spec := range doc.Topics {
		topics = append(topics, topicgraph.Topic{
			ID:            spec.ID,
			Name:          spec.Name,
			Level:         spec.Level,
			Difficulty:    spec.Difficulty,
			Prerequisites: spec.Prerequisites,
			Content:       spec.Content,
		})
	}
	return topics, nil
}

// normalize converts a YAML-decoded value into the equivalent
// JSON-decoded value (string keys, float64 numbers and so on).
func normalize(value any) (any, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize YAML document: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("normalize YAML document: %w", err)
	}
	return out, nil
}

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

// compiledSchema compiles the embedded catalog schema once.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(catalogSchema), &doc); err != nil {
			schemaErr = fmt.Errorf("parse embedded catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://catalog.json"
		if err := c.AddResource(url, doc); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schemaCompiled, schemaErr = c.Compile(url)
	})
	return schemaCompiled, schemaErr
}
