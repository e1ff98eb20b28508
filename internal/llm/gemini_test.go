package llm

import (
	"testing"
)

func TestGeminiModelAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // full IDs pass through
	}
	for _, tt := range tests {
		if got := resolveModel(tt.alias, geminiModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.alias, got, tt.want)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"level":       map[string]any{"type": "integer"},
			"answer_type": map[string]any{"type": "string", "enum": []any{"integer", "decimal", "fraction"}},
			"steps": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"title", "level"},
	})

	if schema.Type != "OBJECT" {
		t.Fatalf("type = %s, want OBJECT", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("properties = %d, want 4", len(schema.Properties))
	}
	if got := schema.Properties["title"].Type; got != "STRING" {
		t.Errorf("title type = %s, want STRING", got)
	}
	if got := schema.Properties["level"].Type; got != "INTEGER" {
		t.Errorf("level type = %s, want INTEGER", got)
	}
	if got := len(schema.Properties["answer_type"].Enum); got != 3 {
		t.Errorf("answer_type enum values = %d, want 3", got)
	}
	if got := schema.Properties["steps"].Type; got != "ARRAY" {
		t.Errorf("steps type = %s, want ARRAY", got)
	}
	if got := schema.Properties["steps"].Items.Type; got != "STRING" {
		t.Errorf("steps items type = %s, want STRING", got)
	}
	if got := len(schema.Required); got != 2 {
		t.Errorf("required fields = %d, want 2", got)
	}
}
