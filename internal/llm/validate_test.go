package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func verdictSchema() *Schema {
	return &Schema{
		Name:        "test-verdict",
		Description: "A grading verdict",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"correct":  map[string]any{"type": "boolean"},
				"score":    map[string]any{"type": "integer", "minimum": 0},
				"feedback": map[string]any{"type": "string", "enum": []any{"great", "close", "wrong"}},
			},
			"required": []any{"correct", "score"},
		},
	}
}

func TestValidateResponse_Accepts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"all fields", `{"correct":true,"score":10,"feedback":"great"}`},
		{"without optional field", `{"correct":false,"score":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateResponse(verdictSchema(), json.RawMessage(tt.raw)); err != nil {
				t.Errorf("validateResponse(%s) = %v, want nil", tt.raw, err)
			}
		})
	}
}

func TestValidateResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required field", `{"correct":true}`},
		{"wrong type", `{"correct":true,"score":"ten"}`},
		{"value outside enum", `{"correct":true,"score":5,"feedback":"meh"}`},
		{"malformed JSON", `{not json}`},
		{"empty response", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(verdictSchema(), json.RawMessage(tt.raw))
			if err == nil {
				t.Fatalf("validateResponse(%s) = nil, want error", tt.raw)
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Errorf("error type = %T, want *ErrInvalidResponse", err)
			}
		})
	}
}

func TestValidateResponse_NilSchemaPassesEverything(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Errorf("validateResponse(nil schema) = %v, want nil", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-nested",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{"type": "string"},
					},
					"required": []any{"id"},
				},
				"attempts": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"topic", "attempts"},
		},
	}

	valid := json.RawMessage(`{"topic":{"id":"linear-equations"},"attempts":[1,2,3]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("valid nested document rejected: %v", err)
	}

	invalid := json.RawMessage(`{"topic":{"id":"linear-equations"},"attempts":["not","ints"]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("wrong array item type accepted")
	}
}
