package lessons

import "github.com/rsarkar/bayestutor/internal/llm"

// LessonSchema constrains structured LLM output to the lesson shape the
// service unmarshals.
var LessonSchema = &llm.Schema{
	Name:        "topic-lesson",
	Description: "A micro-lesson with explanation, worked example, and practice question",
	Definition: schemaObject(map[string]any{
		"title":          schemaText("Short title for the lesson (3-8 words)"),
		"explanation":    schemaText("Clear explanation of the concept (3-5 sentences)"),
		"worked_example": schemaText("Step-by-step solution to a representative problem, with numbered steps"),
		"practice_question": schemaObject(map[string]any{
			"text":   schemaText("A practice question the student can solve using the explanation above"),
			"answer": schemaText("The correct answer"),
			"answer_type": map[string]any{
				"type": "string",
				"enum": []any{"integer", "decimal", "fraction"},
			},
			"explanation": schemaText("Brief explanation of the practice answer"),
		}, "text", "answer", "answer_type", "explanation"),
	}, "title", "explanation", "worked_example", "practice_question"),
}

func schemaObject(props map[string]any, required ...string) map[string]any {
	req := make([]any, len(required))
	for i, name := range required {
		req[i] = name
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             req,
		"additionalProperties": false,
	}
}

func schemaText(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}
