package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent logs one row per provider call so usage, cost, and
// failures can be audited after the fact.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").
			Comment("Provider name: anthropic, openai, gemini, openrouter"),
		field.String("model").
			Comment("Resolved model ID sent on the wire"),
		field.String("purpose").
			Comment("Consumer-provided label: lesson, grading"),
		field.Int("input_tokens").
			Default(0).
			Comment("Prompt tokens reported by the provider"),
		field.Int("output_tokens").
			Default(0).
			Comment("Completion tokens reported by the provider"),
		field.Int64("latency_ms").
			Default(0).
			Comment("Round-trip latency in milliseconds"),
		field.Bool("success").
			Comment("False when the call returned an error"),
		field.String("error_message").
			Default("").
			Comment("Provider error text, empty on success"),
		field.Text("request_body").
			Default("").
			Comment("Raw request payload for debugging"),
		field.Text("response_body").
			Default("").
			Comment("Raw response payload for debugging"),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("provider"),
		index.Fields("purpose"),
		index.Fields("success"),
	}
}
