package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records session lifecycle transitions (started/reset/ended).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("action").
			NotEmpty().
			Comment("started, reset, or ended"),
		field.Int("questions_served").
			Default(0).
			Comment("Total questions (on ended only)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Total correct (on ended only)"),
		field.Int64("duration_secs").
			Default(0).
			Comment("Wall-clock session length in seconds (on ended only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
