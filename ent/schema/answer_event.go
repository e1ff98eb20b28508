package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single graded answer and the belief transition it
// produced.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("topic_id").
			NotEmpty().
			Comment("Topic this question was for"),
		field.Int("level").
			Comment("Topic difficulty level"),
		field.Bool("correct").
			Comment("Whether the answer was correct"),
		field.Float("alpha").
			Comment("Posterior alpha after the update"),
		field.Float("beta").
			Comment("Posterior beta after the update"),
		field.Float("expected_lambda").
			Comment("Posterior mean alpha/beta after the update"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("topic_id"),
		index.Fields("correct"),
	}
}
