package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Snapshot is a point-in-time copy of learner state. Restoring from the
// latest snapshot avoids replaying the event log on startup.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.String("kind").
			Default("beliefs").
			Comment("Discriminates snapshot payload types"),
		field.Int64("sequence").
			Comment("Global event sequence the snapshot was taken at"),
		field.Time("timestamp").
			Default(time.Now).
			Comment("Snapshot creation time"),
		field.JSON("data", map[string]any{}).
			Comment("Serialized learner state"),
	}
}

func (Snapshot) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind", "timestamp"),
		index.Fields("sequence"),
	}
}
