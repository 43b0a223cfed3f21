package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnalysisRecord holds the schema definition for the audit trail: one row
// per analysis attempt, written at creation and finalized once.
type AnalysisRecord struct {
	ent.Schema
}

// Fields of the AnalysisRecord.
func (AnalysisRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("analysis_id").
			Unique().
			Immutable(),

		// Request shape
		field.Enum("kind").
			Values("anr", "tombstone").
			Immutable(),
		field.Enum("mode").
			Values("quick", "intelligent", "large_file", "max_token").
			Immutable(),
		field.String("provider").
			Immutable(),
		field.String("model").
			Immutable(),
		field.String("content_hash").
			Immutable().
			Comment("hex sha256 of the raw content"),
		field.Int("content_size").
			Immutable(),

		// Lifecycle
		field.Enum("status").
			Values("running", "completed", "failed", "cancelled").
			Default("running"),
		field.Time("started_at").
			Default(time.Now).
			Immutable(),
		field.Time("completed_at").
			Optional().
			Nillable(),

		// Usage totals, set once at finalization
		field.Int("input_tokens").
			Optional().
			Nillable(),
		field.Int("output_tokens").
			Optional().
			Nillable(),
		field.Float("cost_usd").
			Optional().
			Nillable(),
		field.String("error_message").
			Optional().
			Nillable().
			Comment("null = success, not-null = failed or cancelled"),
	}
}

// Indexes of the AnalysisRecord.
func (AnalysisRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("content_hash"),
		index.Fields("started_at"),
		index.Fields("status"),
		index.Fields("kind", "mode"),
	}
}
