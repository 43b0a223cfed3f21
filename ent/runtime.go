// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/ent/analysisrecord"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/ent/schema"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	analysisrecordFields := schema.AnalysisRecord{}.Fields()
	_ = analysisrecordFields
	// analysisrecordDescStartedAt is the schema descriptor for started_at field.
	analysisrecordDescStartedAt := analysisrecordFields[8].Descriptor()
	// analysisrecord.DefaultStartedAt holds the default value on creation for the started_at field.
	analysisrecord.DefaultStartedAt = analysisrecordDescStartedAt.Default.(func() time.Time)
}
