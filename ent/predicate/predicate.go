// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// AnalysisRecord is the predicate function for analysisrecord builders.
type AnalysisRecord func(*sql.Selector)
