// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// AnalysisRecordsColumns holds the columns for the "analysis_records" table.
	AnalysisRecordsColumns = []*schema.Column{
		{Name: "analysis_id", Type: field.TypeString, Unique: true},
		{Name: "kind", Type: field.TypeEnum, Enums: []string{"anr", "tombstone"}},
		{Name: "mode", Type: field.TypeEnum, Enums: []string{"quick", "intelligent", "large_file", "max_token"}},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "content_hash", Type: field.TypeString},
		{Name: "content_size", Type: field.TypeInt},
		{Name: "status", Type: field.TypeEnum, Enums: []string{"running", "completed", "failed", "cancelled"}, Default: "running"},
		{Name: "started_at", Type: field.TypeTime},
		{Name: "completed_at", Type: field.TypeTime, Nullable: true},
		{Name: "input_tokens", Type: field.TypeInt, Nullable: true},
		{Name: "output_tokens", Type: field.TypeInt, Nullable: true},
		{Name: "cost_usd", Type: field.TypeFloat64, Nullable: true},
		{Name: "error_message", Type: field.TypeString, Nullable: true},
	}
	// AnalysisRecordsTable holds the schema information for the "analysis_records" table.
	AnalysisRecordsTable = &schema.Table{
		Name:       "analysis_records",
		Columns:    AnalysisRecordsColumns,
		PrimaryKey: []*schema.Column{AnalysisRecordsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "analysisrecord_content_hash",
				Unique:  false,
				Columns: []*schema.Column{AnalysisRecordsColumns[5]},
			},
			{
				Name:    "analysisrecord_started_at",
				Unique:  false,
				Columns: []*schema.Column{AnalysisRecordsColumns[8]},
			},
			{
				Name:    "analysisrecord_status",
				Unique:  false,
				Columns: []*schema.Column{AnalysisRecordsColumns[7]},
			},
			{
				Name:    "analysisrecord_kind_mode",
				Unique:  false,
				Columns: []*schema.Column{AnalysisRecordsColumns[1], AnalysisRecordsColumns[2]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AnalysisRecordsTable,
	}
)

func init() {
}
