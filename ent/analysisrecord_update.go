// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/ent/analysisrecord"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/ent/predicate"
)

// AnalysisRecordUpdate is the builder for updating AnalysisRecord entities.
type AnalysisRecordUpdate struct {
	config
	hooks    []Hook
	mutation *AnalysisRecordMutation
}

// Where appends a list predicates to the AnalysisRecordUpdate builder.
func (_u *AnalysisRecordUpdate) Where(ps ...predicate.AnalysisRecord) *AnalysisRecordUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetStatus sets the "status" field.
func (_u *AnalysisRecordUpdate) SetStatus(v analysisrecord.Status) *AnalysisRecordUpdate {
	_u.mutation.SetStatus(v)
	return _u
}

// SetNillableStatus sets the "status" field if the given value is not nil.
func (_u *AnalysisRecordUpdate) SetNillableStatus(v *analysisrecord.Status) *AnalysisRecordUpdate {
	if v != nil {
		_u.SetStatus(*v)
	}
	return _u
}

// SetCompletedAt sets the "completed_at" field.
func (_u *AnalysisRecordUpdate) SetCompletedAt(v time.Time) *AnalysisRecordUpdate {
	_u.mutation.SetCompletedAt(v)
	return _u
}

// SetNillableCompletedAt sets the "completed_at" field if the given value is not nil.
func (_u *AnalysisRecordUpdate) SetNillableCompletedAt(v *time.Time) *AnalysisRecordUpdate {
	if v != nil {
		_u.SetCompletedAt(*v)
	}
	return _u
}

// ClearCompletedAt clears the value of the "completed_at" field.
func (_u *AnalysisRecordUpdate) ClearCompletedAt() *AnalysisRecordUpdate {
	_u.mutation.ClearCompletedAt()
	return _u
}

// SetInputTokens sets the "input_tokens" field.
func (_u *AnalysisRecordUpdate) SetInputTokens(v int) *AnalysisRecordUpdate {
	_u.mutation.ResetInputTokens()
	_u.mutation.SetInputTokens(v)
	return _u
}

// SetNillableInputTokens sets the "input_tokens" field if the given value is not nil.
func (_u *AnalysisRecordUpdate) SetNillableInputTokens(v *int) *AnalysisRecordUpdate {
	if v != nil {
		_u.SetInputTokens(*v)
	}
	return _u
}

// AddInputTokens adds value to the "input_tokens" field.
func (_u *AnalysisRecordUpdate) AddInputTokens(v int) *AnalysisRecordUpdate {
	_u.mutation.AddInputTokens(v)
	return _u
}

// ClearInputTokens clears the value of the "input_tokens" field.
func (_u *AnalysisRecordUpdate) ClearInputTokens() *AnalysisRecordUpdate {
	_u.mutation.ClearInputTokens()
	return _u
}

// SetOutputTokens sets the "output_tokens" field.
func (_u *AnalysisRecordUpdate) SetOutputTokens(v int) *AnalysisRecordUpdate {
	_u.mutation.ResetOutputTokens()
	_u.mutation.SetOutputTokens(v)
	return _u
}

// SetNillableOutputTokens sets the "output_tokens" field if the given value is not nil.
func (_u *AnalysisRecordUpdate) SetNillableOutputTokens(v *int) *AnalysisRecordUpdate {
	if v != nil {
		_u.SetOutputTokens(*v)
	}
	return _u
}

// AddOutputTokens adds value to the "output_tokens" field.
func (_u *AnalysisRecordUpdate) AddOutputTokens(v int) *AnalysisRecordUpdate {
	_u.mutation.AddOutputTokens(v)
	return _u
}

// ClearOutputTokens clears the value of the "output_tokens" field.
func (_u *AnalysisRecordUpdate) ClearOutputTokens() *AnalysisRecordUpdate {
	_u.mutation.ClearOutputTokens()
	return _u
}

// SetCostUsd sets the "cost_usd" field.
func (_u *AnalysisRecordUpdate) SetCostUsd(v float64) *AnalysisRecordUpdate {
	_u.mutation.ResetCostUsd()
	_u.mutation.SetCostUsd(v)
	return _u
}

// SetNillableCostUsd sets the "cost_usd" field if the given value is not nil.
func (_u *AnalysisRecordUpdate) SetNillableCostUsd(v *float64) *AnalysisRecordUpdate {
	if v != nil {
		_u.SetCostUsd(*v)
	}
	return _u
}

// AddCostUsd adds value to the "cost_usd" field.
func (_u *AnalysisRecordUpdate) AddCostUsd(v float64) *AnalysisRecordUpdate {
	_u.mutation.AddCostUsd(v)
	return _u
}

// ClearCostUsd clears the value of the "cost_usd" field.
func (_u *AnalysisRecordUpdate) ClearCostUsd() *AnalysisRecordUpdate {
	_u.mutation.ClearCostUsd()
	return _u
}

// SetErrorMessage sets the "error_message" field.
func (_u *AnalysisRecordUpdate) SetErrorMessage(v string) *AnalysisRecordUpdate {
	_u.mutation.SetErrorMessage(v)
	return _u
}

// SetNillableErrorMessage sets the "error_message" field if the given value is not nil.
func (_u *AnalysisRecordUpdate) SetNillableErrorMessage(v *string) *AnalysisRecordUpdate {
	if v != nil {
		_u.SetErrorMessage(*v)
	}
	return _u
}

// ClearErrorMessage clears the value of the "error_message" field.
func (_u *AnalysisRecordUpdate) ClearErrorMessage() *AnalysisRecordUpdate {
	_u.mutation.ClearErrorMessage()
	return _u
}

// Mutation returns the AnalysisRecordMutation object of the builder.
func (_u *AnalysisRecordUpdate) Mutation() *AnalysisRecordMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *AnalysisRecordUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *AnalysisRecordUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *AnalysisRecordUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *AnalysisRecordUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *AnalysisRecordUpdate) check() error {
	if v, ok := _u.mutation.Status(); ok {
		if err := analysisrecord.StatusValidator(v); err != nil {
			return &ValidationError{Name: "status", err: fmt.Errorf(`ent: validator failed for field "AnalysisRecord.status": %w`, err)}
		}
	}
	return nil
}

func (_u *AnalysisRecordUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(analysisrecord.Table, analysisrecord.Columns, sqlgraph.NewFieldSpec(analysisrecord.FieldID, field.TypeString))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Status(); ok {
		_spec.SetField(analysisrecord.FieldStatus, field.TypeEnum, value)
	}
	if value, ok := _u.mutation.CompletedAt(); ok {
		_spec.SetField(analysisrecord.FieldCompletedAt, field.TypeTime, value)
	}
	if _u.mutation.CompletedAtCleared() {
		_spec.ClearField(analysisrecord.FieldCompletedAt, field.TypeTime)
	}
	if value, ok := _u.mutation.InputTokens(); ok {
		_spec.SetField(analysisrecord.FieldInputTokens, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedInputTokens(); ok {
		_spec.AddField(analysisrecord.FieldInputTokens, field.TypeInt, value)
	}
	if _u.mutation.InputTokensCleared() {
		_spec.ClearField(analysisrecord.FieldInputTokens, field.TypeInt)
	}
	if value, ok := _u.mutation.OutputTokens(); ok {
		_spec.SetField(analysisrecord.FieldOutputTokens, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedOutputTokens(); ok {
		_spec.AddField(analysisrecord.FieldOutputTokens, field.TypeInt, value)
	}
	if _u.mutation.OutputTokensCleared() {
		_spec.ClearField(analysisrecord.FieldOutputTokens, field.TypeInt)
	}
	if value, ok := _u.mutation.CostUsd(); ok {
		_spec.SetField(analysisrecord.FieldCostUsd, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedCostUsd(); ok {
		_spec.AddField(analysisrecord.FieldCostUsd, field.TypeFloat64, value)
	}
	if _u.mutation.CostUsdCleared() {
		_spec.ClearField(analysisrecord.FieldCostUsd, field.TypeFloat64)
	}
	if value, ok := _u.mutation.ErrorMessage(); ok {
		_spec.SetField(analysisrecord.FieldErrorMessage, field.TypeString, value)
	}
	if _u.mutation.ErrorMessageCleared() {
		_spec.ClearField(analysisrecord.FieldErrorMessage, field.TypeString)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{analysisrecord.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// AnalysisRecordUpdateOne is the builder for updating a single AnalysisRecord entity.
type AnalysisRecordUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *AnalysisRecordMutation
}

// SetStatus sets the "status" field.
func (_u *AnalysisRecordUpdateOne) SetStatus(v analysisrecord.Status) *AnalysisRecordUpdateOne {
	_u.mutation.SetStatus(v)
	return _u
}

// SetNillableStatus sets the "status" field if the given value is not nil.
func (_u *AnalysisRecordUpdateOne) SetNillableStatus(v *analysisrecord.Status) *AnalysisRecordUpdateOne {
	if v != nil {
		_u.SetStatus(*v)
	}
	return _u
}

// SetCompletedAt sets the "completed_at" field.
func (_u *AnalysisRecordUpdateOne) SetCompletedAt(v time.Time) *AnalysisRecordUpdateOne {
	_u.mutation.SetCompletedAt(v)
	return _u
}

// SetNillableCompletedAt sets the "completed_at" field if the given value is not nil.
func (_u *AnalysisRecordUpdateOne) SetNillableCompletedAt(v *time.Time) *AnalysisRecordUpdateOne {
	if v != nil {
		_u.SetCompletedAt(*v)
	}
	return _u
}

// ClearCompletedAt clears the value of the "completed_at" field.
func (_u *AnalysisRecordUpdateOne) ClearCompletedAt() *AnalysisRecordUpdateOne {
	_u.mutation.ClearCompletedAt()
	return _u
}

// SetInputTokens sets the "input_tokens" field.
func (_u *AnalysisRecordUpdateOne) SetInputTokens(v int) *AnalysisRecordUpdateOne {
	_u.mutation.ResetInputTokens()
	_u.mutation.SetInputTokens(v)
	return _u
}

// SetNillableInputTokens sets the "input_tokens" field if the given value is not nil.
func (_u *AnalysisRecordUpdateOne) SetNillableInputTokens(v *int) *AnalysisRecordUpdateOne {
	if v != nil {
		_u.SetInputTokens(*v)
	}
	return _u
}

// AddInputTokens adds value to the "input_tokens" field.
func (_u *AnalysisRecordUpdateOne) AddInputTokens(v int) *AnalysisRecordUpdateOne {
	_u.mutation.AddInputTokens(v)
	return _u
}

// ClearInputTokens clears the value of the "input_tokens" field.
func (_u *AnalysisRecordUpdateOne) ClearInputTokens() *AnalysisRecordUpdateOne {
	_u.mutation.ClearInputTokens()
	return _u
}

// SetOutputTokens sets the "output_tokens" field.
func (_u *AnalysisRecordUpdateOne) SetOutputTokens(v int) *AnalysisRecordUpdateOne {
	_u.mutation.ResetOutputTokens()
	_u.mutation.SetOutputTokens(v)
	return _u
}

// SetNillableOutputTokens sets the "output_tokens" field if the given value is not nil.
func (_u *AnalysisRecordUpdateOne) SetNillableOutputTokens(v *int) *AnalysisRecordUpdateOne {
	if v != nil {
		_u.SetOutputTokens(*v)
	}
	return _u
}

// AddOutputTokens adds value to the "output_tokens" field.
func (_u *AnalysisRecordUpdateOne) AddOutputTokens(v int) *AnalysisRecordUpdateOne {
	_u.mutation.AddOutputTokens(v)
	return _u
}

// ClearOutputTokens clears the value of the "output_tokens" field.
func (_u *AnalysisRecordUpdateOne) ClearOutputTokens() *AnalysisRecordUpdateOne {
	_u.mutation.ClearOutputTokens()
	return _u
}

// SetCostUsd sets the "cost_usd" field.
func (_u *AnalysisRecordUpdateOne) SetCostUsd(v float64) *AnalysisRecordUpdateOne {
	_u.mutation.ResetCostUsd()
	_u.mutation.SetCostUsd(v)
	return _u
}

// SetNillableCostUsd sets the "cost_usd" field if the given value is not nil.
func (_u *AnalysisRecordUpdateOne) SetNillableCostUsd(v *float64) *AnalysisRecordUpdateOne {
	if v != nil {
		_u.SetCostUsd(*v)
	}
	return _u
}

// AddCostUsd adds value to the "cost_usd" field.
func (_u *AnalysisRecordUpdateOne) AddCostUsd(v float64) *AnalysisRecordUpdateOne {
	_u.mutation.AddCostUsd(v)
	return _u
}

// ClearCostUsd clears the value of the "cost_usd" field.
func (_u *AnalysisRecordUpdateOne) ClearCostUsd() *AnalysisRecordUpdateOne {
	_u.mutation.ClearCostUsd()
	return _u
}

// SetErrorMessage sets the "error_message" field.
func (_u *AnalysisRecordUpdateOne) SetErrorMessage(v string) *AnalysisRecordUpdateOne {
	_u.mutation.SetErrorMessage(v)
	return _u
}

// SetNillableErrorMessage sets the "error_message" field if the given value is not nil.
func (_u *AnalysisRecordUpdateOne) SetNillableErrorMessage(v *string) *AnalysisRecordUpdateOne {
	if v != nil {
		_u.SetErrorMessage(*v)
	}
	return _u
}

// ClearErrorMessage clears the value of the "error_message" field.
func (_u *AnalysisRecordUpdateOne) ClearErrorMessage() *AnalysisRecordUpdateOne {
	_u.mutation.ClearErrorMessage()
	return _u
}

// Mutation returns the AnalysisRecordMutation object of the builder.
func (_u *AnalysisRecordUpdateOne) Mutation() *AnalysisRecordMutation {
	return _u.mutation
}

// Where appends a list predicates to the AnalysisRecordUpdate builder.
func (_u *AnalysisRecordUpdateOne) Where(ps ...predicate.AnalysisRecord) *AnalysisRecordUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *AnalysisRecordUpdateOne) Select(field string, fields ...string) *AnalysisRecordUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated AnalysisRecord entity.
func (_u *AnalysisRecordUpdateOne) Save(ctx context.Context) (*AnalysisRecord, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *AnalysisRecordUpdateOne) SaveX(ctx context.Context) *AnalysisRecord {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *AnalysisRecordUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *AnalysisRecordUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *AnalysisRecordUpdateOne) check() error {
	if v, ok := _u.mutation.Status(); ok {
		if err := analysisrecord.StatusValidator(v); err != nil {
			return &ValidationError{Name: "status", err: fmt.Errorf(`ent: validator failed for field "AnalysisRecord.status": %w`, err)}
		}
	}
	return nil
}

func (_u *AnalysisRecordUpdateOne) sqlSave(ctx context.Context) (_node *AnalysisRecord, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(analysisrecord.Table, analysisrecord.Columns, sqlgraph.NewFieldSpec(analysisrecord.FieldID, field.TypeString))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "AnalysisRecord.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, analysisrecord.FieldID)
		for _, f := range fields {
			if !analysisrecord.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != analysisrecord.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Status(); ok {
		_spec.SetField(analysisrecord.FieldStatus, field.TypeEnum, value)
	}
	if value, ok := _u.mutation.CompletedAt(); ok {
		_spec.SetField(analysisrecord.FieldCompletedAt, field.TypeTime, value)
	}
	if _u.mutation.CompletedAtCleared() {
		_spec.ClearField(analysisrecord.FieldCompletedAt, field.TypeTime)
	}
	if value, ok := _u.mutation.InputTokens(); ok {
		_spec.SetField(analysisrecord.FieldInputTokens, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedInputTokens(); ok {
		_spec.AddField(analysisrecord.FieldInputTokens, field.TypeInt, value)
	}
	if _u.mutation.InputTokensCleared() {
		_spec.ClearField(analysisrecord.FieldInputTokens, field.TypeInt)
	}
	if value, ok := _u.mutation.OutputTokens(); ok {
		_spec.SetField(analysisrecord.FieldOutputTokens, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedOutputTokens(); ok {
		_spec.AddField(analysisrecord.FieldOutputTokens, field.TypeInt, value)
	}
	if _u.mutation.OutputTokensCleared() {
		_spec.ClearField(analysisrecord.FieldOutputTokens, field.TypeInt)
	}
	if value, ok := _u.mutation.CostUsd(); ok {
		_spec.SetField(analysisrecord.FieldCostUsd, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedCostUsd(); ok {
		_spec.AddField(analysisrecord.FieldCostUsd, field.TypeFloat64, value)
	}
	if _u.mutation.CostUsdCleared() {
		_spec.ClearField(analysisrecord.FieldCostUsd, field.TypeFloat64)
	}
	if value, ok := _u.mutation.ErrorMessage(); ok {
		_spec.SetField(analysisrecord.FieldErrorMessage, field.TypeString, value)
	}
	if _u.mutation.ErrorMessageCleared() {
		_spec.ClearField(analysisrecord.FieldErrorMessage, field.TypeString)
	}
	_node = &AnalysisRecord{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{analysisrecord.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
