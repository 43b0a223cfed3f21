// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/ent/analysisrecord"
)

// AnalysisRecordCreate is the builder for creating a AnalysisRecord entity.
type AnalysisRecordCreate struct {
	config
	mutation *AnalysisRecordMutation
	hooks    []Hook
}

// SetKind sets the "kind" field.
func (_c *AnalysisRecordCreate) SetKind(v analysisrecord.Kind) *AnalysisRecordCreate {
	_c.mutation.SetKind(v)
	return _c
}

// SetMode sets the "mode" field.
func (_c *AnalysisRecordCreate) SetMode(v analysisrecord.Mode) *AnalysisRecordCreate {
	_c.mutation.SetMode(v)
	return _c
}

// SetProvider sets the "provider" field.
func (_c *AnalysisRecordCreate) SetProvider(v string) *AnalysisRecordCreate {
	_c.mutation.SetProvider(v)
	return _c
}

// SetModel sets the "model" field.
func (_c *AnalysisRecordCreate) SetModel(v string) *AnalysisRecordCreate {
	_c.mutation.SetModel(v)
	return _c
}

// SetContentHash sets the "content_hash" field.
func (_c *AnalysisRecordCreate) SetContentHash(v string) *AnalysisRecordCreate {
	_c.mutation.SetContentHash(v)
	return _c
}

// SetContentSize sets the "content_size" field.
func (_c *AnalysisRecordCreate) SetContentSize(v int) *AnalysisRecordCreate {
	_c.mutation.SetContentSize(v)
	return _c
}

// SetStatus sets the "status" field.
func (_c *AnalysisRecordCreate) SetStatus(v analysisrecord.Status) *AnalysisRecordCreate {
	_c.mutation.SetStatus(v)
	return _c
}

// SetNillableStatus sets the "status" field if the given value is not nil.
func (_c *AnalysisRecordCreate) SetNillableStatus(v *analysisrecord.Status) *AnalysisRecordCreate {
	if v != nil {
		_c.SetStatus(*v)
	}
	return _c
}

// SetStartedAt sets the "started_at" field.
func (_c *AnalysisRecordCreate) SetStartedAt(v time.Time) *AnalysisRecordCreate {
	_c.mutation.SetStartedAt(v)
	return _c
}

// SetNillableStartedAt sets the "started_at" field if the given value is not nil.
func (_c *AnalysisRecordCreate) SetNillableStartedAt(v *time.Time) *AnalysisRecordCreate {
	if v != nil {
		_c.SetStartedAt(*v)
	}
	return _c
}

// SetCompletedAt sets the "completed_at" field.
func (_c *AnalysisRecordCreate) SetCompletedAt(v time.Time) *AnalysisRecordCreate {
	_c.mutation.SetCompletedAt(v)
	return _c
}

// SetNillableCompletedAt sets the "completed_at" field if the given value is not nil.
func (_c *AnalysisRecordCreate) SetNillableCompletedAt(v *time.Time) *AnalysisRecordCreate {
	if v != nil {
		_c.SetCompletedAt(*v)
	}
	return _c
}

// SetInputTokens sets the "input_tokens" field.
func (_c *AnalysisRecordCreate) SetInputTokens(v int) *AnalysisRecordCreate {
	_c.mutation.SetInputTokens(v)
	return _c
}

// SetNillableInputTokens sets the "input_tokens" field if the given value is not nil.
func (_c *AnalysisRecordCreate) SetNillableInputTokens(v *int) *AnalysisRecordCreate {
	if v != nil {
		_c.SetInputTokens(*v)
	}
	return _c
}

// SetOutputTokens sets the "output_tokens" field.
func (_c *AnalysisRecordCreate) SetOutputTokens(v int) *AnalysisRecordCreate {
	_c.mutation.SetOutputTokens(v)
	return _c
}

// SetNillableOutputTokens sets the "output_tokens" field if the given value is not nil.
func (_c *AnalysisRecordCreate) SetNillableOutputTokens(v *int) *AnalysisRecordCreate {
	if v != nil {
		_c.SetOutputTokens(*v)
	}
	return _c
}

// SetCostUsd sets the "cost_usd" field.
func (_c *AnalysisRecordCreate) SetCostUsd(v float64) *AnalysisRecordCreate {
	_c.mutation.SetCostUsd(v)
	return _c
}

// SetNillableCostUsd sets the "cost_usd" field if the given value is not nil.
func (_c *AnalysisRecordCreate) SetNillableCostUsd(v *float64) *AnalysisRecordCreate {
	if v != nil {
		_c.SetCostUsd(*v)
	}
	return _c
}

// SetErrorMessage sets the "error_message" field.
func (_c *AnalysisRecordCreate) SetErrorMessage(v string) *AnalysisRecordCreate {
	_c.mutation.SetErrorMessage(v)
	return _c
}

// SetNillableErrorMessage sets the "error_message" field if the given value is not nil.
func (_c *AnalysisRecordCreate) SetNillableErrorMessage(v *string) *AnalysisRecordCreate {
	if v != nil {
		_c.SetErrorMessage(*v)
	}
	return _c
}

// SetID sets the "id" field.
func (_c *AnalysisRecordCreate) SetID(v string) *AnalysisRecordCreate {
	_c.mutation.SetID(v)
	return _c
}

// Mutation returns the AnalysisRecordMutation object of the builder.
func (_c *AnalysisRecordCreate) Mutation() *AnalysisRecordMutation {
	return _c.mutation
}

// Save creates the AnalysisRecord in the database.
func (_c *AnalysisRecordCreate) Save(ctx context.Context) (*AnalysisRecord, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *AnalysisRecordCreate) SaveX(ctx context.Context) *AnalysisRecord {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *AnalysisRecordCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *AnalysisRecordCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *AnalysisRecordCreate) defaults() {
	if _, ok := _c.mutation.Status(); !ok {
		v := analysisrecord.DefaultStatus
		_c.mutation.SetStatus(v)
	}
	if _, ok := _c.mutation.StartedAt(); !ok {
		v := analysisrecord.DefaultStartedAt()
		_c.mutation.SetStartedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *AnalysisRecordCreate) check() error {
	if _, ok := _c.mutation.Kind(); !ok {
		return &ValidationError{Name: "kind", err: errors.New(`ent: missing required field "AnalysisRecord.kind"`)}
	}
	if v, ok := _c.mutation.Kind(); ok {
		if err := analysisrecord.KindValidator(v); err != nil {
			return &ValidationError{Name: "kind", err: fmt.Errorf(`ent: validator failed for field "AnalysisRecord.kind": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Mode(); !ok {
		return &ValidationError{Name: "mode", err: errors.New(`ent: missing required field "AnalysisRecord.mode"`)}
	}
	if v, ok := _c.mutation.Mode(); ok {
		if err := analysisrecord.ModeValidator(v); err != nil {
			return &ValidationError{Name: "mode", err: fmt.Errorf(`ent: validator failed for field "AnalysisRecord.mode": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Provider(); !ok {
		return &ValidationError{Name: "provider", err: errors.New(`ent: missing required field "AnalysisRecord.provider"`)}
	}
	if _, ok := _c.mutation.Model(); !ok {
		return &ValidationError{Name: "model", err: errors.New(`ent: missing required field "AnalysisRecord.model"`)}
	}
	if _, ok := _c.mutation.ContentHash(); !ok {
		return &ValidationError{Name: "content_hash", err: errors.New(`ent: missing required field "AnalysisRecord.content_hash"`)}
	}
	if _, ok := _c.mutation.ContentSize(); !ok {
		return &ValidationError{Name: "content_size", err: errors.New(`ent: missing required field "AnalysisRecord.content_size"`)}
	}
	if _, ok := _c.mutation.Status(); !ok {
		return &ValidationError{Name: "status", err: errors.New(`ent: missing required field "AnalysisRecord.status"`)}
	}
	if v, ok := _c.mutation.Status(); ok {
		if err := analysisrecord.StatusValidator(v); err != nil {
			return &ValidationError{Name: "status", err: fmt.Errorf(`ent: validator failed for field "AnalysisRecord.status": %w`, err)}
		}
	}
	if _, ok := _c.mutation.StartedAt(); !ok {
		return &ValidationError{Name: "started_at", err: errors.New(`ent: missing required field "AnalysisRecord.started_at"`)}
	}
	return nil
}

func (_c *AnalysisRecordCreate) sqlSave(ctx context.Context) (*AnalysisRecord, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	if _spec.ID.Value != nil {
		if id, ok := _spec.ID.Value.(string); ok {
			_node.ID = id
		} else {
			return nil, fmt.Errorf("unexpected AnalysisRecord.ID type: %T", _spec.ID.Value)
		}
	}
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *AnalysisRecordCreate) createSpec() (*AnalysisRecord, *sqlgraph.CreateSpec) {
	var (
		_node = &AnalysisRecord{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(analysisrecord.Table, sqlgraph.NewFieldSpec(analysisrecord.FieldID, field.TypeString))
	)
	if id, ok := _c.mutation.ID(); ok {
		_node.ID = id
		_spec.ID.Value = id
	}
	if value, ok := _c.mutation.Kind(); ok {
		_spec.SetField(analysisrecord.FieldKind, field.TypeEnum, value)
		_node.Kind = value
	}
	if value, ok := _c.mutation.Mode(); ok {
		_spec.SetField(analysisrecord.FieldMode, field.TypeEnum, value)
		_node.Mode = value
	}
	if value, ok := _c.mutation.Provider(); ok {
		_spec.SetField(analysisrecord.FieldProvider, field.TypeString, value)
		_node.Provider = value
	}
	if value, ok := _c.mutation.Model(); ok {
		_spec.SetField(analysisrecord.FieldModel, field.TypeString, value)
		_node.Model = value
	}
	if value, ok := _c.mutation.ContentHash(); ok {
		_spec.SetField(analysisrecord.FieldContentHash, field.TypeString, value)
		_node.ContentHash = value
	}
	if value, ok := _c.mutation.ContentSize(); ok {
		_spec.SetField(analysisrecord.FieldContentSize, field.TypeInt, value)
		_node.ContentSize = value
	}
	if value, ok := _c.mutation.Status(); ok {
		_spec.SetField(analysisrecord.FieldStatus, field.TypeEnum, value)
		_node.Status = value
	}
	if value, ok := _c.mutation.StartedAt(); ok {
		_spec.SetField(analysisrecord.FieldStartedAt, field.TypeTime, value)
		_node.StartedAt = value
	}
	if value, ok := _c.mutation.CompletedAt(); ok {
		_spec.SetField(analysisrecord.FieldCompletedAt, field.TypeTime, value)
		_node.CompletedAt = &value
	}
	if value, ok := _c.mutation.InputTokens(); ok {
		_spec.SetField(analysisrecord.FieldInputTokens, field.TypeInt, value)
		_node.InputTokens = &value
	}
	if value, ok := _c.mutation.OutputTokens(); ok {
		_spec.SetField(analysisrecord.FieldOutputTokens, field.TypeInt, value)
		_node.OutputTokens = &value
	}
	if value, ok := _c.mutation.CostUsd(); ok {
		_spec.SetField(analysisrecord.FieldCostUsd, field.TypeFloat64, value)
		_node.CostUsd = &value
	}
	if value, ok := _c.mutation.ErrorMessage(); ok {
		_spec.SetField(analysisrecord.FieldErrorMessage, field.TypeString, value)
		_node.ErrorMessage = &value
	}
	return _node, _spec
}

// AnalysisRecordCreateBulk is the builder for creating many AnalysisRecord entities in bulk.
type AnalysisRecordCreateBulk struct {
	config
	err      error
	builders []*AnalysisRecordCreate
}

// Save creates the AnalysisRecord entities in the database.
func (_c *AnalysisRecordCreateBulk) Save(ctx context.Context) ([]*AnalysisRecord, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*AnalysisRecord, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*AnalysisRecordMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *AnalysisRecordCreateBulk) SaveX(ctx context.Context) []*AnalysisRecord {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *AnalysisRecordCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *AnalysisRecordCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
