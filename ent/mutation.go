// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/ent/analysisrecord"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/ent/predicate"
)

const (
	// Operation types.
	OpCreate    = ent.OpCreate
	OpDelete    = ent.OpDelete
	OpDeleteOne = ent.OpDeleteOne
	OpUpdate    = ent.OpUpdate
	OpUpdateOne = ent.OpUpdateOne

	// Node types.
	TypeAnalysisRecord = "AnalysisRecord"
)

// AnalysisRecordMutation represents an operation that mutates the AnalysisRecord nodes in the graph.
type AnalysisRecordMutation struct {
	config
	op               Op
	typ              string
	id               *string
	kind             *analysisrecord.Kind
	mode             *analysisrecord.Mode
	provider         *string
	model            *string
	content_hash     *string
	content_size     *int
	addcontent_size  *int
	status           *analysisrecord.Status
	started_at       *time.Time
	completed_at     *time.Time
	input_tokens     *int
	addinput_tokens  *int
	output_tokens    *int
	addoutput_tokens *int
	cost_usd         *float64
	addcost_usd      *float64
	error_message    *string
	clearedFields    map[string]struct{}
	done             bool
	oldValue         func(context.Context) (*AnalysisRecord, error)
	predicates       []predicate.AnalysisRecord
}

var _ ent.Mutation = (*AnalysisRecordMutation)(nil)

// analysisrecordOption allows management of the mutation configuration using functional options.
type analysisrecordOption func(*AnalysisRecordMutation)

// newAnalysisRecordMutation creates new mutation for the AnalysisRecord entity.
func newAnalysisRecordMutation(c config, op Op, opts ...analysisrecordOption) *AnalysisRecordMutation {
	m := &AnalysisRecordMutation{
		config:        c,
		op:            op,
		typ:           TypeAnalysisRecord,
		clearedFields: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// withAnalysisRecordID sets the ID field of the mutation.
func withAnalysisRecordID(id string) analysisrecordOption {
	return func(m *AnalysisRecordMutation) {
		var (
			err   error
			once  sync.Once
			value *AnalysisRecord
		)
		m.oldValue = func(ctx context.Context) (*AnalysisRecord, error) {
			once.Do(func() {
				if m.done {
					err = errors.New("querying old values post mutation is not allowed")
				} else {
					value, err = m.Client().AnalysisRecord.Get(ctx, id)
				}
			})
			return value, err
		}
		m.id = &id
	}
}

// withAnalysisRecord sets the old AnalysisRecord of the mutation.
func withAnalysisRecord(node *AnalysisRecord) analysisrecordOption {
	return func(m *AnalysisRecordMutation) {
		m.oldValue = func(context.Context) (*AnalysisRecord, error) {
			return node, nil
		}
		m.id = &node.ID
	}
}

// Client returns a new `ent.Client` from the mutation. If the mutation was
// executed in a transaction (ent.Tx), a transactional client is returned.
func (m AnalysisRecordMutation) Client() *Client {
	client := &Client{config: m.config}
	client.init()
	return client
}

// Tx returns an `ent.Tx` for mutations that were executed in transactions;
// it returns an error otherwise.
func (m AnalysisRecordMutation) Tx() (*Tx, error) {
	if _, ok := m.driver.(*txDriver); !ok {
		return nil, errors.New("ent: mutation is not running in a transaction")
	}
	tx := &Tx{config: m.config}
	tx.init()
	return tx, nil
}

// SetID sets the value of the id field. Note that this
// operation is only accepted on creation of AnalysisRecord entities.
func (m *AnalysisRecordMutation) SetID(id string) {
	m.id = &id
}

// ID returns the ID value in the mutation. Note that the ID is only available
// if it was provided to the builder or after it was returned from the database.
func (m *AnalysisRecordMutation) ID() (id string, exists bool) {
	if m.id == nil {
		return
	}
	return *m.id, true
}

// IDs queries the database and returns the entity ids that match the mutation's predicate.
// That means, if the mutation is applied within a transaction with an isolation level such
// as sql.LevelSerializable, the returned ids match the ids of the rows that will be updated
// or updated by the mutation.
func (m *AnalysisRecordMutation) IDs(ctx context.Context) ([]string, error) {
	switch {
	case m.op.Is(OpUpdateOne | OpDeleteOne):
		id, exists := m.ID()
		if exists {
			return []string{id}, nil
		}
		fallthrough
	case m.op.Is(OpUpdate | OpDelete):
		return m.Client().AnalysisRecord.Query().Where(m.predicates...).IDs(ctx)
	default:
		return nil, fmt.Errorf("IDs is not allowed on %s operations", m.op)
	}
}

// SetKind sets the "kind" field.
func (m *AnalysisRecordMutation) SetKind(a analysisrecord.Kind) {
	m.kind = &a
}

// Kind returns the value of the "kind" field in the mutation.
func (m *AnalysisRecordMutation) Kind() (r analysisrecord.Kind, exists bool) {
	v := m.kind
	if v == nil {
		return
	}
	return *v, true
}

// OldKind returns the old "kind" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldKind(ctx context.Context) (v analysisrecord.Kind, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldKind is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldKind requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldKind: %w", err)
	}
	return oldValue.Kind, nil
}

// ResetKind resets all changes to the "kind" field.
func (m *AnalysisRecordMutation) ResetKind() {
	m.kind = nil
}

// SetMode sets the "mode" field.
func (m *AnalysisRecordMutation) SetMode(a analysisrecord.Mode) {
	m.mode = &a
}

// Mode returns the value of the "mode" field in the mutation.
func (m *AnalysisRecordMutation) Mode() (r analysisrecord.Mode, exists bool) {
	v := m.mode
	if v == nil {
		return
	}
	return *v, true
}

// OldMode returns the old "mode" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldMode(ctx context.Context) (v analysisrecord.Mode, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldMode is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldMode requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldMode: %w", err)
	}
	return oldValue.Mode, nil
}

// ResetMode resets all changes to the "mode" field.
func (m *AnalysisRecordMutation) ResetMode() {
	m.mode = nil
}

// SetProvider sets the "provider" field.
func (m *AnalysisRecordMutation) SetProvider(s string) {
	m.provider = &s
}

// Provider returns the value of the "provider" field in the mutation.
func (m *AnalysisRecordMutation) Provider() (r string, exists bool) {
	v := m.provider
	if v == nil {
		return
	}
	return *v, true
}

// OldProvider returns the old "provider" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldProvider(ctx context.Context) (v string, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldProvider is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldProvider requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldProvider: %w", err)
	}
	return oldValue.Provider, nil
}

// ResetProvider resets all changes to the "provider" field.
func (m *AnalysisRecordMutation) ResetProvider() {
	m.provider = nil
}

// SetModel sets the "model" field.
func (m *AnalysisRecordMutation) SetModel(s string) {
	m.model = &s
}

// Model returns the value of the "model" field in the mutation.
func (m *AnalysisRecordMutation) Model() (r string, exists bool) {
	v := m.model
	if v == nil {
		return
	}
	return *v, true
}

// OldModel returns the old "model" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldModel(ctx context.Context) (v string, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldModel is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldModel requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldModel: %w", err)
	}
	return oldValue.Model, nil
}

// ResetModel resets all changes to the "model" field.
func (m *AnalysisRecordMutation) ResetModel() {
	m.model = nil
}

// SetContentHash sets the "content_hash" field.
func (m *AnalysisRecordMutation) SetContentHash(s string) {
	m.content_hash = &s
}

// ContentHash returns the value of the "content_hash" field in the mutation.
func (m *AnalysisRecordMutation) ContentHash() (r string, exists bool) {
	v := m.content_hash
	if v == nil {
		return
	}
	return *v, true
}

// OldContentHash returns the old "content_hash" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldContentHash(ctx context.Context) (v string, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldContentHash is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldContentHash requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldContentHash: %w", err)
	}
	return oldValue.ContentHash, nil
}

// ResetContentHash resets all changes to the "content_hash" field.
func (m *AnalysisRecordMutation) ResetContentHash() {
	m.content_hash = nil
}

// SetContentSize sets the "content_size" field.
func (m *AnalysisRecordMutation) SetContentSize(i int) {
	m.content_size = &i
	m.addcontent_size = nil
}

// ContentSize returns the value of the "content_size" field in the mutation.
func (m *AnalysisRecordMutation) ContentSize() (r int, exists bool) {
	v := m.content_size
	if v == nil {
		return
	}
	return *v, true
}

// OldContentSize returns the old "content_size" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldContentSize(ctx context.Context) (v int, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldContentSize is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldContentSize requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldContentSize: %w", err)
	}
	return oldValue.ContentSize, nil
}

// AddContentSize adds i to the "content_size" field.
func (m *AnalysisRecordMutation) AddContentSize(i int) {
	if m.addcontent_size != nil {
		*m.addcontent_size += i
	} else {
		m.addcontent_size = &i
	}
}

// AddedContentSize returns the value that was added to the "content_size" field in this mutation.
func (m *AnalysisRecordMutation) AddedContentSize() (r int, exists bool) {
	v := m.addcontent_size
	if v == nil {
		return
	}
	return *v, true
}

// ResetContentSize resets all changes to the "content_size" field.
func (m *AnalysisRecordMutation) ResetContentSize() {
	m.content_size = nil
	m.addcontent_size = nil
}

// SetStatus sets the "status" field.
func (m *AnalysisRecordMutation) SetStatus(a analysisrecord.Status) {
	m.status = &a
}

// Status returns the value of the "status" field in the mutation.
func (m *AnalysisRecordMutation) Status() (r analysisrecord.Status, exists bool) {
	v := m.status
	if v == nil {
		return
	}
	return *v, true
}

// OldStatus returns the old "status" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldStatus(ctx context.Context) (v analysisrecord.Status, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldStatus is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldStatus requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldStatus: %w", err)
	}
	return oldValue.Status, nil
}

// ResetStatus resets all changes to the "status" field.
func (m *AnalysisRecordMutation) ResetStatus() {
	m.status = nil
}

// SetStartedAt sets the "started_at" field.
func (m *AnalysisRecordMutation) SetStartedAt(t time.Time) {
	m.started_at = &t
}

// StartedAt returns the value of the "started_at" field in the mutation.
func (m *AnalysisRecordMutation) StartedAt() (r time.Time, exists bool) {
	v := m.started_at
	if v == nil {
		return
	}
	return *v, true
}

// OldStartedAt returns the old "started_at" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldStartedAt(ctx context.Context) (v time.Time, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldStartedAt is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldStartedAt requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldStartedAt: %w", err)
	}
	return oldValue.StartedAt, nil
}

// ResetStartedAt resets all changes to the "started_at" field.
func (m *AnalysisRecordMutation) ResetStartedAt() {
	m.started_at = nil
}

// SetCompletedAt sets the "completed_at" field.
func (m *AnalysisRecordMutation) SetCompletedAt(t time.Time) {
	m.completed_at = &t
}

// CompletedAt returns the value of the "completed_at" field in the mutation.
func (m *AnalysisRecordMutation) CompletedAt() (r time.Time, exists bool) {
	v := m.completed_at
	if v == nil {
		return
	}
	return *v, true
}

// OldCompletedAt returns the old "completed_at" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldCompletedAt(ctx context.Context) (v *time.Time, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldCompletedAt is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldCompletedAt requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldCompletedAt: %w", err)
	}
	return oldValue.CompletedAt, nil
}

// ClearCompletedAt clears the value of the "completed_at" field.
func (m *AnalysisRecordMutation) ClearCompletedAt() {
	m.completed_at = nil
	m.clearedFields[analysisrecord.FieldCompletedAt] = struct{}{}
}

// CompletedAtCleared returns if the "completed_at" field was cleared in this mutation.
func (m *AnalysisRecordMutation) CompletedAtCleared() bool {
	_, ok := m.clearedFields[analysisrecord.FieldCompletedAt]
	return ok
}

// ResetCompletedAt resets all changes to the "completed_at" field.
func (m *AnalysisRecordMutation) ResetCompletedAt() {
	m.completed_at = nil
	delete(m.clearedFields, analysisrecord.FieldCompletedAt)
}

// SetInputTokens sets the "input_tokens" field.
func (m *AnalysisRecordMutation) SetInputTokens(i int) {
	m.input_tokens = &i
	m.addinput_tokens = nil
}

// InputTokens returns the value of the "input_tokens" field in the mutation.
func (m *AnalysisRecordMutation) InputTokens() (r int, exists bool) {
	v := m.input_tokens
	if v == nil {
		return
	}
	return *v, true
}

// OldInputTokens returns the old "input_tokens" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldInputTokens(ctx context.Context) (v *int, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldInputTokens is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldInputTokens requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldInputTokens: %w", err)
	}
	return oldValue.InputTokens, nil
}

// AddInputTokens adds i to the "input_tokens" field.
func (m *AnalysisRecordMutation) AddInputTokens(i int) {
	if m.addinput_tokens != nil {
		*m.addinput_tokens += i
	} else {
		m.addinput_tokens = &i
	}
}

// AddedInputTokens returns the value that was added to the "input_tokens" field in this mutation.
func (m *AnalysisRecordMutation) AddedInputTokens() (r int, exists bool) {
	v := m.addinput_tokens
	if v == nil {
		return
	}
	return *v, true
}

// ClearInputTokens clears the value of the "input_tokens" field.
func (m *AnalysisRecordMutation) ClearInputTokens() {
	m.input_tokens = nil
	m.addinput_tokens = nil
	m.clearedFields[analysisrecord.FieldInputTokens] = struct{}{}
}

// InputTokensCleared returns if the "input_tokens" field was cleared in this mutation.
func (m *AnalysisRecordMutation) InputTokensCleared() bool {
	_, ok := m.clearedFields[analysisrecord.FieldInputTokens]
	return ok
}

// ResetInputTokens resets all changes to the "input_tokens" field.
func (m *AnalysisRecordMutation) ResetInputTokens() {
	m.input_tokens = nil
	m.addinput_tokens = nil
	delete(m.clearedFields, analysisrecord.FieldInputTokens)
}

// SetOutputTokens sets the "output_tokens" field.
func (m *AnalysisRecordMutation) SetOutputTokens(i int) {
	m.output_tokens = &i
	m.addoutput_tokens = nil
}

// OutputTokens returns the value of the "output_tokens" field in the mutation.
func (m *AnalysisRecordMutation) OutputTokens() (r int, exists bool) {
	v := m.output_tokens
	if v == nil {
		return
	}
	return *v, true
}

// OldOutputTokens returns the old "output_tokens" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldOutputTokens(ctx context.Context) (v *int, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldOutputTokens is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldOutputTokens requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldOutputTokens: %w", err)
	}
	return oldValue.OutputTokens, nil
}

// AddOutputTokens adds i to the "output_tokens" field.
func (m *AnalysisRecordMutation) AddOutputTokens(i int) {
	if m.addoutput_tokens != nil {
		*m.addoutput_tokens += i
	} else {
		m.addoutput_tokens = &i
	}
}

// AddedOutputTokens returns the value that was added to the "output_tokens" field in this mutation.
func (m *AnalysisRecordMutation) AddedOutputTokens() (r int, exists bool) {
	v := m.addoutput_tokens
	if v == nil {
		return
	}
	return *v, true
}

// ClearOutputTokens clears the value of the "output_tokens" field.
func (m *AnalysisRecordMutation) ClearOutputTokens() {
	m.output_tokens = nil
	m.addoutput_tokens = nil
	m.clearedFields[analysisrecord.FieldOutputTokens] = struct{}{}
}

// OutputTokensCleared returns if the "output_tokens" field was cleared in this mutation.
func (m *AnalysisRecordMutation) OutputTokensCleared() bool {
	_, ok := m.clearedFields[analysisrecord.FieldOutputTokens]
	return ok
}

// ResetOutputTokens resets all changes to the "output_tokens" field.
func (m *AnalysisRecordMutation) ResetOutputTokens() {
	m.output_tokens = nil
	m.addoutput_tokens = nil
	delete(m.clearedFields, analysisrecord.FieldOutputTokens)
}

// SetCostUsd sets the "cost_usd" field.
func (m *AnalysisRecordMutation) SetCostUsd(f float64) {
	m.cost_usd = &f
	m.addcost_usd = nil
}

// CostUsd returns the value of the "cost_usd" field in the mutation.
func (m *AnalysisRecordMutation) CostUsd() (r float64, exists bool) {
	v := m.cost_usd
	if v == nil {
		return
	}
	return *v, true
}

// OldCostUsd returns the old "cost_usd" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldCostUsd(ctx context.Context) (v *float64, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldCostUsd is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldCostUsd requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldCostUsd: %w", err)
	}
	return oldValue.CostUsd, nil
}

// AddCostUsd adds f to the "cost_usd" field.
func (m *AnalysisRecordMutation) AddCostUsd(f float64) {
	if m.addcost_usd != nil {
		*m.addcost_usd += f
	} else {
		m.addcost_usd = &f
	}
}

// AddedCostUsd returns the value that was added to the "cost_usd" field in this mutation.
func (m *AnalysisRecordMutation) AddedCostUsd() (r float64, exists bool) {
	v := m.addcost_usd
	if v == nil {
		return
	}
	return *v, true
}

// ClearCostUsd clears the value of the "cost_usd" field.
func (m *AnalysisRecordMutation) ClearCostUsd() {
	m.cost_usd = nil
	m.addcost_usd = nil
	m.clearedFields[analysisrecord.FieldCostUsd] = struct{}{}
}

// CostUsdCleared returns if the "cost_usd" field was cleared in this mutation.
func (m *AnalysisRecordMutation) CostUsdCleared() bool {
	_, ok := m.clearedFields[analysisrecord.FieldCostUsd]
	return ok
}

// ResetCostUsd resets all changes to the "cost_usd" field.
func (m *AnalysisRecordMutation) ResetCostUsd() {
	m.cost_usd = nil
	m.addcost_usd = nil
	delete(m.clearedFields, analysisrecord.FieldCostUsd)
}

// SetErrorMessage sets the "error_message" field.
func (m *AnalysisRecordMutation) SetErrorMessage(s string) {
	m.error_message = &s
}

// ErrorMessage returns the value of the "error_message" field in the mutation.
func (m *AnalysisRecordMutation) ErrorMessage() (r string, exists bool) {
	v := m.error_message
	if v == nil {
		return
	}
	return *v, true
}

// OldErrorMessage returns the old "error_message" field's value of the AnalysisRecord entity.
// If the AnalysisRecord object wasn't provided to the builder, the object is fetched from the database.
// An error is returned if the mutation operation is not UpdateOne, or the database query fails.
func (m *AnalysisRecordMutation) OldErrorMessage(ctx context.Context) (v *string, err error) {
	if !m.op.Is(OpUpdateOne) {
		return v, errors.New("OldErrorMessage is only allowed on UpdateOne operations")
	}
	if m.id == nil || m.oldValue == nil {
		return v, errors.New("OldErrorMessage requires an ID field in the mutation")
	}
	oldValue, err := m.oldValue(ctx)
	if err != nil {
		return v, fmt.Errorf("querying old value for OldErrorMessage: %w", err)
	}
	return oldValue.ErrorMessage, nil
}

// ClearErrorMessage clears the value of the "error_message" field.
func (m *AnalysisRecordMutation) ClearErrorMessage() {
	m.error_message = nil
	m.clearedFields[analysisrecord.FieldErrorMessage] = struct{}{}
}

// ErrorMessageCleared returns if the "error_message" field was cleared in this mutation.
func (m *AnalysisRecordMutation) ErrorMessageCleared() bool {
	_, ok := m.clearedFields[analysisrecord.FieldErrorMessage]
	return ok
}

// ResetErrorMessage resets all changes to the "error_message" field.
func (m *AnalysisRecordMutation) ResetErrorMessage() {
	m.error_message = nil
	delete(m.clearedFields, analysisrecord.FieldErrorMessage)
}

// Where appends a list predicates to the AnalysisRecordMutation builder.
func (m *AnalysisRecordMutation) Where(ps ...predicate.AnalysisRecord) {
	m.predicates = append(m.predicates, ps...)
}

// WhereP appends storage-level predicates to the AnalysisRecordMutation builder. Using this method,
// users can use type-assertion to append predicates that do not depend on any generated package.
func (m *AnalysisRecordMutation) WhereP(ps ...func(*sql.Selector)) {
	p := make([]predicate.AnalysisRecord, len(ps))
	for i := range ps {
		p[i] = ps[i]
	}
	m.Where(p...)
}

// Op returns the operation name.
func (m *AnalysisRecordMutation) Op() Op {
	return m.op
}

// SetOp allows setting the mutation operation.
func (m *AnalysisRecordMutation) SetOp(op Op) {
	m.op = op
}

// Type returns the node type of this mutation (AnalysisRecord).
func (m *AnalysisRecordMutation) Type() string {
	return m.typ
}

// Fields returns all fields that were changed during this mutation. Note that in
// order to get all numeric fields that were incremented/decremented, call
// AddedFields().
func (m *AnalysisRecordMutation) Fields() []string {
	fields := make([]string, 0, 13)
	if m.kind != nil {
		fields = append(fields, analysisrecord.FieldKind)
	}
	if m.mode != nil {
		fields = append(fields, analysisrecord.FieldMode)
	}
	if m.provider != nil {
		fields = append(fields, analysisrecord.FieldProvider)
	}
	if m.model != nil {
		fields = append(fields, analysisrecord.FieldModel)
	}
	if m.content_hash != nil {
		fields = append(fields, analysisrecord.FieldContentHash)
	}
	if m.content_size != nil {
		fields = append(fields, analysisrecord.FieldContentSize)
	}
	if m.status != nil {
		fields = append(fields, analysisrecord.FieldStatus)
	}
	if m.started_at != nil {
		fields = append(fields, analysisrecord.FieldStartedAt)
	}
	if m.completed_at != nil {
		fields = append(fields, analysisrecord.FieldCompletedAt)
	}
	if m.input_tokens != nil {
		fields = append(fields, analysisrecord.FieldInputTokens)
	}
	if m.output_tokens != nil {
		fields = append(fields, analysisrecord.FieldOutputTokens)
	}
	if m.cost_usd != nil {
		fields = append(fields, analysisrecord.FieldCostUsd)
	}
	if m.error_message != nil {
		fields = append(fields, analysisrecord.FieldErrorMessage)
	}
	return fields
}

// Field returns the value of a field with the given name. The second boolean
// return value indicates that this field was not set, or was not defined in the
// schema.
func (m *AnalysisRecordMutation) Field(name string) (ent.Value, bool) {
	switch name {
	case analysisrecord.FieldKind:
		return m.Kind()
	case analysisrecord.FieldMode:
		return m.Mode()
	case analysisrecord.FieldProvider:
		return m.Provider()
	case analysisrecord.FieldModel:
		return m.Model()
	case analysisrecord.FieldContentHash:
		return m.ContentHash()
	case analysisrecord.FieldContentSize:
		return m.ContentSize()
	case analysisrecord.FieldStatus:
		return m.Status()
	case analysisrecord.FieldStartedAt:
		return m.StartedAt()
	case analysisrecord.FieldCompletedAt:
		return m.CompletedAt()
	case analysisrecord.FieldInputTokens:
		return m.InputTokens()
	case analysisrecord.FieldOutputTokens:
		return m.OutputTokens()
	case analysisrecord.FieldCostUsd:
		return m.CostUsd()
	case analysisrecord.FieldErrorMessage:
		return m.ErrorMessage()
	}
	return nil, false
}

// OldField returns the old value of the field from the database. An error is
// returned if the mutation operation is not UpdateOne, or the query to the
// database failed.
func (m *AnalysisRecordMutation) OldField(ctx context.Context, name string) (ent.Value, error) {
	switch name {
	case analysisrecord.FieldKind:
		return m.OldKind(ctx)
	case analysisrecord.FieldMode:
		return m.OldMode(ctx)
	case analysisrecord.FieldProvider:
		return m.OldProvider(ctx)
	case analysisrecord.FieldModel:
		return m.OldModel(ctx)
	case analysisrecord.FieldContentHash:
		return m.OldContentHash(ctx)
	case analysisrecord.FieldContentSize:
		return m.OldContentSize(ctx)
	case analysisrecord.FieldStatus:
		return m.OldStatus(ctx)
	case analysisrecord.FieldStartedAt:
		return m.OldStartedAt(ctx)
	case analysisrecord.FieldCompletedAt:
		return m.OldCompletedAt(ctx)
	case analysisrecord.FieldInputTokens:
		return m.OldInputTokens(ctx)
	case analysisrecord.FieldOutputTokens:
		return m.OldOutputTokens(ctx)
	case analysisrecord.FieldCostUsd:
		return m.OldCostUsd(ctx)
	case analysisrecord.FieldErrorMessage:
		return m.OldErrorMessage(ctx)
	}
	return nil, fmt.Errorf("unknown AnalysisRecord field %s", name)
}

// SetField sets the value of a field with the given name. It returns an error if
// the field is not defined in the schema, or if the type mismatched the field
// type.
func (m *AnalysisRecordMutation) SetField(name string, value ent.Value) error {
	switch name {
	case analysisrecord.FieldKind:
		v, ok := value.(analysisrecord.Kind)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetKind(v)
		return nil
	case analysisrecord.FieldMode:
		v, ok := value.(analysisrecord.Mode)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetMode(v)
		return nil
	case analysisrecord.FieldProvider:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetProvider(v)
		return nil
	case analysisrecord.FieldModel:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetModel(v)
		return nil
	case analysisrecord.FieldContentHash:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetContentHash(v)
		return nil
	case analysisrecord.FieldContentSize:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetContentSize(v)
		return nil
	case analysisrecord.FieldStatus:
		v, ok := value.(analysisrecord.Status)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetStatus(v)
		return nil
	case analysisrecord.FieldStartedAt:
		v, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetStartedAt(v)
		return nil
	case analysisrecord.FieldCompletedAt:
		v, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetCompletedAt(v)
		return nil
	case analysisrecord.FieldInputTokens:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetInputTokens(v)
		return nil
	case analysisrecord.FieldOutputTokens:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetOutputTokens(v)
		return nil
	case analysisrecord.FieldCostUsd:
		v, ok := value.(float64)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetCostUsd(v)
		return nil
	case analysisrecord.FieldErrorMessage:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.SetErrorMessage(v)
		return nil
	}
	return fmt.Errorf("unknown AnalysisRecord field %s", name)
}

// AddedFields returns all numeric fields that were incremented/decremented during
// this mutation.
func (m *AnalysisRecordMutation) AddedFields() []string {
	var fields []string
	if m.addcontent_size != nil {
		fields = append(fields, analysisrecord.FieldContentSize)
	}
	if m.addinput_tokens != nil {
		fields = append(fields, analysisrecord.FieldInputTokens)
	}
	if m.addoutput_tokens != nil {
		fields = append(fields, analysisrecord.FieldOutputTokens)
	}
	if m.addcost_usd != nil {
		fields = append(fields, analysisrecord.FieldCostUsd)
	}
	return fields
}

// AddedField returns the numeric value that was incremented/decremented on a field
// with the given name. The second boolean return value indicates that this field
// was not set, or was not defined in the schema.
func (m *AnalysisRecordMutation) AddedField(name string) (ent.Value, bool) {
	switch name {
	case analysisrecord.FieldContentSize:
		return m.AddedContentSize()
	case analysisrecord.FieldInputTokens:
		return m.AddedInputTokens()
	case analysisrecord.FieldOutputTokens:
		return m.AddedOutputTokens()
	case analysisrecord.FieldCostUsd:
		return m.AddedCostUsd()
	}
	return nil, false
}

// AddField adds the value to the field with the given name. It returns an error if
// the field is not defined in the schema, or if the type mismatched the field
// type.
func (m *AnalysisRecordMutation) AddField(name string, value ent.Value) error {
	switch name {
	case analysisrecord.FieldContentSize:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.AddContentSize(v)
		return nil
	case analysisrecord.FieldInputTokens:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.AddInputTokens(v)
		return nil
	case analysisrecord.FieldOutputTokens:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.AddOutputTokens(v)
		return nil
	case analysisrecord.FieldCostUsd:
		v, ok := value.(float64)
		if !ok {
			return fmt.Errorf("unexpected type %T for field %s", value, name)
		}
		m.AddCostUsd(v)
		return nil
	}
	return fmt.Errorf("unknown AnalysisRecord numeric field %s", name)
}

// ClearedFields returns all nullable fields that were cleared during this
// mutation.
func (m *AnalysisRecordMutation) ClearedFields() []string {
	var fields []string
	if m.FieldCleared(analysisrecord.FieldCompletedAt) {
		fields = append(fields, analysisrecord.FieldCompletedAt)
	}
	if m.FieldCleared(analysisrecord.FieldInputTokens) {
		fields = append(fields, analysisrecord.FieldInputTokens)
	}
	if m.FieldCleared(analysisrecord.FieldOutputTokens) {
		fields = append(fields, analysisrecord.FieldOutputTokens)
	}
	if m.FieldCleared(analysisrecord.FieldCostUsd) {
		fields = append(fields, analysisrecord.FieldCostUsd)
	}
	if m.FieldCleared(analysisrecord.FieldErrorMessage) {
		fields = append(fields, analysisrecord.FieldErrorMessage)
	}
	return fields
}

// FieldCleared returns a boolean indicating if a field with the given name was
// cleared in this mutation.
func (m *AnalysisRecordMutation) FieldCleared(name string) bool {
	_, ok := m.clearedFields[name]
	return ok
}

// ClearField clears the value of the field with the given name. It returns an
// error if the field is not defined in the schema.
func (m *AnalysisRecordMutation) ClearField(name string) error {
	switch name {
	case analysisrecord.FieldCompletedAt:
		m.ClearCompletedAt()
		return nil
	case analysisrecord.FieldInputTokens:
		m.ClearInputTokens()
		return nil
	case analysisrecord.FieldOutputTokens:
		m.ClearOutputTokens()
		return nil
	case analysisrecord.FieldCostUsd:
		m.ClearCostUsd()
		return nil
	case analysisrecord.FieldErrorMessage:
		m.ClearErrorMessage()
		return nil
	}
	return fmt.Errorf("unknown AnalysisRecord nullable field %s", name)
}

// ResetField resets all changes in the mutation for the field with the given name.
// It returns an error if the field is not defined in the schema.
func (m *AnalysisRecordMutation) ResetField(name string) error {
	switch name {
	case analysisrecord.FieldKind:
		m.ResetKind()
		return nil
	case analysisrecord.FieldMode:
		m.ResetMode()
		return nil
	case analysisrecord.FieldProvider:
		m.ResetProvider()
		return nil
	case analysisrecord.FieldModel:
		m.ResetModel()
		return nil
	case analysisrecord.FieldContentHash:
		m.ResetContentHash()
		return nil
	case analysisrecord.FieldContentSize:
		m.ResetContentSize()
		return nil
	case analysisrecord.FieldStatus:
		m.ResetStatus()
		return nil
	case analysisrecord.FieldStartedAt:
		m.ResetStartedAt()
		return nil
	case analysisrecord.FieldCompletedAt:
		m.ResetCompletedAt()
		return nil
	case analysisrecord.FieldInputTokens:
		m.ResetInputTokens()
		return nil
	case analysisrecord.FieldOutputTokens:
		m.ResetOutputTokens()
		return nil
	case analysisrecord.FieldCostUsd:
		m.ResetCostUsd()
		return nil
	case analysisrecord.FieldErrorMessage:
		m.ResetErrorMessage()
		return nil
	}
	return fmt.Errorf("unknown AnalysisRecord field %s", name)
}

// AddedEdges returns all edge names that were set/added in this mutation.
func (m *AnalysisRecordMutation) AddedEdges() []string {
	edges := make([]string, 0, 0)
	return edges
}

// AddedIDs returns all IDs (to other nodes) that were added for the given edge
// name in this mutation.
func (m *AnalysisRecordMutation) AddedIDs(name string) []ent.Value {
	return nil
}

// RemovedEdges returns all edge names that were removed in this mutation.
func (m *AnalysisRecordMutation) RemovedEdges() []string {
	edges := make([]string, 0, 0)
	return edges
}

// RemovedIDs returns all IDs (to other nodes) that were removed for the edge with
// the given name in this mutation.
func (m *AnalysisRecordMutation) RemovedIDs(name string) []ent.Value {
	return nil
}

// ClearedEdges returns all edge names that were cleared in this mutation.
func (m *AnalysisRecordMutation) ClearedEdges() []string {
	edges := make([]string, 0, 0)
	return edges
}

// EdgeCleared returns a boolean which indicates if the edge with the given name
// was cleared in this mutation.
func (m *AnalysisRecordMutation) EdgeCleared(name string) bool {
	return false
}

// ClearEdge clears the value of the edge with the given name. It returns an error
// if that edge is not defined in the schema.
func (m *AnalysisRecordMutation) ClearEdge(name string) error {
	return fmt.Errorf("unknown AnalysisRecord unique edge %s", name)
}

// ResetEdge resets all changes to the edge with the given name in this mutation.
// It returns an error if the edge is not defined in the schema.
func (m *AnalysisRecordMutation) ResetEdge(name string) error {
	return fmt.Errorf("unknown AnalysisRecord edge %s", name)
}
