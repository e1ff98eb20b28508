// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/rsarkar/bayestutor/ent/answerevent"
	"github.com/rsarkar/bayestutor/ent/predicate"
)

// AnswerEventUpdate is the builder for updating AnswerEvent entities.
type AnswerEventUpdate struct {
	config
	hooks    []Hook
	mutation *AnswerEventMutation
}

// Where appends a list predicates to the AnswerEventUpdate builder.
func (_u *AnswerEventUpdate) Where(ps ...predicate.AnswerEvent) *AnswerEventUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetSessionID sets the "session_id" field.
func (_u *AnswerEventUpdate) SetSessionID(v string) *AnswerEventUpdate {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *AnswerEventUpdate) SetNillableSessionID(v *string) *AnswerEventUpdate {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetTopicID sets the "topic_id" field.
func (_u *AnswerEventUpdate) SetTopicID(v string) *AnswerEventUpdate {
	_u.mutation.SetTopicID(v)
	return _u
}

// SetNillableTopicID sets the "topic_id" field if the given value is not nil.
func (_u *AnswerEventUpdate) SetNillableTopicID(v *string) *AnswerEventUpdate {
	if v != nil {
		_u.SetTopicID(*v)
	}
	return _u
}

// SetLevel sets the "level" field.
func (_u *AnswerEventUpdate) SetLevel(v int) *AnswerEventUpdate {
	_u.mutation.ResetLevel()
	_u.mutation.SetLevel(v)
	return _u
}

// SetNillableLevel sets the "level" field if the given value is not nil.
func (_u *AnswerEventUpdate) SetNillableLevel(v *int) *AnswerEventUpdate {
	if v != nil {
		_u.SetLevel(*v)
	}
	return _u
}

// AddLevel adds value to the "level" field.
func (_u *AnswerEventUpdate) AddLevel(v int) *AnswerEventUpdate {
	_u.mutation.AddLevel(v)
	return _u
}

// SetCorrect sets the "correct" field.
func (_u *AnswerEventUpdate) SetCorrect(v bool) *AnswerEventUpdate {
	_u.mutation.SetCorrect(v)
	return _u
}

// SetNillableCorrect sets the "correct" field if the given value is not nil.
func (_u *AnswerEventUpdate) SetNillableCorrect(v *bool) *AnswerEventUpdate {
	if v != nil {
		_u.SetCorrect(*v)
	}
	return _u
}

// SetAlpha sets the "alpha" field.
func (_u *AnswerEventUpdate) SetAlpha(v float64) *AnswerEventUpdate {
	_u.mutation.ResetAlpha()
	_u.mutation.SetAlpha(v)
	return _u
}

// SetNillableAlpha sets the "alpha" field if the given value is not nil.
func (_u *AnswerEventUpdate) SetNillableAlpha(v *float64) *AnswerEventUpdate {
	if v != nil {
		_u.SetAlpha(*v)
	}
	return _u
}

// AddAlpha adds value to the "alpha" field.
func (_u *AnswerEventUpdate) AddAlpha(v float64) *AnswerEventUpdate {
	_u.mutation.AddAlpha(v)
	return _u
}

// SetBeta sets the "beta" field.
func (_u *AnswerEventUpdate) SetBeta(v float64) *AnswerEventUpdate {
	_u.mutation.ResetBeta()
	_u.mutation.SetBeta(v)
	return _u
}

// SetNillableBeta sets the "beta" field if the given value is not nil.
func (_u *AnswerEventUpdate) SetNillableBeta(v *float64) *AnswerEventUpdate {
	if v != nil {
		_u.SetBeta(*v)
	}
	return _u
}

// AddBeta adds value to the "beta" field.
func (_u *AnswerEventUpdate) AddBeta(v float64) *AnswerEventUpdate {
	_u.mutation.AddBeta(v)
	return _u
}

// SetExpectedLambda sets the "expected_lambda" field.
func (_u *AnswerEventUpdate) SetExpectedLambda(v float64) *AnswerEventUpdate {
	_u.mutation.ResetExpectedLambda()
	_u.mutation.SetExpectedLambda(v)
	return _u
}

// SetNillableExpectedLambda sets the "expected_lambda" field if the given value is not nil.
func (_u *AnswerEventUpdate) SetNillableExpectedLambda(v *float64) *AnswerEventUpdate {
	if v != nil {
		_u.SetExpectedLambda(*v)
	}
	return _u
}

// AddExpectedLambda adds value to the "expected_lambda" field.
func (_u *AnswerEventUpdate) AddExpectedLambda(v float64) *AnswerEventUpdate {
	_u.mutation.AddExpectedLambda(v)
	return _u
}

// Mutation returns the AnswerEventMutation object of the builder.
func (_u *AnswerEventUpdate) Mutation() *AnswerEventMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *AnswerEventUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *AnswerEventUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *AnswerEventUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *AnswerEventUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *AnswerEventUpdate) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := answerevent.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "AnswerEvent.session_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.TopicID(); ok {
		if err := answerevent.TopicIDValidator(v); err != nil {
			return &ValidationError{Name: "topic_id", err: fmt.Errorf(`ent: validator failed for field "AnswerEvent.topic_id": %w`, err)}
		}
	}
	return nil
}

func (_u *AnswerEventUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(answerevent.Table, answerevent.Columns, sqlgraph.NewFieldSpec(answerevent.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(answerevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.TopicID(); ok {
		_spec.SetField(answerevent.FieldTopicID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Level(); ok {
		_spec.SetField(answerevent.FieldLevel, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedLevel(); ok {
		_spec.AddField(answerevent.FieldLevel, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Correct(); ok {
		_spec.SetField(answerevent.FieldCorrect, field.TypeBool, value)
	}
	if value, ok := _u.mutation.Alpha(); ok {
		_spec.SetField(answerevent.FieldAlpha, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedAlpha(); ok {
		_spec.AddField(answerevent.FieldAlpha, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Beta(); ok {
		_spec.SetField(answerevent.FieldBeta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedBeta(); ok {
		_spec.AddField(answerevent.FieldBeta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.ExpectedLambda(); ok {
		_spec.SetField(answerevent.FieldExpectedLambda, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedExpectedLambda(); ok {
		_spec.AddField(answerevent.FieldExpectedLambda, field.TypeFloat64, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{answerevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// AnswerEventUpdateOne is the builder for updating a single AnswerEvent entity.
type AnswerEventUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *AnswerEventMutation
}

// SetSessionID sets the "session_id" field.
func (_u *AnswerEventUpdateOne) SetSessionID(v string) *AnswerEventUpdateOne {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *AnswerEventUpdateOne) SetNillableSessionID(v *string) *AnswerEventUpdateOne {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetTopicID sets the "topic_id" field.
func (_u *AnswerEventUpdateOne) SetTopicID(v string) *AnswerEventUpdateOne {
	_u.mutation.SetTopicID(v)
	return _u
}

// SetNillableTopicID sets the "topic_id" field if the given value is not nil.
func (_u *AnswerEventUpdateOne) SetNillableTopicID(v *string) *AnswerEventUpdateOne {
	if v != nil {
		_u.SetTopicID(*v)
	}
	return _u
}

// SetLevel sets the "level" field.
func (_u *AnswerEventUpdateOne) SetLevel(v int) *AnswerEventUpdateOne {
	_u.mutation.ResetLevel()
	_u.mutation.SetLevel(v)
	return _u
}

// SetNillableLevel sets the "level" field if the given value is not nil.
func (_u *AnswerEventUpdateOne) SetNillableLevel(v *int) *AnswerEventUpdateOne {
	if v != nil {
		_u.SetLevel(*v)
	}
	return _u
}

// AddLevel adds value to the "level" field.
func (_u *AnswerEventUpdateOne) AddLevel(v int) *AnswerEventUpdateOne {
	_u.mutation.AddLevel(v)
	return _u
}

// SetCorrect sets the "correct" field.
func (_u *AnswerEventUpdateOne) SetCorrect(v bool) *AnswerEventUpdateOne {
	_u.mutation.SetCorrect(v)
	return _u
}

// SetNillableCorrect sets the "correct" field if the given value is not nil.
func (_u *AnswerEventUpdateOne) SetNillableCorrect(v *bool) *AnswerEventUpdateOne {
	if v != nil {
		_u.SetCorrect(*v)
	}
	return _u
}

// SetAlpha sets the "alpha" field.
func (_u *AnswerEventUpdateOne) SetAlpha(v float64) *AnswerEventUpdateOne {
	_u.mutation.ResetAlpha()
	_u.mutation.SetAlpha(v)
	return _u
}

// SetNillableAlpha sets the "alpha" field if the given value is not nil.
func (_u *AnswerEventUpdateOne) SetNillableAlpha(v *float64) *AnswerEventUpdateOne {
	if v != nil {
		_u.SetAlpha(*v)
	}
	return _u
}

// AddAlpha adds value to the "alpha" field.
func (_u *AnswerEventUpdateOne) AddAlpha(v float64) *AnswerEventUpdateOne {
	_u.mutation.AddAlpha(v)
	return _u
}

// SetBeta sets the "beta" field.
func (_u *AnswerEventUpdateOne) SetBeta(v float64) *AnswerEventUpdateOne {
	_u.mutation.ResetBeta()
	_u.mutation.SetBeta(v)
	return _u
}

// SetNillableBeta sets the "beta" field if the given value is not nil.
func (_u *AnswerEventUpdateOne) SetNillableBeta(v *float64) *AnswerEventUpdateOne {
	if v != nil {
		_u.SetBeta(*v)
	}
	return _u
}

// AddBeta adds value to the "beta" field.
func (_u *AnswerEventUpdateOne) AddBeta(v float64) *AnswerEventUpdateOne {
	_u.mutation.AddBeta(v)
	return _u
}

// SetExpectedLambda sets the "expected_lambda" field.
func (_u *AnswerEventUpdateOne) SetExpectedLambda(v float64) *AnswerEventUpdateOne {
	_u.mutation.ResetExpectedLambda()
	_u.mutation.SetExpectedLambda(v)
	return _u
}

// SetNillableExpectedLambda sets the "expected_lambda" field if the given value is not nil.
func (_u *AnswerEventUpdateOne) SetNillableExpectedLambda(v *float64) *AnswerEventUpdateOne {
	if v != nil {
		_u.SetExpectedLambda(*v)
	}
	return _u
}

// AddExpectedLambda adds value to the "expected_lambda" field.
func (_u *AnswerEventUpdateOne) AddExpectedLambda(v float64) *AnswerEventUpdateOne {
	_u.mutation.AddExpectedLambda(v)
	return _u
}

// Mutation returns the AnswerEventMutation object of the builder.
func (_u *AnswerEventUpdateOne) Mutation() *AnswerEventMutation {
	return _u.mutation
}

// Where appends a list predicates to the AnswerEventUpdate builder.
func (_u *AnswerEventUpdateOne) Where(ps ...predicate.AnswerEvent) *AnswerEventUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *AnswerEventUpdateOne) Select(field string, fields ...string) *AnswerEventUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated AnswerEvent entity.
func (_u *AnswerEventUpdateOne) Save(ctx context.Context) (*AnswerEvent, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *AnswerEventUpdateOne) SaveX(ctx context.Context) *AnswerEvent {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *AnswerEventUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *AnswerEventUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *AnswerEventUpdateOne) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := answerevent.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "AnswerEvent.session_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.TopicID(); ok {
		if err := answerevent.TopicIDValidator(v); err != nil {
			return &ValidationError{Name: "topic_id", err: fmt.Errorf(`ent: validator failed for field "AnswerEvent.topic_id": %w`, err)}
		}
	}
	return nil
}

func (_u *AnswerEventUpdateOne) sqlSave(ctx context.Context) (_node *AnswerEvent, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(answerevent.Table, answerevent.Columns, sqlgraph.NewFieldSpec(answerevent.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "AnswerEvent.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, answerevent.FieldID)
		for _, f := range fields {
			if !answerevent.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != answerevent.FieldID {
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
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(answerevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.TopicID(); ok {
		_spec.SetField(answerevent.FieldTopicID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Level(); ok {
		_spec.SetField(answerevent.FieldLevel, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedLevel(); ok {
		_spec.AddField(answerevent.FieldLevel, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Correct(); ok {
		_spec.SetField(answerevent.FieldCorrect, field.TypeBool, value)
	}
	if value, ok := _u.mutation.Alpha(); ok {
		_spec.SetField(answerevent.FieldAlpha, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedAlpha(); ok {
		_spec.AddField(answerevent.FieldAlpha, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Beta(); ok {
		_spec.SetField(answerevent.FieldBeta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedBeta(); ok {
		_spec.AddField(answerevent.FieldBeta, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.ExpectedLambda(); ok {
		_spec.SetField(answerevent.FieldExpectedLambda, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedExpectedLambda(); ok {
		_spec.AddField(answerevent.FieldExpectedLambda, field.TypeFloat64, value)
	}
	_node = &AnswerEvent{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{answerevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
