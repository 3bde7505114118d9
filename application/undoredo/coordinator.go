// Package undoredo keeps the history of changes made to one aggregate during
// an editing session. Changes are applied as they are registered, undone in
// reverse chronological order and redone until a new change is registered.
package undoredo

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"editor-backend/domain/changes"
	"editor-backend/domain/events"
	pkgerrors "editor-backend/pkg/errors"
	"editor-backend/pkg/observability"
)

// Aggregate is anything the coordinator can track changes for
type Aggregate interface {
	ID() string
}

// Listener receives the events the coordinator raises
type Listener func(events.DomainEvent)

// Coordinator owns the undo and redo stacks for one editing session. It is
// not safe for concurrent use.
type Coordinator[A Aggregate] struct {
	kind      changes.AggregateKind
	logger    *zap.Logger
	metrics   *observability.Collector
	undo      []*Change[A]
	redo      []*Change[A]
	listeners []Listener
	now       func() time.Time
}

// NewCoordinator creates a coordinator for changes of the given aggregate
// kind. metrics may be nil.
func NewCoordinator[A Aggregate](kind changes.AggregateKind, logger *zap.Logger, metrics *observability.Collector) *Coordinator[A] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator[A]{
		kind:    kind,
		logger:  logger.With(zap.String("aggregate_kind", string(kind))),
		metrics: metrics,
		now:     time.Now,
	}
}

// Kind returns the aggregate kind the coordinator accepts changes for
func (c *Coordinator[A]) Kind() changes.AggregateKind {
	return c.kind
}

// Subscribe registers a listener for coordinator events
func (c *Coordinator[A]) Subscribe(l Listener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

// ApplyChange runs the change's forward operation on aggregate and, if it
// succeeds, records the change on the undo stack and discards the redo
// stack. A failed forward operation leaves both stacks untouched.
func (c *Coordinator[A]) ApplyChange(change *Change[A], aggregate A) error {
	if change == nil || change.record == nil || change.forward == nil || change.inverse == nil {
		return pkgerrors.NewValidationError("change must carry a record and both operations")
	}
	if kind := change.Command().Aggregate(); kind != c.kind {
		return pkgerrors.NewValidationError("cannot apply %s to a %s", change.Command(), c.kind).
			WithDetail("expected_aggregate", string(c.kind))
	}

	if err := change.ApplyChange(aggregate); err != nil {
		c.logger.Debug("change rejected",
			zap.String("cmd", change.Command().String()),
			zap.Error(err))
		return fmt.Errorf("apply %s: %w", change.Command(), err)
	}

	c.undo = append(c.undo, change)
	c.redo = nil

	c.logger.Debug("change applied",
		zap.String("change_id", change.ID().String()),
		zap.String("cmd", change.Command().String()),
		zap.String("aggregate_id", aggregate.ID()),
		zap.Int("undo_depth", len(c.undo)))
	c.metrics.ChangeApplied(change.Command().String())
	c.metrics.SetStackDepth(string(c.kind), len(c.undo))
	c.publish(events.NewChangeApplied(aggregate.ID(), change.ID().String(), change.Command(), len(c.undo), c.now()))
	return nil
}

// UndoChange reverses the most recent live change. It reports false when
// there is nothing to undo. If the inverse operation fails the stacks are
// left as they were.
func (c *Coordinator[A]) UndoChange(aggregate A) (bool, error) {
	if len(c.undo) == 0 {
		return false, nil
	}
	change := c.undo[len(c.undo)-1]
	if err := change.ReverseChange(aggregate); err != nil {
		return false, fmt.Errorf("undo %s: %w", change.Command(), err)
	}

	c.undo = c.undo[:len(c.undo)-1]
	c.redo = append(c.redo, change)

	c.logger.Debug("change undone",
		zap.String("change_id", change.ID().String()),
		zap.String("cmd", change.Command().String()),
		zap.String("aggregate_id", aggregate.ID()),
		zap.Int("undo_depth", len(c.undo)))
	c.metrics.ChangeUndone(change.Command().String())
	c.metrics.SetStackDepth(string(c.kind), len(c.undo))
	c.publish(events.NewChangeUndone(aggregate.ID(), change.ID().String(), change.Command(), len(c.undo), c.now()))
	return true, nil
}

// RedoChange re-applies the most recently undone change. It reports false
// when there is nothing to redo.
func (c *Coordinator[A]) RedoChange(aggregate A) (bool, error) {
	if len(c.redo) == 0 {
		return false, nil
	}
	change := c.redo[len(c.redo)-1]
	if err := change.ApplyChange(aggregate); err != nil {
		return false, fmt.Errorf("redo %s: %w", change.Command(), err)
	}

	c.redo = c.redo[:len(c.redo)-1]
	c.undo = append(c.undo, change)

	c.logger.Debug("change redone",
		zap.String("change_id", change.ID().String()),
		zap.String("cmd", change.Command().String()),
		zap.String("aggregate_id", aggregate.ID()),
		zap.Int("undo_depth", len(c.undo)))
	c.metrics.ChangeRedone(change.Command().String())
	c.metrics.SetStackDepth(string(c.kind), len(c.undo))
	c.publish(events.NewChangeRedone(aggregate.ID(), change.ID().String(), change.Command(), len(c.undo), c.now()))
	return true, nil
}

// CommittableChangeList returns copies of the records of the live changes
// in the order they were applied
func (c *Coordinator[A]) CommittableChangeList() []changes.Record {
	records := make([]changes.Record, len(c.undo))
	for i, change := range c.undo {
		records[i] = changes.CloneRecord(change.record)
	}
	return records
}

// ChangeList returns the live changes in the order they were applied
func (c *Coordinator[A]) ChangeList() []*Change[A] {
	out := make([]*Change[A], len(c.undo))
	copy(out, c.undo)
	return out
}

// ChangeCount returns the number of live changes
func (c *Coordinator[A]) ChangeCount() int {
	return len(c.undo)
}

// HasChanges reports whether there is anything to commit
func (c *Coordinator[A]) HasChanges() bool {
	return len(c.undo) > 0
}

// CanUndo reports whether UndoChange would do anything
func (c *Coordinator[A]) CanUndo() bool {
	return len(c.undo) > 0
}

// CanRedo reports whether RedoChange would do anything
func (c *Coordinator[A]) CanRedo() bool {
	return len(c.redo) > 0
}

// ClearChanges forgets both stacks without touching any aggregate
func (c *Coordinator[A]) ClearChanges() {
	discarded := len(c.undo)
	c.undo = nil
	c.redo = nil

	c.logger.Debug("changes cleared", zap.Int("discarded", discarded))
	c.metrics.SetStackDepth(string(c.kind), 0)
	c.publish(events.NewChangesCleared(discarded, c.now()))
}

func (c *Coordinator[A]) publish(e events.DomainEvent) {
	for _, l := range c.listeners {
		l(e)
	}
}
