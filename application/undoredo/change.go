package undoredo

import (
	"github.com/google/uuid"

	"editor-backend/domain/changes"
)

// Operation mutates an aggregate of type A
type Operation[A any] interface {
	Apply(a A) error
}

// Change pairs a change record with the forward and inverse operations that
// realise it on an aggregate. The inverse is computed when the change is
// built, from values captured before the forward operation runs.
type Change[A any] struct {
	id      uuid.UUID
	record  changes.Record
	forward Operation[A]
	inverse Operation[A]
}

// NewChange creates a change with a fresh id
func NewChange[A any](record changes.Record, forward, inverse Operation[A]) *Change[A] {
	return &Change[A]{
		id:      uuid.New(),
		record:  record,
		forward: forward,
		inverse: inverse,
	}
}

// ID returns the change's unique identifier
func (c *Change[A]) ID() uuid.UUID {
	return c.id
}

// Record returns the serializable record for the change
func (c *Change[A]) Record() changes.Record {
	return c.record
}

// Command returns the record's cmd
func (c *Change[A]) Command() changes.Command {
	return c.record.Command()
}

// Forward returns the operation that applies the change
func (c *Change[A]) Forward() Operation[A] {
	return c.forward
}

// Inverse returns the operation that reverses the change
func (c *Change[A]) Inverse() Operation[A] {
	return c.inverse
}

// ApplyChange runs the forward operation on a
func (c *Change[A]) ApplyChange(a A) error {
	return c.forward.Apply(a)
}

// ReverseChange runs the inverse operation on a
func (c *Change[A]) ReverseChange(a A) error {
	return c.inverse.Apply(a)
}
