// Package operations holds the typed mutations the undo/redo coordinator
// runs against an aggregate. Each concrete type carries only the payload its
// kind needs, and its Apply method is that kind's entry in the aggregate's
// function table. Forward and inverse mutations are both operations, so an
// undo is just another Apply.
package operations

import (
	"fmt"

	pkgerrors "editor-backend/pkg/errors"
)

// AppendIndex asks an insert operation to append rather than insert
const AppendIndex = -1

func valueAs[T any](property string, v any) (T, error) {
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, pkgerrors.NewValidationError("property %s cannot take a %T", property, v).
			WithDetail("expected", fmt.Sprintf("%T", zero))
	}
	return typed, nil
}
