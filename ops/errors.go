package ops

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound marks failures where the addressed record does not exist.
// Callers wrap it with entity and identifier detail.
var ErrNotFound = errors.New("not found")

// notFound builds the standard wrapped not-found error for a table and id.
func notFound(table string, id int) error {
	return fmt.Errorf("%s record with id %d: %w", table, id, ErrNotFound)
}

// PartialFailure reports a multi-statement operation that failed after some
// statements already committed. There is no rollback at this layer: the relay
// executes one statement per call, so the completed steps stay applied.
type PartialFailure struct {
	Completed []string
	Err       error
}

func (e *PartialFailure) Error() string {
	if len(e.Completed) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (already committed and not rolled back: %s)",
		e.Err, strings.Join(e.Completed, ", "))
}

func (e *PartialFailure) Unwrap() error {
	return e.Err
}
