package reconcile

import (
	"errors"

	"github.com/teemow/asanasync/internal/asana"
)

// Fatal classifies a cycle error: fatal errors terminate the process,
// everything else is logged and retried on the next cycle.
//
// Fatal errors are:
//   - asana.ErrNoDueDate: a task with no due form reached due-date
//     formatting, so the upstream filtering invariant is broken and every
//     subsequent cycle would fail the same way.
//   - asana.ErrUnsupportedPagination: the listing is truncated; continuing
//     would silently ignore tasks beyond the first page.
//
// Transient remote failures (rate limits, 5xx, network errors) stay
// retryable: a long-running background sync should not die over a single
// failed call.
func Fatal(err error) bool {
	return errors.Is(err, asana.ErrNoDueDate) || errors.Is(err, asana.ErrUnsupportedPagination)
}
