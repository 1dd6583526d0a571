package asana

import (
	"errors"
	"time"
)

// ErrNoDueDate signals that a task with neither due form reached due-date
// formatting. ListTasks filters such tasks out, so seeing this error means
// an upstream invariant was violated.
var ErrNoDueDate = errors.New("asana task has no due date")

// referenceZone is the fixed civil timezone used to derive the calendar date
// of an instant-form due date (US Central, constant offset). Converting in
// this zone rather than UTC is a deliberate business rule: the mirror's due
// date must match what the user sees locally, and the time of day is always
// discarded.
var referenceZone = time.FixedZone("US Central", -6*60*60)

// DueString renders a task's due specification in the canonical form the
// mirror stores: "<date>T00:00:00Z". If only a date is set, that date is used
// verbatim. If an instant is set (with or without a date, the instant wins),
// the instant's calendar date in the reference zone is used.
func DueString(t Task) (string, error) {
	switch {
	case t.DueAt != nil:
		return t.DueAt.In(referenceZone).Format("2006-01-02") + "T00:00:00Z", nil
	case t.DueOn != "":
		return t.DueOn + "T00:00:00Z", nil
	default:
		return "", ErrNoDueDate
	}
}
