package reconcile

import (
	"strings"

	"github.com/teemow/asanasync/internal/asana"
	"github.com/teemow/asanasync/internal/correlate"
	"github.com/teemow/asanasync/internal/gtasks"
)

// equivalent reports whether a mirror task is an up-to-date rendering of an
// Asana task. A missing title, due or notes on the mirror is a mismatch.
// The error is non-nil only when the Asana task violates the due-date
// invariant.
func equivalent(mt gtasks.Task, at asana.Task) (bool, error) {
	if mt.Title == "" || mt.Title != at.Name {
		return false, nil
	}

	want, err := asana.DueString(at)
	if err != nil {
		return false, err
	}
	if mt.Due == "" || normalizeMirrorDue(mt.Due) != want {
		return false, nil
	}

	if mt.Notes == "" {
		return false, nil
	}
	return notesMatch(mt.Notes, at.Notes), nil
}

// normalizeMirrorDue strips the ".000Z" millisecond suffix Google Tasks
// appends to due dates so they compare against the canonical form.
func normalizeMirrorDue(due string) string {
	if strings.HasSuffix(due, ".000Z") {
		return strings.TrimSuffix(due, ".000Z") + "Z"
	}
	return due
}

// notesMatch compares the human-authored prefix of the mirror notes against
// the Asana notes line by line. Comparison stops at the shorter sequence:
// trailing extra lines on either side do not by themselves cause a
// mismatch, and empty Asana notes have no lines at all. This prefix
// asymmetry is long-standing behavior the mirror comparison depends on, not
// an accident.
func notesMatch(mirrorNotes, asanaNotes string) bool {
	mLines := correlate.NotesPrefix(mirrorNotes)
	aLines := correlate.Lines(asanaNotes)

	n := len(mLines)
	if len(aLines) < n {
		n = len(aLines)
	}
	for i := 0; i < n; i++ {
		if mLines[i] != aLines[i] {
			return false
		}
	}
	return true
}
