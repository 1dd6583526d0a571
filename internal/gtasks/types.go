package gtasks

import (
	tasks "google.golang.org/api/tasks/v1"
)

// Task represents a Google Tasks task in the mirror list.
type Task struct {
	ID        string
	Title     string
	Notes     string
	Due       string // verbatim RFC3339 string from the API, empty if unset
	Completed bool   // completion marker present
}

// ListResult partitions the mirror list by completion.
type ListResult struct {
	Incomplete []Task
	Complete   []Task
}

// toTask converts a Google Tasks Task to our Task type.
func toTask(t *tasks.Task) Task {
	if t == nil {
		return Task{}
	}

	return Task{
		ID:        t.Id,
		Title:     t.Title,
		Notes:     t.Notes,
		Due:       t.Due,
		Completed: t.Completed != nil,
	}
}
