package asana

import "time"

// Task represents an Asana task as the sync sees it.
type Task struct {
	GID         string
	Name        string
	Notes       string
	DueOn       string     // date-only form, "2006-01-02", empty if unset
	DueAt       *time.Time // precise instant form, nil if unset
	CompletedAt *time.Time // nil = incomplete
}

// Completed reports whether the task carries a completion instant.
func (t Task) Completed() bool {
	return t.CompletedAt != nil
}

// HasDue reports whether at least one due form is set. Tasks without any due
// date are filtered out by ListTasks and never reach the reconciler.
func (t Task) HasDue() bool {
	return t.DueOn != "" || t.DueAt != nil
}

// ListResult partitions the tasks visible in one listing by completion.
type ListResult struct {
	Incomplete []Task
	Complete   []Task
}

// wireTask is the JSON shape returned by the Asana task list endpoint.
type wireTask struct {
	GID         string `json:"gid"`
	Name        string `json:"name"`
	Notes       string `json:"notes"`
	DueOn       string `json:"due_on"`
	DueAt       string `json:"due_at"`
	CompletedAt string `json:"completed_at"`
}

type listResponse struct {
	Data     []wireTask      `json:"data"`
	NextPage *nextPageMarker `json:"next_page"`
}

type nextPageMarker struct {
	Offset string `json:"offset"`
}

// toTask converts a wire task to our Task type. Timestamps that fail to
// parse are reported as errors rather than dropped; the reconciler depends
// on completion instants being faithful.
func toTask(w wireTask) (Task, error) {
	t := Task{
		GID:   w.GID,
		Name:  w.Name,
		Notes: w.Notes,
		DueOn: w.DueOn,
	}

	if w.DueAt != "" {
		at, err := time.Parse(time.RFC3339, w.DueAt)
		if err != nil {
			return Task{}, err
		}
		t.DueAt = &at
	}

	if w.CompletedAt != "" {
		at, err := time.Parse(time.RFC3339, w.CompletedAt)
		if err != nil {
			return Task{}, err
		}
		t.CompletedAt = &at
	}

	return t, nil
}
