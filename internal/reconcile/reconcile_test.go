package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/asanasync/internal/asana"
	"github.com/teemow/asanasync/internal/correlate"
	"github.com/teemow/asanasync/internal/gtasks"
)

// fakeSource is an in-memory Source that records mutating calls.
type fakeSource struct {
	result    asana.ListResult
	listErr   error
	completed []string
}

func (f *fakeSource) ListTasks(_ context.Context) (asana.ListResult, error) {
	if f.listErr != nil {
		return asana.ListResult{}, f.listErr
	}
	return f.result, nil
}

func (f *fakeSource) CompleteTask(_ context.Context, gid string) error {
	f.completed = append(f.completed, gid)
	return nil
}

// fakeMirror is an in-memory Mirror that records mutating calls in order.
type fakeMirror struct {
	result  gtasks.ListResult
	listErr error
	calls   []string // "create:<gid>" and "delete:<id>" in issue order
	created []asana.Task
	deleted []string
}

func (f *fakeMirror) ListTasks(_ context.Context) (gtasks.ListResult, error) {
	if f.listErr != nil {
		return gtasks.ListResult{}, f.listErr
	}
	return f.result, nil
}

func (f *fakeMirror) CreateFromAsana(_ context.Context, t asana.Task) error {
	f.calls = append(f.calls, "create:"+t.GID)
	f.created = append(f.created, t)
	return nil
}

func (f *fakeMirror) DeleteTask(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	f.deleted = append(f.deleted, id)
	return nil
}

func mirrorOf(id string, at asana.Task, completed bool) gtasks.Task {
	due, err := asana.DueString(at)
	if err != nil {
		panic(fmt.Sprintf("test fixture task %s without due date", at.GID))
	}
	return gtasks.Task{
		ID:        id,
		Title:     at.Name,
		Notes:     correlate.Encode(at.Notes, at.GID),
		Due:       due,
		Completed: completed,
	}
}

func TestRunCycle_CreatesMissingMirror(t *testing.T) {
	at := asana.Task{GID: "F1", Name: "Buy milk", Notes: "get 2%", DueOn: "2024-01-01"}
	source := &fakeSource{result: asana.ListResult{Incomplete: []asana.Task{at}}}
	mirror := &fakeMirror{}

	stats, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Created: 1}, stats)
	require.Len(t, mirror.created, 1)
	assert.Equal(t, "F1", mirror.created[0].GID)
	assert.Empty(t, mirror.deleted)
	assert.Empty(t, source.completed)
}

func TestRunCycle_NoOpIsIdempotent(t *testing.T) {
	at := asana.Task{GID: "F1", Name: "Buy milk", Notes: "get 2%", DueOn: "2024-01-01"}
	source := &fakeSource{result: asana.ListResult{Incomplete: []asana.Task{at}}}
	mirror := &fakeMirror{result: gtasks.ListResult{
		Incomplete: []gtasks.Task{mirrorOf("m1", at, false)},
	}}

	r := NewReconciler(source, mirror)

	for i := 0; i < 3; i++ {
		stats, err := r.RunCycle(context.Background())
		require.NoError(t, err)
		assert.True(t, stats.Zero(), "cycle %d issued actions: %+v", i, stats)
	}

	assert.Empty(t, mirror.calls, "no mutating mirror calls expected")
	assert.Empty(t, source.completed, "no mutating source calls expected")
}

func TestRunCycle_ReplacesStaleMirror(t *testing.T) {
	at := asana.Task{GID: "F1", Name: "Buy milk", Notes: "get 2%", DueOn: "2024-01-02"}
	stale := mirrorOf("m1", at, false)
	stale.Due = "2024-01-01T00:00:00Z" // due moved on the Asana side

	source := &fakeSource{result: asana.ListResult{Incomplete: []asana.Task{at}}}
	mirror := &fakeMirror{result: gtasks.ListResult{Incomplete: []gtasks.Task{stale}}}

	stats, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Replaced: 1}, stats)
	assert.Equal(t, []string{"delete:m1", "create:F1"}, mirror.calls)
}

func TestRunCycle_CompletedMirrorCompletesSourceThenDeletes(t *testing.T) {
	at := asana.Task{GID: "F1", Name: "Buy milk", Notes: "get 2%", DueOn: "2024-01-01"}
	done := mirrorOf("m1", at, true)

	source := &fakeSource{result: asana.ListResult{Incomplete: []asana.Task{at}}}
	mirror := &fakeMirror{result: gtasks.ListResult{Complete: []gtasks.Task{done}}}

	stats, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Completed: 1, Deleted: 1}, stats)
	assert.Equal(t, []string{"F1"}, source.completed)
	assert.Equal(t, []string{"delete:m1"}, mirror.calls)
}

func TestRunCycle_CompletedMirrorWithoutCorrelationStillDeleted(t *testing.T) {
	done := gtasks.Task{ID: "m1", Title: "scribble", Notes: "no marker here", Completed: true}

	source := &fakeSource{}
	mirror := &fakeMirror{result: gtasks.ListResult{Complete: []gtasks.Task{done}}}

	stats, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Deleted: 1}, stats)
	assert.Empty(t, source.completed)
	assert.Equal(t, []string{"delete:m1"}, mirror.calls)
}

func TestRunCycle_DanglingSeparatorMirrorDeletedWithoutCompleting(t *testing.T) {
	// A separator with nothing after it carries no correlation id; the
	// completed mirror must be cleaned up without issuing a completion for
	// an empty GID, which would fail every cycle and wedge the sync.
	done := gtasks.Task{ID: "m1", Title: "scribble", Notes: "notes\n---\n", Completed: true}

	source := &fakeSource{}
	mirror := &fakeMirror{result: gtasks.ListResult{Complete: []gtasks.Task{done}}}

	stats, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Deleted: 1}, stats)
	assert.Empty(t, source.completed)
	assert.Equal(t, []string{"delete:m1"}, mirror.calls)
}

func TestRunCycle_SourceCompletionDeletesIncompleteMirror(t *testing.T) {
	at := asana.Task{GID: "F1", Name: "Buy milk", Notes: "get 2%", DueOn: "2024-01-01"}
	stillOpen := mirrorOf("m1", at, false)

	source := &fakeSource{result: asana.ListResult{Complete: []asana.Task{at}}}
	mirror := &fakeMirror{result: gtasks.ListResult{Incomplete: []gtasks.Task{stillOpen}}}

	stats, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Deleted: 1}, stats)
	assert.Equal(t, []string{"delete:m1"}, mirror.calls)
}

func TestRunCycle_OrphanedMirrorIsLeftAlone(t *testing.T) {
	orphan := gtasks.Task{
		ID:    "m9",
		Title: "Old task",
		Notes: "body\n---\nGONE",
		Due:   "2020-01-01T00:00:00Z",
	}

	source := &fakeSource{}
	mirror := &fakeMirror{result: gtasks.ListResult{Incomplete: []gtasks.Task{orphan}}}

	stats, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.Zero())
	assert.Empty(t, mirror.calls)
}

func TestRunCycle_DuplicateCorrelationFirstMatchWins(t *testing.T) {
	at := asana.Task{GID: "F1", Name: "Buy milk", Notes: "get 2%", DueOn: "2024-01-01"}
	first := mirrorOf("m1", at, false)
	second := mirrorOf("m2", at, false)
	second.Due = "1999-01-01T00:00:00Z" // stale, but shadowed by m1

	source := &fakeSource{result: asana.ListResult{Incomplete: []asana.Task{at}}}
	mirror := &fakeMirror{result: gtasks.ListResult{Incomplete: []gtasks.Task{first, second}}}

	stats, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.NoError(t, err)

	// m1 is equivalent, so the duplicate m2 is never considered.
	assert.True(t, stats.Zero())
	assert.Empty(t, mirror.calls)
}

func TestRunCycle_IncompleteMatchPreferredOverComplete(t *testing.T) {
	at := asana.Task{GID: "F1", Name: "Buy milk", Notes: "get 2%", DueOn: "2024-01-01"}
	open := mirrorOf("m1", at, false)
	done := mirrorOf("m2", at, true)

	source := &fakeSource{result: asana.ListResult{Incomplete: []asana.Task{at}}}
	mirror := &fakeMirror{result: gtasks.ListResult{
		Incomplete: []gtasks.Task{open},
		Complete:   []gtasks.Task{done},
	}}

	stats, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.NoError(t, err)

	// Pass 1 matches the incomplete mirror; pass 2 completes F1 via the
	// completed duplicate and deletes it.
	assert.Equal(t, Stats{Completed: 1, Deleted: 1}, stats)
	assert.Equal(t, []string{"F1"}, source.completed)
	assert.Equal(t, []string{"delete:m2"}, mirror.calls)
}

func TestRunCycle_SnapshotErrorAbortsCycle(t *testing.T) {
	source := &fakeSource{listErr: errors.New("rate limited")}
	mirror := &fakeMirror{}

	stats, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to snapshot asana tasks")
	assert.True(t, stats.Zero())
	assert.Empty(t, mirror.calls)
}

func TestRunCycle_MirrorSnapshotErrorAbortsCycle(t *testing.T) {
	source := &fakeSource{}
	mirror := &fakeMirror{listErr: errors.New("quota exceeded")}

	_, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to snapshot mirror tasks")
}

func TestRunCycle_DueInvariantViolationSurfaces(t *testing.T) {
	// A task without either due form should never reach the reconciler, but
	// if it does the cycle must fail loudly rather than write a bad mirror.
	at := asana.Task{GID: "F1", Name: "Buy milk", Notes: "get 2%"}
	match := gtasks.Task{
		ID:    "m1",
		Title: "Buy milk",
		Notes: "get 2%\n---\nF1",
		Due:   "2024-01-01T00:00:00Z",
	}

	source := &fakeSource{result: asana.ListResult{Incomplete: []asana.Task{at}}}
	mirror := &fakeMirror{result: gtasks.ListResult{Incomplete: []gtasks.Task{match}}}

	_, err := NewReconciler(source, mirror).RunCycle(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, asana.ErrNoDueDate)
}

func TestFindByCorrelation(t *testing.T) {
	open := gtasks.Task{ID: "m1", Notes: "a\n---\nX"}
	done := gtasks.Task{ID: "m2", Notes: "b\n---\nY", Completed: true}
	result := gtasks.ListResult{
		Incomplete: []gtasks.Task{open},
		Complete:   []gtasks.Task{done},
	}

	match, found := findByCorrelation(result, "Y")
	require.True(t, found)
	assert.Equal(t, "m2", match.ID)

	_, found = findByCorrelation(result, "Z")
	assert.False(t, found)
}

func TestStats_Zero(t *testing.T) {
	assert.True(t, Stats{}.Zero())
	assert.False(t, Stats{Created: 1}.Zero())
	assert.False(t, Stats{Deleted: 1}.Zero())
}
