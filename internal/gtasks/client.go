package gtasks

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"github.com/teemow/asanasync/internal/asana"
	"github.com/teemow/asanasync/internal/correlate"
	"github.com/teemow/asanasync/internal/google"
)

// DefaultListTitle is the title of the task list that mirrors Asana.
const DefaultListTitle = "Asana"

// pageSize is the per-page limit for mirror list requests.
const pageSize = 100

// Client wraps the Google Tasks service, scoped to the mirror task list.
type Client struct {
	svc    *tasks.Service
	listID string
}

// NewClient creates a Tasks client with OAuth2 authentication and resolves
// the mirror task list by exact title. A missing list is a fatal
// configuration error: the sync never creates the list itself.
func NewClient(ctx context.Context, listTitle string) (*Client, error) {
	httpClient, err := google.GetHTTPClient(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Tasks service: %w", err)
	}

	return newClientWithService(svc, listTitle)
}

// newClientWithService wires a client around an existing service. Split out
// so tests can inject a service backed by a local HTTP server.
func newClientWithService(svc *tasks.Service, listTitle string) (*Client, error) {
	if listTitle == "" {
		listTitle = DefaultListTitle
	}

	listID, err := resolveList(svc, listTitle)
	if err != nil {
		return nil, err
	}

	return &Client{svc: svc, listID: listID}, nil
}

// resolveList finds the task list with the exact title.
func resolveList(svc *tasks.Service, title string) (string, error) {
	result, err := svc.Tasklists.List().Do()
	if err != nil {
		return "", fmt.Errorf("failed to list task lists: %w", err)
	}

	for _, tl := range result.Items {
		if tl.Title == title {
			return tl.Id, nil
		}
	}

	return "", fmt.Errorf("task list %q not found; create it in Google Tasks first", title)
}

// ListID returns the resolved mirror task list identifier.
func (c *Client) ListID() string {
	return c.listID
}

// ListTasks fetches the entire mirror list, following continuation tokens
// until exhausted, and partitions tasks by completion. Completed and hidden
// tasks are included so completions propagate before Google hides them.
func (c *Client) ListTasks(ctx context.Context) (ListResult, error) {
	var result ListResult

	pageToken := ""
	for {
		call := c.svc.Tasks.List(c.listID).
			MaxResults(pageSize).
			ShowCompleted(true).
			ShowHidden(true).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return ListResult{}, fmt.Errorf("failed to list mirror tasks: %w", err)
		}

		for _, t := range page.Items {
			task := toTask(t)
			if task.Completed {
				result.Complete = append(result.Complete, task)
			} else {
				result.Incomplete = append(result.Incomplete, task)
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return result, nil
}

// CreateFromAsana builds a mirror task from an Asana task and inserts it
// into the mirror list. The correlation id is embedded in the notes; the due
// date is the canonical date-only form.
func (c *Client) CreateFromAsana(ctx context.Context, t asana.Task) error {
	due, err := asana.DueString(t)
	if err != nil {
		return fmt.Errorf("failed to derive due date for asana task %s: %w", t.GID, err)
	}

	mirror := &tasks.Task{
		Title: t.Name,
		Due:   due,
		Notes: correlate.Encode(t.Notes, t.GID),
	}

	if _, err := c.svc.Tasks.Insert(c.listID, mirror).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create mirror task for asana task %s: %w", t.GID, err)
	}

	return nil
}

// DeleteTask deletes a mirror task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.svc.Tasks.Delete(c.listID, id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete mirror task %s: %w", id, err)
	}
	return nil
}
