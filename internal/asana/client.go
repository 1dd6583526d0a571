package asana

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

// DefaultBaseURL is the Asana REST API base.
const DefaultBaseURL = "https://app.asana.com/api/1.0"

// DefaultWindowHours is the trailing window for recently-touched tasks.
const DefaultWindowHours = 24

// ErrUnsupportedPagination is returned when the task listing reports a
// continuation token. Following it is unimplemented; failing loudly beats
// silently dropping tasks.
var ErrUnsupportedPagination = errors.New("asana task listing returned a continuation token; pagination is unsupported")

// StatusError reports a non-success HTTP status from the Asana API.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("asana %s failed with status %d", e.Op, e.StatusCode)
}

// Client talks to the Asana API for a single user task list.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	taskListGID string
	windowHours int
	now         func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests and self-hosted
// proxies.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithWindowHours overrides the trailing completed-since window.
func WithWindowHours(hours int) Option {
	return func(c *Client) { c.windowHours = hours }
}

// WithHTTPClient replaces the token-authenticated HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an Asana client authenticated with a personal access
// token, scoped to one user task list.
func NewClient(ctx context.Context, personalToken, taskListGID string, opts ...Option) (*Client, error) {
	if personalToken == "" {
		return nil, fmt.Errorf("asana personal access token cannot be empty")
	}
	if taskListGID == "" {
		return nil, fmt.Errorf("asana user task list GID cannot be empty")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: personalToken})

	c := &Client{
		httpClient:  oauth2.NewClient(ctx, ts),
		baseURL:     DefaultBaseURL,
		taskListGID: taskListGID,
		windowHours: DefaultWindowHours,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListTasks fetches tasks from the user task list that were touched within
// the trailing window, filters out tasks without any due form, and
// partitions the rest by completion.
func (c *Client) ListTasks(ctx context.Context) (ListResult, error) {
	since := c.now().Add(-time.Duration(c.windowHours) * time.Hour)

	q := url.Values{}
	q.Set("opt_fields", "name,notes,due_on,due_at,completed_at")
	q.Set("completed_since", since.UTC().Format(time.RFC3339))
	q.Set("limit", "100")

	listURL := fmt.Sprintf("%s/user_task_lists/%s/tasks?%s", c.baseURL, c.taskListGID, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to build task list request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to list asana tasks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ListResult{}, &StatusError{Op: "list tasks", StatusCode: resp.StatusCode}
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ListResult{}, fmt.Errorf("failed to decode asana task list response: %w", err)
	}

	if body.NextPage != nil {
		return ListResult{}, ErrUnsupportedPagination
	}

	var result ListResult
	for _, w := range body.Data {
		t, err := toTask(w)
		if err != nil {
			return ListResult{}, fmt.Errorf("failed to parse asana task %s: %w", w.GID, err)
		}
		if !t.HasDue() {
			continue
		}
		if t.Completed() {
			result.Complete = append(result.Complete, t)
		} else {
			result.Incomplete = append(result.Incomplete, t)
		}
	}

	return result, nil
}

// CompleteTask marks the task complete via a partial update.
func (c *Client) CompleteTask(ctx context.Context, gid string) error {
	payload := map[string]map[string]bool{
		"data": {"completed": true},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode complete request: %w", err)
	}

	updateURL := fmt.Sprintf("%s/tasks/%s", c.baseURL, gid)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, updateURL, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build complete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to complete asana task %s: %w", gid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: fmt.Sprintf("complete task %s", gid), StatusCode: resp.StatusCode}
	}

	return nil
}
