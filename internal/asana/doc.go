// Package asana provides a client for the Asana REST API, scoped to the
// operations the sync needs: listing recently-touched tasks from a single
// user task list and marking tasks complete.
//
// The client authenticates with a personal access token and talks to a fixed
// API base URL; both are injected through the constructor so tests can point
// the client at a local server. No global client or ambient credentials.
//
// # Known limitation
//
// ListTasks requests up to 100 records and does not follow continuation
// tokens. If the API reports a further page the call fails with
// ErrUnsupportedPagination rather than silently dropping data.
package asana
