// Package gtasks provides a client for the Google Tasks list that mirrors
// Asana tasks.
//
// This package wraps the Google Tasks API (tasks/v1) and provides
// functionality for:
//   - Resolving the mirror task list by its human-readable title once at
//     startup (a missing list is a fatal configuration error)
//   - Listing the mirror list to exhaustion, including completed and hidden
//     tasks, partitioned by completion
//   - Creating mirror tasks from Asana tasks, with the correlation id
//     embedded in the notes
//   - Deleting mirror tasks
//
// Mirror tasks are never updated in place; the reconciler replaces a stale
// mirror by deleting it and creating a fresh one. The Due field is kept as
// the verbatim API string so the reconciler can compare it against the
// canonical Asana due string without a lossy time.Time round trip.
//
// Authentication uses the OAuth2 token system from the google package;
// tokens are cached in the user's cache directory.
package gtasks
