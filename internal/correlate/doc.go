// Package correlate embeds and extracts the Asana task identifier that links a
// Google Tasks mirror task back to its origin.
//
// The link is stored inside the mirror task's free-text notes using a fixed
// delimiter convention:
//
//	<original notes>
//	---
//	<asana gid>
//
// The identifier occupies exactly the line following the first line that is
// equal to "---". A notes body with no such separator, or with nothing after
// it, carries no correlation id and is treated as untracked.
//
// Keeping the convention behind this package means the reconciler never
// parses notes itself; a future key-value store could replace the embedded id
// without touching the reconciliation logic.
package correlate
