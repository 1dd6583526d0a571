// Package reconcile implements the cross-system state reconciler at the
// heart of the sync.
//
// Each cycle captures one snapshot from each remote (Asana and the Google
// Tasks mirror list) and runs three passes against that immutable snapshot:
//
//  1. Forward propagation: every incomplete Asana task gets a matching
//     mirror task. A stale mirror is replaced, never patched in place
//     (Match -> Stale -> Replace); the mirror identifier churns and any
//     direct edits on the mirror are lost.
//  2. Backward completion: a completed mirror task completes its Asana task,
//     then is deleted. Deletion is unconditional once a mirror is observed
//     complete, correlation id or not.
//  3. Forward completion: mirrors of Asana tasks that completed after the
//     mirror snapshot was taken are deleted.
//
// Side effects of one pass become visible to remote reads only on the next
// cycle; all decisions within a cycle are made against the snapshot taken at
// its start. There is no persistence between cycles: the correlation id
// embedded in mirror notes is the only durable cross-reference.
//
// The Runner drives cycles on a fixed interval with an explicit error
// boundary: Fatal classifies which errors terminate the process and which
// are retried on the next cycle.
package reconcile
