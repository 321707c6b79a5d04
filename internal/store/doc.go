// Package store implements the reconciliation store: the single
// authoritative in-memory view of the desk's mutable collections.
//
// Two independent sources write into it — periodic full snapshots and
// per-topic push updates — and every mutation runs under one mutex, which
// serializes snapshot/push races the way the dashboard's event loop did.
// Merge rules are last-write-wins by arrival order, except that updates
// carrying a server version strictly older than the held record are
// discarded.
package store
