// Package snapshot implements the full-state loader.
//
// LoadAll issues the six REST reads concurrently and returns them as one
// batch. The contract is all-or-nothing: a single failed read fails the
// whole batch and the caller keeps its previous state, so the store never
// presents a torn cross-entity view (e.g. trades refreshed but positions
// stale).
package snapshot
