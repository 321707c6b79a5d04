// Package projection computes read-only views from store collections plus
// wall-clock time.
//
// Everything here is a pure function: option catalogs from the risk limit
// rules, the exposure matrix and per-symbol inventory aggregation from
// positions, and quote countdowns from tickets and a caller-supplied
// clock instant. Nothing mutates the store; countdowns in particular are
// a render-time derivation recomputed on a shared 1-second tick.
package projection
