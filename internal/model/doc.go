// Package model defines shared data types used across the desk watcher.
//
// All types are plain immutable value records; mutable collections of them
// live in the reconciliation store.
//
// Conventions:
//   - Money: float64 USD, as delivered by the desk backend
//   - Timestamps: time.Time, parsed from RFC3339 wire strings
//   - IDs: int for clients/instruments, int64 for trades, opaque string for RFQs
//   - Version: server-assigned monotonic revision, 0 when the backend does
//     not stamp one
package model
