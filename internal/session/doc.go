// Package session owns the authenticated desk lifecycle.
//
// A Session ties the other components together: login obtains a bearer
// token, hydrates the store with one full snapshot, starts the periodic
// refresh loop and opens one supervised channel per push topic. Logout
// tears all of it down at once and clears the store so nothing survives
// into a session under a different identity. Commands (new RFQ, trade
// execution) go through here too and are always followed by a full
// refresh rather than an optimistic local edit.
package session
