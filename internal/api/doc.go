// Package api provides the REST client for the desk backend.
//
// The client owns the bearer credential: Login stores the token returned
// by the backend and every later call sends it as an Authorization header.
// Snapshot reads retry transient failures with jittered backoff; mutating
// commands (RFQ creation, trade execution) are sent exactly once and carry
// an X-Request-ID for server-side correlation.
package api
