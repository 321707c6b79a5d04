// Package channel implements the per-topic push connections.
//
// A Conn owns exactly one WebSocket for one (endpoint, topic, credential)
// triple: it sends the application-level "ping" probe while open, decodes
// {channel, data} envelopes, silently drops malformed frames, and tears
// down idempotently. Changing any element of the triple means a new Conn.
//
// A Supervisor wraps a Conn and re-opens it with capped exponential
// backoff and jitter whenever it reaches the Closed state, resetting the
// backoff after the connection stays up long enough.
package channel
