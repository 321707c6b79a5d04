package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultRestURL             = "http://localhost:8000"
	DefaultAPITimeout          = 30 * time.Second
	DefaultMaxRetries          = 3
	DefaultRefreshInterval     = 30 * time.Second
	DefaultSnapshotTimeout     = 15 * time.Second
	DefaultPingInterval        = 10 * time.Second
	DefaultHandshakeTimeout    = 10 * time.Second
	DefaultReconnectBaseDelay  = 1 * time.Second
	DefaultReconnectMaxDelay   = 30 * time.Second
	DefaultReconnectResetAfter = 45 * time.Second
	DefaultStatusPort          = 8090
	DefaultStatusPath          = "/status"
)

func (c *WatcherConfig) applyDefaults() {
	// API defaults
	if c.API.RestURL == "" {
		c.API.RestURL = DefaultRestURL
	}
	if c.API.WSURL == "" {
		c.API.WSURL = deriveWSURL(c.API.RestURL)
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}

	// Refresh defaults
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = DefaultRefreshInterval
	}
	if c.Refresh.SnapshotTimeout == 0 {
		c.Refresh.SnapshotTimeout = DefaultSnapshotTimeout
	}

	// Channel defaults
	if c.Channels.PingInterval == 0 {
		c.Channels.PingInterval = DefaultPingInterval
	}
	if c.Channels.HandshakeTimeout == 0 {
		c.Channels.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Channels.ReconnectBaseDelay == 0 {
		c.Channels.ReconnectBaseDelay = DefaultReconnectBaseDelay
	}
	if c.Channels.ReconnectMaxDelay == 0 {
		c.Channels.ReconnectMaxDelay = DefaultReconnectMaxDelay
	}
	if c.Channels.ReconnectResetAfter == 0 {
		c.Channels.ReconnectResetAfter = DefaultReconnectResetAfter
	}

	// Status defaults
	if c.Status.Port == 0 {
		c.Status.Port = DefaultStatusPort
	}
	if c.Status.Path == "" {
		c.Status.Path = DefaultStatusPath
	}
}

// deriveWSURL maps an http(s) base URL to its ws(s) counterpart, the same
// substitution the dashboard applies.
func deriveWSURL(restURL string) string {
	switch {
	case len(restURL) >= 5 && restURL[:5] == "https":
		return "wss" + restURL[5:]
	case len(restURL) >= 4 && restURL[:4] == "http":
		return "ws" + restURL[4:]
	default:
		return restURL
	}
}
