package config

import "time"

// WatcherConfig is the root configuration for a desk watcher instance.
type WatcherConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	API      APIConfig      `yaml:"api"`
	Auth     AuthConfig     `yaml:"auth"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Channels ChannelsConfig `yaml:"channels"`
	Status   StatusConfig   `yaml:"status"`
}

// InstanceConfig identifies this watcher.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds desk backend endpoints.
type APIConfig struct {
	RestURL    string        `yaml:"rest_url"`
	WSURL      string        `yaml:"ws_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// AuthConfig holds the login credentials. Values usually come from the
// environment via ${VAR} expansion rather than being written in the file.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// RefreshConfig holds snapshot refresh settings.
type RefreshConfig struct {
	Interval        time.Duration `yaml:"interval"`         // full reload cadence while logged in
	SnapshotTimeout time.Duration `yaml:"snapshot_timeout"` // budget for one loadAll batch
}

// ChannelsConfig holds push channel settings.
type ChannelsConfig struct {
	PingInterval        time.Duration `yaml:"ping_interval"`
	HandshakeTimeout    time.Duration `yaml:"handshake_timeout"`
	ReconnectBaseDelay  time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay   time.Duration `yaml:"reconnect_max_delay"`
	ReconnectResetAfter time.Duration `yaml:"reconnect_reset_after"`
}

// StatusConfig holds the local status HTTP endpoint settings.
type StatusConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}
