package config

import "errors"

// Validate checks that all required fields are set and values are valid.
func (c *WatcherConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if c.API.RestURL == "" {
		return errors.New("api.rest_url is required")
	}
	if c.API.WSURL == "" {
		return errors.New("api.ws_url is required")
	}

	if c.Auth.Username == "" {
		return errors.New("auth.username is required")
	}
	if c.Auth.Password == "" {
		return errors.New("auth.password is required")
	}

	if c.Refresh.Interval <= 0 {
		return errors.New("refresh.interval must be > 0")
	}
	if c.Channels.PingInterval <= 0 {
		return errors.New("channels.ping_interval must be > 0")
	}
	if c.Channels.ReconnectBaseDelay > c.Channels.ReconnectMaxDelay {
		return errors.New("channels.reconnect_base_delay must be <= reconnect_max_delay")
	}

	if c.Status.Port < 1 || c.Status.Port > 65535 {
		return errors.New("status.port must be in 1-65535")
	}

	return nil
}
