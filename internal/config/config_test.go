package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
instance:
  id: test-watcher
api:
  rest_url: http://desk.internal:8000
  ws_url: ws://desk.internal:8000
auth:
  username: trader1
  password: hunter2
refresh:
  interval: 10s
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "test-watcher" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "test-watcher")
	}
	if cfg.API.RestURL != "http://desk.internal:8000" {
		t.Errorf("API.RestURL = %q, want %q", cfg.API.RestURL, "http://desk.internal:8000")
	}
	if cfg.Refresh.Interval != 10*time.Second {
		t.Errorf("Refresh.Interval = %v, want %v", cfg.Refresh.Interval, 10*time.Second)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DESK_PASSWORD", "secret123")

	yaml := `
instance:
  id: test-watcher
auth:
  username: trader1
  password: ${TEST_DESK_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Auth.Password != "secret123" {
		t.Errorf("Auth.Password = %q, want %q", cfg.Auth.Password, "secret123")
	}
}

func TestLoadAndValidateAppliesDefaults(t *testing.T) {
	yaml := `
instance:
  id: test-watcher
auth:
  username: trader1
  password: hunter2
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	// Check defaults were applied
	if cfg.API.RestURL != DefaultRestURL {
		t.Errorf("API.RestURL = %q, want default %q", cfg.API.RestURL, DefaultRestURL)
	}
	if cfg.Refresh.Interval != DefaultRefreshInterval {
		t.Errorf("Refresh.Interval = %v, want default %v", cfg.Refresh.Interval, DefaultRefreshInterval)
	}
	if cfg.Channels.PingInterval != DefaultPingInterval {
		t.Errorf("Channels.PingInterval = %v, want default %v", cfg.Channels.PingInterval, DefaultPingInterval)
	}
	if cfg.Status.Port != DefaultStatusPort {
		t.Errorf("Status.Port = %d, want default %d", cfg.Status.Port, DefaultStatusPort)
	}
}

func TestDeriveWSURL(t *testing.T) {
	tests := []struct {
		rest string
		want string
	}{
		{"http://localhost:8000", "ws://localhost:8000"},
		{"https://desk.example.com", "wss://desk.example.com"},
		{"ftp://weird", "ftp://weird"},
	}

	for _, tt := range tests {
		if got := deriveWSURL(tt.rest); got != tt.want {
			t.Errorf("deriveWSURL(%q) = %q, want %q", tt.rest, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := WatcherConfig{
		Instance: InstanceConfig{ID: "test"},
		API:      APIConfig{RestURL: "http://localhost:8000", WSURL: "ws://localhost:8000"},
		Auth:     AuthConfig{Username: "trader1", Password: "hunter2"},
		Refresh:  RefreshConfig{Interval: 30 * time.Second},
		Channels: ChannelsConfig{
			PingInterval:       10 * time.Second,
			ReconnectBaseDelay: time.Second,
			ReconnectMaxDelay:  30 * time.Second,
		},
		Status: StatusConfig{Port: 8090, Path: "/status"},
	}

	tests := []struct {
		name    string
		mutate  func(*WatcherConfig)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(c *WatcherConfig) {},
			wantErr: "",
		},
		{
			name:    "missing instance id",
			mutate:  func(c *WatcherConfig) { c.Instance.ID = "" },
			wantErr: "instance.id is required",
		},
		{
			name:    "missing ws url",
			mutate:  func(c *WatcherConfig) { c.API.WSURL = "" },
			wantErr: "api.ws_url is required",
		},
		{
			name:    "missing password",
			mutate:  func(c *WatcherConfig) { c.Auth.Password = "" },
			wantErr: "auth.password is required",
		},
		{
			name:    "zero refresh interval",
			mutate:  func(c *WatcherConfig) { c.Refresh.Interval = 0 },
			wantErr: "refresh.interval must be > 0",
		},
		{
			name: "base delay above max",
			mutate: func(c *WatcherConfig) {
				c.Channels.ReconnectBaseDelay = time.Minute
			},
			wantErr: "channels.reconnect_base_delay must be <= reconnect_max_delay",
		},
		{
			name:    "port out of range",
			mutate:  func(c *WatcherConfig) { c.Status.Port = 70000 },
			wantErr: "status.port must be in 1-65535",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
