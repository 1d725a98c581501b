package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "https base url", mutate: func(c *Config) { c.Remote.BaseURL = "https://cache.example.com/api" }},
		{name: "missing base url", mutate: func(c *Config) { c.Remote.BaseURL = "" }, wantErr: "remote.base_url is required"},
		{name: "bad scheme", mutate: func(c *Config) { c.Remote.BaseURL = "redis://cache:6379" }, wantErr: "remote.base_url"},
		{name: "negative timeout", mutate: func(c *Config) { c.Remote.TimeoutMs = -1 }, wantErr: "remote.timeout_ms"},
		{name: "zero attempts", mutate: func(c *Config) { c.Remote.MaxAttempts = 0 }, wantErr: "remote.max_attempts"},
		{name: "poll too fast", mutate: func(c *Config) { c.Poll.IntervalMs = 10 }, wantErr: "poll.interval_ms"},
		{name: "page size zero", mutate: func(c *Config) { c.Display.PageSize = 0 }, wantErr: "display.page_size"},
		{name: "page size huge", mutate: func(c *Config) { c.Display.PageSize = 10_000 }, wantErr: "display.page_size"},
		{name: "date format literal", mutate: func(c *Config) { c.Display.DateFormat = "yyyy-MM-dd" }, wantErr: "display.date_format"},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: "logging.level"},
		{name: "negative backups", mutate: func(c *Config) { c.Logging.MaxBackups = -2 }, wantErr: "logging.max_backups"},
		{name: "bad color", mutate: func(c *Config) { c.Appearance.Palette.Accent = "green" }, wantErr: "appearance.palette.accent"},
		{name: "short hex color", mutate: func(c *Config) { c.Appearance.Palette.Accent = "#0f0" }},
		{name: "metrics addr", mutate: func(c *Config) { c.Metrics.ListenAddr = "127.0.0.1:9464" }},
		{name: "bad metrics addr", mutate: func(c *Config) { c.Metrics.ListenAddr = "9464" }, wantErr: "metrics.listen_addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_AggregatesErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.PageSize = 0
	cfg.Poll.IntervalMs = 0

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display.page_size")
	assert.Contains(t, err.Error(), "poll.interval_ms")
}
