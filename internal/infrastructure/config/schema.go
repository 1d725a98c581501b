package config

import "time"

// Config represents the complete configuration for lruconsole.
type Config struct {
	// Remote locates the cache service.
	Remote RemoteConfig `mapstructure:"remote" toml:"remote" json:"remote"`
	// Poll controls background re-fetching of the snapshot.
	Poll PollConfig `mapstructure:"poll" toml:"poll" json:"poll"`
	// Display controls how entries are paged and formatted.
	Display    DisplayConfig    `mapstructure:"display" toml:"display" json:"display"`
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging" json:"logging"`
	Appearance AppearanceConfig `mapstructure:"appearance" toml:"appearance" json:"appearance"`
	// Metrics exposes Prometheus counters while the console runs.
	Metrics MetricsConfig `mapstructure:"metrics" toml:"metrics" json:"metrics"`
}

// RemoteConfig holds cache service connection settings.
type RemoteConfig struct {
	// BaseURL is the service root, e.g. http://localhost:8080.
	BaseURL string `mapstructure:"base_url" toml:"base_url" json:"base_url" jsonschema:"format=uri"`
	// TimeoutMs bounds each HTTP request. 0 disables the client timeout.
	TimeoutMs int `mapstructure:"timeout_ms" toml:"timeout_ms" json:"timeout_ms" jsonschema:"minimum=0"`
	// UserAgent overrides the default "lruconsole/<version>" header.
	UserAgent string `mapstructure:"user_agent" toml:"user_agent" json:"user_agent,omitempty"`
	// MaxAttempts bounds tries for reads (writes are sent once).
	MaxAttempts int `mapstructure:"max_attempts" toml:"max_attempts" json:"max_attempts" jsonschema:"minimum=1,maximum=10"`
}

// Timeout returns TimeoutMs as a duration.
func (r RemoteConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutMs) * time.Millisecond
}

// PollConfig controls the snapshot poll loop.
type PollConfig struct {
	// IntervalMs is the delay between polls of a non-empty snapshot.
	IntervalMs int `mapstructure:"interval_ms" toml:"interval_ms" json:"interval_ms" jsonschema:"minimum=250"`
}

// Interval returns IntervalMs as a duration.
func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

// DisplayConfig controls the entry table.
type DisplayConfig struct {
	// PageSize is the number of entries per page.
	PageSize int `mapstructure:"page_size" toml:"page_size" json:"page_size" jsonschema:"minimum=1,maximum=500"`
	// DateFormat is a Go time layout for expirations.
	DateFormat string `mapstructure:"date_format" toml:"date_format" json:"date_format"`
	// LocalTime renders expirations in the local zone instead of UTC.
	LocalTime bool `mapstructure:"local_time" toml:"local_time" json:"local_time"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// LogDir defaults to the XDG state directory.
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir,omitempty"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=0"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAgeDays    int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days" jsonschema:"minimum=0"`
	Compress      bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// AppearanceConfig holds TUI colors.
type AppearanceConfig struct {
	Palette ColorPalette `mapstructure:"palette" toml:"palette" json:"palette"`
}

// ColorPalette holds hex colors used by the console theme.
type ColorPalette struct {
	Background     string `mapstructure:"background" toml:"background" json:"background"`
	Surface        string `mapstructure:"surface" toml:"surface" json:"surface"`
	SurfaceVariant string `mapstructure:"surface_variant" toml:"surface_variant" json:"surface_variant"`
	Text           string `mapstructure:"text" toml:"text" json:"text"`
	Muted          string `mapstructure:"muted" toml:"muted" json:"muted"`
	Accent         string `mapstructure:"accent" toml:"accent" json:"accent"`
	Border         string `mapstructure:"border" toml:"border" json:"border"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// ListenAddr serves /metrics when non-empty, e.g. "127.0.0.1:9464".
	ListenAddr string `mapstructure:"listen_addr" toml:"listen_addr" json:"listen_addr"`
}
