package config

const (
	defaultBaseURL       = "http://localhost:8080"
	defaultTimeoutMs     = 5000
	defaultMaxAttempts   = 3
	defaultPollInterval  = 10000
	defaultPageSize      = 5
	defaultDateFormat    = "2006-01-02 15:04:05"
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 14
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Remote: RemoteConfig{
			BaseURL:     defaultBaseURL,
			TimeoutMs:   defaultTimeoutMs,
			MaxAttempts: defaultMaxAttempts,
		},
		Poll: PollConfig{
			IntervalMs: defaultPollInterval,
		},
		Display: DisplayConfig{
			PageSize:   defaultPageSize,
			DateFormat: defaultDateFormat,
		},
		Logging: LoggingConfig{
			Level:         defaultLogLevel,
			Format:        defaultLogFormat,
			EnableFileLog: true,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			MaxAgeDays:    defaultLogMaxAgeDays,
			Compress:      true,
		},
		Appearance: AppearanceConfig{
			Palette: DefaultPalette(),
		},
	}
}

// DefaultPalette returns the dark console palette.
func DefaultPalette() ColorPalette {
	return ColorPalette{
		Background:     "#0a0a0b",
		Surface:        "#1a1a1b",
		SurfaceVariant: "#2d2d2d",
		Text:           "#ffffff",
		Muted:          "#909090",
		Accent:         "#4ade80",
		Border:         "#333333",
	}
}
