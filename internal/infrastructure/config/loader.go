// Package config loads, validates and watches the lruconsole configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options customizes where a Manager reads its configuration from.
type Options struct {
	// ConfigDir overrides the XDG config directory.
	ConfigDir string
	// Fs overrides the filesystem (tests use afero.NewMemMapFs).
	Fs afero.Fs
}

// ErrConfigExists is returned by WriteDefault when the file is already there.
var ErrConfigExists = errors.New("config file already exists")

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	fs        afero.Fs
	configDir string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	created   bool
}

// NewManager creates a configuration manager rooted at the XDG config dir.
func NewManager() (*Manager, error) {
	return NewManagerWithOptions(Options{})
}

// NewManagerWithOptions creates a configuration manager.
func NewManagerWithOptions(opts Options) (*Manager, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		configDir = dir
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// LRUCONSOLE_REMOTE_BASE_URL, LRUCONSOLE_POLL_INTERVAL_MS, ...
	v.SetEnvPrefix("LRUCONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names shared with logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "LRUCONSOLE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind LRUCONSOLE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "LRUCONSOLE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind LRUCONSOLE_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		fs:        fs,
		configDir: configDir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// BindFlag lets a command-line flag override key when the flag is set.
func (m *Manager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: flag not defined", key)
	}
	return m.viper.BindPFlag(key, flag)
}

// Load loads the configuration from file and environment variables.
// A missing config file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.ConfigFile(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.configDir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Remote.BaseURL = strings.TrimRight(strings.TrimSpace(config.Remote.BaseURL), "/")
	config.Remote.UserAgent = strings.TrimSpace(config.Remote.UserAgent)

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = defaultLogFormat
	}
	if config.Logging.LogDir == "" {
		if dir, err := GetLogDir(); err == nil {
			config.Logging.LogDir = dir
		}
	}

	if strings.TrimSpace(config.Display.DateFormat) == "" {
		config.Display.DateFormat = defaultDateFormat
	}

	defaults := DefaultPalette()
	p := &config.Appearance.Palette
	fillColor(&p.Background, defaults.Background)
	fillColor(&p.Surface, defaults.Surface)
	fillColor(&p.SurfaceVariant, defaults.SurfaceVariant)
	fillColor(&p.Text, defaults.Text)
	fillColor(&p.Muted, defaults.Muted)
	fillColor(&p.Accent, defaults.Accent)
	fillColor(&p.Border, defaults.Border)

	config.Metrics.ListenAddr = strings.TrimSpace(config.Metrics.ListenAddr)
}

func fillColor(dst *string, fallback string) {
	*dst = strings.TrimSpace(*dst)
	if *dst == "" {
		*dst = fallback
	}
}

// Get returns a copy of the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// ConfigFile returns the path of the config file in use.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.configDir, configFileName)
}

// CreatedDefault reports whether Load wrote a fresh default config file.
func (m *Manager) CreatedDefault() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.created
}

// WriteDefault writes the default configuration to the config file.
// An existing file is kept unless force is set.
func (m *Manager) WriteDefault(force bool) (string, error) {
	path := filepath.Join(m.configDir, configFileName)

	exists, err := afero.Exists(m.fs, path)
	if err != nil {
		return path, err
	}
	if exists && !force {
		return path, fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrConfigExists)
	}
	if err := m.fs.MkdirAll(m.configDir, dirPerm); err != nil {
		return path, err
	}
	return path, WriteConfigOrdered(m.fs, DefaultConfig(), path)
}

func (m *Manager) createDefaultConfig() error {
	path := filepath.Join(m.configDir, configFileName)
	if err := m.fs.MkdirAll(m.configDir, dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(m.fs, DefaultConfig(), path); err != nil {
		return err
	}
	m.created = true
	fmt.Fprintf(os.Stderr, "Created default configuration file: %s\n", path)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	d := DefaultConfig()

	m.viper.SetDefault("remote.base_url", d.Remote.BaseURL)
	m.viper.SetDefault("remote.timeout_ms", d.Remote.TimeoutMs)
	m.viper.SetDefault("remote.user_agent", d.Remote.UserAgent)
	m.viper.SetDefault("remote.max_attempts", d.Remote.MaxAttempts)

	m.viper.SetDefault("poll.interval_ms", d.Poll.IntervalMs)

	m.viper.SetDefault("display.page_size", d.Display.PageSize)
	m.viper.SetDefault("display.date_format", d.Display.DateFormat)
	m.viper.SetDefault("display.local_time", d.Display.LocalTime)

	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", d.Logging.Format)
	m.viper.SetDefault("logging.log_dir", d.Logging.LogDir)
	m.viper.SetDefault("logging.enable_file_log", d.Logging.EnableFileLog)
	m.viper.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", d.Logging.Compress)

	p := d.Appearance.Palette
	m.viper.SetDefault("appearance.palette.background", p.Background)
	m.viper.SetDefault("appearance.palette.surface", p.Surface)
	m.viper.SetDefault("appearance.palette.surface_variant", p.SurfaceVariant)
	m.viper.SetDefault("appearance.palette.text", p.Text)
	m.viper.SetDefault("appearance.palette.muted", p.Muted)
	m.viper.SetDefault("appearance.palette.accent", p.Accent)
	m.viper.SetDefault("appearance.palette.border", p.Border)

	m.viper.SetDefault("metrics.listen_addr", d.Metrics.ListenAddr)
}
