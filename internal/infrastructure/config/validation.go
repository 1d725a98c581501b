package config

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	minPollIntervalMs = 250
	maxPageSize       = 500
	maxAttemptsLimit  = 10
)

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateRemote(config)...)
	validationErrors = append(validationErrors, validatePoll(config)...)
	validationErrors = append(validationErrors, validateDisplay(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validatePalette(config)...)
	validationErrors = append(validationErrors, validateMetrics(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateRemote(config *Config) []string {
	var validationErrors []string

	if config.Remote.BaseURL == "" {
		validationErrors = append(validationErrors, "remote.base_url is required")
	} else if u, err := url.Parse(config.Remote.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		validationErrors = append(validationErrors, fmt.Sprintf("remote.base_url must be an http(s) URL with a host, got %q", config.Remote.BaseURL))
	}
	if config.Remote.TimeoutMs < 0 {
		validationErrors = append(validationErrors, "remote.timeout_ms must be non-negative")
	}
	if config.Remote.MaxAttempts < 1 || config.Remote.MaxAttempts > maxAttemptsLimit {
		validationErrors = append(validationErrors, fmt.Sprintf("remote.max_attempts must be between 1 and %d", maxAttemptsLimit))
	}
	return validationErrors
}

func validatePoll(config *Config) []string {
	if config.Poll.IntervalMs < minPollIntervalMs {
		return []string{fmt.Sprintf("poll.interval_ms must be at least %d", minPollIntervalMs)}
	}
	return nil
}

func validateDisplay(config *Config) []string {
	var validationErrors []string
	if config.Display.PageSize < 1 || config.Display.PageSize > maxPageSize {
		validationErrors = append(validationErrors, fmt.Sprintf("display.page_size must be between 1 and %d", maxPageSize))
	}

	// A layout without any reference-time element formats to itself.
	ref := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)
	if ref.Format(config.Display.DateFormat) == config.Display.DateFormat {
		validationErrors = append(validationErrors, fmt.Sprintf("display.date_format %q is not a Go time layout", config.Display.DateFormat))
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string

	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got %q)", config.Logging.Level))
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}

func validatePalette(config *Config) []string {
	p := config.Appearance.Palette
	colors := []struct {
		name  string
		value string
	}{
		{"background", p.Background},
		{"surface", p.Surface},
		{"surface_variant", p.SurfaceVariant},
		{"text", p.Text},
		{"muted", p.Muted},
		{"accent", p.Accent},
		{"border", p.Border},
	}

	var validationErrors []string
	for _, c := range colors {
		if !hexColorPattern.MatchString(c.value) {
			validationErrors = append(validationErrors, fmt.Sprintf("appearance.palette.%s must be a hex color like #1a1a1b (got %q)", c.name, c.value))
		}
	}
	return validationErrors
}

func validateMetrics(config *Config) []string {
	if config.Metrics.ListenAddr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(config.Metrics.ListenAddr); err != nil {
		return []string{fmt.Sprintf("metrics.listen_addr must be host:port (got %q)", config.Metrics.ListenAddr)}
	}
	return nil
}
