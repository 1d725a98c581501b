package config

import (
	"strconv"

	"github.com/bnema/lruconsole/internal/domain/entity"
)

// Section names for grouping config keys.
const (
	SectionRemote     = "Remote"
	SectionPoll       = "Poll"
	SectionDisplay    = "Display"
	SectionLogging    = "Logging"
	SectionAppearance = "Appearance"
	SectionMetrics    = "Metrics"
)

// SchemaProvider implements port.ConfigSchemaProvider.
type SchemaProvider struct{}

// NewSchemaProvider creates a new SchemaProvider.
func NewSchemaProvider() *SchemaProvider {
	return &SchemaProvider{}
}

// GetSchema returns all configuration keys with their metadata.
func (p *SchemaProvider) GetSchema() []entity.ConfigKeyInfo {
	defaults := DefaultConfig()

	keys := make([]entity.ConfigKeyInfo, 0, 24)
	keys = append(keys, p.getRemoteKeys(defaults)...)
	keys = append(keys, p.getPollKeys(defaults)...)
	keys = append(keys, p.getDisplayKeys(defaults)...)
	keys = append(keys, p.getLoggingKeys(defaults)...)
	keys = append(keys, p.getAppearanceKeys(defaults)...)
	keys = append(keys, p.getMetricsKeys()...)
	return keys
}

func (*SchemaProvider) getRemoteKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "remote.base_url",
			Type:        "string",
			Default:     defaults.Remote.BaseURL,
			Description: "Root URL of the cache service (http or https)",
			Section:     SectionRemote,
		},
		{
			Key:         "remote.timeout_ms",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Remote.TimeoutMs),
			Description: "Per-request timeout in milliseconds, 0 disables it",
			Range:       ">= 0",
			Section:     SectionRemote,
		},
		{
			Key:         "remote.max_attempts",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Remote.MaxAttempts),
			Description: "Tries for read requests; inserts and deletes are sent once",
			Range:       "1-" + strconv.Itoa(maxAttemptsLimit),
			Section:     SectionRemote,
		},
		{
			Key:         "remote.user_agent",
			Type:        "string",
			Default:     "lruconsole/<version>",
			Description: "User-Agent header sent with every request",
			Section:     SectionRemote,
		},
	}
}

func (*SchemaProvider) getPollKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "poll.interval_ms",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Poll.IntervalMs),
			Description: "Delay between refreshes while the cache holds entries; applied live on reload",
			Range:       ">= " + strconv.Itoa(minPollIntervalMs),
			Section:     SectionPoll,
		},
	}
}

func (*SchemaProvider) getDisplayKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "display.page_size",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Display.PageSize),
			Description: "Entries per page",
			Range:       "1-" + strconv.Itoa(maxPageSize),
			Section:     SectionDisplay,
		},
		{
			Key:         "display.date_format",
			Type:        "string",
			Default:     defaults.Display.DateFormat,
			Description: "Go time layout for the expiration column",
			Section:     SectionDisplay,
		},
		{
			Key:         "display.local_time",
			Type:        "bool",
			Default:     strconv.FormatBool(defaults.Display.LocalTime),
			Description: "Show expirations in the local zone instead of UTC",
			Section:     SectionDisplay,
		},
	}
}

func (*SchemaProvider) getLoggingKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "logging.level",
			Type:        "string",
			Default:     defaults.Logging.Level,
			Description: "Log verbosity level",
			Values:      []string{"trace", "debug", "info", "warn", "error"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.format",
			Type:        "string",
			Default:     defaults.Logging.Format,
			Description: "Output format for stderr logs",
			Values:      []string{"console", "json"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.enable_file_log",
			Type:        "bool",
			Default:     strconv.FormatBool(defaults.Logging.EnableFileLog),
			Description: "Write console session logs to a rotated file",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.log_dir",
			Type:        "string",
			Default:     "$XDG_STATE_HOME/lruconsole/logs",
			Description: "Directory for log files",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_size_mb",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Logging.MaxSizeMB),
			Description: "Size at which the log file is rotated",
			Range:       ">= 0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_backups",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Logging.MaxBackups),
			Description: "Rotated files to keep",
			Range:       ">= 0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_age_days",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Logging.MaxAgeDays),
			Description: "Days to keep rotated files",
			Range:       ">= 0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.compress",
			Type:        "bool",
			Default:     strconv.FormatBool(defaults.Logging.Compress),
			Description: "Gzip rotated files",
			Section:     SectionLogging,
		},
	}
}

func (*SchemaProvider) getAppearanceKeys(defaults *Config) []entity.ConfigKeyInfo {
	p := defaults.Appearance.Palette
	color := func(name, value, desc string) entity.ConfigKeyInfo {
		return entity.ConfigKeyInfo{
			Key:         "appearance.palette." + name,
			Type:        "string",
			Default:     value,
			Description: desc,
			Section:     SectionAppearance,
		}
	}
	return []entity.ConfigKeyInfo{
		color("background", p.Background, "Console background"),
		color("surface", p.Surface, "Panels and inactive buttons"),
		color("surface_variant", p.SurfaceVariant, "Selected rows and badges"),
		color("text", p.Text, "Primary text"),
		color("muted", p.Muted, "Secondary text"),
		color("accent", p.Accent, "Highlights, active page and success toasts"),
		color("border", p.Border, "Box and table borders"),
	}
}

func (*SchemaProvider) getMetricsKeys() []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "metrics.listen_addr",
			Type:        "string",
			Default:     "",
			Description: "host:port serving Prometheus /metrics while the console runs; empty disables it",
			Section:     SectionMetrics,
		},
	}
}
