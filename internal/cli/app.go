// Package cli wires the cache console: config, logging, the remote client,
// the snapshot store and the per-session state shared by every command.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/bnema/lruconsole/internal/application/port"
	"github.com/bnema/lruconsole/internal/application/usecase"
	"github.com/bnema/lruconsole/internal/cli/styles"
	"github.com/bnema/lruconsole/internal/domain/build"
	"github.com/bnema/lruconsole/internal/infrastructure/config"
	"github.com/bnema/lruconsole/internal/infrastructure/metrics"
	"github.com/bnema/lruconsole/internal/infrastructure/remote"
	"github.com/bnema/lruconsole/internal/infrastructure/snapshot"
	"github.com/bnema/lruconsole/internal/logging"
)

const cliTimeFormat = "15:04:05"

// Options controls how NewApp builds the application.
type Options struct {
	// Interactive sessions own the terminal and log to a rotated file only.
	Interactive bool
	// Flags maps config keys to command-line flags that override them when set.
	Flags map[string]*pflag.Flag
	// ConfigDir overrides the XDG config directory.
	ConfigDir string
	BuildInfo build.Info
	// Context is the parent of the app context; cancel it to abort requests.
	Context context.Context
}

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	Client  *remote.Client
	Store   *usecase.SnapshotStore
	State   *usecase.SessionState
	Metrics *metrics.Recorder

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp loads config and creates every dependency of the console.
func NewApp(opts Options) (*App, error) {
	mgr, err := config.NewManagerWithOptions(config.Options{ConfigDir: opts.ConfigDir})
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	for key, flag := range opts.Flags {
		if err := mgr.BindFlag(key, flag); err != nil {
			return nil, err
		}
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger, logCleanup, err := newLogger(cfg, opts.Interactive)
	if err != nil {
		// The console still works without its log file.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if logCleanup == nil {
		logCleanup = func() {}
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx := logging.WithContext(parent, logger)

	userAgent := cfg.Remote.UserAgent
	if userAgent == "" {
		userAgent = opts.BuildInfo.UserAgent()
	}
	client, err := remote.NewClient(remote.Options{
		BaseURL:     cfg.Remote.BaseURL,
		Timeout:     cfg.Remote.Timeout(),
		UserAgent:   userAgent,
		MaxAttempts: cfg.Remote.MaxAttempts,
	})
	if err != nil {
		logCleanup()
		return nil, fmt.Errorf("create cache client: %w", err)
	}

	recorder := metrics.NewRecorder()
	store := usecase.NewSnapshotStore(client, recorder)

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Str("config_file", mgr.ConfigFile()).
		Bool("interactive", opts.Interactive).
		Msg("app initialized")

	return &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(cfg),
		BuildInfo:     opts.BuildInfo,
		Client:        client,
		Store:         store,
		State:         usecase.NewSessionState(cfg.Display.PageSize),
		Metrics:       recorder,
		ctx:           ctx,
		logCleanup:    logCleanup,
	}, nil
}

// newLogger picks the log sink. Interactive sessions write JSON to the rotated
// file; one-shot commands log to stderr at warn unless a level is set in the env.
func newLogger(cfg *config.Config, interactive bool) (zerolog.Logger, func(), error) {
	if interactive {
		return logging.NewWithFile(
			logging.Config{
				Level:      logging.ParseLevel(cfg.Logging.Level),
				Format:     cfg.Logging.Format,
				TimeFormat: time.RFC3339,
			},
			logging.FileConfig{
				Enabled:    cfg.Logging.EnableFileLog,
				LogDir:     cfg.Logging.LogDir,
				MaxSizeMB:  cfg.Logging.MaxSizeMB,
				MaxBackups: cfg.Logging.MaxBackups,
				MaxAgeDays: cfg.Logging.MaxAgeDays,
				Compress:   cfg.Logging.Compress,
			},
		)
	}

	level := "warn"
	if os.Getenv(logging.EnvLogLevel) != "" {
		level = cfg.Logging.Level
	}
	return logging.New(logging.Config{
		Level:      logging.ParseLevel(level),
		Format:     cfg.Logging.Format,
		TimeFormat: cliTimeFormat,
	}), func() {}, nil
}

// NewDispatcher creates a command dispatcher that reports to notifier.
func (a *App) NewDispatcher(notifier port.Notifier) *usecase.CommandDispatcher {
	return usecase.NewCommandDispatcher(a.Client, a.Store, a.State, notifier, a.Metrics)
}

// NewPoller creates a poll loop over the app's store at the configured interval.
func (a *App) NewPoller() *snapshot.Poller {
	return snapshot.NewPoller(a.Store, a.Config.Poll.Interval())
}

// EntryFormat returns the timestamp rendering configured for entry tables.
func (a *App) EntryFormat() styles.EntryFormat {
	return styles.EntryFormat{
		DateLayout: a.Config.Display.DateFormat,
		LocalTime:  a.Config.Display.LocalTime,
	}
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
