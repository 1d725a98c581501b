// Package cmd provides Cobra CLI commands for lruconsole.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bnema/lruconsole/internal/cli"
	"github.com/bnema/lruconsole/internal/domain/build"
)

// errReported is returned when the failure was already printed per key.
var errReported = errors.New("one or more keys failed")

var (
	app       *cli.App
	buildInfo build.Info

	flagBaseURL   string
	flagPageSize  int
	flagConfigDir string

	rootCmd = &cobra.Command{
		Use:   "lruconsole",
		Short: "Operator console for a remote LRU cache service",
		Long: `lruconsole - watch and edit a remote LRU cache from the terminal.

Running without a subcommand opens the interactive console: a paginated view
of every cache entry that refreshes itself while the cache holds data, a
single-key lookup, and a form to insert entries with a time-to-live.

The one-shot subcommands (list, get, set, delete) talk to the same service
and are meant for scripts.

Examples:
  lruconsole                                   # Open the console
  lruconsole --base-url http://cache:8080      # Console against another service
  lruconsole list --page 2                     # Print the second page
  lruconsole set session:1 alice --ttl 60      # Insert an entry for a minute
  lruconsole get session:1 session:2           # Look up several keys`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runConsole,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			if !needsApp(cmd) {
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{
				Interactive: cmd == cmd.Root() || cmd == consoleCmd,
				Flags: map[string]*pflag.Flag{
					"remote.base_url":   cmd.Root().PersistentFlags().Lookup("base-url"),
					"display.page_size": cmd.Root().PersistentFlags().Lookup("page-size"),
				},
				ConfigDir: flagConfigDir,
				BuildInfo: buildInfo,
				Context:   cmd.Context(),
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", "", "cache service URL (overrides remote.base_url)")
	pf.IntVar(&flagPageSize, "page-size", 0, "entries per page (overrides display.page_size)")
	pf.StringVar(&flagConfigDir, "config-dir", "", "directory holding config.toml")
}

// needsApp reports whether cmd talks to the cache or reads the loaded config.
func needsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "gen-docs", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
		return false
	}
	if cmd.Parent() == configCmd && cmd != configShowCmd {
		return false
	}
	return true
}

// Execute runs the root command. SIGINT and SIGTERM cancel in-flight requests.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
