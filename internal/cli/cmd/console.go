package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/lruconsole/internal/cli/model"
	"github.com/bnema/lruconsole/internal/infrastructure/config"
	"github.com/bnema/lruconsole/internal/logging"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive cache console",
	Long: `Open the interactive console (also the default when no subcommand is given).

The entry table refreshes every poll.interval_ms while the cache holds data and
goes idle when it is empty; any lookup, insert or delete refreshes it at once.
Edits to the config file apply the new poll interval without a restart.

Logs go to the rotated file under the XDG state directory, never to the
terminal. When metrics.listen_addr is set, Prometheus metrics are served on
/metrics for the lifetime of the console.`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(app.Ctx())
	defer cancel()
	log := logging.FromContext(ctx)

	inbox := model.NewInbox()
	unsubscribe := app.Store.Subscribe(inbox.PublishSnapshot)
	defer unsubscribe()

	poller := app.NewPoller()
	defer poller.Stop()

	app.ConfigManager.OnConfigChange(func(cfg *config.Config) {
		poller.SetInterval(cfg.Poll.Interval())
		log.Info().Dur("interval", cfg.Poll.Interval()).Msg("config reloaded")
	})
	if err := app.ConfigManager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	if addr := app.Config.Metrics.ListenAddr; addr != "" {
		go func() {
			if err := app.Metrics.Serve(ctx, addr); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	m := model.NewConsoleModel(ctx, app.Theme, model.ConsoleConfig{
		Dispatcher: app.NewDispatcher(inbox),
		Store:      app.Store,
		State:      app.State,
		Inbox:      inbox,
		Poll:       poller,
		Format:     app.EntryFormat(),
		BaseURL:    app.Client.BaseURL(),
	})

	// The first fetch runs behind the UI so a slow service does not block it.
	go func() {
		if err := poller.Start(ctx); err != nil {
			log.Warn().Err(err).Msg("initial fetch failed")
		}
	}()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}
