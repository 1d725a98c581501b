package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/lruconsole/internal/cli"
	"github.com/bnema/lruconsole/internal/cli/styles"
	"github.com/bnema/lruconsole/internal/domain/entity"
)

var setTTL int64

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE --ttl SECONDS",
	Short: "Insert or replace an entry",
	Long: `Insert KEY with VALUE, replacing any existing entry, expiring after --ttl seconds.

--ttl is required; 0 is passed through to the service unchanged.

Examples:
  lruconsole set session:1 alice --ttl 60
  lruconsole set greeting "hello world" --ttl 3600`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().Int64Var(&setTTL, "ttl", 0, "time-to-live in seconds")
}

func runSet(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	draft := entity.EntryDraft{Key: args[0], Value: args[1]}
	if cmd.Flags().Changed("ttl") {
		ttl := setTTL
		draft.Expiration = &ttl
	}

	// Validation and service errors are already printed by the notifier.
	dispatcher := app.NewDispatcher(cli.NewWriterNotifier(os.Stderr, app.Theme, true))
	if err := dispatcher.Set(app.Ctx(), draft); err != nil {
		return errReported
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.NewCacheRenderer(app.Theme).RenderSet(draft.Key, *draft.Expiration))
	return nil
}
