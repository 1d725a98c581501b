package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/lruconsole/internal/application/usecase"
	"github.com/bnema/lruconsole/internal/cli"
	"github.com/bnema/lruconsole/internal/cli/styles"
	"github.com/bnema/lruconsole/internal/domain/entity"
)

// maxParallelKeys bounds concurrent requests for multi-key commands.
const maxParallelKeys = 4

var getCmd = &cobra.Command{
	Use:   "get KEY...",
	Short: "Look up one or more keys",
	Long: `Query the service for each key and print its value.

Keys are looked up concurrently and printed in argument order. The command
exits non-zero when any key is missing or its lookup failed.

Examples:
  lruconsole get session:1
  lruconsole get a b c`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

type lookupOutcome struct {
	result entity.LookupResult
	err    error
}

func runGet(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()
	dispatcher := app.NewDispatcher(cli.NewWriterNotifier(os.Stderr, app.Theme, true))

	outcomes := make([]lookupOutcome, len(args))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelKeys)
	for i, key := range args {
		g.Go(func() error {
			res, err := dispatcher.Lookup(gctx, key)
			outcomes[i] = lookupOutcome{result: res, err: err}
			return nil
		})
	}
	_ = g.Wait()

	renderer := styles.NewCacheRenderer(app.Theme)
	out := cmd.OutOrStdout()
	failed := false
	for i, o := range outcomes {
		switch {
		case o.err == nil:
			fmt.Fprintln(out, renderer.RenderLookup(o.result))
		case errors.Is(o.err, usecase.ErrKeyNotFound):
			failed = true
			fmt.Fprintln(out, renderer.RenderLookup(entity.LookupResult{Key: args[i]}))
		default:
			failed = true
			fmt.Fprintln(cmd.ErrOrStderr(), renderer.RenderFailure(args[i], o.err))
		}
	}
	if failed {
		return errReported
	}
	return nil
}
