package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/lruconsole/internal/cli"
	"github.com/bnema/lruconsole/internal/cli/styles"
)

var deleteCmd = &cobra.Command{
	Use:     "delete KEY...",
	Aliases: []string{"del", "rm"},
	Short:   "Remove one or more keys",
	Long: `Remove each key from the cache. Keys are deleted concurrently and reported
in argument order; the command exits non-zero when any delete failed.

Examples:
  lruconsole delete session:1
  lruconsole rm a b c`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	dispatcher := app.NewDispatcher(cli.NewWriterNotifier(os.Stderr, app.Theme, true))

	errs := make([]error, len(args))
	g, gctx := errgroup.WithContext(app.Ctx())
	g.SetLimit(maxParallelKeys)
	for i, key := range args {
		g.Go(func() error {
			errs[i] = dispatcher.Delete(gctx, key)
			return nil
		})
	}
	_ = g.Wait()

	renderer := styles.NewCacheRenderer(app.Theme)
	failed := false
	for i, key := range args {
		if errs[i] != nil {
			failed = true
			fmt.Fprintln(cmd.ErrOrStderr(), renderer.RenderFailure(key, errs[i]))
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderDeleted(key))
	}
	if failed {
		return errReported
	}
	return nil
}
