package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/lruconsole/internal/application/usecase"
	"github.com/bnema/lruconsole/internal/cli"
	"github.com/bnema/lruconsole/internal/cli/styles"
)

const fallbackTermWidth = 100

var (
	listPage int
	listJSON bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print one page of cache entries",
	Long: `Fetch the full entry list once and print one page of it, in service order.

A page past the end prints "No data".

Examples:
  lruconsole list                 # First page
  lruconsole list --page 3        # Third page
  lruconsole list --json          # Page entries as JSON`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number, starting at 1")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print entries as JSON")
}

func runList(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	if listPage < 1 {
		return fmt.Errorf("--page must be at least 1, got %d", listPage)
	}

	snap, err := app.Store.Refresh(app.Ctx())
	if err != nil {
		return err
	}
	app.State.GoToPage(listPage)
	view := usecase.NewPageView(snap, app.State.Pagination())

	out := cmd.OutOrStdout()
	if listJSON {
		return writeEntriesJSON(out, view)
	}

	width := cli.TerminalWidth(os.Stdout.Fd(), fallbackTermWidth)
	fmt.Fprintln(out, renderPage(app.Theme, app.EntryFormat(), app.Client.BaseURL(), view, width))
	return nil
}

type pageJSON struct {
	Page      int         `json:"page"`
	PageSize  int         `json:"page_size"`
	PageCount int         `json:"page_count"`
	Total     int         `json:"total"`
	Entries   []entryJSON `json:"entries"`
}

type entryJSON struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	Expiration string `json:"expiration,omitempty"`
}

func writeEntriesJSON(w io.Writer, view usecase.PageView) error {
	doc := pageJSON{
		Page:      view.Page,
		PageSize:  view.PageSize,
		PageCount: view.PageCount,
		Total:     view.Total,
		Entries:   make([]entryJSON, 0, len(view.Entries)),
	}
	for _, e := range view.Entries {
		ej := entryJSON{Key: e.Key, Value: e.Value}
		if !e.Expiration.IsZero() {
			ej.Expiration = e.Expiration.Format(time.RFC3339Nano)
		}
		doc.Entries = append(doc.Entries, ej)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func renderPage(theme *styles.Theme, format styles.EntryFormat, baseURL string, view usecase.PageView, width int) string {
	r := styles.NewCacheRenderer(theme)
	header := r.RenderHeader(baseURL, view.Total, view.Page, view.PageCount)

	if view.IsEmpty() {
		return header + "\n\n  " + theme.RenderNoData()
	}

	rows := styles.EntryRows(view.Entries, format)
	table := styles.NewStyledTable(theme, styles.EntryTableColumns(width), rows, width, len(rows)+2)
	table.Blur()

	out := header + "\n\n" + table.View()
	if selector := theme.RenderPageSelector(view.Pages(), view.Page); selector != "" {
		out += "\n\n" + selector
	}
	return out
}
