package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lruconsole/internal/application/port"
	"github.com/bnema/lruconsole/internal/cli"
	"github.com/bnema/lruconsole/internal/cli/styles"
	"github.com/bnema/lruconsole/internal/domain/build"
	"github.com/bnema/lruconsole/internal/infrastructure/snapshot"
)

func TestNewApp_DefaultsAndFlagOverride(t *testing.T) {
	dir := t.TempDir()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-url", "", "")
	flags.Int("page-size", 0, "")
	require.NoError(t, flags.Set("base-url", "http://cache.test:9000/"))

	app, err := cli.NewApp(cli.Options{
		ConfigDir: dir,
		Flags: map[string]*pflag.Flag{
			"remote.base_url":   flags.Lookup("base-url"),
			"display.page_size": flags.Lookup("page-size"),
		},
		BuildInfo: build.Info{Version: "1.0.0"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Equal(t, "http://cache.test:9000", app.Client.BaseURL())
	assert.Equal(t, 5, app.State.Pagination().PageSize, "unset flag leaves the default")
	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.True(t, app.Store.Current().IsEmpty())
	assert.NotNil(t, app.Ctx())

	poller := app.NewPoller()
	assert.Equal(t, app.Config.Poll.Interval(), poller.Interval())
	assert.Equal(t, snapshot.StateDormant, poller.State())

	assert.NotNil(t, app.NewDispatcher(cli.NewWriterNotifier(&bytes.Buffer{}, app.Theme, false)))
	assert.Equal(t, app.Config.Display.DateFormat, app.EntryFormat().DateLayout)
}

func TestNewApp_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[display]\npage_size = 0\n"), 0o644))

	_, err := cli.NewApp(cli.Options{ConfigDir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display.page_size")
}

func TestWriterNotifier(t *testing.T) {
	theme := styles.NewTheme(nil)
	var buf bytes.Buffer

	n := cli.NewWriterNotifier(&buf, theme, false)
	n.Notify(context.Background(), port.NotificationSuccess, "Value set successfully")
	assert.Contains(t, buf.String(), "Value set successfully")

	buf.Reset()
	quiet := cli.NewWriterNotifier(&buf, theme, true)
	quiet.Notify(context.Background(), port.NotificationSuccess, "hidden")
	assert.Empty(t, buf.String())
	quiet.Notify(context.Background(), port.NotificationError, "Error setting value")
	assert.Contains(t, buf.String(), "Error setting value")
}

func TestTerminalWidthFallback(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, 77, cli.TerminalWidth(f.Fd(), 77))
}
