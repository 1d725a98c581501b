package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/lruconsole/internal/application/usecase"
	"github.com/bnema/lruconsole/internal/cli/styles"
	"github.com/bnema/lruconsole/internal/infrastructure/config"
)

var (
	configForce       bool
	configKeysSection string
	configKeysJSON    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Inspect and initialize the lruconsole configuration file.

The file lives at $XDG_CONFIG_HOME/lruconsole/config.toml unless --config-dir
is given. Every key can also be set with an LRUCONSOLE_* environment variable,
for example LRUCONSOLE_REMOTE_BASE_URL or LRUCONSOLE_POLL_INTERVAL_MS.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after file, environment and flag overrides, as TOML.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long:  `Print a JSON schema for config.toml, usable by editors with TOML schema support.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigSchema,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every config key with its default",
	Long: `List configuration keys grouped by section, with type, default value and
accepted values or range.

Examples:
  lruconsole config keys
  lruconsole config keys --section poll
  lruconsole config keys --json`,
	Args: cobra.NoArgs,
	RunE: runConfigKeys,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configKeysCmd)
	configKeysCmd.Flags().StringVarP(&configKeysSection, "section", "s", "", "only keys of this section")
	configKeysCmd.Flags().BoolVar(&configKeysJSON, "json", false, "print keys as JSON")
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
}

// newConfigManager builds a manager without loading it, so the config
// subcommands still work when the file on disk is invalid.
func newConfigManager() (*config.Manager, error) {
	return config.NewManagerWithOptions(config.Options{ConfigDir: flagConfigDir})
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	m, err := newConfigManager()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), m.ConfigFile())
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	data, err := config.EncodeConfig(app.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Fprintln(cmd.ErrOrStderr(), renderer.RenderConfigInfo(app.ConfigManager.ConfigFile()))
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	renderer := styles.NewConfigRenderer(styles.NewTheme(nil))

	m, err := newConfigManager()
	if err != nil {
		return err
	}

	path, err := m.WriteDefault(configForce)
	switch {
	case errors.Is(err, config.ErrConfigExists):
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderExists(path))
		return nil
	case err != nil:
		fmt.Fprintln(cmd.ErrOrStderr(), renderer.RenderError(err))
		return errReported
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderWritten(path))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	data, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	uc := usecase.NewGetConfigSchemaUseCase(config.NewSchemaProvider())
	result, err := uc.Execute(cmd.Context(), usecase.GetConfigSchemaInput{Section: configKeysSection})
	if err != nil {
		return err
	}

	renderer := styles.NewConfigSchemaRenderer(styles.NewTheme(nil))
	if configKeysJSON {
		out, err := renderer.RenderJSON(result.Keys)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(result.Keys))
	return nil
}
