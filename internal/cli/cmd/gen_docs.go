package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bnema/lruconsole/internal/application/usecase"
	"github.com/bnema/lruconsole/internal/domain/entity"
	"github.com/bnema/lruconsole/internal/infrastructure/config"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	docsFormatMan      = "man"
	docsFormatMarkdown = "markdown"

	configManPage = "lruconsole-config.5"
	configMDPage  = "lruconsole-config.md"
)

var (
	genDocsOutputDir string
	genDocsFormat    string
)

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Generate man pages or markdown for lruconsole",
	Long: `Write reference documentation for every lruconsole command, plus a
config file reference listing each key of config.toml with its default.

Man pages go to $XDG_DATA_HOME/man/man1 (commands) and man5 (config file)
unless --output is given, in which case everything lands in that directory.

Examples:
  lruconsole gen-docs                       # lruconsole(1), lruconsole-list(1), lruconsole-config(5), ...
  lruconsole gen-docs --format markdown     # ./docs/*.md
  lruconsole gen-docs -o ./dist/man`,
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE:   runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "output directory")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", docsFormatMan, "output format: man, markdown")
}

// docsTarget says where command pages and the config page are written.
type docsTarget struct {
	format    string
	cmdDir    string
	configDir string
}

func resolveDocsTarget(format, output string) (docsTarget, error) {
	switch format {
	case docsFormatMan, docsFormatMarkdown:
	default:
		return docsTarget{}, fmt.Errorf("unsupported format %q (use: man, markdown)", format)
	}

	if output != "" {
		return docsTarget{format: format, cmdDir: output, configDir: output}, nil
	}
	if format == docsFormatMarkdown {
		return docsTarget{format: format, cmdDir: "docs", configDir: "docs"}, nil
	}

	man1, err := config.GetManDir()
	if err != nil {
		return docsTarget{}, fmt.Errorf("resolve man directory: %w", err)
	}
	return docsTarget{
		format:    format,
		cmdDir:    man1,
		configDir: filepath.Join(filepath.Dir(man1), "man5"),
	}, nil
}

func runGenDocs(cmd *cobra.Command, _ []string) error {
	target, err := resolveDocsTarget(genDocsFormat, genDocsOutputDir)
	if err != nil {
		return err
	}
	return writeDocs(cmd.Context(), cmd.Root(), target, cmd.OutOrStdout())
}

func writeDocs(ctx context.Context, root *cobra.Command, target docsTarget, out io.Writer) error {
	for _, dir := range []string{target.cmdDir, target.configDir} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	keys, err := configReferenceKeys(ctx)
	if err != nil {
		return err
	}
	reference := configReferenceMarkdown(keys)

	root.DisableAutoGenTag = true

	var configPath string
	switch target.format {
	case docsFormatMan:
		date := docsDate()
		header := &doc.GenManHeader{
			Title:   "LRUCONSOLE",
			Section: "1",
			Date:    &date,
			Source:  "lruconsole " + buildInfo.Version,
			Manual:  "lruconsole Manual",
		}
		if err := doc.GenManTree(root, header, target.cmdDir); err != nil {
			return fmt.Errorf("generate man pages: %w", err)
		}
		configPath = filepath.Join(target.configDir, configManPage)
		if err := os.WriteFile(configPath, configManual(reference, date), filePerm); err != nil {
			return fmt.Errorf("write %s: %w", configPath, err)
		}
	case docsFormatMarkdown:
		if err := doc.GenMarkdownTree(root, target.cmdDir); err != nil {
			return fmt.Errorf("generate markdown docs: %w", err)
		}
		configPath = filepath.Join(target.configDir, configMDPage)
		if err := os.WriteFile(configPath, []byte("# lruconsole config.toml\n\n"+reference), filePerm); err != nil {
			return fmt.Errorf("write %s: %w", configPath, err)
		}
	}

	fmt.Fprintf(out, "Wrote %s docs to %s\n", target.format, target.cmdDir)
	fmt.Fprintf(out, "Wrote config reference to %s\n", configPath)
	if target.format == docsFormatMan {
		fmt.Fprintln(out, "Run 'mandb' if 'man lruconsole' doesn't work immediately.")
	}
	return nil
}

func configReferenceKeys(ctx context.Context) ([]entity.ConfigKeyInfo, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	uc := usecase.NewGetConfigSchemaUseCase(config.NewSchemaProvider())
	result, err := uc.Execute(ctx, usecase.GetConfigSchemaInput{})
	if err != nil {
		return nil, fmt.Errorf("load config keys: %w", err)
	}
	return result.Keys, nil
}

// configReferenceMarkdown lists keys by section, in provider order.
func configReferenceMarkdown(keys []entity.ConfigKeyInfo) string {
	var b strings.Builder
	section := ""
	for _, k := range keys {
		if k.Section != section {
			section = k.Section
			fmt.Fprintf(&b, "## %s\n\n", strings.ToUpper(section))
		}
		def := k.Default
		if def == "" {
			def = `""`
		}
		fmt.Fprintf(&b, "**%s** (%s, default `%s`)\n", k.Key, k.Type, def)
		fmt.Fprintf(&b, ": %s.", strings.TrimSuffix(k.Description, "."))
		switch {
		case len(k.Values) > 0:
			fmt.Fprintf(&b, " One of: %s.", strings.Join(k.Values, ", "))
		case k.Range != "":
			fmt.Fprintf(&b, " Range: %s.", k.Range)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func configManual(reference string, date time.Time) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%% %q %q %q %q %q\n", "LRUCONSOLE-CONFIG", "5",
		date.Format("Jan 2006"), "lruconsole "+buildInfo.Version, "lruconsole Manual")
	buf.WriteString("# NAME\n\nlruconsole-config - lruconsole configuration file\n\n")
	buf.WriteString("# SYNOPSIS\n\n$XDG_CONFIG_HOME/lruconsole/config.toml\n\n")
	buf.WriteString("# DESCRIPTION\n\n")
	buf.WriteString("Keys are grouped in TOML tables. Each key can be overridden by an ")
	buf.WriteString("LRUCONSOLE_ environment variable built from its dotted path, ")
	buf.WriteString("for example LRUCONSOLE_POLL_INTERVAL_MS.\n\n")
	// Config sections render as subsections of KEYS.
	buf.WriteString("# KEYS\n\n")
	buf.WriteString(reference)
	buf.WriteString("# SEE ALSO\n\nlruconsole(1), lruconsole-config(1)\n")
	return md2man.Render(buf.Bytes())
}

// docsDate uses the build date when it was stamped, for reproducible pages.
func docsDate() time.Time {
	if t, err := time.Parse(time.RFC3339, buildInfo.BuildDate); err == nil {
		return t
	}
	return time.Now()
}
