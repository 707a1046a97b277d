package cli

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/render"
	"github.com/jakoblorz/go-descriptor/internal/tui"
	"github.com/spf13/cobra"
)

// ExportCommand handles the export command
type ExportCommand struct {
	fs       filesystem.FileSystem
	settings *settings
	template string
	out      string
}

// NewExportCommand creates a new export command
func NewExportCommand(fs filesystem.FileSystem, s *settings) *cobra.Command {
	cmd := &ExportCommand{fs: fs, settings: s}

	cobraCmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Render a descriptor through a template",
		Long: fmt.Sprintf(`Renders a descriptor through a Go text/template with the sprig functions.

Built-in templates: %s. Any other value is read as a template file.`, strings.Join(render.Builtins(), ", ")),
		Example: `  # Kotlin DSL build script
  descriptor export --out build.gradle.kts

  # Markdown summary to stdout
  descriptor export --template summary

  # Custom template
  descriptor export --template ci/deps.tmpl`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.template, "template", "", "Built-in template name or template file (default from export.template)")
	cobraCmd.Flags().StringVar(&cmd.out, "out", "", "Write to a file instead of stdout")

	return cobraCmd
}

// Run executes the export command
func (c *ExportCommand) Run(cmd *cobra.Command, args []string) error {
	cfg := c.settings.config()

	name := c.template
	if name == "" {
		name = cfg.Export.Template
	}
	if !render.IsBuiltin(name) {
		abs, err := absPath(c.fs, name)
		if err != nil {
			return err
		}
		name = abs
	}

	tmpl, err := render.Lookup(c.fs, name)
	if err != nil {
		return err
	}

	path, err := resolveDescriptor(c.fs, cfg, args)
	if err != nil {
		return err
	}

	d, err := newStore(c.fs, cmd).Load(path)
	if err != nil {
		return err
	}

	output, err := render.Execute(tmpl, d)
	if err != nil {
		return err
	}

	if c.out == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), output)
		return err
	}

	outPath, err := absPath(c.fs, c.out)
	if err != nil {
		return err
	}
	if err := c.fs.WriteFile(outPath, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tui.SuccessStyle.Render("✓ Wrote"), outPath)
	return nil
}
