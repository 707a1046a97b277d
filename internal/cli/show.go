package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/models"
	"github.com/jakoblorz/go-descriptor/internal/tui"
	"github.com/spf13/cobra"
)

// ShowCommand handles the show command
type ShowCommand struct {
	fs       filesystem.FileSystem
	settings *settings
	format   string
}

// ShowOutput is the JSON form of a loaded descriptor
type ShowOutput struct {
	Source       string                         `json:"source"`
	Project      ProjectInfo                    `json:"project"`
	Repositories []string                       `json:"repositories"`
	Plugins      []string                       `json:"plugins"`
	Dependencies map[string][]models.Coordinate `json:"dependencies"`
	TestPlatform string                         `json:"testPlatform,omitempty"`
}

// ProjectInfo is the project section of ShowOutput
type ProjectInfo struct {
	Group       string `json:"group"`
	Version     string `json:"version"`
	Snapshot    bool   `json:"snapshot"`
	Toolchain   int    `json:"toolchain"`
	Description string `json:"description,omitempty"`
}

// NewShowCommand creates a new show command
func NewShowCommand(fs filesystem.FileSystem, s *settings) *cobra.Command {
	cmd := &ShowCommand{fs: fs, settings: s}

	cobraCmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print a loaded descriptor",
		Long: `Loads a descriptor and prints the project, repositories, plugins,
dependencies by scope and the test platform. Versions supplied by platforms
are shown resolved.`,
		Example: `  # Human readable
  descriptor show

  # JSON for scripting
  descriptor show --format json > descriptor.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.format, "format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the show command
func (c *ShowCommand) Run(cmd *cobra.Command, args []string) error {
	if c.format != "text" && c.format != "json" {
		return fmt.Errorf("unknown format: %s (must be text or json)", c.format)
	}

	path, err := resolveDescriptor(c.fs, c.settings.config(), args)
	if err != nil {
		return err
	}

	d, err := newStore(c.fs, cmd).Load(path)
	if err != nil {
		return err
	}

	if c.format == "json" {
		return c.outputJSON(cmd.OutOrStdout(), d)
	}
	return c.outputText(cmd.OutOrStdout(), d)
}

// NewShowOutput converts a descriptor into its JSON form
func NewShowOutput(d *models.Descriptor) ShowOutput {
	deps := make(map[string][]models.Coordinate, len(models.Scopes))
	for _, scope := range models.Scopes {
		coords := d.Dependencies.Scoped(scope)
		if coords == nil {
			coords = []models.Coordinate{}
		}
		deps[scope.String()] = coords
	}

	plugins := d.Plugins
	if plugins == nil {
		plugins = []string{}
	}

	return ShowOutput{
		Source: d.Source,
		Project: ProjectInfo{
			Group:       d.Project.Group(),
			Version:     d.Project.Version(),
			Snapshot:    d.Project.IsSnapshot(),
			Toolchain:   d.Project.Toolchain(),
			Description: d.Project.Description(),
		},
		Repositories: d.Repositories,
		Plugins:      plugins,
		Dependencies: deps,
		TestPlatform: d.Dependencies.TestPlatform(),
	}
}

func (c *ShowCommand) outputJSON(out io.Writer, d *models.Descriptor) error {
	data, err := json.MarshalIndent(NewShowOutput(d), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}

func (c *ShowCommand) outputText(out io.Writer, d *models.Descriptor) error {
	var b strings.Builder

	title := fmt.Sprintf("%s:%s", d.Project.Group(), d.Project.Version())
	if d.Project.IsSnapshot() {
		title += " (snapshot)"
	}
	b.WriteString(tui.TitleStyle.Render(title))
	b.WriteString("\n")
	if desc := d.Project.Description(); desc != "" {
		b.WriteString(tui.DescStyle.Render(desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Toolchain:      %d\n", d.Project.Toolchain())
	fmt.Fprintf(&b, "Repositories:   %s\n", strings.Join(d.Repositories, ", "))
	fmt.Fprintf(&b, "Plugins:        %s\n", orNone(strings.Join(d.Plugins, ", ")))
	fmt.Fprintf(&b, "Test platform:  %s\n", orNone(d.Dependencies.TestPlatform()))

	for _, scope := range models.Scopes {
		coords := d.Dependencies.Scoped(scope)

		b.WriteString("\n")
		b.WriteString(tui.HeaderStyle.Render(fmt.Sprintf("%s (%d)", scope, len(coords))))
		b.WriteString("\n")

		if len(coords) == 0 {
			b.WriteString(tui.SubtleStyle.Render("  none"))
			b.WriteString("\n")
			continue
		}

		for i, coord := range coords {
			prefix := "├─"
			if i == len(coords)-1 {
				prefix = "└─"
			}

			line := fmt.Sprintf("%s %s", prefix, coord.String())
			switch {
			case coord.IsPlatform():
				line += tui.SubtleStyle.Render(" [platform]")
			case coord.ManagedBy != "":
				line += tui.SubtleStyle.Render(" (managed by " + coord.ManagedBy + ")")
			}
			if models.IsDynamicVersion(coord.Version) {
				line += tui.WarningStyle.Render(" dynamic")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	_, err := fmt.Fprint(out, b.String())
	return err
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
