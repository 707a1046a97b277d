package cli

import (
	"fmt"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/jakoblorz/go-descriptor/internal/descriptor"
	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/models"
	"github.com/jakoblorz/go-descriptor/internal/tui"
	"github.com/spf13/cobra"
)

const defaultToolchain = 17

// InitCommand handles the init command
type InitCommand struct {
	fs          filesystem.FileSystem
	settings    *settings
	group       string
	version     string
	description string
	toolchain   int
	format      string
	junit       bool
	force       bool
}

// NewInitCommand creates a new init command
func NewInitCommand(fs filesystem.FileSystem, s *settings) *cobra.Command {
	cmd := &InitCommand{fs: fs, settings: s}

	cobraCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter descriptor",
		Long: `Writes a new descriptor into the working directory. Fields that are
not given as flags are filled with defaults.`,
		Example: `  # TOML descriptor with defaults
  descriptor init --group com.acme

  # YAML descriptor testing with JUnit 5
  descriptor init --group com.acme --format yaml --junit`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.group, "group", "", "Project group (default org.example)")
	cobraCmd.Flags().StringVar(&cmd.version, "version", "", "Project version (default 0.1.0-SNAPSHOT)")
	cobraCmd.Flags().StringVar(&cmd.description, "description", "", "Project description")
	cobraCmd.Flags().IntVar(&cmd.toolchain, "toolchain", 0, fmt.Sprintf("Java toolchain version (default %d)", defaultToolchain))
	cobraCmd.Flags().StringVar(&cmd.format, "format", string(descriptor.FormatTOML), "File format: toml, yaml, json or markdown")
	cobraCmd.Flags().BoolVar(&cmd.junit, "junit", false, "Add the JUnit 5 BOM, junit-jupiter and the junit-platform test platform")
	cobraCmd.Flags().BoolVar(&cmd.force, "force", false, "Overwrite an existing descriptor")

	return cobraCmd
}

// Run executes the init command
func (c *InitCommand) Run(cmd *cobra.Command, args []string) error {
	format, err := descriptor.ParseFormat(c.format)
	if err != nil {
		return err
	}

	cwd, err := c.fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	if !c.force {
		for _, name := range descriptor.DefaultFileNames {
			if existing := filepath.Join(cwd, name); c.fs.Exists(existing) {
				return fmt.Errorf("descriptor already exists: %s (use --force to overwrite)", existing)
			}
		}
	}

	doc, err := c.document()
	if err != nil {
		return err
	}

	path := filepath.Join(cwd, format.DefaultFileName())
	if err := newStore(c.fs, cmd).Write(path, format, doc); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tui.SuccessStyle.Render("✓ Created"), path)
	return nil
}

// document builds the starter document from flags, filling the rest from
// defaultDocument
func (c *InitCommand) document() (*descriptor.Document, error) {
	doc := descriptor.Document{
		Project: descriptor.ProjectSection{
			Group:       c.group,
			Version:     c.version,
			Description: c.description,
		},
	}
	if c.toolchain != 0 {
		toolchain := c.toolchain
		doc.Toolchain.Version = &toolchain
	}

	if c.junit {
		doc.Dependency.Append(models.ScopeTest, descriptor.DependencyEntry{
			Coordinate: "org.junit:junit-bom:5.10.0",
			Kind:       string(models.KindPlatform),
		})
		doc.Dependency.Append(models.ScopeTest, descriptor.DependencyEntry{
			Coordinate: "org.junit.jupiter:junit-jupiter",
		})
		doc.Test.Platform = models.EngineJUnitPlatform
	}

	if err := mergo.Merge(&doc, defaultDocument()); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	return &doc, nil
}

func defaultDocument() descriptor.Document {
	toolchain := defaultToolchain
	return descriptor.Document{
		Project: descriptor.ProjectSection{
			Group:   "org.example",
			Version: "0.1.0-SNAPSHOT",
		},
		Toolchain:    descriptor.ToolchainSection{Version: &toolchain},
		Repositories: []string{models.DefaultRepository},
		Plugins:      []string{"java"},
	}
}
