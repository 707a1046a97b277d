package cli

import (
	"fmt"

	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/models"
	"github.com/jakoblorz/go-descriptor/internal/tui"
	"github.com/jakoblorz/go-descriptor/internal/workspace"
	"github.com/spf13/cobra"
)

// ValidateCommand handles the validate command
type ValidateCommand struct {
	fs       filesystem.FileSystem
	settings *settings
	all      bool
}

// NewValidateCommand creates a new validate command
func NewValidateCommand(fs filesystem.FileSystem, s *settings) *cobra.Command {
	cmd := &ValidateCommand{fs: fs, settings: s}

	cobraCmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Check that a descriptor loads",
		Long: `Loads a descriptor and reports the first problem found.

Without a path the nearest descriptor from the working directory upward is
used. With --all every descriptor in the repository is checked, skipping
files excluded by the root .gitignore.`,
		Example: `  # Validate the nearest descriptor
  descriptor validate

  # Validate every descriptor in the repository
  descriptor validate --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.all, "all", false, "Validate every descriptor in the workspace")

	return cobraCmd
}

// Run executes the validate command
func (c *ValidateCommand) Run(cmd *cobra.Command, args []string) error {
	if c.all {
		if len(args) > 0 {
			return fmt.Errorf("--all cannot be combined with a path")
		}
		return c.validateAll(cmd)
	}

	path, err := resolveDescriptor(c.fs, c.settings.config(), args)
	if err != nil {
		return err
	}

	d, err := newStore(c.fs, cmd).Load(path)
	if err != nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), tui.ErrorStyle.Render("✗ "+path))
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), describeValid(path, d))
	return nil
}

func (c *ValidateCommand) validateAll(cmd *cobra.Command) error {
	ws := workspace.New(c.fs)
	if err := ws.Detect(); err != nil {
		return fmt.Errorf("failed to detect workspace: %w", err)
	}

	paths, err := ws.Descriptors()
	if err != nil {
		return err
	}

	log := loggerFor(cmd)
	store := newStore(c.fs, cmd)
	out := cmd.OutOrStdout()

	failed := 0
	for _, path := range paths {
		rel := ws.Rel(path)

		d, err := store.Load(path)
		if err != nil {
			failed++
			log.Debug().Stack().Err(err).Str("path", path).Msg("descriptor is invalid")
			_, _ = fmt.Fprintf(out, "%s\n  %s\n", tui.ErrorStyle.Render("✗ "+rel), err)
			continue
		}
		_, _ = fmt.Fprintln(out, describeValid(rel, d))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d descriptors are invalid", failed, len(paths))
	}

	_, _ = fmt.Fprintln(out, tui.SubtleStyle.Render(fmt.Sprintf("%d descriptor(s) valid", len(paths))))
	return nil
}

func describeValid(path string, d *models.Descriptor) string {
	summary := fmt.Sprintf("%s %s (%s:%s, %d dependencies",
		tui.SuccessStyle.Render("✓"), path, d.Project.Group(), d.Project.Version(), d.Dependencies.Len())
	if platform := d.Dependencies.TestPlatform(); platform != "" {
		summary += ", tests on " + platform
	}
	return summary + ")"
}
