package cli

import (
	"fmt"

	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/models"
	"github.com/jakoblorz/go-descriptor/internal/tui/add"
	"github.com/spf13/cobra"
)

// AddCommand handles the add command
type AddCommand struct {
	fs       filesystem.FileSystem
	settings *settings
	scope    string
	platform bool
	file     string
}

// NewAddCommand creates a new add command
func NewAddCommand(fs filesystem.FileSystem, s *settings) *cobra.Command {
	cmd := &AddCommand{fs: fs, settings: s}

	cobraCmd := &cobra.Command{
		Use:   "add [coordinate]",
		Short: "Add a dependency to a descriptor",
		Long: `Adds a namespace:artifact[:version] coordinate to a descriptor file.

The version may be left out when a platform of the same namespace manages
it. The updated descriptor is validated before it is written, so a
conflicting or unmanaged dependency leaves the file untouched. Without a
coordinate an interactive form asks for one.`,
		Example: `  # Add a compile dependency
  descriptor add com.google.guava:guava:33.0.0-jre

  # Add a BOM and a managed test dependency
  descriptor add org.junit:junit-bom:5.10.0 --scope test --platform
  descriptor add org.junit.jupiter:junit-jupiter --scope test`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.scope, "scope", string(models.ScopeCompile), "Scope: compile or test")
	cobraCmd.Flags().BoolVar(&cmd.platform, "platform", false, "Declare the coordinate as a platform (BOM)")
	cobraCmd.Flags().StringVar(&cmd.file, "file", "", "Descriptor file to edit (default: nearest descriptor)")

	return cobraCmd
}

// Run executes the add command
func (c *AddCommand) Run(cmd *cobra.Command, args []string) error {
	var pathArgs []string
	if c.file != "" {
		pathArgs = []string{c.file}
	}

	path, err := resolveDescriptor(c.fs, c.settings.config(), pathArgs)
	if err != nil {
		return err
	}

	flow := add.NewFlow(newStore(c.fs, cmd), path)

	var result *add.Result
	if len(args) == 0 {
		result, err = flow.Run()
		if err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
	} else {
		scope, err := models.ParseScope(c.scope)
		if err != nil {
			return err
		}

		result, err = flow.Apply(add.Answers{
			Scope:      scope,
			Coordinate: args[0],
			Platform:   c.platform,
		})
		if err != nil {
			return err
		}
	}

	if result == nil {
		return nil
	}

	logger := loggerFor(cmd)
	logger.Info().
		Str("path", path).
		Str("coordinate", result.Coordinate.String()).
		Msg("dependency added")

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), add.RenderSuccess(result))

	return nil
}
