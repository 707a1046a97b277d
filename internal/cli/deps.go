package cli

import (
	"fmt"

	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/models"
	"github.com/spf13/cobra"
)

// DepsCommand handles the deps command
type DepsCommand struct {
	fs        filesystem.FileSystem
	settings  *settings
	scope     string
	classpath bool
}

// NewDepsCommand creates a new deps command
func NewDepsCommand(fs filesystem.FileSystem, s *settings) *cobra.Command {
	cmd := &DepsCommand{fs: fs, settings: s}

	cobraCmd := &cobra.Command{
		Use:   "deps [path]",
		Short: "List dependency coordinates",
		Long: `Lists the dependencies of a descriptor, one coordinate per line.

Without --scope every declared dependency is printed prefixed with its
scope. With --classpath the libraries visible on the scope's classpath are
printed instead: platforms are left out and the test classpath includes the
compile classpath.`,
		Example: `  # Everything that was declared
  descriptor deps

  # What the test runner sees
  descriptor deps --scope test --classpath`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.scope, "scope", "", "Only list one scope: compile or test")
	cobraCmd.Flags().BoolVar(&cmd.classpath, "classpath", false, "List the resolved classpath of --scope")

	return cobraCmd
}

// Run executes the deps command
func (c *DepsCommand) Run(cmd *cobra.Command, args []string) error {
	var scope models.Scope
	if c.scope != "" {
		parsed, err := models.ParseScope(c.scope)
		if err != nil {
			return err
		}
		scope = parsed
	}
	if c.classpath && scope == "" {
		return fmt.Errorf("--classpath requires --scope")
	}

	path, err := resolveDescriptor(c.fs, c.settings.config(), args)
	if err != nil {
		return err
	}

	d, err := newStore(c.fs, cmd).Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case c.classpath:
		for _, coord := range d.Dependencies.Classpath(scope) {
			_, _ = fmt.Fprintln(out, coord.String())
		}
	case scope != "":
		for _, coord := range d.Dependencies.Scoped(scope) {
			_, _ = fmt.Fprintln(out, coord.String())
		}
	default:
		for _, coord := range d.Dependencies.All() {
			_, _ = fmt.Fprintf(out, "%-8s %s\n", coord.Scope, coord.String())
		}
	}

	return nil
}
