package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/models"
	"github.com/spf13/cobra"
)

// TreeCommand handles the tree command
type TreeCommand struct {
	fs       filesystem.FileSystem
	settings *settings
	format   string
}

// PlatformGroup lists the libraries whose version one platform supplies.
// Platform is empty for libraries that declare their own version.
type PlatformGroup struct {
	Platform  string   `json:"platform"`
	Libraries []string `json:"libraries"`
}

// ScopeTree groups the libraries of one scope by the platform managing them
type ScopeTree struct {
	Scope  string          `json:"scope"`
	Groups []PlatformGroup `json:"groups"`
}

// TreeOutput represents the complete tree output
type TreeOutput struct {
	Scopes []ScopeTree `json:"scopes"`
}

// NewTreeCommand creates a new tree command
func NewTreeCommand(fs filesystem.FileSystem, s *settings) *cobra.Command {
	cmd := &TreeCommand{fs: fs, settings: s}

	cobraCmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Show which platform manages each dependency",
		Long: `Groups the libraries of every scope by the platform that supplies
their version. Libraries that declare their own version are listed last.

This is useful for checking which BOM a version comes from before bumping
or removing a platform.`,
		Example: `  # Show tree in human-readable format
  descriptor tree

  # Output JSON for scripting
  descriptor tree --format json > tree.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.format, "format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the tree command
func (c *TreeCommand) Run(cmd *cobra.Command, args []string) error {
	if c.format != "text" && c.format != "json" {
		return fmt.Errorf("unknown format %q (expected text or json)", c.format)
	}

	path, err := resolveDescriptor(c.fs, c.settings.config(), args)
	if err != nil {
		return err
	}

	d, err := newStore(c.fs, cmd).Load(path)
	if err != nil {
		return err
	}

	output := BuildTree(d.Dependencies)

	if c.format == "json" {
		return outputTreeJSON(cmd.OutOrStdout(), output)
	}
	return outputTreeText(cmd.OutOrStdout(), output)
}

// BuildTree groups each scope's libraries by the platform managing them.
// Platforms come first in declaration order, unmanaged libraries last.
func BuildTree(deps *models.DependencySet) TreeOutput {
	output := TreeOutput{Scopes: make([]ScopeTree, 0, len(models.Scopes))}

	for _, scope := range models.Scopes {
		declared := deps.Scoped(scope)
		if len(declared) == 0 {
			continue
		}

		var order []string
		groups := make(map[string]*PlatformGroup)
		group := func(platform string) *PlatformGroup {
			if g, ok := groups[platform]; ok {
				return g
			}
			g := &PlatformGroup{Platform: platform, Libraries: make([]string, 0)}
			groups[platform] = g
			order = append(order, platform)
			return g
		}

		for _, c := range deps.Platforms(scope) {
			group(c.String())
		}

		// compile platforms also manage test libraries
		platforms := make(map[models.Scope]map[string]string)
		for _, c := range append(deps.Platforms(models.ScopeCompile), deps.Platforms(scope)...) {
			if platforms[c.Scope] == nil {
				platforms[c.Scope] = make(map[string]string)
			}
			platforms[c.Scope][c.Key()] = c.String()
		}

		var unmanaged []string
		for _, c := range declared {
			if c.IsPlatform() {
				continue
			}
			if c.ManagedBy == "" {
				unmanaged = append(unmanaged, c.String())
				continue
			}
			g := group(platforms[c.ManagedScope][c.ManagedBy])
			g.Libraries = append(g.Libraries, c.String())
		}

		tree := ScopeTree{Scope: scope.String(), Groups: make([]PlatformGroup, 0, len(order)+1)}
		for _, platform := range order {
			tree.Groups = append(tree.Groups, *groups[platform])
		}
		if len(unmanaged) > 0 {
			sort.Strings(unmanaged)
			tree.Groups = append(tree.Groups, PlatformGroup{Libraries: unmanaged})
		}

		output.Scopes = append(output.Scopes, tree)
	}

	return output
}

func outputTreeText(w io.Writer, output TreeOutput) error {
	for i, scope := range output.Scopes {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "%s:\n", scope.Scope)

		for j, group := range scope.Groups {
			isLast := j == len(scope.Groups)-1
			prefix, indent := "├─", "│  "
			if isLast {
				prefix, indent = "└─", "   "
			}

			label := group.Platform
			if label == "" {
				label = "(own versions)"
			}
			_, _ = fmt.Fprintf(w, "%s %s (%d)\n", prefix, label, len(group.Libraries))

			for k, lib := range group.Libraries {
				libPrefix := "├─"
				if k == len(group.Libraries)-1 {
					libPrefix = "└─"
				}
				_, _ = fmt.Fprintf(w, "%s%s %s\n", indent, libPrefix, lib)
			}
		}
	}

	return nil
}

func outputTreeJSON(w io.Writer, output TreeOutput) error {
	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}
