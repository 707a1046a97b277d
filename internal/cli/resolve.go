package cli

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-descriptor/internal/config"
	"github.com/jakoblorz/go-descriptor/internal/descriptor"
	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/logging"
	"github.com/jakoblorz/go-descriptor/internal/workspace"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func loggerFor(cmd *cobra.Command) zerolog.Logger {
	if cmd == nil {
		return log.Logger
	}
	return *logging.FromContext(cmd.Context())
}

func newStore(fs filesystem.FileSystem, cmd *cobra.Command) *descriptor.Store {
	return descriptor.NewStore(fs, descriptor.WithLogger(loggerFor(cmd)))
}

// resolveDescriptor picks the descriptor a command works on: the path
// argument, then the configured default, then the nearest descriptor
// upward from the working directory.
func resolveDescriptor(fs filesystem.FileSystem, cfg *config.Config, args []string) (string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else if cfg.Descriptor != "" {
		path = cfg.Descriptor
	}

	resolved, err := workspace.New(fs).Resolve(path)
	if err != nil {
		return "", fmt.Errorf("failed to find descriptor: %w", err)
	}
	return resolved, nil
}

// absPath makes a user supplied path absolute against the working directory
func absPath(fs filesystem.FileSystem, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	cwd, err := fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(cwd, path), nil
}
