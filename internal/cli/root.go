package cli

import (
	"fmt"
	"os"

	"github.com/jakoblorz/go-descriptor/internal/config"
	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/logging"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	s := &settings{}

	rootCmd := &cobra.Command{
		Use:   "descriptor",
		Short: "Validate and edit JVM build descriptors",
		Long: `A CLI tool for declarative JVM build descriptors.

A descriptor names the project, its toolchain, its compile and test
dependencies and the test platform. This tool validates descriptors,
edits them and exports them as build scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(fs, cmd)
		},
	}

	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides log.level from "+config.FileName+")")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log JSON lines instead of console output")

	// Add subcommands
	rootCmd.AddCommand(NewValidateCommand(fs, s))
	rootCmd.AddCommand(NewShowCommand(fs, s))
	rootCmd.AddCommand(NewDepsCommand(fs, s))
	rootCmd.AddCommand(NewAddCommand(fs, s))
	rootCmd.AddCommand(NewInitCommand(fs, s))
	rootCmd.AddCommand(NewExportCommand(fs, s))
	rootCmd.AddCommand(NewTreeCommand(fs, s))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(fs)
	rootCmd.SetErr(os.Stderr)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// settings is shared by every subcommand and filled before each run
type settings struct {
	cfg *config.Config
}

func (s *settings) load(fs filesystem.FileSystem, cmd *cobra.Command) error {
	cwd, err := fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	if flag := cmd.Flag("log-level"); flag != nil && flag.Changed {
		cfg.Log.Level = flag.Value.String()
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if flag := cmd.Flag("log-json"); flag != nil && flag.Changed {
		cfg.Log.JSON = flag.Value.String() == "true"
	}

	id := logging.NewInvocationID()
	logger := logging.Setup(cmd.ErrOrStderr(), logging.Options{
		Level: cfg.LogLevel(),
		JSON:  cfg.Log.JSON,
	}, id)
	logger.Debug().Str("command", cmd.CommandPath()).Str("cwd", cwd).Msg("starting")

	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	s.cfg = cfg
	return nil
}

// config returns the loaded settings, or defaults when the command runs
// without the root command (tests)
func (s *settings) config() *config.Config {
	if s != nil && s.cfg != nil {
		return s.cfg
	}

	cfg := &config.Config{}
	cfg.Log.Level = "warn"
	cfg.Export.Template = "gradle"
	return cfg
}
