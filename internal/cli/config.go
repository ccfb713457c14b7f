package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/cmpdirs/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or create the cmpdirs configuration file.`,
	}

	cmd.AddCommand(newConfigShowCommand(flags))
	cmd.AddCommand(newConfigInitCommand(flags))

	return cmd
}

func newConfigShowCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.ConfigFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Strategy: %s\n", cfg.Compare.Strategy)
			fmt.Fprintf(out, "Algorithm: %s\n", cfg.Compare.Algorithm)
			fmt.Fprintf(out, "Collision Policy: %s\n", cfg.Compare.CollisionPolicy)
			fmt.Fprintf(out, "Workers: %d\n", cfg.Performance.Workers)
			fmt.Fprintf(out, "Buffer Size: %d\n", cfg.Performance.BufferSize)
			fmt.Fprintf(out, "Bandwidth Limit: %d\n", cfg.Performance.BandwidthLimit)
			fmt.Fprintf(out, "Output Format: %s\n", cfg.Output.Format)
			fmt.Fprintf(out, "Progress: %t\n", cfg.Output.Progress)
			fmt.Fprintf(out, "Verbose: %t\n", cfg.Output.Verbose)
			fmt.Fprintf(out, "Log Format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "Log Level: %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "Log File: %s\n", cfg.Logging.File)
			fmt.Fprintf(out, "Exclude: %s\n", strings.Join(cfg.Exclude, ", "))

			return nil
		},
	}
}

func newConfigInitCommand(flags *Flags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.ConfigFile
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !force {
				return &InputError{Err: fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)}
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := config.SaveToFile(config.Default(), path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")

	return cmd
}

// loadConfig loads configuration from file or returns the default one
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, &InputError{Err: fmt.Errorf("failed to load config: %w", err)}
	}
	return cfg, nil
}
