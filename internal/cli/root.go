package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/cmpdirs/internal/platform"
	"github.com/sdejongh/cmpdirs/pkg/config"
	"github.com/sdejongh/cmpdirs/pkg/engine"
	"github.com/sdejongh/cmpdirs/pkg/fingerprint"
	"github.com/sdejongh/cmpdirs/pkg/logging"
	"github.com/sdejongh/cmpdirs/pkg/models"
	"github.com/sdejongh/cmpdirs/pkg/output"
	"github.com/sdejongh/cmpdirs/pkg/ratelimit"
	"github.com/sdejongh/cmpdirs/pkg/storage"
)

// NewRootCommand creates the cmpdirs command
func NewRootCommand() *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "cmpdirs [flags] SOURCE TARGET",
		Short: "List files of SOURCE that have no equivalent in TARGET",
		Long: `Lists all files that are contained in directory SOURCE and that are not
present in directory TARGET. The search includes files in any subdirectory.
Identical files are identified by sha256 hashes (default) or by file name and size.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return &InputError{Err: err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, flags, args[0], args[1])
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &InputError{Err: err}
	})

	addFlags(cmd, flags)

	cmd.AddCommand(NewVersionCommand())
	cmd.AddCommand(NewConfigCommand(flags))

	return cmd
}

func runCompare(cmd *cobra.Command, flags *Flags, sourceArg, targetArg string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, p := range []string{sourceArg, targetArg} {
		if err := platform.ValidatePath(p); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(flags.ConfigFile)
	if err != nil {
		return err
	}
	if err := applyFlagsToConfig(cmd, flags, cfg); err != nil {
		return err
	}

	operation, err := createOperation(cfg, platform.NormalizePath(sourceArg), platform.NormalizePath(targetArg))
	if err != nil {
		return &InputError{Err: fmt.Errorf("invalid operation: %w", err)}
	}

	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return &InputError{Err: fmt.Errorf("failed to create logger: %w", err)}
	}
	defer logger.Close()

	source, err := storage.NewLocal(operation.SourcePath)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	defer source.Close()

	target, err := storage.NewLocal(operation.TargetPath)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	defer target.Close()

	limiter := ratelimit.NewLimiter(operation.BandwidthLimit)
	strategy, err := fingerprint.New(operation.Strategy, fingerprint.Options{
		Algorithm:     operation.Algorithm,
		BufferSize:    operation.BufferSize,
		ReaderWrapper: limiter.Wrapper(),
	})
	if err != nil {
		return &InputError{Err: err}
	}

	out := cmd.OutOrStdout()
	batch := flags.Batch || !isTerminal(out)
	formatter := output.New(output.Options{
		Format:    cfg.Output.Format,
		Batch:     batch,
		Progress:  cfg.Output.Progress,
		Verbose:   cfg.Output.Verbose,
		ByteUnits: operation.Strategy == models.StrategyHash,
	})

	eng := engine.New(source, target, strategy, formatter, logger, operation)
	eng.SetWriter(out)

	report, err := eng.Run(ctx)
	if err != nil {
		return &RunError{Status: report.Status, Err: err}
	}

	if flags.Report != "" {
		if err := output.WriteReport(report, flags.Report, flags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	return nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && platform.IsTerminal(f)
}

// applyFlagsToConfig overrides config values with the flags set on the command line
func applyFlagsToConfig(cmd *cobra.Command, flags *Flags, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if flags.Quick {
		cfg.Compare.Strategy = models.StrategyNameSize
	}
	if changed("algorithm") {
		cfg.Compare.Algorithm = flags.Algorithm
	}
	if flags.FirstWins {
		cfg.Compare.CollisionPolicy = models.FirstWins
	}
	if changed("parallel") {
		cfg.Performance.Workers = flags.Parallel
	}
	if changed("bandwidth") {
		limit, err := platform.ParseSize(flags.Bandwidth)
		if err != nil {
			return &InputError{Err: fmt.Errorf("--bandwidth: %w", err)}
		}
		cfg.Performance.BandwidthLimit = limit
	}
	if changed("exclude") {
		cfg.Exclude = flags.Exclude
	}
	if changed("output") {
		cfg.Output.Format = flags.Output
	}
	if flags.Verbose {
		cfg.Output.Verbose = true
	}
	if changed("log-file") {
		cfg.Logging.File = flags.LogFile
	}
	if changed("log-format") {
		cfg.Logging.Format = flags.LogFormat
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return &InputError{Err: err}
	}
	return nil
}

// createOperation creates a comparison operation from configuration
func createOperation(cfg *config.Config, sourcePath, targetPath string) (*models.Operation, error) {
	operation := &models.Operation{
		ID:              uuid.New().String(),
		SourcePath:      sourcePath,
		TargetPath:      targetPath,
		Strategy:        cfg.Compare.Strategy,
		Algorithm:       cfg.Compare.Algorithm,
		CollisionPolicy: cfg.Compare.CollisionPolicy,
		ExcludePatterns: cfg.Exclude,
		MaxWorkers:      cfg.Performance.Workers,
		BandwidthLimit:  cfg.Performance.BandwidthLimit,
		BufferSize:      cfg.Performance.BufferSize,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}

// createLogger returns a zap logger when a log file is configured, a null logger otherwise
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	if cfg.File == "" {
		return logging.NewNullLogger(), nil
	}

	return logging.NewZapLogger(logging.Config{
		Path:   cfg.File,
		Format: logging.ParseFormat(cfg.Format),
		Level:  logging.ParseLevel(cfg.Level),
	})
}
