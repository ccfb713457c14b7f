// Package engine runs one comparison: it lists both trees, sizes the
// progress budget, matches source against target and fills the report.
package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/cmpdirs/pkg/fingerprint"
	"github.com/sdejongh/cmpdirs/pkg/logging"
	"github.com/sdejongh/cmpdirs/pkg/match"
	"github.com/sdejongh/cmpdirs/pkg/models"
	"github.com/sdejongh/cmpdirs/pkg/output"
	"github.com/sdejongh/cmpdirs/pkg/storage"
	"github.com/sdejongh/cmpdirs/pkg/traverse"
)

// Engine orchestrates a comparison run
type Engine struct {
	source    storage.Backend
	target    storage.Backend
	strategy  fingerprint.Strategy
	formatter output.Formatter
	logger    logging.Logger
	operation *models.Operation
	writer    io.Writer
}

// New creates a new comparison engine. A nil logger disables logging.
func New(
	source, target storage.Backend,
	strategy fingerprint.Strategy,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.Operation,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		source:    source,
		target:    target,
		strategy:  strategy,
		formatter: formatter,
		logger:    logger,
		operation: operation,
	}
}

// SetWriter sets where the formatter writes, default stdout
func (e *Engine) SetWriter(w io.Writer) {
	e.writer = w
}

// Run executes the comparison. On failure the returned report carries a
// failed or cancelled status and no result, together with the error.
func (e *Engine) Run(ctx context.Context) (*models.Report, error) {
	if e.operation.ID == "" {
		e.operation.ID = uuid.New().String()
	}

	report := &models.Report{
		RunID:      e.operation.ID,
		SourcePath: e.source.Root(),
		TargetPath: e.target.Root(),
		Strategy:   e.operation.Strategy,
		StartTime:  time.Now(),
	}
	if h, ok := e.strategy.(*fingerprint.Hash); ok {
		report.Algorithm = h.Algorithm()
	}

	logger := e.logger.WithFields(logging.Fields{"run_id": report.RunID})
	logger.Info(ctx, "Starting comparison", logging.Fields{
		"source":   report.SourcePath,
		"target":   report.TargetPath,
		"strategy": e.strategy.Name(),
		"workers":  e.operation.MaxWorkers,
	})

	result, err := e.run(ctx, logger, report)

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	if err != nil {
		report.Status = models.StatusOf(err)
		logger.Error(ctx, "Comparison aborted", err, logging.Fields{"status": string(report.Status)})
		// Listing may fail before the formatter was started
		if w, ok := e.formatter.(interface{ SetWriter(io.Writer) }); ok && e.writer != nil {
			w.SetWriter(e.writer)
		}
		if ferr := e.formatter.Error(err); ferr != nil {
			logger.Warn(ctx, "Failed to render error", logging.Fields{"error": ferr.Error()})
		}
		return report, err
	}

	report.Result = result
	report.Status = models.StatusSuccess
	report.Stats.MappedFiles = len(result.Mapped)
	report.Stats.MissingFiles = len(result.Missing)

	logger.Info(ctx, "Comparison completed", logging.Fields{
		"mapped":   report.Stats.MappedFiles,
		"missing":  report.Stats.MissingFiles,
		"duration": report.Duration.String(),
	})

	if err := e.formatter.Complete(report); err != nil {
		return report, fmt.Errorf("failed to render result: %w", err)
	}

	return report, nil
}

func (e *Engine) run(ctx context.Context, logger logging.Logger, report *models.Report) (*models.ComparisonResult, error) {
	opts := traverse.Options{Exclude: e.operation.ExcludePatterns}

	logger.Debug(ctx, "Listing source tree", nil)
	sourceFiles, err := traverse.List(ctx, e.source, e.strategy.Estimate, opts)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	logger.Debug(ctx, "Listing target tree", nil)
	targetFiles, err := traverse.List(ctx, e.target, e.strategy.Estimate, opts)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	report.Stats.SourceFiles = len(sourceFiles)
	report.Stats.TargetFiles = len(targetFiles)
	report.Stats.SourceBytes = models.TotalSize(sourceFiles)
	report.Stats.TargetBytes = models.TotalSize(targetFiles)
	report.Stats.Budget = models.TotalCost(sourceFiles) + models.TotalCost(targetFiles)

	logger.Info(ctx, "Trees listed", logging.Fields{
		"source_files": report.Stats.SourceFiles,
		"target_files": report.Stats.TargetFiles,
		"budget":       report.Stats.Budget,
	})

	if err := e.formatter.Start(e.writer, report.Stats.Budget); err != nil {
		return nil, fmt.Errorf("failed to start output: %w", err)
	}

	matcher := match.NewMatcher(e.strategy, match.Options{
		Workers:  e.operation.MaxWorkers,
		Policy:   e.operation.CollisionPolicy,
		Progress: e.formatter.Progress,
		Logger:   logger,
	})

	return matcher.FindMissing(ctx,
		match.Side{Backend: e.source, Files: sourceFiles},
		match.Side{Backend: e.target, Files: targetFiles},
	)
}
