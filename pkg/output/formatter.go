package output

import (
	"io"

	"github.com/sdejongh/cmpdirs/pkg/models"
)

// Formatter defines the interface for output formatting.
// Implementations include plain, human-readable, progress bar and JSON formatters.
type Formatter interface {
	// Start initializes the formatter for a run whose total work is budget
	Start(writer io.Writer, budget int64) error

	// Progress reports n units of completed work. Safe for concurrent use.
	Progress(n int64)

	// Complete renders the result of a successful run
	Complete(report *models.Report) error

	// Error reports a failed or cancelled run
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

// Options select and tune a formatter
type Options struct {
	// Format is "human" or "json"
	Format string
	// Batch forces plain output without progress, colors or headers
	Batch bool
	// Progress enables the progress bar in human mode
	Progress bool
	// Verbose also lists mapped files
	Verbose bool
	// ByteUnits renders the progress budget as bytes (hash strategy)
	ByteUnits bool
}

// New returns the formatter matching opts
func New(opts Options) Formatter {
	switch {
	case opts.Format == "json":
		return NewJSONFormatter()
	case opts.Batch:
		return NewPlainFormatter(opts.Verbose)
	case opts.Progress:
		return NewProgressFormatter(opts.Verbose, opts.ByteUnits)
	default:
		return NewHumanFormatter(opts.Verbose)
	}
}
