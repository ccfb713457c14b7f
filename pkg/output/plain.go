package output

import (
	"fmt"
	"io"
	"os"

	"github.com/sdejongh/cmpdirs/pkg/models"
)

// PlainFormatter prints raw paths for scripts: "source -> target" lines for
// mapped files when verbose, then one missing path per line
type PlainFormatter struct {
	writer  io.Writer
	verbose bool
}

// NewPlainFormatter creates a new batch formatter
func NewPlainFormatter(verbose bool) *PlainFormatter {
	return &PlainFormatter{verbose: verbose}
}

// Start initializes the formatter
func (f *PlainFormatter) Start(writer io.Writer, budget int64) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress is ignored in batch mode
func (f *PlainFormatter) Progress(n int64) {}

// Complete prints the result
func (f *PlainFormatter) Complete(report *models.Report) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	if report.Result == nil {
		return nil
	}

	if f.verbose {
		if err := writeMapped(f.writer, report.Result.Mapped); err != nil {
			return err
		}
	}
	return writeMissing(f.writer, report.Result.Missing)
}

// Error is a no-op, the caller prints the error
func (f *PlainFormatter) Error(err error) error {
	return nil
}

// Name returns the formatter name
func (f *PlainFormatter) Name() string {
	return "plain"
}

func writeMapped(w io.Writer, pairs []models.MappedPair) error {
	for _, pair := range pairs {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", pair.Source.Path, pair.Target.Path); err != nil {
			return err
		}
	}
	return nil
}

func writeMissing(w io.Writer, entries []models.FileEntry) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintln(w, entry.Path); err != nil {
			return err
		}
	}
	return nil
}
