package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/sdejongh/cmpdirs/pkg/models"
)

var (
	mappedHeader  = color.New(color.FgGreen, color.Bold)
	missingHeader = color.New(color.FgRed, color.Bold)
	summaryHeader = color.New(color.FgYellow, color.Bold)
)

// HumanFormatter formats output in human-readable format with colored
// section headers and a summary
type HumanFormatter struct {
	writer  io.Writer
	verbose bool
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(verbose bool) *HumanFormatter {
	return &HumanFormatter{verbose: verbose}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, budget int64) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress is ignored, see ProgressFormatter
func (f *HumanFormatter) Progress(n int64) {}

// Complete prints the mapped section (verbose only), the missing section and
// the summary
func (f *HumanFormatter) Complete(report *models.Report) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	if report.Result == nil {
		return nil
	}
	w := f.writer

	if f.verbose {
		if err := writeHeader(w, mappedHeader, "Mapped files:"); err != nil {
			return err
		}
		if err := writeMapped(w, report.Result.Mapped); err != nil {
			return err
		}
	}

	if err := writeHeader(w, missingHeader, "Missing files:"); err != nil {
		return err
	}
	if err := writeMissing(w, report.Result.Missing); err != nil {
		return err
	}

	if err := writeHeader(w, summaryHeader, "Summary:"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Number of mapped files: %d\n", len(report.Result.Mapped)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Number of missing files: %d\n", len(report.Result.Missing))
	return err
}

// writeHeader writes a blank separator line followed by a colored section title
func writeHeader(w io.Writer, c *color.Color, title string) error {
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	_, err := c.Fprintln(w, title)
	return err
}

// Error is a no-op, the caller prints the error
func (f *HumanFormatter) Error(err error) error {
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// formatDuration formats duration in human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
