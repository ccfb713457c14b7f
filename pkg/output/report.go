package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/cmpdirs/pkg/models"
)

// WriteReport writes the run report to a file.
// Format can be "human" or "json".
func WriteReport(report *models.Report, path string, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		err = writeJSON(file, NewJSONReport(report))
	default: // "human"
		err = writeReportHuman(report, file)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return file.Close()
}

// writeReportHuman writes the report in human-readable format
func writeReportHuman(report *models.Report, w io.Writer) error {
	fmt.Fprintf(w, "Comparison Report\n")
	fmt.Fprintf(w, "=================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Run ID: %s\n", report.RunID)
	fmt.Fprintf(w, "Source: %s\n", report.SourcePath)
	fmt.Fprintf(w, "Target: %s\n", report.TargetPath)
	fmt.Fprintf(w, "Strategy: %s\n", report.Strategy)
	if report.Algorithm != "" {
		fmt.Fprintf(w, "Algorithm: %s\n", report.Algorithm)
	}
	fmt.Fprintf(w, "Duration: %s\n", formatDuration(report.Duration))
	fmt.Fprintf(w, "Status: %s\n\n", report.Status)

	fmt.Fprintf(w, "Scanned:\n")
	fmt.Fprintf(w, "  Source: %d files, %s\n", report.Stats.SourceFiles, formatBytes(report.Stats.SourceBytes))
	fmt.Fprintf(w, "  Target: %d files, %s\n\n", report.Stats.TargetFiles, formatBytes(report.Stats.TargetBytes))

	if report.Result == nil {
		return nil
	}

	sections := []struct {
		label string
		lines []string
	}{
		{"Mapped Files", mappedLines(report.Result.Mapped)},
		{"Missing Files", report.Result.MissingPaths()},
	}

	for _, section := range sections {
		label := fmt.Sprintf("%s (%d files)", section.label, len(section.lines))
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))
		for _, line := range section.lines {
			fmt.Fprintf(w, "  %s\n", line)
		}
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}

	return nil
}

func mappedLines(pairs []models.MappedPair) []string {
	lines := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		lines = append(lines, pair.Source.Path+" -> "+pair.Target.Path)
	}
	return lines
}
