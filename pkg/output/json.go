package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/sdejongh/cmpdirs/pkg/models"
)

// JSONFormatter writes a single JSON document for automation and scripting
type JSONFormatter struct {
	writer io.Writer
}

// JSONReport is the document written by JSONFormatter and by JSON report files
type JSONReport struct {
	RunID      string         `json:"run_id"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Strategy   string         `json:"strategy"`
	Algorithm  string         `json:"algorithm,omitempty"`
	Status     string         `json:"status"`
	Duration   string         `json:"duration"`
	DurationMs int64          `json:"duration_ms"`
	Stats      JSONStatsData  `json:"stats"`
	Mapped     []JSONPairData `json:"mapped"`
	Missing    []string       `json:"missing"`
	Error      string         `json:"error,omitempty"`
}

// JSONStatsData represents statistics in JSON format
type JSONStatsData struct {
	SourceFiles  int   `json:"source_files"`
	TargetFiles  int   `json:"target_files"`
	SourceBytes  int64 `json:"source_bytes"`
	TargetBytes  int64 `json:"target_bytes"`
	Budget       int64 `json:"budget"`
	MappedFiles  int   `json:"mapped_files"`
	MissingFiles int   `json:"missing_files"`
}

// JSONPairData represents a mapped source file and its target
type JSONPairData struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, budget int64) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// SetWriter sets the destination without starting a run
func (f *JSONFormatter) SetWriter(writer io.Writer) {
	f.writer = writer
}

// Progress is ignored, the document is written once at the end
func (f *JSONFormatter) Progress(n int64) {}

// Complete writes the report document
func (f *JSONFormatter) Complete(report *models.Report) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	return writeJSON(f.writer, NewJSONReport(report))
}

// Error writes a failure document so consumers always get valid JSON
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	return writeJSON(f.writer, struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}{
		Status: string(models.StatusOf(err)),
		Error:  err.Error(),
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

// NewJSONReport converts a report into its JSON document
func NewJSONReport(report *models.Report) JSONReport {
	doc := JSONReport{
		RunID:      report.RunID,
		Source:     report.SourcePath,
		Target:     report.TargetPath,
		Strategy:   string(report.Strategy),
		Algorithm:  report.Algorithm,
		Status:     string(report.Status),
		Duration:   report.Duration.String(),
		DurationMs: report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			SourceFiles:  report.Stats.SourceFiles,
			TargetFiles:  report.Stats.TargetFiles,
			SourceBytes:  report.Stats.SourceBytes,
			TargetBytes:  report.Stats.TargetBytes,
			Budget:       report.Stats.Budget,
			MappedFiles:  report.Stats.MappedFiles,
			MissingFiles: report.Stats.MissingFiles,
		},
		Mapped:  []JSONPairData{},
		Missing: []string{},
	}

	if report.Result != nil {
		for _, pair := range report.Result.Mapped {
			doc.Mapped = append(doc.Mapped, JSONPairData{Source: pair.Source.Path, Target: pair.Target.Path})
		}
		doc.Missing = append(doc.Missing, report.Result.MissingPaths()...)
	}

	return doc
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
