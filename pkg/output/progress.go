package output

import (
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/sdejongh/cmpdirs/pkg/models"
)

const (
	progressLabel    = "Searching for matching files"
	progressTemplate = `{{string . "prefix"}} {{bar . "[" "#" "#" "-" "]"}} {{percent . }} {{counters . }} {{etime . }}`
	refreshRate      = 200 * time.Millisecond
)

// ProgressFormatter drives a progress bar sized to the run budget, then
// prints the result like HumanFormatter
type ProgressFormatter struct {
	*HumanFormatter
	byteUnits bool
	bar       *pb.ProgressBar
}

// NewProgressFormatter creates a new progress bar formatter. With byteUnits
// the counters are rendered as sizes.
func NewProgressFormatter(verbose, byteUnits bool) *ProgressFormatter {
	return &ProgressFormatter{
		HumanFormatter: NewHumanFormatter(verbose),
		byteUnits:      byteUnits,
	}
}

// Start creates and starts the bar
func (f *ProgressFormatter) Start(writer io.Writer, budget int64) error {
	if writer == nil {
		writer = os.Stdout
	}
	if err := f.HumanFormatter.Start(writer, budget); err != nil {
		return err
	}

	f.bar = pb.New64(budget)
	f.bar.SetTemplateString(progressTemplate)
	f.bar.SetWriter(writer)
	f.bar.SetRefreshRate(refreshRate)
	f.bar.Set("prefix", progressLabel)
	f.bar.Set(pb.Bytes, f.byteUnits)
	f.bar.Start()
	return nil
}

// Progress advances the bar
func (f *ProgressFormatter) Progress(n int64) {
	if f.bar != nil {
		f.bar.Add64(n)
	}
}

// Current returns the work reported so far
func (f *ProgressFormatter) Current() int64 {
	if f.bar == nil {
		return 0
	}
	return f.bar.Current()
}

// Complete stops the bar and prints the result
func (f *ProgressFormatter) Complete(report *models.Report) error {
	f.finish()
	return f.HumanFormatter.Complete(report)
}

// Error stops the bar
func (f *ProgressFormatter) Error(err error) error {
	f.finish()
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

func (f *ProgressFormatter) finish() {
	if f.bar != nil && f.bar.IsStarted() {
		f.bar.Finish()
	}
}
