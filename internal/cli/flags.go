package cli

import (
	"github.com/spf13/cobra"
)

// Flags holds the command line flags of the root command
type Flags struct {
	ConfigFile string

	Quick     bool
	Verbose   bool
	Batch     bool
	Algorithm string
	Parallel  int
	FirstWins bool
	Exclude   []string
	Bandwidth string

	Output       string
	Report       string
	ReportFormat string

	LogFile   string
	LogFormat string
	LogLevel  string
}

// addFlags registers the flags on cmd
func addFlags(cmd *cobra.Command, f *Flags) {
	cmd.PersistentFlags().StringVar(&f.ConfigFile, "config", "", "config file (default is $HOME/.config/cmpdirs/config.yaml)")

	flags := cmd.Flags()
	flags.BoolVarP(&f.Quick, "quick", "q", false, "compare files by name and size instead of content hash")
	flags.BoolVarP(&f.Verbose, "verbose", "v", false, "additionally output all mapped files")
	flags.BoolVarP(&f.Batch, "batch", "b", false, "raw text output, enabled by default on a non-interactive output stream")
	flags.StringVar(&f.Algorithm, "algorithm", "", "hash algorithm: sha256, sha512, sha1, md5")
	flags.IntVarP(&f.Parallel, "parallel", "p", 0, "number of files fingerprinted concurrently")
	flags.BoolVar(&f.FirstWins, "first-wins", false, "when target files share a fingerprint, map to the first one instead of the last")
	flags.StringSliceVar(&f.Exclude, "exclude", nil, "glob patterns to exclude (repeatable)")
	flags.StringVar(&f.Bandwidth, "bandwidth", "", "read bandwidth limit while hashing (e.g. \"10M\", \"1G\")")

	flags.StringVarP(&f.Output, "output", "o", "", "output format: human, json")
	flags.StringVar(&f.Report, "report", "", "write a report of the run to this file")
	flags.StringVar(&f.ReportFormat, "report-format", "human", "report file format: human, json")

	flags.StringVar(&f.LogFile, "log-file", "", "write structured logs to this file")
	flags.StringVar(&f.LogFormat, "log-format", "", "log format: json, text")
	flags.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}
