package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sdejongh/cmpdirs/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the root command and is the single place where errors are
// reported to the user
func run(args []string, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCommand()
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if cli.IsExpected(err) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	} else {
		fmt.Fprintf(stderr, "Uncaught error: %T: %v\n", rootCause(err), err)
	}
	return cli.ExitCode(err)
}

// rootCause returns the innermost wrapped error
func rootCause(err error) error {
	for {
		var next error
		switch e := err.(type) {
		case interface{ Unwrap() error }:
			next = e.Unwrap()
		case interface{ Unwrap() []error }:
			if errs := e.Unwrap(); len(errs) > 0 {
				next = errs[len(errs)-1]
			}
		}
		if next == nil {
			return err
		}
		err = next
	}
}
