// Command seqfilter trims parallel source/target text pairs to a word budget,
// keeping the last sentences of each source and the first sentences of each
// target.
//
// Usage:
//
//	seqfilter -i train.tsv -o train.filtered.tsv -l en -m 25 --header
//
// Run "seqfilter --help" for all flags, "seqfilter schema" for the config
// file schema and "seqfilter languages" for supported language codes.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/randalmurphal/seqfilter/config"
	"github.com/randalmurphal/seqfilter/pipeline"
	"github.com/randalmurphal/seqfilter/segment"
)

// Exit codes.
const (
	exitOK     = 0
	exitError  = 1
	exitConfig = 2
	exitFormat = 3
	exitIO     = 4
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "seqfilter: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps an error class to a process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrInvalid),
		errors.Is(err, pipeline.ErrConfig),
		errors.Is(err, segment.ErrUnsupportedLanguage),
		errors.Is(err, segment.ErrModel):
		return exitConfig
	case errors.Is(err, pipeline.ErrFormat):
		return exitFormat
	case errors.Is(err, pipeline.ErrIO):
		return exitIO
	default:
		return exitError
	}
}
