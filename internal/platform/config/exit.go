package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	apperrors "github.com/louisbranch/vttbridge/internal/platform/errors"
)

// Exit reports err on stderr in locale and terminates the process with the
// code from ExitCode.
func Exit(err error, locale string) {
	os.Exit(report(os.Stderr, err, locale))
}

// ExitCode maps a command error to a process exit code: 0 for nil and for
// -h (the flag package already printed usage), 2 for other flag errors and
// 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case isUsageError(err):
		return 2
	default:
		return 1
	}
}

func report(w io.Writer, err error, locale string) int {
	code := ExitCode(err)
	if code != 0 {
		fmt.Fprintf(w, "Error: %s\n", apperrors.Localize(err, locale))
	}
	return code
}

// UsageError marks an error caused by bad command-line input.
type UsageError struct {
	Err error
}

func (e UsageError) Error() string { return e.Err.Error() }
func (e UsageError) Unwrap() error { return e.Err }

func isUsageError(err error) bool {
	var usage UsageError
	return errors.As(err, &usage)
}
