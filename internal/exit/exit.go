// Package exit carries process termination outcomes from argument parsing
// and suite execution back to main without calling os.Exit deep in the stack.
package exit

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Result holds the output destination, exit code and message for
// program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination,
// ensuring it ends with a newline.
func (r *Result) Print() {
	if r.Message == "" {
		return
	}
	fmt.Fprint(r.Output, r.Message)
	if !strings.HasSuffix(r.Message, "\n") {
		fmt.Fprintln(r.Output)
	}
}

// Success creates an exit result that outputs to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: 0,
		Message:  message,
	}
}

// Error creates an exit result that outputs to stderr with exit code 1.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: 1,
		Message:  message,
	}
}

// Errorf creates an error exit result with a formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}
