// Package formatter defines how execution summaries are rendered.
package formatter

import (
	"github.com/louarianne/xq/internal/results"
)

// Formatter renders one or more iteration summaries.
// Implementations decide the output device and encoding; a single summary
// renders as a plain run, several render with per-iteration detail.
type Formatter interface {
	Format(summaries ...*results.Summary) error
}
