package jsonout

import (
	"encoding/json"
	"io"
	"os"

	"github.com/louarianne/xq/internal/formatter"
	"github.com/louarianne/xq/internal/results"
)

// Formatter implements JSON output formatting.
type Formatter struct {
	writer io.Writer
}

// New creates a new JSON formatter that outputs to stdout.
func New() formatter.Formatter {
	return &Formatter{
		writer: os.Stdout,
	}
}

// NewWithWriter creates a new JSON formatter with a custom writer.
func NewWithWriter(writer io.Writer) formatter.Formatter {
	return &Formatter{
		writer: writer,
	}
}

type fileResult struct {
	Filename   string `json:"filename"`
	CheckCount int    `json:"check_count"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

type iterationSummary struct {
	Files           []fileResult `json:"files"`
	ExecutedFiles   int          `json:"executed_files"`
	ExecutedChecks  int          `json:"executed_checks"`
	SucceededFiles  int          `json:"succeeded_files"`
	FailedFiles     int          `json:"failed_files"`
	DurationMS      int64        `json:"duration_ms"`
	ChecksPerSecond float64      `json:"checks_per_second"`
}

type aggregatedStats struct {
	IterationCount       int   `json:"iteration_count"`
	SuccessfulIterations int   `json:"successful_iterations"`
	TotalExecutedFiles   int   `json:"total_executed_files"`
	TotalExecutedChecks  int   `json:"total_executed_checks"`
	TotalSucceededFiles  int   `json:"total_succeeded_files"`
	TotalFailedFiles     int   `json:"total_failed_files"`
	TotalDurationMS      int64 `json:"total_duration_ms"`
}

type report struct {
	Iterations []iterationSummary `json:"iterations"`
	Aggregated *aggregatedStats   `json:"aggregated,omitempty"`
}

// Format renders the summaries as one indented JSON document. With several
// summaries an aggregated block is included alongside the iterations.
func (f *Formatter) Format(summaries ...*results.Summary) error {
	if len(summaries) == 0 {
		return nil
	}

	out := report{
		Iterations: make([]iterationSummary, 0, len(summaries)),
	}
	for _, s := range summaries {
		out.Iterations = append(out.Iterations, convertSummary(s))
	}

	if len(summaries) > 1 {
		stats := results.CalculateAggregatedStats(summaries)
		out.Aggregated = &aggregatedStats{
			IterationCount:       stats.IterationCount,
			SuccessfulIterations: stats.SuccessfulIterations,
			TotalExecutedFiles:   stats.TotalExecutedFiles,
			TotalExecutedChecks:  stats.TotalExecutedChecks,
			TotalSucceededFiles:  stats.TotalSucceededFiles,
			TotalFailedFiles:     stats.TotalFailedFiles,
			TotalDurationMS:      stats.TotalDuration.Milliseconds(),
		}
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func convertSummary(s *results.Summary) iterationSummary {
	files := make([]fileResult, 0, len(s.FileResults))
	for _, fr := range s.FileResults {
		converted := fileResult{
			Filename:   fr.Filename,
			CheckCount: fr.CheckCount,
			DurationMS: fr.Duration.Milliseconds(),
		}
		if fr.Error != nil {
			converted.Error = fr.Error.Error()
		}
		files = append(files, converted)
	}

	return iterationSummary{
		Files:           files,
		ExecutedFiles:   s.ExecutedFiles,
		ExecutedChecks:  s.ExecutedChecks,
		SucceededFiles:  s.SucceededFiles,
		FailedFiles:     s.FailedFiles,
		DurationMS:      s.TotalDuration.Milliseconds(),
		ChecksPerSecond: s.ChecksPerSecond(),
	}
}
