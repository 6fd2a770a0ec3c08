package results

import (
	"errors"
	"testing"
	"time"
)

func TestSummary_Add(t *testing.T) {
	summary := NewSummary(2)

	summary.Add(NewFileResultBuilder("smoke.yaml").
		WithCheckCount(4).
		WithDuration(200 * time.Millisecond))
	summary.Add(NewFileResultBuilder("regression.yaml").
		WithCheckCount(2).
		WithDuration(100 * time.Millisecond).
		WithError(errors.New("assertion failed")))

	if summary.ExecutedFiles != 2 {
		t.Errorf("ExecutedFiles = %d, want 2", summary.ExecutedFiles)
	}
	if summary.ExecutedChecks != 6 {
		t.Errorf("ExecutedChecks = %d, want 6", summary.ExecutedChecks)
	}
	if summary.SucceededFiles != 1 {
		t.Errorf("SucceededFiles = %d, want 1", summary.SucceededFiles)
	}
	if summary.FailedFiles != 1 {
		t.Errorf("FailedFiles = %d, want 1", summary.FailedFiles)
	}
	if len(summary.FileResults) != 2 {
		t.Fatalf("FileResults length = %d, want 2", len(summary.FileResults))
	}
	if summary.FileResults[0].Filename != "smoke.yaml" {
		t.Errorf("first result filename = %s", summary.FileResults[0].Filename)
	}
	if summary.FileResults[1].Error == nil {
		t.Error("second result should carry the error")
	}
}

func TestSummary_Rates(t *testing.T) {
	summary := NewSummary(1)
	summary.Add(NewFileResultBuilder("suite.yaml").WithCheckCount(10))
	summary.SetTotalDuration(2 * time.Second)

	if got := summary.ChecksPerSecond(); got != 5 {
		t.Errorf("ChecksPerSecond() = %f, want 5", got)
	}
	if got := summary.SuccessPercentage(); got != 100 {
		t.Errorf("SuccessPercentage() = %f, want 100", got)
	}
	if got := summary.FailurePercentage(); got != 0 {
		t.Errorf("FailurePercentage() = %f, want 0", got)
	}
}

func TestSummary_RatesZeroValues(t *testing.T) {
	summary := NewSummary(0)

	if got := summary.ChecksPerSecond(); got != 0 {
		t.Errorf("ChecksPerSecond() = %f, want 0 for zero duration", got)
	}
	if got := summary.SuccessPercentage(); got != 0 {
		t.Errorf("SuccessPercentage() = %f, want 0 for no files", got)
	}
}

func TestCalculateAggregatedStats(t *testing.T) {
	passing := NewSummary(1)
	passing.Add(NewFileResultBuilder("suite.yaml").WithCheckCount(3))
	passing.SetTotalDuration(100 * time.Millisecond)

	failing := NewSummary(1)
	failing.Add(NewFileResultBuilder("suite.yaml").
		WithCheckCount(1).
		WithError(errors.New("assertion failed")))
	failing.SetTotalDuration(50 * time.Millisecond)

	stats := CalculateAggregatedStats([]*Summary{passing, failing})

	if stats.IterationCount != 2 {
		t.Errorf("IterationCount = %d, want 2", stats.IterationCount)
	}
	if stats.SuccessfulIterations != 1 {
		t.Errorf("SuccessfulIterations = %d, want 1", stats.SuccessfulIterations)
	}
	if stats.TotalExecutedFiles != 2 {
		t.Errorf("TotalExecutedFiles = %d, want 2", stats.TotalExecutedFiles)
	}
	if stats.TotalExecutedChecks != 4 {
		t.Errorf("TotalExecutedChecks = %d, want 4", stats.TotalExecutedChecks)
	}
	if stats.TotalFailedFiles != 1 {
		t.Errorf("TotalFailedFiles = %d, want 1", stats.TotalFailedFiles)
	}
	if stats.TotalDuration != 150*time.Millisecond {
		t.Errorf("TotalDuration = %v, want 150ms", stats.TotalDuration)
	}
}
