// Package runner executes YAML suites of XML checks.
package runner

import (
	"context"
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/louarianne/xq"
	"github.com/louarianne/xq/internal/config"
	"github.com/louarianne/xq/internal/exit"
	"github.com/louarianne/xq/internal/formatter"
	"github.com/louarianne/xq/internal/formatter/jsonout"
	"github.com/louarianne/xq/internal/formatter/stdout"
	"github.com/louarianne/xq/internal/logging"
	"github.com/louarianne/xq/internal/ratelimit"
	"github.com/louarianne/xq/internal/results"
	"github.com/louarianne/xq/internal/suite"
	"github.com/louarianne/xq/internal/template"
)

// Runner executes XML check suites.
type Runner struct {
	variables   map[string]any
	config      *config.Config
	rateLimiter *ratelimit.Limiter
	formatter   formatter.Formatter
	log         *logrus.Logger
}

// New creates a new Runner with the provided configuration.
// If creation fails, returns nil runner and exit result.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, exit.Errorf("Error creating runner: %v", err)
	}

	var f formatter.Formatter
	switch cfg.Output {
	case config.OutputJSON:
		f = jsonout.New()
	default:
		f = stdout.New()
	}

	return &Runner{
		variables:   cfg.AllVariables(),
		config:      cfg,
		rateLimiter: ratelimit.New(cfg.RateLimit),
		formatter:   f,
		log:         log,
	}, nil
}

// NewDefault creates a new Runner with default configuration.
func NewDefault() *Runner {
	return &Runner{
		variables:   make(map[string]any),
		rateLimiter: ratelimit.New(0), // No rate limiting by default
		formatter:   stdout.New(),
		log:         logrus.New(),
	}
}

// Run executes the suite files according to the configuration and
// returns the process exit code: 0 only if every file of every
// iteration passed.
func (r *Runner) Run(ctx context.Context) int {
	if r.config.Repeat < 0 {
		return r.runInfiniteLoop(ctx)
	}
	return r.runFiniteLoop(ctx)
}

// runInfiniteLoop handles infinite execution (repeat < 0). Iterations
// keep running through suite failures; only cancellation stops them.
func (r *Runner) runInfiniteLoop(ctx context.Context) int {
	iteration := 1

	for {
		select {
		case <-ctx.Done():
			r.log.Warnf("interrupted after %d iterations", iteration-1)
			return 1
		default:
		}

		r.log.Debugf("iteration %d", iteration)

		result, err := r.runOnce(ctx)
		if result != nil {
			if formatErr := r.formatter.Format(result); formatErr != nil {
				r.log.Errorf("failed to format results: %v", formatErr)
			}
		}
		if err != nil && ctx.Err() != nil {
			r.log.Warnf("interrupted during iteration %d", iteration)
			return 1
		}

		iteration++
	}
}

// runFiniteLoop handles finite execution (repeat >= 0).
func (r *Runner) runFiniteLoop(ctx context.Context) int {
	var allResults []*results.Summary
	totalIterations := r.config.Repeat + 1

	exitCode := 0

	for i := 1; i <= totalIterations; i++ {
		select {
		case <-ctx.Done():
			r.log.Warnf("interrupted after %d of %d iterations", i-1, totalIterations)
			r.formatResults(allResults)
			return 1
		default:
		}

		if totalIterations > 1 {
			r.log.Debugf("iteration %d of %d", i, totalIterations)
		}

		result, err := r.runOnce(ctx)
		if result != nil {
			allResults = append(allResults, result)
			if result.FailedFiles > 0 {
				exitCode = 1
			}
		}
		if err != nil && ctx.Err() != nil {
			r.log.Warnf("interrupted during iteration %d", i)
			r.formatResults(allResults)
			return 1
		}
	}

	r.formatResults(allResults)
	return exitCode
}

func (r *Runner) formatResults(allResults []*results.Summary) {
	if err := r.formatter.Format(allResults...); err != nil {
		r.log.Errorf("failed to format results: %v", err)
	}
}

// runOnce executes the suite files once and returns the results.
func (r *Runner) runOnce(ctx context.Context) (*results.Summary, error) {
	return r.ExecuteFiles(ctx, r.config.SuiteFiles)
}

// ExecuteFiles executes multiple suite files and returns aggregated results.
// A failing file is recorded and the remaining files still run; the first
// error is returned alongside the summary.
func (r *Runner) ExecuteFiles(ctx context.Context, files []string) (*results.Summary, error) {
	s := results.NewSummary(len(files))

	overallStart := time.Now()
	var firstError error

	for _, filename := range files {
		select {
		case <-ctx.Done():
			return s, ctx.Err()
		default:
		}

		start := time.Now()
		checkCount, err := r.executeFile(ctx, filename)
		duration := time.Since(start)

		s.Add(results.NewFileResultBuilder(filename).
			WithCheckCount(checkCount).
			WithDuration(duration).
			WithError(err))

		if err != nil && firstError == nil {
			firstError = err
		}
	}

	s.SetTotalDuration(time.Since(overallStart))
	return s, firstError
}

// executeFile executes a single suite file and returns the number of
// checks evaluated.
func (r *Runner) executeFile(ctx context.Context, filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	steps, err := suite.Parse(file)
	if err != nil {
		return 0, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}

	if err := suite.ValidateSteps(steps); err != nil {
		return 0, fmt.Errorf("invalid suite file %s: %w", filename, err)
	}

	// start with configured variables and add runtime captures
	variables := make(map[string]any)
	maps.Copy(variables, r.variables)

	checkCount := 0

	for i, step := range steps {
		select {
		case <-ctx.Done():
			return checkCount, ctx.Err()
		default:
		}

		stepChecks, err := r.executeStep(ctx, step, variables)
		checkCount += stepChecks
		if err != nil {
			return checkCount, fmt.Errorf("step %d failed: %w", i+1, err)
		}
	}

	return checkCount, nil
}

// executeStep resolves the step document, evaluates its asserts and
// stores its captures. It returns the number of checks evaluated,
// including a failing one.
func (r *Runner) executeStep(ctx context.Context, step suite.Step, variables map[string]any) (int, error) {
	if err := r.rateLimiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiting interrupted: %w", err)
	}

	root, err := r.resolveDocument(step.Doc, variables)
	if err != nil {
		return 0, err
	}

	r.debugDocument(root)

	checkCount, err := r.executeAsserts(step.Asserts, root, variables)
	if err != nil {
		return checkCount, err
	}

	if err := r.executeCaptures(step.Captures, root, variables); err != nil {
		return checkCount, fmt.Errorf("capture failed: %w", err)
	}

	return checkCount, nil
}

// resolveDocument applies the variable map to a document source and
// loads it. The templated source may be a file path or inline XML.
func (r *Runner) resolveDocument(source string, variables map[string]any) (*etree.Element, error) {
	resolved, err := template.Apply(source, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to process document template: %w", err)
	}

	root, err := xq.Parse(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	return root, nil
}
