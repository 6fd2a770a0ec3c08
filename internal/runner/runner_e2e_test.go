package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louarianne/xq/internal/config"
	"github.com/louarianne/xq/internal/formatter/stdout"
)

// writeSuite writes the suite file and its XML fixtures into a fresh
// directory and returns the suite file path and the directory.
func writeSuite(t *testing.T, suiteContent string, files map[string]string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}

	suitePath := filepath.Join(dir, "suite.yaml")
	if err := os.WriteFile(suitePath, []byte(suiteContent), 0o644); err != nil {
		t.Fatalf("failed to write suite file: %v", err)
	}

	return suitePath, dir
}

// newTestRunner builds a runner for cfg with output captured in a buffer.
func newTestRunner(t *testing.T, cfg *config.Config) (*Runner, *bytes.Buffer) {
	t.Helper()

	r, result := New(cfg)
	if result != nil {
		t.Fatalf("New() failed: %s", result.Message)
	}

	var buf bytes.Buffer
	r.formatter = stdout.NewWithWriter(&buf)

	return r, &buf
}

func TestRunnerEndToEnd(t *testing.T) {
	tests := []struct {
		name       string
		suite      string
		files      map[string]string
		wantChecks int
		wantPass   bool
		wantOutput []string
	}{
		{
			name: "passing_suite_with_capture_chaining",
			files: map[string]string{
				"orders.xml": `<orders count="2"><order id="A42"><status>shipped</status></order><order id="B7"><status>pending</status></order></orders>`,
			},
			suite: `
- doc: '{{ .dir }}/orders.xml'
  asserts:
    text:
      - xpath: ./order[1]/status
        equals: shipped
    count:
      - xpath: ./order
        equals: 2
  captures:
    attribute:
      - name: first_order
        xpath: ./order[1]
        attribute: id
    count:
      - name: order_count
        xpath: ./order

- doc: '<summary><ref>{{ .first_order }}</ref></summary>'
  asserts:
    structure:
      - xpath: ./ref
        expected: <ref>A42</ref>
    text:
      - xpath: ./ref
        equals: A42
`,
			wantChecks: 4,
			wantPass:   true,
			wantOutput: []string{
				"suite.yaml: Success (4 check(s) in",
				"Executed files:  1",
				"Executed checks: 4",
				"Succeeded files: 1 (100.0%)",
				"Failed files:    0 (0.0%)",
			},
		},
		{
			name: "failing_assert",
			files: map[string]string{
				"orders.xml": `<orders><order id="A42"><status>pending</status></order></orders>`,
			},
			suite: `
- doc: '{{ .dir }}/orders.xml'
  asserts:
    text:
      - xpath: ./order/status
        equals: shipped
`,
			wantChecks: 1,
			wantPass:   false,
			wantOutput: []string{
				"suite.yaml: Failed: step 1 failed: text assert ./order/status: assertion failed: pending != shipped",
				"Succeeded files: 0 (0.0%)",
				"Failed files:    1 (100.0%)",
			},
		},
		{
			name:  "invalid_suite_file",
			files: map[string]string{},
			suite: `
- asserts:
    count:
      - xpath: ./order
        equals: 1
`,
			wantChecks: 0,
			wantPass:   false,
			wantOutput: []string{
				"invalid suite file",
				"step 1: step doc cannot be empty",
			},
		},
		{
			name:       "unparseable_yaml",
			files:      map[string]string{},
			suite:      "::: not yaml :::",
			wantChecks: 0,
			wantPass:   false,
			wantOutput: []string{
				"failed to parse file",
			},
		},
		{
			name:  "missing_document_file",
			files: map[string]string{},
			suite: `
- doc: '{{ .dir }}/absent.xml'
  asserts:
    count:
      - xpath: ./order
        equals: 1
`,
			wantChecks: 0,
			wantPass:   false,
			wantOutput: []string{
				"step 1 failed: failed to load document",
			},
		},
		{
			name: "normalized_text_assert",
			files: map[string]string{
				"report.xml": "<report>\n  <title>\n    Annual   Report\n  </title>\n</report>",
			},
			suite: `
- doc: '{{ .dir }}/report.xml'
  asserts:
    text:
      - xpath: ./title
        equals: Annual Report
        normalize_whitespace: true
`,
			wantChecks: 1,
			wantPass:   true,
			wantOutput: []string{
				"suite.yaml: Success (1 check(s) in",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suitePath, dir := writeSuite(t, tt.suite, tt.files)

			cfg := &config.Config{
				SuiteFiles: []string{suitePath},
				LogLevel:   "info",
				Output:     config.OutputText,
				Variables:  map[string]any{"dir": dir},
			}
			r, buf := newTestRunner(t, cfg)

			summary, err := r.ExecuteFiles(context.Background(), cfg.SuiteFiles)
			if tt.wantPass && err != nil {
				t.Fatalf("ExecuteFiles() error = %v", err)
			}
			if !tt.wantPass && err == nil {
				t.Fatal("ExecuteFiles() expected error, got nil")
			}

			if summary.ExecutedChecks != tt.wantChecks {
				t.Errorf("ExecutedChecks = %d, want %d", summary.ExecutedChecks, tt.wantChecks)
			}

			if err := r.formatter.Format(summary); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.wantOutput {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q\noutput:\n%s", want, output)
				}
			}
		})
	}
}

func TestRunnerEndToEndMultipleFiles(t *testing.T) {
	passing, dir := writeSuite(t, `
- doc: '{{ .dir }}/doc.xml'
  asserts:
    text:
      - xpath: ./status
        equals: ok
`, map[string]string{"doc.xml": `<health><status>ok</status></health>`})

	failingPath := filepath.Join(dir, "failing.yaml")
	if err := os.WriteFile(failingPath, []byte(`
- doc: '{{ .dir }}/doc.xml'
  asserts:
    text:
      - xpath: ./status
        equals: down
`), 0o644); err != nil {
		t.Fatalf("failed to write suite file: %v", err)
	}

	cfg := &config.Config{
		SuiteFiles: []string{passing, failingPath},
		LogLevel:   "info",
		Output:     config.OutputText,
		Variables:  map[string]any{"dir": dir},
	}
	r, buf := newTestRunner(t, cfg)

	summary, err := r.ExecuteFiles(context.Background(), cfg.SuiteFiles)
	if err == nil {
		t.Fatal("ExecuteFiles() expected error from failing file, got nil")
	}

	if summary.ExecutedFiles != 2 {
		t.Errorf("ExecutedFiles = %d, want 2", summary.ExecutedFiles)
	}
	if summary.SucceededFiles != 1 {
		t.Errorf("SucceededFiles = %d, want 1", summary.SucceededFiles)
	}
	if summary.FailedFiles != 1 {
		t.Errorf("FailedFiles = %d, want 1", summary.FailedFiles)
	}

	if err := r.formatter.Format(summary); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"suite.yaml: Success (1 check(s) in",
		"failing.yaml: Failed: step 1 failed",
		"Succeeded files: 1 (50.0%)",
		"Failed files:    1 (50.0%)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestRunnerEndToEndWithRepeat(t *testing.T) {
	suitePath, dir := writeSuite(t, `
- doc: '{{ .dir }}/doc.xml'
  asserts:
    count:
      - xpath: ./item
        equals: 2
`, map[string]string{"doc.xml": `<list><item/><item/></list>`})

	cfg := &config.Config{
		SuiteFiles: []string{suitePath},
		LogLevel:   "info",
		Output:     config.OutputText,
		Repeat:     2,
		Variables:  map[string]any{"dir": dir},
	}
	r, buf := newTestRunner(t, cfg)

	exitCode := r.Run(context.Background())
	if exitCode != 0 {
		t.Errorf("Run() = %d, want 0", exitCode)
	}

	output := buf.String()
	for _, want := range []string{
		"Iteration 1: SUCCESS (1 files, 1 checks,",
		"Iteration 3: SUCCESS",
		"Total iterations:      3",
		"Successful iterations: 3 (100.0%)",
		"Total executed checks: 3",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestRunnerEndToEndRepeatExitCode(t *testing.T) {
	suitePath, dir := writeSuite(t, `
- doc: '{{ .dir }}/doc.xml'
  asserts:
    count:
      - xpath: ./item
        equals: 5
`, map[string]string{"doc.xml": `<list><item/></list>`})

	cfg := &config.Config{
		SuiteFiles: []string{suitePath},
		LogLevel:   "error",
		Output:     config.OutputText,
		Repeat:     1,
		Variables:  map[string]any{"dir": dir},
	}
	r, buf := newTestRunner(t, cfg)

	exitCode := r.Run(context.Background())
	if exitCode != 1 {
		t.Errorf("Run() = %d, want 1", exitCode)
	}

	if !strings.Contains(buf.String(), "Failed iterations:     2 (100.0%)") {
		t.Errorf("output missing failed iterations\noutput:\n%s", buf.String())
	}
}

func TestRunnerEndToEndWithContext(t *testing.T) {
	suitePath, dir := writeSuite(t, `
- doc: '{{ .dir }}/doc.xml'
  asserts:
    count:
      - xpath: ./item
        equals: 1

- doc: '{{ .dir }}/doc.xml'
  asserts:
    count:
      - xpath: ./item
        equals: 1
`, map[string]string{"doc.xml": `<list><item/></list>`})

	cfg := &config.Config{
		SuiteFiles: []string{suitePath},
		LogLevel:   "error",
		Output:     config.OutputText,
		RateLimit:  1, // Second step has to wait a full second
		Variables:  map[string]any{"dir": dir},
	}
	r, _ := newTestRunner(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	summary, err := r.ExecuteFiles(ctx, cfg.SuiteFiles)
	if err == nil {
		t.Fatal("ExecuteFiles() expected context error, got nil")
	}
	if !strings.Contains(err.Error(), "step 2 failed: rate limiting interrupted") {
		t.Errorf("ExecuteFiles() error = %q, want rate limiting interruption", err.Error())
	}
	if summary.FailedFiles != 1 {
		t.Errorf("FailedFiles = %d, want 1", summary.FailedFiles)
	}
	if summary.ExecutedChecks != 1 {
		t.Errorf("ExecutedChecks = %d, want 1 (first step only)", summary.ExecutedChecks)
	}
}
