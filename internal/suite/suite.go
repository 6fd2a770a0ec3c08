// Package suite defines the YAML format of XML check suites and
// validates parsed steps before execution.
package suite

import (
	"fmt"
	"io"

	yaml "github.com/goccy/go-yaml"
)

// ErrParser is the sentinel error for all suite parsing failures.
// It allows error wrapping and consistent error checks using errors.Is().
var ErrParser = fmt.Errorf("parser error")

// Step checks one XML document. The document is resolved, every assert
// is evaluated against it and captures store extracted values as
// variables for later steps.
type Step struct {
	Doc      string    `yaml:"doc"`                // Document source: file path or inline XML
	Asserts  Asserts   `yaml:"asserts,omitempty"`  // Document assertions
	Captures *Captures `yaml:"captures,omitempty"` // Value extraction rules
}

// Asserts groups all supported assertion types for a step.
type Asserts struct {
	Text      []TextAssert      `yaml:"text,omitempty"`      // Text content assertions
	Attribute []AttributeAssert `yaml:"attribute,omitempty"` // Attribute value assertions
	Count     []CountAssert     `yaml:"count,omitempty"`     // Match count assertions
	Structure []StructureAssert `yaml:"structure,omitempty"` // Structural equality assertions
}

// TextAssert verifies the text content of the selected element.
type TextAssert struct {
	XPath     string `yaml:"xpath,omitempty"`                // Element selector, defaults to the root
	Equals    Value  `yaml:"equals,omitempty"`               // Exact expected text
	Matches   Value  `yaml:"matches,omitempty"`              // Regular expression the text must match in full
	Normalize bool   `yaml:"normalize_whitespace,omitempty"` // Collapse whitespace before comparing
	Message   string `yaml:"message,omitempty"`              // Replacement failure message
}

// AttributeAssert verifies an attribute value of the selected element.
type AttributeAssert struct {
	XPath   string `yaml:"xpath,omitempty"`   // Element selector, defaults to the root
	Name    string `yaml:"name"`              // Attribute name
	Equals  Value  `yaml:"equals,omitempty"`  // Exact expected value
	Matches Value  `yaml:"matches,omitempty"` // Regular expression the value must match in full
	Message string `yaml:"message,omitempty"` // Replacement failure message
}

// CountAssert verifies how many elements an xpath matches.
type CountAssert struct {
	XPath  string `yaml:"xpath"`  // Element selector
	Equals int    `yaml:"equals"` // Expected number of matches
}

// StructureAssert verifies the selected element against an expected
// XML fragment.
type StructureAssert struct {
	XPath     string `yaml:"xpath,omitempty"`                // Element selector, defaults to the root
	Expected  string `yaml:"expected"`                       // Expected fragment: file path or inline XML
	Pattern   bool   `yaml:"pattern,omitempty"`              // Treat expected texts and attribute values as regular expressions
	Normalize bool   `yaml:"normalize_whitespace,omitempty"` // Collapse whitespace before comparing
}

// Captures groups all supported capture types for a step.
type Captures struct {
	Text      []TextCapture      `yaml:"text,omitempty"`      // Text content captures
	Attribute []AttributeCapture `yaml:"attribute,omitempty"` // Attribute value captures
	Count     []CountCapture     `yaml:"count,omitempty"`     // Match count captures
}

// TextCapture stores the text content of the selected element.
type TextCapture struct {
	Name      string `yaml:"name"`                           // Variable name to store the captured text
	XPath     string `yaml:"xpath,omitempty"`                // Element selector, defaults to the root
	Normalize bool   `yaml:"normalize_whitespace,omitempty"` // Collapse whitespace in the captured text
}

// AttributeCapture stores an attribute value of the selected element.
type AttributeCapture struct {
	Name      string `yaml:"name"`            // Variable name to store the captured value
	XPath     string `yaml:"xpath,omitempty"` // Element selector, defaults to the root
	Attribute string `yaml:"attribute"`       // Attribute name to capture
}

// CountCapture stores how many elements an xpath matches.
type CountCapture struct {
	Name  string `yaml:"name"`  // Variable name to store the match count
	XPath string `yaml:"xpath"` // Element selector
}

// Parse decodes a YAML stream of steps.
func Parse(r io.Reader) ([]Step, error) {
	decoder := yaml.NewDecoder(r)

	var steps []Step
	if err := decoder.Decode(&steps); err != nil {
		return nil, fmt.Errorf("%w: failed to decode YAML: %v", ErrParser, err)
	}

	return steps, nil
}
