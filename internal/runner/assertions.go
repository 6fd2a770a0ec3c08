package runner

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/louarianne/xq"
	"github.com/louarianne/xq/internal/suite"
)

// executeAsserts evaluates all asserts of a step against the document
// root. It returns the number of checks evaluated; a failing check is
// counted before its error is returned.
func (r *Runner) executeAsserts(asserts suite.Asserts, root *etree.Element, variables map[string]any) (int, error) {
	checkCount := 0

	for _, assert := range asserts.Text {
		checkCount++
		if err := r.executeTextAssert(assert, root); err != nil {
			return checkCount, wrapAssert("text", assert.XPath, err)
		}
	}

	for _, assert := range asserts.Attribute {
		checkCount++
		if err := r.executeAttributeAssert(assert, root); err != nil {
			return checkCount, wrapAssert("attribute", assert.XPath, err)
		}
	}

	for _, assert := range asserts.Count {
		checkCount++
		if err := r.executeCountAssert(assert, root); err != nil {
			return checkCount, wrapAssert("count", assert.XPath, err)
		}
	}

	for _, assert := range asserts.Structure {
		checkCount++
		if err := r.executeStructureAssert(assert, root, variables); err != nil {
			return checkCount, wrapAssert("structure", assert.XPath, err)
		}
	}

	return checkCount, nil
}

// executeTextAssert validates a text assert
func (r *Runner) executeTextAssert(assert suite.TextAssert, root *etree.Element) error {
	opts := assertOptions(assert.XPath, assert.Normalize, assert.Message)

	if assert.Equals.IsSet() {
		return xq.ElementTextShouldBe(root, assert.Equals.String(), opts...)
	}
	return xq.ElementTextShouldMatch(root, assert.Matches.String(), opts...)
}

// executeAttributeAssert validates an attribute assert
func (r *Runner) executeAttributeAssert(assert suite.AttributeAssert, root *etree.Element) error {
	opts := assertOptions(assert.XPath, false, assert.Message)

	if assert.Equals.IsSet() {
		return xq.ElementAttributeShouldBe(root, assert.Name, assert.Equals.String(), opts...)
	}
	return xq.ElementAttributeShouldMatch(root, assert.Name, assert.Matches.String(), opts...)
}

// executeCountAssert validates a count assert. Validation guarantees a
// non-empty xpath.
func (r *Runner) executeCountAssert(assert suite.CountAssert, root *etree.Element) error {
	elements, err := xq.GetElements(root, assert.XPath)
	if err != nil {
		return err
	}
	if len(elements) != assert.Equals {
		return fmt.Errorf("expected %d elements, found %d", assert.Equals, len(elements))
	}
	return nil
}

// executeStructureAssert compares a subtree against an expected
// document, which is templated and loaded like a step document.
func (r *Runner) executeStructureAssert(assert suite.StructureAssert, root *etree.Element, variables map[string]any) error {
	expected, err := r.resolveDocument(assert.Expected, variables)
	if err != nil {
		return err
	}

	opts := assertOptions(assert.XPath, assert.Normalize, "")

	if assert.Pattern {
		return xq.ElementsShouldMatch(root, expected, opts...)
	}
	return xq.ElementsShouldBeEqual(root, expected, opts...)
}

// assertOptions builds the option list shared by the assert executors.
func assertOptions(xpath string, normalize bool, message string) []xq.Option {
	var opts []xq.Option
	if xpath != "" {
		opts = append(opts, xq.XPath(xpath))
	}
	if normalize {
		opts = append(opts, xq.NormalizeWhitespace())
	}
	if message != "" {
		opts = append(opts, xq.Message(message))
	}
	return opts
}

// wrapAssert annotates an assert failure with its kind and xpath.
func wrapAssert(kind, xpath string, err error) error {
	if xpath == "" {
		xpath = "."
	}
	return fmt.Errorf("%s assert %s: %w", kind, xpath, err)
}
