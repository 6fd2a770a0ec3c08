package runner

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/louarianne/xq"
	"github.com/louarianne/xq/internal/suite"
)

// executeCaptures extracts values from the document and stores them in
// the variable map, where later steps of the same file can use them.
func (r *Runner) executeCaptures(captures *suite.Captures, root *etree.Element, variables map[string]any) error {
	if captures == nil {
		return nil
	}

	if err := r.executeTextCaptures(captures.Text, root, variables); err != nil {
		return err
	}

	if err := r.executeAttributeCaptures(captures.Attribute, root, variables); err != nil {
		return err
	}

	if err := r.executeCountCaptures(captures.Count, root, variables); err != nil {
		return err
	}

	return nil
}

// executeTextCaptures processes text captures.
func (r *Runner) executeTextCaptures(captures []suite.TextCapture, root *etree.Element, variables map[string]any) error {
	for _, capture := range captures {
		var opts []xq.Option
		if capture.XPath != "" {
			opts = append(opts, xq.XPath(capture.XPath))
		}
		if capture.Normalize {
			opts = append(opts, xq.NormalizeWhitespace())
		}

		value, err := xq.GetElementText(root, opts...)
		if err != nil {
			return fmt.Errorf("text capture %s failed: %w", capture.Name, err)
		}

		variables[capture.Name] = value
		r.log.Debugf("captured %s=%q", capture.Name, value)
	}
	return nil
}

// executeAttributeCaptures processes attribute captures.
func (r *Runner) executeAttributeCaptures(captures []suite.AttributeCapture, root *etree.Element, variables map[string]any) error {
	for _, capture := range captures {
		var opts []xq.Option
		if capture.XPath != "" {
			opts = append(opts, xq.XPath(capture.XPath))
		}

		value, ok, err := xq.GetElementAttribute(root, capture.Attribute, opts...)
		if err != nil {
			return fmt.Errorf("attribute capture %s failed: %w", capture.Name, err)
		}
		if !ok {
			return fmt.Errorf("attribute capture %s failed: attribute '%s' does not exist", capture.Name, capture.Attribute)
		}

		variables[capture.Name] = value
		r.log.Debugf("captured %s=%q", capture.Name, value)
	}
	return nil
}

// executeCountCaptures processes count captures. Validation guarantees
// a non-empty xpath.
func (r *Runner) executeCountCaptures(captures []suite.CountCapture, root *etree.Element, variables map[string]any) error {
	for _, capture := range captures {
		elements, err := xq.GetElements(root, capture.XPath)
		if err != nil {
			return fmt.Errorf("count capture %s failed: %w", capture.Name, err)
		}

		variables[capture.Name] = len(elements)
		r.log.Debugf("captured %s=%d", capture.Name, len(elements))
	}
	return nil
}
