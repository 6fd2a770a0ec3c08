package suite

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSuite = errors.New("invalid suite")

// ValidateSteps checks every step of a parsed suite and reports the
// first invalid one with its position.
func ValidateSteps(steps []Step) error {
	for index, step := range steps {
		if err := ValidateStep(step); err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalidSuite, index+1, err)
		}
	}

	return nil
}

// ValidateStep checks a single step.
func ValidateStep(step Step) error {
	if strings.TrimSpace(step.Doc) == "" {
		return errors.New("step doc cannot be empty")
	}

	if err := validateAsserts(step.Asserts); err != nil {
		return err
	}

	if err := validateCaptures(step.Captures); err != nil {
		return err
	}

	return nil
}

func validateAsserts(asserts Asserts) error {
	for _, assert := range asserts.Text {
		if err := requireOneExpectation(assert.Equals, assert.Matches, "text assert"); err != nil {
			return err
		}
	}

	for _, assert := range asserts.Attribute {
		if err := requireField(assert.Name, "attribute assert", "name"); err != nil {
			return err
		}
		if err := requireOneExpectation(assert.Equals, assert.Matches, "attribute assert"); err != nil {
			return err
		}
	}

	for _, assert := range asserts.Count {
		if err := requireField(assert.XPath, "count assert", "xpath"); err != nil {
			return err
		}
		if assert.Equals < 0 {
			return fmt.Errorf("count assert equals must be >= 0, got: %d", assert.Equals)
		}
	}

	for _, assert := range asserts.Structure {
		if err := requireField(assert.Expected, "structure assert", "expected"); err != nil {
			return err
		}
	}

	return nil
}

func validateCaptures(captures *Captures) error {
	if captures == nil {
		return nil
	}

	seen := make(map[string]struct{})

	for _, capture := range captures.Text {
		if err := captureName(capture.Name, "text capture", seen); err != nil {
			return err
		}
	}

	for _, capture := range captures.Attribute {
		if err := captureName(capture.Name, "attribute capture", seen); err != nil {
			return err
		}
		if err := requireField(capture.Attribute, "attribute capture", "attribute"); err != nil {
			return err
		}
	}

	for _, capture := range captures.Count {
		if err := captureName(capture.Name, "count capture", seen); err != nil {
			return err
		}
		if err := requireField(capture.XPath, "count capture", "xpath"); err != nil {
			return err
		}
	}

	return nil
}

// requireOneExpectation enforces that exactly one of equals and matches
// is present. Presence is what counts, so "equals: ''" is a valid
// expectation of empty text.
func requireOneExpectation(equals, matches Value, location string) error {
	if equals.IsSet() && matches.IsSet() {
		return fmt.Errorf("%s cannot have both 'equals' and 'matches'", location)
	}
	if !equals.IsSet() && !matches.IsSet() {
		return fmt.Errorf("%s needs either 'equals' or 'matches'", location)
	}

	return nil
}

func captureName(name string, location string, seen map[string]struct{}) error {
	if err := requireField(name, location, "name"); err != nil {
		return err
	}
	if _, ok := seen[name]; ok {
		return fmt.Errorf("%s has duplicate name %q", location, name)
	}
	seen[name] = struct{}{}

	return nil
}

func requireField(value string, location string, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s missing required '%s' field", location, fieldName)
	}

	return nil
}
