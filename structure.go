package xq

import (
	"errors"

	"github.com/louarianne/xq/internal/compare"
	"github.com/louarianne/xq/internal/predicate"
	"github.com/louarianne/xq/internal/text"
)

// ElementsShouldBeEqual verifies that the selected element and the
// expected element are structurally equal: same tags, attributes, text
// content, tails and children in the same order. The first difference
// found fails the assertion with a message carrying the path to the
// offending element.
func ElementsShouldBeEqual(src, expected any, opts ...Option) error {
	return compareElements(src, expected, predicate.Equality, opts)
}

// ElementsShouldMatch verifies the selected element against an expected
// element whose attribute values, texts and tails are regular
// expression patterns that must match in full. Tag names, attribute
// names and child counts are still compared exactly.
func ElementsShouldMatch(src, expected any, opts ...Option) error {
	return compareElements(src, expected, predicate.Pattern, opts)
}

// compareElements resolves both sides and walks them with the given
// strategy. Options select and normalize the actual side; the expected
// source is always taken as a whole. A Message option replaces the
// generated failure message, location and all.
func compareElements(src, expected any, strategy predicate.Strategy, opts []Option) error {
	o := newOptions(opts)

	actual, err := GetElement(src, opts...)
	if err != nil {
		return err
	}

	expectedElement, err := GetElement(expected)
	if err != nil {
		return err
	}

	var normalize compare.Normalizer
	if o.normalize {
		normalize = text.Normalize
	}

	if err := compare.New(strategy, normalize).Compare(actual, expectedElement); err != nil {
		if o.message != "" && errors.Is(err, predicate.ErrAssertion) {
			return predicate.Fail(o.message)
		}

		return err
	}

	return nil
}
