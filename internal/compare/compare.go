// Package compare implements structural comparison of element trees.
//
// Two trees are walked in lockstep and the first difference found is
// reported as an error. For each element pair the checks run in a fixed
// order: tag name, attribute names, attribute values, text, tail text,
// number of children, then the children themselves in document order.
// Tag names, attribute name sets and child counts always use strict
// equality; attribute values, texts and tails go through the configured
// strategy, which allows regular expression matching.
package compare

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/louarianne/xq/internal/predicate"
)

// Normalizer transforms text content before it is compared. A nil
// normalizer leaves texts and tails untouched.
type Normalizer func(string) string

// Comparator checks two element trees for structural equality.
type Comparator struct {
	strategy  predicate.Strategy
	normalize Normalizer
}

// New returns a comparator using strategy for attribute values, texts
// and tails.
func New(strategy predicate.Strategy, normalize Normalizer) *Comparator {
	return &Comparator{
		strategy:  strategy,
		normalize: normalize,
	}
}

// Compare walks actual and expected and returns an error describing the
// first difference. Differences below the top level carry the path of
// the offending element, such as "root/item[2]".
func (c *Comparator) Compare(actual, expected *etree.Element) error {
	return c.compare(actual, expected, nil)
}

func (c *Comparator) compare(actual, expected *etree.Element, loc *location) error {
	if err := c.compareStrict(actual.Tag, expected.Tag, "Different tag name", loc); err != nil {
		return err
	}
	if err := c.compareAttributes(actual, expected, loc); err != nil {
		return err
	}
	if err := c.compareText(actual.Text(), expected.Text(), "Different text", loc); err != nil {
		return err
	}
	if err := c.compareText(actual.Tail(), expected.Tail(), "Different tail text", loc); err != nil {
		return err
	}

	return c.compareChildren(actual, expected, loc)
}

func (c *Comparator) compareAttributes(actual, expected *etree.Element, loc *location) error {
	if err := c.compareStrict(attributeNames(actual), attributeNames(expected), "Different attribute names", loc); err != nil {
		return err
	}

	for _, attr := range actual.Attr {
		message := fmt.Sprintf("Different value for attribute '%s'", attr.FullKey())
		if err := c.check(c.strategy, attr.Value, attributeValue(expected, attr), message, loc); err != nil {
			return err
		}
	}

	return nil
}

func (c *Comparator) compareChildren(actual, expected *etree.Element, loc *location) error {
	actualChildren := actual.ChildElements()
	expectedChildren := expected.ChildElements()

	actualCount := strconv.Itoa(len(actualChildren))
	expectedCount := strconv.Itoa(len(expectedChildren))
	if err := c.compareStrict(actualCount, expectedCount, "Different number of child elements", loc); err != nil {
		return err
	}

	if loc == nil {
		loc = newLocation(actual.Tag)
	}
	for i, child := range actualChildren {
		if err := c.compare(child, expectedChildren[i], loc.child(child.Tag)); err != nil {
			return err
		}
	}

	return nil
}

func (c *Comparator) compareText(actual, expected, message string, loc *location) error {
	if c.normalize != nil {
		actual = c.normalize(actual)
		expected = c.normalize(expected)
	}

	return c.check(c.strategy, actual, expected, message, loc)
}

func (c *Comparator) compareStrict(actual, expected, message string, loc *location) error {
	return c.check(predicate.Equality, actual, expected, message, loc)
}

func (c *Comparator) check(strategy predicate.Strategy, actual, expected, message string, loc *location) error {
	ok, err := strategy.Compare(actual, expected)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	if loc != nil {
		message = fmt.Sprintf("%s at '%s'", message, loc)
	}

	return predicate.Fail(fmt.Sprintf("%s: %s", message, strategy.Describe(actual, expected)))
}

// attributeNames renders the sorted attribute names of an element so
// that name sets can be compared strictly and reported readably.
func attributeNames(el *etree.Element) string {
	names := make([]string, 0, len(el.Attr))
	for _, attr := range el.Attr {
		names = append(names, attr.FullKey())
	}
	sort.Strings(names)

	return "[" + strings.Join(names, ", ") + "]"
}

// attributeValue looks up the expected element's value for attr by
// exact namespace and key so prefixed attributes never shadow plain
// ones.
func attributeValue(el *etree.Element, attr etree.Attr) string {
	for _, candidate := range el.Attr {
		if candidate.Space == attr.Space && candidate.Key == attr.Key {
			return candidate.Value
		}
	}

	return ""
}
