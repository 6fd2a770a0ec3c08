package xq

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/louarianne/xq/internal/predicate"
)

// GetElementAttribute returns the value of the named attribute of the
// selected element. The second return value reports whether the
// attribute exists, keeping a missing attribute distinguishable from an
// empty one. Namespaced attributes are addressed by their prefixed
// name, such as "xml:lang".
func GetElementAttribute(src any, name string, opts ...Option) (string, bool, error) {
	el, err := GetElement(src, opts...)
	if err != nil {
		return "", false, err
	}

	attr, ok := selectAttribute(el, name)
	if !ok {
		return "", false, nil
	}

	return attr.Value, true, nil
}

// GetElementAttributes returns a copy of the attributes of the selected
// element. Mutating the returned map does not affect the element.
func GetElementAttributes(src any, opts ...Option) (map[string]string, error) {
	el, err := GetElement(src, opts...)
	if err != nil {
		return nil, err
	}

	attributes := make(map[string]string, len(el.Attr))
	for _, attr := range el.Attr {
		attributes[attr.FullKey()] = attr.Value
	}

	return attributes, nil
}

// ElementAttributeShouldBe verifies that the named attribute of the
// selected element equals expected. A missing attribute fails the
// assertion.
func ElementAttributeShouldBe(src any, name, expected string, opts ...Option) error {
	o := newOptions(opts)

	actual, ok, err := GetElementAttribute(src, name, opts...)
	if err != nil {
		return err
	}
	if !ok {
		return predicate.Fail(fmt.Sprintf("Attribute '%s' does not exist.", name))
	}

	return predicate.Check(predicate.Equality, actual, expected, o.message)
}

// ElementAttributeShouldMatch verifies that the named attribute of the
// selected element matches the regular expression pattern in full. A
// missing attribute fails the assertion.
func ElementAttributeShouldMatch(src any, name, pattern string, opts ...Option) error {
	o := newOptions(opts)

	actual, ok, err := GetElementAttribute(src, name, opts...)
	if err != nil {
		return err
	}
	if !ok {
		return predicate.Fail(fmt.Sprintf("Attribute '%s' does not exist.", name))
	}

	return predicate.Check(predicate.Pattern, actual, pattern, o.message)
}

// selectAttribute looks the attribute up by its full prefixed name so a
// plain name never selects a namespaced attribute by accident.
func selectAttribute(el *etree.Element, name string) (etree.Attr, bool) {
	for _, attr := range el.Attr {
		if attr.FullKey() == name {
			return attr, true
		}
	}

	return etree.Attr{}, false
}
