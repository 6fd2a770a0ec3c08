// Package xq inspects XML documents and asserts on their content and
// structure.
//
// Every operation accepts its source document in several forms: a file
// path, an inline XML string, a byte slice, an io.Reader, or an already
// parsed *etree.Element or *etree.Document. Strings starting with "<"
// are parsed directly and other strings are treated as file paths.
//
// Operations select the element they work on through the XPath option,
// defaulting to ".", the source element itself. The supported path
// grammar is the one implemented by github.com/beevik/etree: tag paths,
// wildcards, descendant searches and simple predicates on attributes
// and position.
//
// Assertion operations report failures as errors wrapping ErrAssertion
// with a message naming the first difference found, annotated with the
// path of the offending element such as "root/item[2]".
package xq

import (
	"github.com/beevik/etree"

	"github.com/louarianne/xq/internal/query"
	"github.com/louarianne/xq/internal/source"
)

// Parse resolves source into the root element of a parsed tree.
// Already parsed elements are returned as is, so Parse can be used to
// accept any supported source form exactly once.
func Parse(src any) (*etree.Element, error) {
	return source.Resolve(src)
}

// GetElement returns the element the XPath option selects under source.
// It fails with ErrNoMatch when nothing matches and with ErrAmbiguous
// when more than one element matches.
func GetElement(src any, opts ...Option) (*etree.Element, error) {
	o := newOptions(opts)

	root, err := source.Resolve(src)
	if err != nil {
		return nil, err
	}

	return query.Element(root, o.xpath)
}

// GetElements returns all elements matching xpath under source in
// document order. An xpath matching nothing yields an empty slice, not
// an error.
func GetElements(src any, xpath string) ([]*etree.Element, error) {
	root, err := source.Resolve(src)
	if err != nil {
		return nil, err
	}

	return query.Elements(root, xpath)
}

// GetChildElements returns the direct child elements of the selected
// element.
func GetChildElements(src any, opts ...Option) ([]*etree.Element, error) {
	el, err := GetElement(src, opts...)
	if err != nil {
		return nil, err
	}

	return el.ChildElements(), nil
}
