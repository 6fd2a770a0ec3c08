// Package source resolves the supported XML input kinds into parsed element trees.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
)

// ErrParse is returned when a source cannot be read or parsed as XML.
var ErrParse = errors.New("parse error")

// Resolve turns src into the root element of a parsed tree. Strings
// starting with '<' are parsed as inline XML, other strings are treated
// as file paths. Byte slices and readers are always parsed as content,
// and already parsed elements and documents are passed through without
// reparsing.
func Resolve(src any) (*etree.Element, error) {
	switch s := src.(type) {
	case *etree.Element:
		if s == nil {
			return nil, fmt.Errorf("%w: nil element", ErrParse)
		}
		return s, nil
	case *etree.Document:
		return rootOf(s)
	case string:
		if looksLikeXML(s) {
			return parseString(s)
		}
		return parseFile(s)
	case []byte:
		return parseBytes(s)
	case io.Reader:
		return parseReader(s)
	case nil:
		return nil, fmt.Errorf("%w: nil source", ErrParse)
	default:
		return nil, fmt.Errorf("%w: unsupported source type %T", ErrParse, src)
	}
}

func looksLikeXML(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "<")
}

func parseString(content string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return parsedRoot(doc)
}

func parseBytes(content []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return parsedRoot(doc)
}

func parseReader(r io.Reader) (*etree.Element, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return parsedRoot(doc)
}

func parseFile(path string) (*etree.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()

	return parseReader(f)
}

// parsedRoot extracts the root of a document this package parsed
// itself. Character data between the root element's closing tag and
// the end of the document belongs to the document, not to the root,
// so the root's tail is cleared.
func parsedRoot(doc *etree.Document) (*etree.Element, error) {
	root, err := rootOf(doc)
	if err != nil {
		return nil, err
	}
	root.SetTail("")

	return root, nil
}

func rootOf(doc *etree.Document) (*etree.Element, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrParse)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no element found", ErrParse)
	}

	return root, nil
}
