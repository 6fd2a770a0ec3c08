// Package query evaluates path expressions against parsed element trees.
package query

import (
	"errors"
	"fmt"
	"sync"

	"github.com/beevik/etree"
)

// self matches the queried element itself and is resolved without
// compiling a path.
const self = "."

var (
	// ErrQuery is returned when a path expression cannot be compiled.
	ErrQuery = errors.New("invalid xpath")
	// ErrNoMatch is returned when a single element is required and none matches.
	ErrNoMatch = errors.New("no match")
	// ErrAmbiguous is returned when a single element is required and several match.
	ErrAmbiguous = errors.New("ambiguous match")
)

// Element returns the exactly one element matching xpath under parent.
// Zero matches yield ErrNoMatch and two or more yield ErrAmbiguous.
func Element(parent *etree.Element, xpath string) (*etree.Element, error) {
	matches, err := Elements(parent, xpath)
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("%w: no element matching '%s' found", ErrNoMatch, xpath)
	default:
		return nil, fmt.Errorf("%w: multiple elements (%d) matching '%s' found", ErrAmbiguous, len(matches), xpath)
	}
}

// Elements returns all elements matching xpath under parent in
// document order. The path "." matches parent itself.
func Elements(parent *etree.Element, xpath string) ([]*etree.Element, error) {
	if xpath == self {
		return []*etree.Element{parent}, nil
	}

	path, err := compiler.compile(xpath)
	if err != nil {
		return nil, err
	}

	return documentOrder(parent, parent.FindElementsPath(path)), nil
}

// documentOrder sorts matches into document order. The engine's pather
// visits candidates breadth first, so a match deep in an early subtree
// would otherwise come after a shallow match in a later one.
func documentOrder(queried *etree.Element, matches []*etree.Element) []*etree.Element {
	if len(matches) < 2 {
		return matches
	}

	matched := make(map[*etree.Element]struct{}, len(matches))
	for _, el := range matches {
		matched[el] = struct{}{}
	}

	top := queried
	for top.Parent() != nil {
		top = top.Parent()
	}

	ordered := make([]*etree.Element, 0, len(matches))
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if _, ok := matched[el]; ok {
			ordered = append(ordered, el)
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(top)

	return ordered
}

type cachedPathCompiler struct {
	mu    sync.RWMutex
	paths map[string]etree.Path
}

var compiler = &cachedPathCompiler{paths: make(map[string]etree.Path)}

func (c *cachedPathCompiler) compile(xpath string) (etree.Path, error) {
	c.mu.RLock()
	path, ok := c.paths[xpath]
	c.mu.RUnlock()

	if ok {
		return path, nil
	}

	path, err := etree.CompilePath(xpath)
	if err != nil {
		return etree.Path{}, fmt.Errorf("%w '%s': %v", ErrQuery, xpath, err)
	}

	c.mu.Lock()
	c.paths[xpath] = path
	c.mu.Unlock()

	return path, nil
}
