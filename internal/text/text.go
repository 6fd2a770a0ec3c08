// Package text extracts and normalizes the character data of element trees.
package text

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

var whitespace = regexp.MustCompile(`\s+`)

// Extract returns all character data inside el in document order: the
// element's own leading text, then recursively each child's text and tail.
// The tail of el itself belongs to its parent's content and is excluded.
func Extract(el *etree.Element) string {
	var b strings.Builder
	write(&b, el, true)
	return b.String()
}

func write(b *strings.Builder, el *etree.Element, top bool) {
	b.WriteString(el.Text())
	for _, child := range el.ChildElements() {
		write(b, child, false)
	}
	if !top {
		b.WriteString(el.Tail())
	}
}

// Normalize trims s and collapses every whitespace run to a single space.
func Normalize(s string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}
