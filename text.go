package xq

import (
	"github.com/louarianne/xq/internal/predicate"
	"github.com/louarianne/xq/internal/text"
)

// GetElementText returns the text content of the selected element: its
// own leading text followed by the full text of each child, including
// the children's tails. The selected element's own tail is not part of
// its text content. The NormalizeWhitespace option collapses whitespace
// in the result.
func GetElementText(src any, opts ...Option) (string, error) {
	o := newOptions(opts)

	el, err := GetElement(src, opts...)
	if err != nil {
		return "", err
	}

	content := text.Extract(el)
	if o.normalize {
		content = text.Normalize(content)
	}

	return content, nil
}

// GetElementsTexts returns the text content of every element matching
// xpath, in document order.
func GetElementsTexts(src any, xpath string, opts ...Option) ([]string, error) {
	o := newOptions(opts)

	elements, err := GetElements(src, xpath)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(elements))
	for _, el := range elements {
		content := text.Extract(el)
		if o.normalize {
			content = text.Normalize(content)
		}
		texts = append(texts, content)
	}

	return texts, nil
}

// ElementTextShouldBe verifies that the text content of the selected
// element equals expected. The Message option replaces the generated
// failure message.
func ElementTextShouldBe(src any, expected string, opts ...Option) error {
	o := newOptions(opts)

	actual, err := GetElementText(src, opts...)
	if err != nil {
		return err
	}

	return predicate.Check(predicate.Equality, actual, expected, o.message)
}

// ElementTextShouldMatch verifies that the text content of the selected
// element matches the regular expression pattern in full.
func ElementTextShouldMatch(src any, pattern string, opts ...Option) error {
	o := newOptions(opts)

	actual, err := GetElementText(src, opts...)
	if err != nil {
		return err
	}

	return predicate.Check(predicate.Pattern, actual, pattern, o.message)
}
