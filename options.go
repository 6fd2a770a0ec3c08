package xq

// Option adjusts how a single operation selects and reports elements.
type Option func(*options)

type options struct {
	xpath     string
	normalize bool
	message   string
	level     string
}

func newOptions(opts []Option) options {
	o := options{
		xpath: ".",
		level: "info",
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// XPath selects the element an operation works on. It defaults to ".",
// the source element itself.
func XPath(xpath string) Option {
	return func(o *options) {
		o.xpath = xpath
	}
}

// NormalizeWhitespace strips leading and trailing whitespace and
// collapses internal whitespace runs into single spaces before text
// content is returned or compared. Attribute values and tag names are
// never normalized.
func NormalizeWhitespace() Option {
	return func(o *options) {
		o.normalize = true
	}
}

// Message replaces the generated failure message of an assertion.
func Message(message string) Option {
	return func(o *options) {
		o.message = message
	}
}

// Level sets the severity LogElement logs at. It defaults to "info".
func Level(level string) Option {
	return func(o *options) {
		o.level = level
	}
}
