// Package predicate implements the comparison primitives assertions are
// built from: strict equality and anchored pattern matching.
package predicate

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

var (
	// ErrAssertion is the sentinel error for all assertion failures.
	// It allows error wrapping and consistent error checks using errors.Is().
	ErrAssertion = errors.New("assertion failed")

	// ErrPattern is the sentinel error for match patterns the regexp engine
	// cannot compile.
	ErrPattern = errors.New("invalid pattern")
)

// Strategy pairs a value comparison with the wording used when it fails.
type Strategy struct {
	Compare  func(actual, expected string) (bool, error)
	Describe func(actual, expected string) string
}

// Equality compares values byte for byte.
var Equality = Strategy{
	Compare: func(actual, expected string) (bool, error) {
		return actual == expected, nil
	},
	Describe: func(actual, expected string) string {
		return fmt.Sprintf("%s != %s", actual, expected)
	},
}

// Pattern treats the expected value as a regular expression that must cover
// the whole actual value.
var Pattern = Strategy{
	Compare: matchPattern,
	Describe: func(actual, pattern string) string {
		return fmt.Sprintf("%s does not match %s", actual, pattern)
	},
}

func matchPattern(actual, pattern string) (bool, error) {
	re, err := compiler.compile(pattern)
	if err != nil {
		return false, fmt.Errorf("%w %q: %v", ErrPattern, pattern, err)
	}

	return re.MatchString(actual), nil
}

// Fail returns an assertion failure carrying message.
func Fail(message string) error {
	return fmt.Errorf("%w: %s", ErrAssertion, message)
}

// Check runs strategy on the value pair and converts a mismatch into an
// assertion failure. A non-empty message replaces the generated one.
func Check(strategy Strategy, actual, expected, message string) error {
	ok, err := strategy.Compare(actual, expected)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	if message == "" {
		message = strategy.Describe(actual, expected)
	}

	return Fail(message)
}

// cachedPatternCompiler caches compiled patterns to avoid recompilation.
type cachedPatternCompiler struct {
	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

var compiler = &cachedPatternCompiler{patterns: make(map[string]*regexp.Regexp)}

// compile returns the anchored regular expression for pattern, compiling and
// caching it on first use.
func (c *cachedPatternCompiler) compile(pattern string) (*regexp.Regexp, error) {
	c.mu.RLock()
	if re, exists := c.patterns[pattern]; exists {
		c.mu.RUnlock()
		return re, nil
	}
	c.mu.RUnlock()

	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.patterns[pattern] = re
	c.mu.Unlock()

	return re, nil
}
