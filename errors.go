package xq

import (
	"errors"

	"github.com/louarianne/xq/internal/predicate"
	"github.com/louarianne/xq/internal/query"
	"github.com/louarianne/xq/internal/source"
)

// Every operation wraps one of these sentinels so callers can classify
// failures with errors.Is.
var (
	// ErrParse reports a source that could not be read or parsed as XML.
	ErrParse = source.ErrParse
	// ErrQuery reports an xpath expression that could not be compiled.
	ErrQuery = query.ErrQuery
	// ErrNoMatch reports an xpath that matched no element where exactly one was required.
	ErrNoMatch = query.ErrNoMatch
	// ErrAmbiguous reports an xpath that matched several elements where exactly one was required.
	ErrAmbiguous = query.ErrAmbiguous
	// ErrAssertion reports a failed assertion.
	ErrAssertion = predicate.ErrAssertion
	// ErrPattern reports a pattern that is not a valid regular expression.
	ErrPattern = predicate.ErrPattern
)

// IsNoMatch reports whether err is a query that matched no element.
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoMatch)
}

// IsAssertionFailure reports whether err is a failed assertion.
func IsAssertionFailure(err error) bool {
	return errors.Is(err, ErrAssertion)
}
