package suite

import (
	"fmt"

	"github.com/goccy/go-yaml/ast"
)

// Value is a scalar suite field that accepts strings, integers, floats
// and booleans, and remembers whether the field was present at all. An
// absent field stays distinguishable from an empty string, which
// matters for fields where exactly one of several alternatives must be
// set.
type Value struct {
	text string
	set  bool
}

// IsSet reports whether the field was present in the suite file.
func (v Value) IsSet() bool {
	return v.set
}

// String returns the scalar rendered as a string.
func (v Value) String() string {
	return v.text
}

// UnmarshalYAML decodes a scalar node of any supported type into its
// string form.
func (v *Value) UnmarshalYAML(node ast.Node) error {
	switch n := node.(type) {
	case *ast.StringNode:
		v.text = n.Value
	case *ast.IntegerNode:
		v.text = fmt.Sprint(n.Value)
	case *ast.FloatNode:
		v.text = fmt.Sprint(n.Value)
	case *ast.BoolNode:
		v.text = fmt.Sprint(n.Value)
	default:
		return fmt.Errorf("unsupported scalar node type: %T", node)
	}
	v.set = true

	return nil
}
