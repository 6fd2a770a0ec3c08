package compare

import "strconv"

// location tracks the path of the element currently being compared,
// in the form "root/child/child[2]". Each instance counts its own
// children so sibling subtrees number their descendants independently.
type location struct {
	path     string
	children map[string]int
}

func newLocation(path string) *location {
	return &location{
		path:     path,
		children: make(map[string]int),
	}
}

// child returns the location of the next child with the given tag.
// Repeated tags get a positional suffix starting from the second
// occurrence, so the first "b" stays "b" even when "b[2]" follows.
func (l *location) child(tag string) *location {
	l.children[tag]++
	if count := l.children[tag]; count > 1 {
		tag += "[" + strconv.Itoa(count) + "]"
	}

	return newLocation(l.path + "/" + tag)
}

func (l *location) String() string {
	return l.path
}
