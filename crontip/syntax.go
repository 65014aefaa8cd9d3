package crontip

import "strings"

type nodeTypes map[string]struct{}

func nodeSet(names ...string) nodeTypes {
	set := make(nodeTypes, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (s nodeTypes) has(name string) bool {
	_, ok := s[name]
	return ok
}

// Syntax describes, for one grammar, which node types play the roles the
// locator looks for.
type Syntax struct {
	// Strings are plain string literal nodes.
	Strings nodeTypes
	// Interpolations are child node types that turn a string literal into a
	// template (e.g. Python f-string replacement fields).
	Interpolations nodeTypes
	// Wrappers sit between a literal and the node that gives it a role
	// without changing that role (C# argument, Java element_value_pair).
	Wrappers nodeTypes
	// Lists sit like wrappers but hold several values side by side (Go
	// "a, b := x, y"); any element keeps the role of the list.
	Lists nodeTypes
	// ArgumentLists hold call arguments; their parent must be in Calls.
	ArgumentLists nodeTypes
	Calls         nodeTypes
	// AnnotationLists hold annotation arguments; their parent must be in
	// Annotations.
	AnnotationLists nodeTypes
	Annotations     nodeTypes
	// Decorators turn a call they directly contain into an annotation
	// (Python "@schedule(...)").
	Decorators nodeTypes
	// Declarators bind a name to a value written as their last named child.
	Declarators nodeTypes

	// Unquote strips the literal delimiters from the raw source text of a
	// string node.
	Unquote func(raw string) (string, bool)
}

// stripDelimiters removes any leading prefix runes from prefixes and then the
// first pair of quotes that encloses the rest. quotes must be ordered
// longest first so that triple quotes win over single ones.
func stripDelimiters(raw, prefixes string, quotes ...string) (string, bool) {
	s := strings.TrimLeft(raw, prefixes)
	for _, q := range quotes {
		if len(s) >= 2*len(q) && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return s[len(q) : len(s)-len(q)], true
		}
	}
	return "", false
}
