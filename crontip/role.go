package crontip

import sitter "github.com/smacker/go-tree-sitter"

// Role is the syntactic role a string literal plays. The set of roles is
// closed: CallArgument, AnnotationArgument, and Initializer. A literal with
// no recognised role has a nil Role.
type Role interface {
	// Name returns the role identifier used in output ("call-argument", ...).
	Name() string
	// anchor is the node the tooltip is attached to.
	anchor() *sitter.Node
	role()
}

// CallArgument is a literal passed to a function, method, or constructor.
type CallArgument struct {
	Call     *sitter.Node
	Argument *sitter.Node
}

// AnnotationArgument is a literal passed to an attribute, annotation, or
// decorator.
type AnnotationArgument struct {
	Annotation *sitter.Node
	Argument   *sitter.Node
}

// Initializer is a literal bound to a variable, constant, field, property,
// or composite-literal key.
type Initializer struct {
	Declarator *sitter.Node
	Value      *sitter.Node
}

func (CallArgument) Name() string       { return "call-argument" }
func (AnnotationArgument) Name() string { return "annotation-argument" }
func (Initializer) Name() string        { return "initializer" }

func (r CallArgument) anchor() *sitter.Node       { return r.Argument }
func (r AnnotationArgument) anchor() *sitter.Node { return r.Argument }
func (r Initializer) anchor() *sitter.Node        { return r.Declarator }

func (CallArgument) role()       {}
func (AnnotationArgument) role() {}
func (Initializer) role()        {}

// classify determines the role of the string literal lit by skipping
// transparent wrappers and value lists and inspecting the first significant
// ancestor.
func classify(syn *Syntax, lit *sitter.Node) Role {
	child := lit
	parent := lit.Parent()
	for parent != nil && (syn.Wrappers.has(parent.Type()) || syn.Lists.has(parent.Type())) {
		if syn.Wrappers.has(parent.Type()) && !isLastNamedChild(parent, child) {
			return nil
		}
		child, parent = parent, parent.Parent()
	}
	if parent == nil {
		return nil
	}

	switch t := parent.Type(); {
	case syn.ArgumentLists.has(t):
		owner := parent.Parent()
		if owner == nil || !syn.Calls.has(owner.Type()) {
			return nil
		}
		if dec := owner.Parent(); dec != nil && syn.Decorators.has(dec.Type()) {
			return AnnotationArgument{Annotation: dec, Argument: child}
		}
		return CallArgument{Call: owner, Argument: child}

	case syn.AnnotationLists.has(t):
		owner := parent.Parent()
		if owner == nil || !syn.Annotations.has(owner.Type()) {
			return nil
		}
		return AnnotationArgument{Annotation: owner, Argument: child}

	case syn.Declarators.has(t):
		if !isLastNamedChild(parent, child) {
			return nil
		}
		return Initializer{Declarator: parent, Value: child}
	}
	return nil
}

// isLastNamedChild reports whether child is the last named child of parent.
// Nodes are compared by position and type since the bindings hand out fresh
// wrappers for the same node.
func isLastNamedChild(parent, child *sitter.Node) bool {
	n := int(parent.NamedChildCount())
	if n == 0 {
		return false
	}
	last := parent.NamedChild(n - 1)
	return last != nil &&
		last.StartByte() == child.StartByte() &&
		last.EndByte() == child.EndByte() &&
		last.Type() == child.Type()
}
