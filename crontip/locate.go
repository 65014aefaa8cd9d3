package crontip

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Candidate is a string literal found at a cursor position that may hold a
// cron expression.
type Candidate struct {
	// Text is the literal's content without its delimiters. It is never blank.
	Text string
	// Span is the span of the anchor node (the argument or declarator), not
	// of the literal itself.
	Span Span
	// Literal is the span of the literal including its delimiters.
	Literal Span
	Role    Role
}

// Locate finds the string literal under pos and reports it when it is used as
// a call argument, an annotation argument, or an initializer. Interpolated,
// concatenated, and blank literals are not candidates.
func Locate(doc Document, tree *sitter.Tree, pos Position) (Candidate, bool) {
	if tree == nil || doc.Language == nil {
		return Candidate{}, false
	}
	offset, ok := doc.byteOffset(pos)
	if !ok {
		return Candidate{}, false
	}
	root := tree.RootNode()
	if root == nil {
		return Candidate{}, false
	}
	node := nodeAt(root, offset)
	if node == nil {
		return Candidate{}, false
	}

	syn := doc.Language.Syntax()
	lit := enclosingLiteral(syn, node)
	if lit == nil {
		return Candidate{}, false
	}
	return candidateFor(doc, syn, lit)
}

// candidateFor builds a candidate from a string literal node.
func candidateFor(doc Document, syn *Syntax, lit *sitter.Node) (Candidate, bool) {
	if hasChildOfType(lit, syn.Interpolations) {
		return Candidate{}, false
	}

	role := classify(syn, lit)
	if role == nil {
		return Candidate{}, false
	}

	text, ok := syn.Unquote(lit.Content(doc.Source))
	if !ok || strings.TrimSpace(text) == "" {
		return Candidate{}, false
	}

	return Candidate{
		Text:    text,
		Span:    doc.span(role.anchor()),
		Literal: doc.span(lit),
		Role:    role,
	}, true
}

// nodeAt returns the smallest node whose byte range contains offset, or nil
// when offset lies outside root.
func nodeAt(root *sitter.Node, offset uint32) *sitter.Node {
	if offset < root.StartByte() || offset >= root.EndByte() {
		return nil
	}
	node := root
	for {
		var next *sitter.Node
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child != nil && child.StartByte() <= offset && offset < child.EndByte() {
				next = child
				break
			}
		}
		if next == nil {
			return node
		}
		node = next
	}
}

// enclosingLiteral walks up from node to the nearest string literal.
func enclosingLiteral(syn *Syntax, node *sitter.Node) *sitter.Node {
	for n := node; n != nil; n = n.Parent() {
		if syn.Strings.has(n.Type()) {
			return n
		}
	}
	return nil
}

func hasChildOfType(node *sitter.Node, set nodeTypes) bool {
	if len(set) == 0 {
		return false
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil && set.has(child.Type()) {
			return true
		}
	}
	return false
}
