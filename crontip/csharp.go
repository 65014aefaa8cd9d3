package crontip

import (
	_ "embed"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

//go:embed queries/csharp.scm
var csharpLiteralsQuery string

// CSharp implements the Language interface for C# source code.
type CSharp struct{}

func init() {
	Register(&CSharp{})
}

func (c *CSharp) Name() string {
	return "csharp"
}

func (c *CSharp) Extensions() []string {
	return []string{".cs"}
}

func (c *CSharp) TreeSitterLang() *sitter.Language {
	return csharp.GetLanguage()
}

func (c *CSharp) LiteralsQuery() string {
	return csharpLiteralsQuery
}

// Older grammar releases wrap initializer values in equals_value_clause;
// newer ones attach the expression directly to the declarator. Both shapes
// are listed.
var csharpSyntax = &Syntax{
	Strings:         nodeSet("string_literal", "verbatim_string_literal", "raw_string_literal"),
	Wrappers:        nodeSet("argument", "attribute_argument", "equals_value_clause", "parenthesized_expression"),
	ArgumentLists:   nodeSet("argument_list"),
	Calls:           nodeSet("invocation_expression", "object_creation_expression"),
	AnnotationLists: nodeSet("attribute_argument_list"),
	Annotations:     nodeSet("attribute"),
	Declarators:     nodeSet("variable_declarator", "property_declaration", "assignment_expression"),
	Unquote:         unquoteCSharp,
}

func (c *CSharp) Syntax() *Syntax {
	return csharpSyntax
}

func unquoteCSharp(raw string) (string, bool) {
	raw = strings.TrimSuffix(raw, "u8")
	raw = strings.TrimSuffix(raw, "U8")
	return stripDelimiters(raw, "@", `"""`, `"`)
}
