package crontip

import (
	_ "embed"
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

//go:embed queries/go.scm
var goLiteralsQuery string

// Go implements the Language interface for Go source code. Go has no
// annotations, so literals are found as call arguments and initializers only.
type Go struct{}

func init() {
	Register(&Go{})
}

func (g *Go) Name() string {
	return "go"
}

func (g *Go) Extensions() []string {
	return []string{".go"}
}

func (g *Go) TreeSitterLang() *sitter.Language {
	return golang.GetLanguage()
}

func (g *Go) LiteralsQuery() string {
	return goLiteralsQuery
}

var goSyntax = &Syntax{
	Strings:       nodeSet("interpreted_string_literal", "raw_string_literal"),
	Wrappers:      nodeSet("literal_element", "parenthesized_expression"),
	Lists:         nodeSet("expression_list"),
	ArgumentLists: nodeSet("argument_list"),
	Calls:         nodeSet("call_expression"),
	Declarators: nodeSet(
		"var_spec",
		"const_spec",
		"short_var_declaration",
		"assignment_statement",
		"keyed_element",
	),
	Unquote: unquoteGo,
}

func (g *Go) Syntax() *Syntax {
	return goSyntax
}

func unquoteGo(raw string) (string, bool) {
	if s, ok := stripDelimiters(raw, "", "`"); ok {
		return s, true
	}
	if s, err := strconv.Unquote(raw); err == nil {
		return s, true
	}
	return stripDelimiters(raw, "", `"`)
}
