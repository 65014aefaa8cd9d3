package crontip

import (
	_ "embed"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

//go:embed queries/python.scm
var pythonLiteralsQuery string

// Python implements the Language interface for Python source code. Decorator
// calls count as annotations.
type Python struct{}

func init() {
	Register(&Python{})
}

func (p *Python) Name() string {
	return "python"
}

func (p *Python) Extensions() []string {
	return []string{".py"}
}

func (p *Python) TreeSitterLang() *sitter.Language {
	return python.GetLanguage()
}

func (p *Python) LiteralsQuery() string {
	return pythonLiteralsQuery
}

var pythonSyntax = &Syntax{
	Strings:        nodeSet("string"),
	Interpolations: nodeSet("interpolation"),
	Wrappers:       nodeSet("keyword_argument", "parenthesized_expression"),
	Lists:          nodeSet("expression_list"),
	ArgumentLists:  nodeSet("argument_list"),
	Calls:          nodeSet("call"),
	Decorators:     nodeSet("decorator"),
	Declarators:    nodeSet("assignment"),
	Unquote: func(raw string) (string, bool) {
		return stripDelimiters(raw, "rRbBuUfF", `"""`, `'''`, `"`, `'`)
	},
}

func (p *Python) Syntax() *Syntax {
	return pythonSyntax
}
