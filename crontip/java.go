package crontip

import (
	_ "embed"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

//go:embed queries/java.scm
var javaLiteralsQuery string

// Java implements the Language interface for Java source code, covering
// annotation-driven schedulers such as @Scheduled(cron = "...").
type Java struct{}

func init() {
	Register(&Java{})
}

func (j *Java) Name() string {
	return "java"
}

func (j *Java) Extensions() []string {
	return []string{".java"}
}

func (j *Java) TreeSitterLang() *sitter.Language {
	return java.GetLanguage()
}

func (j *Java) LiteralsQuery() string {
	return javaLiteralsQuery
}

var javaSyntax = &Syntax{
	Strings:         nodeSet("string_literal"),
	Wrappers:        nodeSet("element_value_pair", "parenthesized_expression"),
	ArgumentLists:   nodeSet("argument_list"),
	Calls:           nodeSet("method_invocation", "object_creation_expression", "explicit_constructor_invocation"),
	AnnotationLists: nodeSet("annotation_argument_list"),
	Annotations:     nodeSet("annotation"),
	Declarators:     nodeSet("variable_declarator", "assignment_expression"),
	Unquote: func(raw string) (string, bool) {
		return stripDelimiters(raw, "", `"""`, `"`)
	},
}

func (j *Java) Syntax() *Syntax {
	return javaSyntax
}
