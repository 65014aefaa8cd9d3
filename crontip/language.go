package crontip

import (
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language defines the interface for a supported programming language.
type Language interface {
	// Name returns the language identifier (e.g., "go", "csharp").
	Name() string

	// Extensions returns file extensions for this language (e.g., [".go"]).
	Extensions() []string

	// TreeSitterLang returns the tree-sitter language grammar.
	TreeSitterLang() *sitter.Language

	// LiteralsQuery returns the tree-sitter query capturing every string
	// literal as @literal.
	LiteralsQuery() string

	// Syntax returns the node-type tables the locator walks.
	Syntax() *Syntax
}

// registry holds all registered languages.
var registry = make(map[string]Language)

// Register adds a language to the registry.
// This is typically called from init() functions in language implementation files.
func Register(lang Language) {
	registry[lang.Name()] = lang
}

// Get returns a language by name, or nil if not found.
func Get(name string) Language {
	return registry[name]
}

// List returns all registered language names in sorted order.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByExtension finds a language by file extension.
func ByExtension(ext string) Language {
	ext = strings.ToLower(ext)
	for _, lang := range registry {
		for _, e := range lang.Extensions() {
			if e == ext {
				return lang
			}
		}
	}
	return nil
}

// ForPath finds a language by the extension of path.
func ForPath(path string) Language {
	return ByExtension(filepath.Ext(path))
}
