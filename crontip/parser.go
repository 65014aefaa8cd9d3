package crontip

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
)

// parser wraps a tree-sitter parser for a specific language.
// A parser must not be shared between goroutines.
type parser struct {
	parser *sitter.Parser
	lang   Language
}

// newParser creates a new parser for the given language.
func newParser(language Language) *parser {
	p := sitter.NewParser()
	p.SetLanguage(language.TreeSitterLang())
	return &parser{
		parser: p,
		lang:   language,
	}
}

// parse parses source code and returns the syntax tree. It returns an error
// when ctx is cancelled before parsing completes.
func (p *parser) parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return tree, nil
}

// parseFile reads and parses a file.
func (p *parser) parseFile(ctx context.Context, path string) (*sitter.Tree, []byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}
	tree, err := p.parse(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	return tree, source, nil
}

// query represents a compiled tree-sitter query.
type query struct {
	query        *sitter.Query
	captureNames []string
}

// newQuery compiles a tree-sitter query string.
func newQuery(queryStr string, language Language) (*query, error) {
	q, err := sitter.NewQuery([]byte(queryStr), language.TreeSitterLang())
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	captureCount := int(q.CaptureCount())
	captureNames := make([]string, captureCount)
	for i := 0; i < captureCount; i++ {
		captureNames[i] = q.CaptureNameForId(uint32(i))
	}

	return &query{
		query:        q,
		captureNames: captureNames,
	}, nil
}

// nodes executes the query on a syntax tree and returns the nodes captured
// under name, in document order.
func (q *query) nodes(tree *sitter.Tree, name string) []*sitter.Node {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q.query, tree.RootNode())

	var nodes []*sitter.Node
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			if q.captureName(capture.Index) == name {
				nodes = append(nodes, capture.Node)
			}
		}
	}
	return nodes
}

func (q *query) captureName(index uint32) string {
	if int(index) >= len(q.captureNames) {
		return fmt.Sprintf("capture_%d", index)
	}
	return q.captureNames[index]
}
