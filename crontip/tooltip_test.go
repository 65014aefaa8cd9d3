package crontip

import (
	"context"
	"errors"
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const csharpContexts = `public class Test
{
    [Trigger("* * * * *")]
    public void Method1(string expression)
    {
    }
    private string expression = "* * * * *";
    public void Method2()
    {
        Method1("* * * * *");
    }
}
`

// parseDoc parses src as the language registered for path.
func parseDoc(t *testing.T, path, src string) (Document, *sitter.Tree) {
	t.Helper()
	language := ForPath(path)
	require.NotNil(t, language, "no language for %s", path)
	tree, err := newParser(language).parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return Document{Path: path, Source: []byte(src), Language: language}, tree
}

// positionOf returns the character offset of the n-th (0-based) occurrence
// of needle in src, shifted by delta.
func positionOf(t *testing.T, src, needle string, n, delta int) Position {
	t.Helper()
	from := 0
	for i := 0; ; i++ {
		idx := strings.Index(src[from:], needle)
		require.GreaterOrEqual(t, idx, 0, "occurrence %d of %q not found", n, needle)
		if i == n {
			return Position(len([]rune(src[:from+idx])) + delta)
		}
		from += idx + len(needle)
	}
}

func TestCompose_SameDescriptionInEveryContext(t *testing.T) {
	doc, tree := parseDoc(t, "Test.cs", csharpContexts)

	roles := []string{"annotation-argument", "initializer", "call-argument"}
	for i, role := range roles {
		pos := positionOf(t, csharpContexts, `"* * * * *"`, i, 3)
		tip, ok := Compose(doc, tree, pos)
		require.True(t, ok, "occurrence %d", i)
		assert.Equal(t, role, tip.Role)
		assert.Equal(t, []string{"Every minute"}, tip.Lines)
		assert.Equal(t, "* * * * *", tip.Expression)
		assert.True(t, strings.HasSuffix(tip.Action.URI, "#*_*_*_*_*"), tip.Action.URI)
	}
}

func TestCompose_AnchorContainsLiteral(t *testing.T) {
	doc, tree := parseDoc(t, "Test.cs", csharpContexts)

	for i := 0; i < 3; i++ {
		pos := positionOf(t, csharpContexts, `"* * * * *"`, i, 1)
		c, ok := Locate(doc, tree, pos)
		require.True(t, ok)
		assert.True(t, c.Literal.Within(c.Span), "literal %v outside anchor %v", c.Literal, c.Span)
		assert.True(t, c.Literal.Contains(pos))
		assert.Equal(t, `"* * * * *"`, doc.Text(c.Literal))
	}
}

func TestCompose_OutsideLiteral(t *testing.T) {
	doc, tree := parseDoc(t, "Test.cs", csharpContexts)

	for _, pos := range []Position{
		0,
		positionOf(t, csharpContexts, "Method1(", 1, 2),
		positionOf(t, csharpContexts, "private", 0, 0),
		Position(len([]rune(csharpContexts))),
		Position(len([]rune(csharpContexts)) + 10),
		-1,
	} {
		tip, ok := Compose(doc, tree, pos)
		assert.False(t, ok, "position %d", pos)
		assert.Nil(t, tip)
	}
}

func TestCompose_Idempotent(t *testing.T) {
	doc, tree := parseDoc(t, "Test.cs", csharpContexts)
	pos := positionOf(t, csharpContexts, `"* * * * *"`, 2, 4)

	first, ok := Compose(doc, tree, pos)
	require.True(t, ok)
	second, ok := Compose(doc, tree, pos)
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestCompose_EitherDayNote(t *testing.T) {
	src := "class T { void M() { Method1(\"0 0 1 * 1\"); } }\n"
	doc, tree := parseDoc(t, "T.cs", src)

	tip, ok := Compose(doc, tree, positionOf(t, src, "0 0 1", 0, 1))
	require.True(t, ok)
	require.Len(t, tip.Lines, 2)
	assert.Equal(t, "At 00:00, on day 1 of the month, only on Monday", tip.Lines[0])
	assert.Equal(t, "Runs when either the day of the month or the day of the week matches", tip.Lines[1])
}

func TestCompose_Options(t *testing.T) {
	doc, tree := parseDoc(t, "Test.cs", csharpContexts)
	pos := positionOf(t, csharpContexts, `"* * * * *"`, 0, 2)

	tip, ok := Compose(doc, tree, pos, WithBaseURL("https://example.com/cron"), WithLabel("Open"))
	require.True(t, ok)
	assert.Equal(t, "Open", tip.Action.Label)
	assert.Equal(t, "https://example.com/cron#*_*_*_*_*", tip.Action.URI)

	// Empty overrides keep the defaults.
	tip, ok = Compose(doc, tree, pos, WithBaseURL(""), WithLabel(""), WithLogger(nil))
	require.True(t, ok)
	assert.Equal(t, DefaultLabel, tip.Action.Label)
	assert.Equal(t, DefaultBaseURL+"#*_*_*_*_*", tip.Action.URI)
	assert.Equal(t, DefaultActionTooltip, tip.Action.Tooltip)
}

func TestCompose_Range(t *testing.T) {
	src := "class T\n{\n    string s = \"* * * * *\";\n}\n"
	doc, tree := parseDoc(t, "T.cs", src)

	tip, ok := Compose(doc, tree, positionOf(t, src, "* *", 0, 0))
	require.True(t, ok)
	assert.Equal(t, Range{Start: Point{Line: 3, Column: 12}, End: Point{Line: 3, Column: 27}}, tip.Range)
}

func TestActionURI(t *testing.T) {
	assert.Equal(t, "https://elmah.io/tools/cron-parser/#*/5_*_*_*_*", ActionURI(DefaultBaseURL, "*/5 * * * *"))
	assert.Equal(t, "base#0_0_12_*_*_?", ActionURI("base", "0 0 12 * * ?"))
}

// staticProvider hands out a fixed document and tree, or a fixed error.
type staticProvider struct {
	doc  Document
	tree *sitter.Tree
	err  error
}

func (p staticProvider) Tree(ctx context.Context, _ DocumentHandle) (Document, *sitter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, nil, err
	}
	return p.doc, p.tree, p.err
}

func TestBuildTooltip(t *testing.T) {
	doc, tree := parseDoc(t, "Test.cs", csharpContexts)
	pos := positionOf(t, csharpContexts, `"* * * * *"`, 0, 2)

	tip, ok := BuildTooltip(context.Background(), staticProvider{doc: doc, tree: tree}, "Test.cs", pos)
	require.True(t, ok)
	assert.Equal(t, []string{"Every minute"}, tip.Lines)
}

func TestBuildTooltip_Cancelled(t *testing.T) {
	doc, tree := parseDoc(t, "Test.cs", csharpContexts)
	pos := positionOf(t, csharpContexts, `"* * * * *"`, 0, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tip, ok := BuildTooltip(ctx, staticProvider{doc: doc, tree: tree}, "Test.cs", pos)
	assert.False(t, ok)
	assert.Nil(t, tip)
}

func TestBuildTooltip_ProviderError(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	provider := staticProvider{err: errors.New("not parsed yet")}

	tip, ok := BuildTooltip(context.Background(), provider, "Test.cs", 5, WithLogger(zap.New(core)))
	assert.False(t, ok)
	assert.Nil(t, tip)
	require.Equal(t, 1, logs.FilterMessage("tree unavailable").Len())
}

// panickingProvider fails the way a broken host would.
type panickingProvider struct{}

func (panickingProvider) Tree(context.Context, DocumentHandle) (Document, *sitter.Tree, error) {
	var m map[string]int
	m["doc"]++
	return Document{}, nil, nil
}

func TestBuildTooltip_ProviderPanics(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	var tip *Tooltip
	var ok bool
	require.NotPanics(t, func() {
		tip, ok = BuildTooltip(context.Background(), panickingProvider{}, "Test.cs", 5, WithLogger(zap.New(core)))
	})
	assert.False(t, ok)
	assert.Nil(t, tip)
	require.Equal(t, 1, logs.FilterMessage("tooltip request failed").Len())
}

func TestBuildTooltip_NilProvider(t *testing.T) {
	require.NotPanics(t, func() {
		tip, ok := BuildTooltip(context.Background(), nil, "Test.cs", 5)
		assert.False(t, ok)
		assert.Nil(t, tip)
	})
}

func TestCompose_MultiValueDeclaration(t *testing.T) {
	src := "package p\nfunc f() {\n\ta, b := \"* * * * *\", \"0 0 1 * 1\"\n\t_, _ = a, b\n}\n"
	doc, tree := parseDoc(t, "p.go", src)

	first, ok := Compose(doc, tree, positionOf(t, src, "* * * * *", 0, 2))
	require.True(t, ok)
	assert.Equal(t, "initializer", first.Role)
	assert.Equal(t, []string{"Every minute"}, first.Lines)

	second, ok := Compose(doc, tree, positionOf(t, src, "0 0 1", 0, 2))
	require.True(t, ok)
	assert.Equal(t, "initializer", second.Role)
	assert.Len(t, second.Lines, 2)
	assert.Equal(t, first.Anchor, second.Anchor)
}

func TestParseTreeProvider(t *testing.T) {
	t.Run("overlay", func(t *testing.T) {
		provider := ParseTreeProvider{Overlay: map[DocumentHandle][]byte{
			"unsaved.py": []byte("SPEC = \"*/5 * * * *\"\n"),
		}}
		tip, ok := BuildTooltip(context.Background(), provider, "unsaved.py", 10)
		require.True(t, ok)
		assert.Equal(t, "initializer", tip.Role)
		assert.Equal(t, []string{"Every 5 minutes"}, tip.Lines)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, _, err := ParseTreeProvider{}.Tree(context.Background(), "notes.txt")
		require.ErrorIs(t, err, ErrTreeUnavailable)
		require.ErrorIs(t, err, ErrUnsupportedLanguage)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := ParseTreeProvider{}.Tree(context.Background(), "/does/not/exist.go")
		require.ErrorIs(t, err, ErrTreeUnavailable)
	})
}

// faultyLanguage is Go with an unquote step that panics.
type faultyLanguage struct{ *Go }

func (faultyLanguage) Syntax() *Syntax {
	syn := *goSyntax
	syn.Unquote = func(string) (string, bool) { panic("boom") }
	return &syn
}

func TestCompose_RecoversFromPanics(t *testing.T) {
	src := "package p\nvar s = \"* * * * *\"\n"
	doc, tree := parseDoc(t, "p.go", src)
	doc.Language = faultyLanguage{Go: &Go{}}

	core, logs := observer.New(zap.DebugLevel)
	tip, ok := Compose(doc, tree, positionOf(t, src, "* *", 0, 0), WithLogger(zap.New(core)))
	assert.False(t, ok)
	assert.Nil(t, tip)
	require.Equal(t, 1, logs.FilterMessage("tooltip composition failed").Len())
}
