package crontip

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/arjunmahishi/crontip/cron"
)

const (
	// DefaultBaseURL is the cron parser page the "More details" link points at.
	DefaultBaseURL = "https://elmah.io/tools/cron-parser/"
	// DefaultLabel is the text of the tooltip's link.
	DefaultLabel = "More details"
	// DefaultActionTooltip is the hover text of the tooltip's link.
	DefaultActionTooltip = "Click here to see more details about this expression"
)

// Action is the deep link shown under the description. The host opens URI
// only when the user clicks it.
type Action struct {
	Label   string `json:"label"`
	Tooltip string `json:"tooltip,omitempty"`
	URI     string `json:"uri"`
}

// Tooltip is the quick-info payload for a cron literal.
type Tooltip struct {
	Anchor     Span     `json:"anchor"`
	Range      Range    `json:"range"`
	Role       string   `json:"role"`
	Expression string   `json:"expression"`
	Lines      []string `json:"lines"`
	Action     Action   `json:"action"`
}

// Option configures tooltip composition.
type Option func(*config)

type config struct {
	baseURL string
	label   string
	logger  *zap.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		baseURL: DefaultBaseURL,
		label:   DefaultLabel,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithBaseURL overrides the deep-link base URL.
func WithBaseURL(url string) Option {
	return func(c *config) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithLabel overrides the deep-link label.
func WithLabel(label string) Option {
	return func(c *config) {
		if label != "" {
			c.label = label
		}
	}
}

// WithLogger sets the logger used for suppressed faults.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// ActionURI builds the deep link for expr. Spaces become underscores so the
// expression survives as a URL fragment.
func ActionURI(baseURL, expr string) string {
	return baseURL + "#" + strings.ReplaceAll(expr, " ", "_")
}

// DocumentHandle identifies a document to a TreeProvider.
type DocumentHandle string

// TreeProvider supplies the current document and its syntax tree. It may
// block while the host parses; it must honour ctx. The returned tree is owned
// by the provider and is only read.
type TreeProvider interface {
	Tree(ctx context.Context, handle DocumentHandle) (Document, *sitter.Tree, error)
}

// BuildTooltip resolves the document behind handle and composes the tooltip
// for pos. Quick-info is best effort: an unavailable tree, a cancelled ctx, a
// position that is not on a cron literal, a malformed expression, and any
// internal fault all produce no tooltip.
func BuildTooltip(ctx context.Context, provider TreeProvider, handle DocumentHandle, pos Position, opts ...Option) (tip *Tooltip, ok bool) {
	cfg := newConfig(opts)
	defer func() {
		if r := recover(); r != nil {
			cfg.logger.Debug("tooltip request failed",
				zap.String("document", string(handle)),
				zap.Int("position", int(pos)),
				zap.Any("panic", r),
			)
			tip, ok = nil, false
		}
	}()

	doc, tree, err := provider.Tree(ctx, handle)
	if err != nil {
		cfg.logger.Debug("tree unavailable", zap.String("document", string(handle)), zap.Error(err))
		return nil, false
	}
	if ctx.Err() != nil {
		return nil, false
	}
	return compose(doc, tree, pos, cfg)
}

// Compose builds the tooltip for pos in an already parsed document.
func Compose(doc Document, tree *sitter.Tree, pos Position, opts ...Option) (*Tooltip, bool) {
	return compose(doc, tree, pos, newConfig(opts))
}

// compose suppresses faults for callers that already hold a tree: tooltips
// must never break the editor, so a panic anywhere below is logged and
// reported as "no tooltip". BuildTooltip extends the same boundary over the
// provider call.
func compose(doc Document, tree *sitter.Tree, pos Position, cfg config) (tip *Tooltip, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			cfg.logger.Debug("tooltip composition failed",
				zap.String("document", doc.Path),
				zap.Int("position", int(pos)),
				zap.Any("panic", r),
			)
			tip, ok = nil, false
		}
	}()

	candidate, ok := Locate(doc, tree, pos)
	if !ok {
		return nil, false
	}

	lines, ok := cron.Describe(candidate.Text)
	if !ok {
		return nil, false
	}

	return &Tooltip{
		Anchor:     candidate.Span,
		Range:      doc.rangeOf(candidate.Span),
		Role:       candidate.Role.Name(),
		Expression: candidate.Text,
		Lines:      lines,
		Action: Action{
			Label:   cfg.label,
			Tooltip: DefaultActionTooltip,
			URI:     ActionURI(cfg.baseURL, candidate.Text),
		},
	}, true
}

// ParseTreeProvider parses documents on demand. Handles are file paths;
// Overlay holds unsaved buffer contents that take precedence over the file
// on disk.
type ParseTreeProvider struct {
	Overlay map[DocumentHandle][]byte
}

// Tree implements TreeProvider.
func (p ParseTreeProvider) Tree(ctx context.Context, handle DocumentHandle) (Document, *sitter.Tree, error) {
	path := string(handle)
	language := ForPath(path)
	if language == nil {
		return Document{}, nil, fmt.Errorf("%w: %w: %s", ErrTreeUnavailable, ErrUnsupportedLanguage, path)
	}

	source, ok := p.Overlay[handle]
	if !ok {
		var err error
		source, err = os.ReadFile(path)
		if err != nil {
			return Document{}, nil, fmt.Errorf("%w: %w", ErrTreeUnavailable, err)
		}
	}

	tree, err := newParser(language).parse(ctx, source)
	if err != nil {
		return Document{}, nil, fmt.Errorf("%w: %w", ErrTreeUnavailable, err)
	}
	return Document{Path: path, Source: source, Language: language}, tree, nil
}
