// Package output renders crontip results as JSON or as colored text.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/arjunmahishi/crontip/crontip"
)

// Format selects how results are rendered.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json or text)", s)
}

var (
	locationFmt   = color.New(color.FgCyan).SprintfFunc()
	roleFmt       = color.New(color.FgMagenta).SprintFunc()
	expressionFmt = color.New(color.Bold).SprintFunc()
	noteFmt       = color.New(color.FgYellow).SprintFunc()
	linkFmt       = color.New(color.FgBlue, color.Underline).SprintFunc()
	errorFmt      = color.New(color.Bold, color.FgRed).SprintFunc()
)

// Writer handles structured output.
type Writer struct {
	out     io.Writer
	encoder *json.Encoder
	format  Format
	compact bool
}

// Config holds output configuration.
type Config struct {
	Format  Format
	Compact bool
	Output  io.Writer
}

// New creates a new output Writer.
func New(cfg Config) *Writer {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Format == "" {
		cfg.Format = FormatJSON
	}

	enc := json.NewEncoder(cfg.Output)
	enc.SetEscapeHTML(false)
	if !cfg.Compact {
		enc.SetIndent("", "  ")
	}

	return &Writer{
		out:     cfg.Output,
		encoder: enc,
		format:  cfg.Format,
		compact: cfg.Compact,
	}
}

// Write outputs a value as JSON.
func (w *Writer) Write(v any) error {
	return w.encoder.Encode(v)
}

// Description is the result of the describe command.
type Description struct {
	Expression string   `json:"expression"`
	Valid      bool     `json:"valid"`
	Lines      []string `json:"lines,omitempty"`
	URI        string   `json:"uri,omitempty"`
}

// WriteDescriptions renders describe results.
func (w *Writer) WriteDescriptions(ds []Description) error {
	if w.format == FormatJSON {
		return w.Write(ds)
	}
	for _, d := range ds {
		if !d.Valid {
			fmt.Fprintf(w.out, "%s\n  %s\n", expressionFmt(d.Expression), noteFmt("not a valid cron expression"))
			continue
		}
		fmt.Fprintf(w.out, "%s\n", expressionFmt(d.Expression))
		w.writeLines(d.Lines)
		if !w.compact && d.URI != "" {
			fmt.Fprintf(w.out, "  %s\n", linkFmt(d.URI))
		}
	}
	return nil
}

// WriteTooltip renders a hover result. A nil tooltip is written as JSON null
// or as a short note.
func (w *Writer) WriteTooltip(tip *crontip.Tooltip) error {
	if w.format == FormatJSON {
		return w.Write(tip)
	}
	if tip == nil {
		fmt.Fprintln(w.out, noteFmt("no tooltip"))
		return nil
	}
	w.writeHeader(tip.Range.Start, tip.Role, tip.Expression)
	w.writeLines(tip.Lines)
	if !w.compact {
		fmt.Fprintf(w.out, "  %s: %s\n", tip.Action.Label, linkFmt(tip.Action.URI))
	}
	return nil
}

// WriteFindings renders scan results, one block per finding.
func (w *Writer) WriteFindings(findings []crontip.Finding) error {
	if w.format == FormatJSON {
		return w.Write(findings)
	}
	for _, f := range findings {
		fmt.Fprintf(w.out, "%s ", locationFmt("%s:%d:%d", f.File, f.Range.Start.Line, f.Range.Start.Column))
		w.writeHeader(crontip.Point{}, f.Role, f.Expression)
		w.writeLines(f.Lines)
	}
	return nil
}

// WriteLanguages renders the registered languages and their extensions.
func (w *Writer) WriteLanguages(languages map[string][]string, names []string) error {
	if w.format == FormatJSON {
		return w.Write(languages)
	}
	for _, name := range names {
		fmt.Fprintf(w.out, "%s %s\n", expressionFmt(name), strings.Join(languages[name], " "))
	}
	return nil
}

func (w *Writer) writeHeader(at crontip.Point, role, expr string) {
	if at.Line > 0 {
		fmt.Fprintf(w.out, "%s ", locationFmt("%d:%d", at.Line, at.Column))
	}
	fmt.Fprintf(w.out, "%s %s\n", roleFmt(role), expressionFmt(expr))
}

func (w *Writer) writeLines(lines []string) {
	for i, l := range lines {
		if i > 0 {
			l = noteFmt(l)
		}
		fmt.Fprintf(w.out, "  %s\n", l)
	}
}

// WriteError writes an error message to stderr, as JSON or as a colored line.
func WriteError(format Format, err error) {
	writeError(os.Stderr, format, err)
}

func writeError(out io.Writer, format Format, err error) {
	if format == FormatText {
		fmt.Fprintf(out, "%s: %s\n", errorFmt("error"), err)
		return
	}
	enc := json.NewEncoder(out)
	enc.Encode(map[string]any{
		"error": err.Error(),
	})
}
