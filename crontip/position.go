package crontip

import (
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// Position is a character (rune) offset into a document's text. It is valid
// in [0, rune length of the document].
type Position int

// Span is a half-open character range [Start, Start+Length).
type Span struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// End returns the first character offset after the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// Contains reports whether pos falls inside the span.
func (s Span) Contains(pos Position) bool {
	return int(pos) >= s.Start && int(pos) < s.End()
}

// Within reports whether s lies entirely inside outer.
func (s Span) Within(outer Span) bool {
	return s.Start >= outer.Start && s.End() <= outer.End()
}

// Point is a 1-based line and column, columns counted in characters.
type Point struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range is the line/column form of a span.
type Range struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Document is a source file together with the language used to parse it.
type Document struct {
	Path     string
	Source   []byte
	Language Language
}

// byteOffset converts a character offset into a byte offset. Offsets outside
// the document report false.
func (d Document) byteOffset(pos Position) (uint32, bool) {
	if pos < 0 {
		return 0, false
	}
	b := 0
	for i := 0; i < int(pos); i++ {
		if b >= len(d.Source) {
			return 0, false
		}
		_, size := utf8.DecodeRune(d.Source[b:])
		b += size
	}
	return uint32(b), true
}

// charOffset converts a byte offset into a character offset.
func (d Document) charOffset(b uint32) int {
	if int(b) > len(d.Source) {
		b = uint32(len(d.Source))
	}
	return utf8.RuneCount(d.Source[:b])
}

// span returns the character span covered by node.
func (d Document) span(node *sitter.Node) Span {
	start := d.charOffset(node.StartByte())
	return Span{Start: start, Length: d.charOffset(node.EndByte()) - start}
}

// point converts a character offset into a 1-based line and column.
func (d Document) point(offset int) Point {
	p := Point{Line: 1, Column: 1}
	for i, r := range []rune(string(d.Source)) {
		if i >= offset {
			break
		}
		if r == '\n' {
			p.Line++
			p.Column = 1
			continue
		}
		p.Column++
	}
	return p
}

// rangeOf converts a character span into a line/column range.
func (d Document) rangeOf(s Span) Range {
	return Range{Start: d.point(s.Start), End: d.point(s.End())}
}

// Text returns the characters covered by s.
func (d Document) Text(s Span) string {
	runes := []rune(string(d.Source))
	if s.Start < 0 || s.End() > len(runes) || s.Length < 0 {
		return ""
	}
	return string(runes[s.Start:s.End()])
}

// PositionAt converts a 1-based line and column into a character offset. A
// column may point one past the last character of its line.
func (d Document) PositionAt(p Point) (Position, bool) {
	if p.Line < 1 || p.Column < 1 {
		return 0, false
	}
	line, col := 1, 1
	for i, r := range []rune(string(d.Source)) {
		if line == p.Line && col == p.Column {
			return Position(i), true
		}
		if r == '\n' {
			if line == p.Line {
				return 0, false
			}
			line++
			col = 1
			continue
		}
		col++
	}
	if line == p.Line && col == p.Column {
		return Position(len([]rune(string(d.Source)))), true
	}
	return 0, false
}
