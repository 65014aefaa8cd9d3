package cron

import (
	"fmt"
	"strconv"
	"unicode"

	pc "github.com/shibukawa/parsercombinator"
)

type tokenType int

const (
	tokNumber tokenType = iota
	tokName
	tokStar
	tokQuestion
	tokDash
	tokSlash
	tokComma
)

type token struct {
	typ    tokenType
	text   string
	offset int
}

var punctuation = map[rune]tokenType{
	'*': tokStar,
	'?': tokQuestion,
	'-': tokDash,
	'/': tokSlash,
	',': tokComma,
}

// tokenize splits a single field into grammar tokens. Digits and letters are
// grouped; every other rune must be one of the punctuation characters.
func tokenize(field string) ([]token, error) {
	runes := []rune(field)
	var tokens []token
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			tokens = append(tokens, token{typ: tokNumber, text: string(runes[i:j]), offset: i})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			tokens = append(tokens, token{typ: tokName, text: string(runes[i:j]), offset: i})
			i = j
		default:
			typ, ok := punctuation[r]
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, r, i)
			}
			tokens = append(tokens, token{typ: typ, text: string(r), offset: i})
			i++
		}
	}
	return tokens, nil
}

func toParserTokens(tokens []token) []pc.Token[token] {
	results := make([]pc.Token[token], len(tokens))
	for i, t := range tokens {
		results[i] = pc.Token[token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  1,
				Col:   t.offset + 1,
				Index: t.offset,
			},
			Val: t,
			Raw: t.text,
		}
	}
	return results
}

func primitive(types ...tokenType) pc.Parser[token] {
	return func(pctx *pc.ParseContext[token], tokens []pc.Token[token]) (int, []pc.Token[token], error) {
		if len(tokens) > 0 {
			for _, typ := range types {
				if tokens[0].Val.typ == typ {
					return 1, tokens[:1], nil
				}
			}
		}
		return 0, nil, pc.ErrNotMatch
	}
}

var (
	number   = primitive(tokNumber)
	atom     = primitive(tokNumber, tokName)
	wildcard = primitive(tokStar, tokQuestion)
	dash     = primitive(tokDash)
	slash    = primitive(tokSlash)
	comma    = primitive(tokComma)

	step = pc.Seq(slash, number)

	// term := ("*" | "?") ["/" n] | atom ["-" atom] ["/" n]
	term = pc.Or(
		pc.Seq(wildcard, pc.Optional(step)),
		pc.Seq(atom, pc.Optional(pc.Seq(dash, atom)), pc.Optional(step)),
	)

	// field := term ("," term)* EOS
	fieldGrammar = pc.Seq(
		term,
		pc.ZeroOrMore("list", pc.Seq(comma, term)),
		pc.EOS[token](),
	)
)

// parseField validates raw against the term grammar and then resolves every
// term against the domain of kind.
func parseField(kind FieldKind, raw string) (Field, error) {
	tokens, err := tokenize(raw)
	if err != nil {
		return Field{}, err
	}
	if len(tokens) == 0 {
		return Field{}, fmt.Errorf("%w: empty field", ErrSyntax)
	}

	pctx := pc.NewParseContext[token]()
	pctx.OrMode = pc.OrModeTryFast
	if _, _, err := fieldGrammar(pctx, toParserTokens(tokens)); err != nil {
		return Field{}, fmt.Errorf("%w: %q", ErrSyntax, raw)
	}

	d := domains[kind]
	field := Field{Kind: kind}
	for _, part := range splitTerms(tokens) {
		t, err := resolveTerm(d, part)
		if err != nil {
			return Field{}, err
		}
		field.Terms = append(field.Terms, t)
	}

	// A bare wildcard swallows every other term of the list.
	for _, t := range field.Terms {
		if t.Kind == Wildcard && t.Step == 0 {
			field.Terms = []Term{t}
			break
		}
	}
	return field, nil
}

func splitTerms(tokens []token) [][]token {
	var parts [][]token
	start := 0
	for i, t := range tokens {
		if t.typ == tokComma {
			parts = append(parts, tokens[start:i])
			start = i + 1
		}
	}
	return append(parts, tokens[start:])
}

// resolveTerm converts the tokens of a grammar-valid term into a Term. The
// grammar guarantees one of the shapes: W, W/n, a, a/n, a-b, a-b/n.
func resolveTerm(d domain, tokens []token) (Term, error) {
	var t Term
	if n := len(tokens); n >= 2 && tokens[n-2].typ == tokSlash {
		s, err := strconv.Atoi(tokens[n-1].text)
		if err != nil || s <= 0 {
			return Term{}, fmt.Errorf("%w: invalid step %q in %s field", ErrOutOfRange, tokens[n-1].text, d.name)
		}
		t.Step = s
		tokens = tokens[:n-2]
	}

	switch {
	case tokens[0].typ == tokStar || tokens[0].typ == tokQuestion:
		if tokens[0].typ == tokQuestion && !d.optional {
			return Term{}, fmt.Errorf("%w: %q is not allowed in %s field", ErrSyntax, "?", d.name)
		}
		t.Kind = Wildcard
		t.From, t.To = d.min, d.max
	case len(tokens) == 3:
		lo, err := resolveAtom(d, tokens[0])
		if err != nil {
			return Term{}, err
		}
		hi, err := resolveAtom(d, tokens[2])
		if err != nil {
			return Term{}, err
		}
		if lo > hi {
			return Term{}, fmt.Errorf("%w: range %d-%d is inverted in %s field", ErrOutOfRange, lo, hi, d.name)
		}
		t.Kind = Range
		t.From, t.To = lo, hi
	default:
		v, err := resolveAtom(d, tokens[0])
		if err != nil {
			return Term{}, err
		}
		t.Kind = Value
		t.From, t.To = v, v
	}
	return t, nil
}

func resolveAtom(d domain, tok token) (int, error) {
	if tok.typ == tokName {
		v, ok := d.alias(tok.text)
		if !ok {
			return 0, fmt.Errorf("%w: unknown name %q in %s field", ErrOutOfRange, tok.text, d.name)
		}
		return v, nil
	}
	v, err := strconv.Atoi(tok.text)
	if err != nil || !d.contains(v) {
		return 0, fmt.Errorf("%w: value %s out of bounds [%d, %d] in %s field", ErrOutOfRange, tok.text, d.min, d.max, d.name)
	}
	return v, nil
}
