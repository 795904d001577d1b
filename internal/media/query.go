package media

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gorilla/css/scanner"

	reflexerrors "github.com/alexisbeaulieu97/reflex/pkg/errors"
)

// PixelsPerEm is the root font size used to resolve em and rem lengths.
const PixelsPerEm = 16

// Query is a parsed media query list. It matches when any of its
// comma-separated alternatives matches.
type Query struct {
	source       string
	alternatives []conjunction
}

type conjunction struct {
	never      bool
	conditions []condition
}

type condition struct {
	feature string
	px      float64
}

// String returns the query text as given to ParseQuery.
func (q Query) String() string {
	return q.source
}

// Matches evaluates the query against a viewport width in pixels.
func (q Query) Matches(widthPx float64) bool {
	for _, alt := range q.alternatives {
		if alt.matches(widthPx) {
			return true
		}
	}
	return false
}

func (c conjunction) matches(widthPx float64) bool {
	if c.never {
		return false
	}
	for _, cond := range c.conditions {
		if !cond.matches(widthPx) {
			return false
		}
	}
	return true
}

func (c condition) matches(widthPx float64) bool {
	switch c.feature {
	case "min-width":
		return widthPx >= c.px
	case "max-width":
		return widthPx <= c.px
	case "width":
		return widthPx == c.px
	default:
		return false
	}
}

// ParseQuery parses the subset of media queries breakpoints are written in:
// width features with em, rem or px lengths joined by "and", optional
// media types (all, screen, print) and comma-separated alternatives.
func ParseQuery(source string) (Query, error) {
	p := &queryParser{source: source}
	if err := p.tokenize(); err != nil {
		return Query{}, err
	}

	query := Query{source: source}
	for {
		alt, err := p.conjunction()
		if err != nil {
			return Query{}, err
		}
		query.alternatives = append(query.alternatives, alt)

		tok, ok := p.peek()
		if !ok {
			return query, nil
		}
		if tok.Type != scanner.TokenChar || tok.Value != "," {
			return Query{}, p.errorAt(tok, fmt.Sprintf("unexpected %q", tok.Value))
		}
		p.pos++
	}
}

type queryParser struct {
	source string
	tokens []*scanner.Token
	pos    int
}

func (p *queryParser) tokenize() error {
	s := scanner.New(p.source)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			return nil
		case scanner.TokenError:
			return p.errorAt(tok, "invalid token")
		case scanner.TokenS, scanner.TokenComment:
			continue
		}
		p.tokens = append(p.tokens, tok)
	}
}

func (p *queryParser) peek() (*scanner.Token, bool) {
	if p.pos >= len(p.tokens) {
		return nil, false
	}
	return p.tokens[p.pos], true
}

func (p *queryParser) next() (*scanner.Token, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, reflexerrors.NewQueryError(p.source, len(p.source), "unexpected end of query")
	}
	p.pos++
	return tok, nil
}

func (p *queryParser) expectChar(char string) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Type != scanner.TokenChar || tok.Value != char {
		return p.errorAt(tok, fmt.Sprintf("expected %q, found %q", char, tok.Value))
	}
	return nil
}

func (p *queryParser) errorAt(tok *scanner.Token, message string) error {
	offset := 0
	if tok != nil && tok.Column > 0 {
		offset = tok.Column - 1
	}
	return reflexerrors.NewQueryError(p.source, offset, message)
}

func (p *queryParser) conjunction() (conjunction, error) {
	var conj conjunction

	tok, err := p.next()
	if err != nil {
		return conj, err
	}

	if tok.Type == scanner.TokenIdent {
		mediaType := strings.ToLower(tok.Value)
		if mediaType == "only" {
			if tok, err = p.next(); err != nil {
				return conj, err
			}
			mediaType = strings.ToLower(tok.Value)
		}
		switch mediaType {
		case "all", "screen":
		case "print", "speech":
			conj.never = true
		default:
			return conj, p.errorAt(tok, fmt.Sprintf("unknown media type %q", tok.Value))
		}
		if !p.consumeAnd() {
			return conj, nil
		}
		if tok, err = p.next(); err != nil {
			return conj, err
		}
	}

	for {
		if tok.Type != scanner.TokenChar || tok.Value != "(" {
			return conj, p.errorAt(tok, fmt.Sprintf("expected \"(\", found %q", tok.Value))
		}
		cond, err := p.condition()
		if err != nil {
			return conj, err
		}
		conj.conditions = append(conj.conditions, cond)

		if !p.consumeAnd() {
			return conj, nil
		}
		if tok, err = p.next(); err != nil {
			return conj, err
		}
	}
}

func (p *queryParser) consumeAnd() bool {
	tok, ok := p.peek()
	if !ok || tok.Type != scanner.TokenIdent || !strings.EqualFold(tok.Value, "and") {
		return false
	}
	p.pos++
	return true
}

// condition parses "feature: length)" after the opening parenthesis.
func (p *queryParser) condition() (condition, error) {
	var cond condition

	tok, err := p.next()
	if err != nil {
		return cond, err
	}
	if tok.Type != scanner.TokenIdent {
		return cond, p.errorAt(tok, fmt.Sprintf("expected media feature, found %q", tok.Value))
	}
	cond.feature = strings.ToLower(tok.Value)
	switch cond.feature {
	case "min-width", "max-width", "width":
	default:
		return cond, p.errorAt(tok, fmt.Sprintf("unsupported media feature %q", tok.Value))
	}

	if err := p.expectChar(":"); err != nil {
		return cond, err
	}

	tok, err = p.next()
	if err != nil {
		return cond, err
	}
	if tok.Type != scanner.TokenDimension && tok.Type != scanner.TokenNumber {
		return cond, p.errorAt(tok, fmt.Sprintf("expected length, found %q", tok.Value))
	}
	px, err := ParseLength(tok.Value)
	if err != nil {
		return cond, p.errorAt(tok, err.Error())
	}
	cond.px = px

	return cond, p.expectChar(")")
}

// ParseLength converts a CSS length (em, rem, px, or a bare zero or number of pixels) to pixels.
func ParseLength(value string) (float64, error) {
	value = strings.TrimSpace(strings.ToLower(value))

	unit := ""
	number := value
	for _, suffix := range []string{"rem", "em", "px"} {
		if strings.HasSuffix(value, suffix) {
			unit = suffix
			number = strings.TrimSuffix(value, suffix)
			break
		}
	}

	n, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", value)
	}

	switch unit {
	case "em", "rem":
		return n * PixelsPerEm, nil
	default:
		return n, nil
	}
}
