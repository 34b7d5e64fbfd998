package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/atom"
)

// ParseError describes a problem in selector text.
type ParseError struct {
	Offset int    // byte offset in the parsed text
	Msg    string // what went wrong
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

type token struct {
	tt     css.TokenType
	data   string
	offset int
}

func (t token) isDelim(s string) bool {
	return t.tt == css.DelimToken && t.data == s
}

// Parser parses selector text into selector trees.
type Parser struct {
	log      *zap.Logger
	strict   bool
	warnings []string
}

// ParserOption configures Parser.
type ParserOption func(*Parser)

// WithStrictElements makes element names unknown to HTML a parse error instead
// of a warning.
func WithStrictElements(strict bool) ParserOption {
	return func(p *Parser) { p.strict = strict }
}

// NewParser creates a new selector parser.
func NewParser(log *zap.Logger, opts ...ParserOption) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{log: log.Named("selector-parser")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Warnings returns non fatal findings of the last Parse call.
func (p *Parser) Warnings() []string {
	return p.warnings
}

// Parse parses comma separated selector list (the prelude of a CSS rule) into
// a group. Errors from different alternatives are combined, see
// multierr.Errors.
func (p *Parser) Parse(text string) (*Group, error) {
	p.warnings = make([]string, 0)

	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}

	alternatives := splitAlternatives(tokens)
	if len(alternatives) == 1 && len(trimSpace(alternatives[0].tokens)) == 0 {
		return nil, &ParseError{Offset: 0, Msg: "empty selector"}
	}

	var (
		group = NewGroup()
		errs  error
	)
	for i, alt := range alternatives {
		sel, err := p.parseSelector(alt)
		if err != nil {
			p.log.Debug("Bad selector", zap.Int("alternative", i), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		group.Append(sel)
	}
	if errs != nil {
		return nil, errs
	}

	p.log.Debug("Parsed selector group", zap.String("text", text), zap.Int("selectors", group.Len()), zap.Int("warnings", len(p.warnings)))
	return group, nil
}

// tokenize runs CSS lexer over text, dropping comments.
func tokenize(text string) ([]token, error) {
	lexer := css.NewLexer(parse.NewInputString(text))

	var (
		tokens []token
		offset int
	)
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, &ParseError{Offset: offset, Msg: err.Error()}
			}
			return tokens, nil
		}
		if tt != css.CommentToken {
			tokens = append(tokens, token{tt: tt, data: string(data), offset: offset})
		}
		offset += len(data)
	}
}

// alternative is one member of a comma separated selector list.
type alternative struct {
	tokens []token
	offset int
}

// splitAlternatives splits tokens on commas which are not inside brackets or
// parentheses (":is(a, b)" stays whole).
func splitAlternatives(tokens []token) []alternative {
	var (
		res   []alternative
		cur   = alternative{}
		depth int
	)
	for _, t := range tokens {
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.CommaToken:
			if depth == 0 {
				res = append(res, cur)
				cur = alternative{offset: t.offset + len(t.data)}
				continue
			}
		}
		cur.tokens = append(cur.tokens, t)
	}
	return append(res, cur)
}

func trimSpace(tokens []token) []token {
	for len(tokens) > 0 && tokens[0].tt == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].tt == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// selectorParser holds state of a single alternative being parsed.
type selectorParser struct {
	*Parser
	tokens []token
	pos    int
	start  int
}

func (sp *selectorParser) peek() (token, bool) {
	if sp.pos >= len(sp.tokens) {
		return token{}, false
	}
	return sp.tokens[sp.pos], true
}

func (sp *selectorParser) offset() int {
	if t, ok := sp.peek(); ok {
		return t.offset
	}
	if len(sp.tokens) > 0 {
		last := sp.tokens[len(sp.tokens)-1]
		return last.offset + len(last.data)
	}
	return sp.start
}

func (sp *selectorParser) fail(format string, args ...any) error {
	return &ParseError{Offset: sp.offset(), Msg: fmt.Sprintf(format, args...)}
}

func (sp *selectorParser) skipSpace() bool {
	skipped := false
	for t, ok := sp.peek(); ok && t.tt == css.WhitespaceToken; t, ok = sp.peek() {
		sp.pos++
		skipped = true
	}
	return skipped
}

// parseSelector parses "compound (combinator compound)*", combining to the left.
func (p *Parser) parseSelector(alt alternative) (Selector, error) {
	sp := &selectorParser{Parser: p, tokens: trimSpace(alt.tokens), start: alt.offset}
	if len(sp.tokens) == 0 {
		return nil, sp.fail("empty selector in group")
	}

	var sel Selector
	lhs, err := sp.parseCompound()
	if err != nil {
		return nil, err
	}
	sel = lhs

	for {
		sawSpace := sp.skipSpace()
		t, ok := sp.peek()
		if !ok {
			return sel, nil
		}

		var comb Combinator
		switch {
		case t.isDelim(">") || t.isDelim("+"):
			sp.pos++
			sp.skipSpace()
			if comb, err = ResolveCombinator(t.data); err != nil {
				return nil, err
			}
		case t.isDelim("~"):
			return nil, sp.fail("unsupported combinator %q", t.data)
		case sawSpace:
			comb = CombinatorDescendant
		default:
			return nil, sp.fail("unexpected %q", t.data)
		}

		if _, ok := sp.peek(); !ok {
			return nil, sp.fail("dangling combinator %q", comb.Symbol())
		}
		rhs, err := sp.parseCompound()
		if err != nil {
			return nil, err
		}
		if sel, err = NewCombined(sel, rhs, comb); err != nil {
			return nil, err
		}
	}
}

// parseCompound parses element name followed by any number of qualifiers.
func (sp *selectorParser) parseCompound() (*Simple, error) {
	var (
		element string
		opts    []SimpleOption
		matched bool
	)

	if t, ok := sp.peek(); ok {
		switch {
		case t.tt == css.IdentToken:
			element = t.data
			sp.pos++
			matched = true
			if err := sp.checkElement(t); err != nil {
				return nil, err
			}
		case t.isDelim("*"):
			element = Universal
			sp.pos++
			matched = true
		}
	}

	for {
		t, ok := sp.peek()
		if !ok {
			break
		}
		switch {
		case t.tt == css.HashToken:
			sp.pos++
			opts = append(opts, WithIDs(strings.TrimPrefix(t.data, "#")))

		case t.isDelim("."):
			sp.pos++
			name, ok := sp.peek()
			if !ok || name.tt != css.IdentToken {
				return nil, sp.fail("class name expected after '.'")
			}
			sp.pos++
			opts = append(opts, WithClasses(name.data))

		case t.tt == css.LeftBracketToken:
			attrib, err := sp.parseAttrib()
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithAttribs(attrib))

		case t.tt == css.ColonToken:
			pseudo, err := sp.parsePseudo()
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithPseudo(pseudo))

		default:
			if !matched && len(opts) == 0 {
				return nil, sp.fail("selector expected, got %q", t.data)
			}
			return NewSimple(element, opts...), nil
		}
	}

	if !matched && len(opts) == 0 {
		return nil, sp.fail("selector expected")
	}
	return NewSimple(element, opts...), nil
}

// parseAttrib returns raw text between brackets, trimmed, with every inner run
// of whitespace collapsed to a single space ("lang=en i" keeps its flag).
func (sp *selectorParser) parseAttrib() (string, error) {
	open := sp.offset()
	sp.pos++ // '['

	var (
		sb    strings.Builder
		space bool
	)
	for {
		t, ok := sp.peek()
		if !ok {
			return "", &ParseError{Offset: open, Msg: "unterminated attribute selector"}
		}
		sp.pos++
		switch t.tt {
		case css.RightBracketToken:
			if sb.Len() == 0 {
				return "", &ParseError{Offset: open, Msg: "empty attribute selector"}
			}
			return sb.String(), nil
		case css.LeftBracketToken:
			return "", sp.fail("nested '[' in attribute selector")
		case css.WhitespaceToken:
			space = sb.Len() > 0
		default:
			if space {
				sb.WriteByte(' ')
				space = false
			}
			sb.WriteString(t.data)
		}
	}
}

// parsePseudo returns pseudo-class text without the leading colon. Functional
// notation is kept as written, pseudo-elements keep their second colon.
func (sp *selectorParser) parsePseudo() (string, error) {
	sp.pos++ // ':'

	var sb strings.Builder
	if t, ok := sp.peek(); ok && t.tt == css.ColonToken {
		sp.pos++
		sb.WriteByte(':')
	}

	t, ok := sp.peek()
	if !ok {
		return "", sp.fail("pseudo-class name expected after ':'")
	}
	switch t.tt {
	case css.IdentToken:
		sp.pos++
		sb.WriteString(t.data)
		return sb.String(), nil
	case css.FunctionToken:
		open := t.offset
		sp.pos++
		sb.WriteString(t.data)
		depth := 1
		for depth > 0 {
			t, ok := sp.peek()
			if !ok {
				return "", &ParseError{Offset: open, Msg: "unterminated " + sb.String()}
			}
			sp.pos++
			switch t.tt {
			case css.FunctionToken, css.LeftParenthesisToken:
				depth++
			case css.RightParenthesisToken:
				depth--
			}
			sb.WriteString(t.data)
		}
		return sb.String(), nil
	}
	return "", sp.fail("pseudo-class name expected after ':', got %q", t.data)
}

// checkElement verifies type selector against known HTML element names.
func (sp *selectorParser) checkElement(t token) error {
	if atom.Lookup([]byte(strings.ToLower(t.data))) != 0 {
		return nil
	}
	if sp.strict {
		return &ParseError{Offset: t.offset, Msg: "unknown element " + t.data}
	}
	msg := "unknown element: " + t.data
	sp.warnings = append(sp.warnings, msg)
	sp.log.Debug("Unknown element in selector", zap.String("element", t.data))
	return nil
}
