package css

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Universal is the element name of a simple selector matching any element.
const Universal = "*"

// ErrIndexOutOfRange is returned when a group member is requested at a
// position the group does not have.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrMissingOperand is returned when combined selector lacks one of its sides.
var ErrMissingOperand = errors.New("missing selector operand")

// Node is any part of the selector syntax tree.
type Node interface {
	fmt.Stringer
	// Serialize hands the node to the matching Serializer entry point and
	// returns its datum unchanged.
	Serialize(s Serializer) (any, error)
}

// Selector is either *Simple or *Combined. The set is closed, consumers are
// expected to type switch over both.
type Selector interface {
	Node
	selector()
}

func (*Simple) selector()   {}
func (*Combined) selector() {}

// Simple is a single compound selector: element name plus qualifiers, e.g.
// "div#main.wide[lang]:hover". Qualifier values are opaque strings.
type Simple struct {
	element string
	ids     []string
	classes []string
	attribs []string
	pseudo  []string
}

// SimpleOption sets qualifiers of a simple selector during construction.
type SimpleOption func(*Simple)

func WithIDs(ids ...string) SimpleOption {
	return func(s *Simple) { s.ids = append(s.ids, ids...) }
}

func WithClasses(classes ...string) SimpleOption {
	return func(s *Simple) { s.classes = append(s.classes, classes...) }
}

// WithAttribs adds attribute matchers, stored as opaque raw text (e.g.
// `href^="http"` or `lang=en i`).
func WithAttribs(attribs ...string) SimpleOption {
	return func(s *Simple) { s.attribs = append(s.attribs, attribs...) }
}

// WithPseudo adds pseudo-classes and pseudo-elements without the leading colon
// (e.g. "hover", ":before", "nth-child(2n)").
func WithPseudo(pseudo ...string) SimpleOption {
	return func(s *Simple) { s.pseudo = append(s.pseudo, pseudo...) }
}

// NewSimple creates a simple selector. Empty element name means Universal.
// Every selector gets its own qualifier slices, arguments are copied.
func NewSimple(element string, opts ...SimpleOption) *Simple {
	if element == "" {
		element = Universal
	}
	s := &Simple{
		element: element,
		ids:     make([]string, 0),
		classes: make([]string, 0),
		attribs: make([]string, 0),
		pseudo:  make([]string, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simple) Element() string   { return s.element }
func (s *Simple) IDs() []string     { return slices.Clone(s.ids) }
func (s *Simple) Classes() []string { return slices.Clone(s.classes) }
func (s *Simple) Attribs() []string { return slices.Clone(s.attribs) }
func (s *Simple) Pseudo() []string  { return slices.Clone(s.pseudo) }

// IsUniversal returns true if selector is a bare "*" without qualifiers.
func (s *Simple) IsUniversal() bool {
	return s.element == Universal && !s.qualified()
}

func (s *Simple) qualified() bool {
	return len(s.ids) > 0 || len(s.classes) > 0 || len(s.attribs) > 0 || len(s.pseudo) > 0
}

// String returns debug text, e.g. Simple('div', classes=['a', 'b']).
func (s *Simple) String() string {
	var b strings.Builder
	b.WriteString("Simple(")
	b.WriteString(quoteText(s.element))
	for _, f := range []struct {
		name   string
		values []string
	}{
		{"ids", s.ids},
		{"classes", s.classes},
		{"attribs", s.attribs},
		{"pseudo", s.pseudo},
	} {
		if len(f.values) == 0 {
			continue
		}
		b.WriteString(", ")
		b.WriteString(f.name)
		b.WriteByte('=')
		b.WriteString(quoteList(f.values))
	}
	b.WriteByte(')')
	return b.String()
}

func (s *Simple) Serialize(ser Serializer) (any, error) {
	return ser.SerializeSimple(s)
}

// Combined joins two selectors with a combinator. Operands may be combined
// selectors themselves, trees are built bottom up and never share nodes.
type Combined struct {
	lhs, rhs   Selector
	combinator Combinator
}

// NewCombined creates combined selector, combinator must be one of the
// enumerated values and both operands must be present.
func NewCombined(lhs, rhs Selector, c Combinator) (*Combined, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("unable to combine selectors with %s: %w", c, ErrInvalidCombinator)
	}
	if IsNil(lhs) || IsNil(rhs) {
		return nil, fmt.Errorf("unable to combine %s and %s: %w", textOf(lhs), textOf(rhs), ErrMissingOperand)
	}
	return &Combined{lhs: lhs, rhs: rhs, combinator: c}, nil
}

// CombineToken creates combined selector from a textual combinator, either
// literal (" ", ">", "+") or canonical name.
func CombineToken(lhs, rhs Selector, token string) (*Combined, error) {
	c, err := ResolveCombinator(token)
	if err != nil {
		return nil, err
	}
	return NewCombined(lhs, rhs, c)
}

// IsNil reports whether sel is absent, including typed nil pointers.
func IsNil(sel Selector) bool {
	switch n := sel.(type) {
	case nil:
		return true
	case *Simple:
		return n == nil
	case *Combined:
		return n == nil
	}
	return false
}

// Descendant is "lhs rhs". Shorthands do not check operands, serializers
// report ErrMissingOperand for incomplete trees.
func Descendant(lhs, rhs Selector) *Combined {
	return &Combined{lhs: lhs, rhs: rhs, combinator: CombinatorDescendant}
}

// Child is "lhs > rhs".
func Child(lhs, rhs Selector) *Combined {
	return &Combined{lhs: lhs, rhs: rhs, combinator: CombinatorChild}
}

// Adjacent is "lhs + rhs".
func Adjacent(lhs, rhs Selector) *Combined {
	return &Combined{lhs: lhs, rhs: rhs, combinator: CombinatorAdjacent}
}

func (c *Combined) LHS() Selector          { return c.lhs }
func (c *Combined) RHS() Selector          { return c.rhs }
func (c *Combined) Combinator() Combinator { return c.combinator }

// String returns debug text. Descendant combinator is implied and never shown.
func (c *Combined) String() string {
	var b strings.Builder
	b.WriteString("Combined(")
	b.WriteString(textOf(c.lhs))
	b.WriteString(", ")
	b.WriteString(textOf(c.rhs))
	if c.combinator != CombinatorDescendant {
		b.WriteString(`, combinator="`)
		b.WriteString(c.combinator.Symbol())
		b.WriteByte('"')
	}
	b.WriteByte(')')
	return b.String()
}

func (c *Combined) Serialize(ser Serializer) (any, error) {
	return ser.SerializeCombined(c)
}

// Group is an ordered list of alternative selectors sharing one ruleset
// ("h1, h2 > em"). Empty group is allowed here, callers building rulesets
// should reject it themselves.
// NOTE: not to be used concurrently without external locking!
type Group struct {
	selectors []Selector
}

// NewGroup creates group with selectors in the given order.
func NewGroup(selectors ...Selector) *Group {
	return &Group{selectors: slices.Clone(selectors)}
}

func (g *Group) Len() int {
	return len(g.selectors)
}

// Get returns member at index i.
func (g *Group) Get(i int) (Selector, error) {
	if i < 0 || i >= len(g.selectors) {
		return nil, fmt.Errorf("selector %d in group of %d: %w", i, len(g.selectors), ErrIndexOutOfRange)
	}
	return g.selectors[i], nil
}

// Contains reports whether some member is structurally equal to sel.
func (g *Group) Contains(sel Selector) bool {
	return slices.ContainsFunc(g.selectors, func(s Selector) bool {
		return Equal(s, sel)
	})
}

// All iterates over members in order. Membership is fixed when iteration
// starts: selectors appended while ranging are not visited.
func (g *Group) All() iter.Seq2[int, Selector] {
	return func(yield func(int, Selector) bool) {
		snapshot := g.selectors[:len(g.selectors):len(g.selectors)]
		for i, s := range snapshot {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Selectors returns a copy of member list.
func (g *Group) Selectors() []Selector {
	return slices.Clone(g.selectors)
}

// Append adds selector to the end of the group, modifying it in place.
func (g *Group) Append(sel Selector) {
	g.selectors = append(g.selectors, sel)
}

// String returns debug text: Group(<member>,<member>...).
func (g *Group) String() string {
	parts := make([]string, 0, len(g.selectors))
	for _, s := range g.selectors {
		parts = append(parts, textOf(s))
	}
	return "Group(" + strings.Join(parts, ",") + ")"
}

func (g *Group) Serialize(ser Serializer) (any, error) {
	return ser.SerializeGroup(g)
}

// Equal reports structural equality: same shape, same combinators, same leaf
// data in the same order.
func Equal(a, b Selector) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case *Simple:
		y, ok := b.(*Simple)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		return x.element == y.element &&
			slices.Equal(x.ids, y.ids) &&
			slices.Equal(x.classes, y.classes) &&
			slices.Equal(x.attribs, y.attribs) &&
			slices.Equal(x.pseudo, y.pseudo)
	case *Combined:
		y, ok := b.(*Combined)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		return x.combinator == y.combinator && Equal(x.lhs, y.lhs) && Equal(x.rhs, y.rhs)
	}
	return false
}

// Walk calls fn for every simple selector of the tree, left to right, until fn
// returns false. Returns false if walk was stopped.
func Walk(sel Selector, fn func(*Simple) bool) bool {
	switch n := sel.(type) {
	case *Simple:
		return fn(n)
	case *Combined:
		return Walk(n.lhs, fn) && Walk(n.rhs, fn)
	}
	return true
}

func textOf(n Node) string {
	if sel, ok := n.(Selector); n == nil || ok && IsNil(sel) {
		return "<nil>"
	}
	return n.String()
}

func quoteList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, quoteText(v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// quoteText quotes s with single quotes, or with double quotes when s has a
// single quote and no double quotes.
func quoteText(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteRune(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == q:
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(q)
	return b.String()
}
