package serialize

import (
	"fmt"
	"strings"

	"cssel/css"
)

// Text produces CSS selector text, datum is a string. Text is stateless and
// may be shared. Only left associated trees (the ones Parser builds) have CSS
// text, right nested combined selectors fail with ErrRightNested.
type Text struct{}

// String returns CSS text of a node.
func String(n css.Node) (string, error) {
	return asString(n.Serialize(Text{}))
}

func (t Text) SerializeSimple(s *css.Simple) (any, error) {
	var sb strings.Builder
	ids, classes, attribs, pseudo := s.IDs(), s.Classes(), s.Attribs(), s.Pseudo()
	if s.Element() != css.Universal || s.IsUniversal() {
		sb.WriteString(s.Element())
	}
	for _, id := range ids {
		sb.WriteByte('#')
		sb.WriteString(id)
	}
	for _, class := range classes {
		sb.WriteByte('.')
		sb.WriteString(class)
	}
	for _, attrib := range attribs {
		sb.WriteByte('[')
		sb.WriteString(attrib)
		sb.WriteByte(']')
	}
	for _, p := range pseudo {
		sb.WriteByte(':')
		sb.WriteString(p)
	}
	return sb.String(), nil
}

func (t Text) SerializeCombined(c *css.Combined) (any, error) {
	left, right, err := operands(c)
	if err != nil {
		return nil, err
	}
	if _, ok := right.(*css.Combined); ok {
		return nil, fmt.Errorf("%s: %w", c, ErrRightNested)
	}
	lhs, err := asString(left.Serialize(t))
	if err != nil {
		return nil, err
	}
	rhs, err := asString(right.Serialize(t))
	if err != nil {
		return nil, err
	}
	sep := " "
	if c.Combinator() != css.CombinatorDescendant {
		sep = " " + c.Combinator().Symbol() + " "
	}
	return lhs + sep + rhs, nil
}

func (t Text) SerializeGroup(g *css.Group) (any, error) {
	parts := make([]string, 0, g.Len())
	for i, sel := range g.All() {
		if err := member(i, sel); err != nil {
			return nil, err
		}
		s, err := asString(sel.Serialize(t))
		if err != nil {
			return nil, fmt.Errorf("selector %d: %w", i, err)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}

func asString(datum any, err error) (string, error) {
	if err != nil {
		return "", err
	}
	s, ok := datum.(string)
	if !ok {
		return "", fmt.Errorf("unexpected datum type %T", datum)
	}
	return s, nil
}
