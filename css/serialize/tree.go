package serialize

import (
	"cssel/css"
	"cssel/utils/debug"
)

// Tree produces indented multi-line dump of a node, datum is a string holding
// everything written so far. Tree keeps state - use new one for every dump.
type Tree struct {
	tw    *debug.TreeWriter
	depth int
}

func NewTree() *Tree {
	return &Tree{tw: debug.NewTreeWriter()}
}

// Dump returns tree dump of a node.
func Dump(n css.Node) (string, error) {
	return asString(n.Serialize(NewTree()))
}

func (t *Tree) SerializeSimple(s *css.Simple) (any, error) {
	t.tw.Line(t.depth, "Simple")
	t.tw.TextBlock(t.depth+1, "element", s.Element())
	t.tw.List(t.depth+1, "ids", s.IDs())
	t.tw.List(t.depth+1, "classes", s.Classes())
	t.tw.List(t.depth+1, "attribs", s.Attribs())
	t.tw.List(t.depth+1, "pseudo", s.Pseudo())
	return t.tw.String(), nil
}

func (t *Tree) SerializeCombined(c *css.Combined) (any, error) {
	lhs, rhs, err := operands(c)
	if err != nil {
		return nil, err
	}
	t.tw.Line(t.depth, "Combined %s", c.Combinator())
	t.depth++
	defer func() { t.depth-- }()
	if _, err := lhs.Serialize(t); err != nil {
		return nil, err
	}
	if _, err := rhs.Serialize(t); err != nil {
		return nil, err
	}
	return t.tw.String(), nil
}

func (t *Tree) SerializeGroup(g *css.Group) (any, error) {
	t.tw.Line(t.depth, "Group [%d]", g.Len())
	t.depth++
	defer func() { t.depth-- }()
	for i, sel := range g.All() {
		if err := member(i, sel); err != nil {
			return nil, err
		}
		if _, err := sel.Serialize(t); err != nil {
			return nil, err
		}
	}
	return t.tw.String(), nil
}
