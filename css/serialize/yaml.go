package serialize

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"cssel/css"
)

// YAML builds YAML document nodes, datum is *yaml.Node. YAML is stateless.
type YAML struct{}

// Marshal returns YAML representation of a node.
func Marshal(n css.Node) ([]byte, error) {
	doc, err := asNode(n.Serialize(YAML{}))
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal selector to yaml: %w", err)
	}
	return data, nil
}

func (y YAML) SerializeSimple(s *css.Simple) (any, error) {
	body := mapping("element", scalar(s.Element()))
	for _, f := range []struct {
		key    string
		values []string
	}{
		{"ids", s.IDs()},
		{"classes", s.Classes()},
		{"attribs", s.Attribs()},
		{"pseudo", s.Pseudo()},
	} {
		if len(f.values) == 0 {
			continue
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, v := range f.values {
			seq.Content = append(seq.Content, scalar(v))
		}
		body.Content = append(body.Content, scalar(f.key), seq)
	}
	return mapping("simple", body), nil
}

func (y YAML) SerializeCombined(c *css.Combined) (any, error) {
	left, right, err := operands(c)
	if err != nil {
		return nil, err
	}
	lhs, err := asNode(left.Serialize(y))
	if err != nil {
		return nil, err
	}
	rhs, err := asNode(right.Serialize(y))
	if err != nil {
		return nil, err
	}
	return mapping("combined", mapping(
		"combinator", scalar(c.Combinator().String()),
		"lhs", lhs,
		"rhs", rhs,
	)), nil
}

func (y YAML) SerializeGroup(g *css.Group) (any, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for i, sel := range g.All() {
		if err := member(i, sel); err != nil {
			return nil, err
		}
		n, err := asNode(sel.Serialize(y))
		if err != nil {
			return nil, fmt.Errorf("selector %d: %w", i, err)
		}
		seq.Content = append(seq.Content, n)
	}
	return mapping("group", seq), nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// mapping expects key, value pairs.
func mapping(kv ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Content = append(n.Content, scalar(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return n
}

func asNode(datum any, err error) (*yaml.Node, error) {
	if err != nil {
		return nil, err
	}
	n, ok := datum.(*yaml.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected datum type %T", datum)
	}
	return n, nil
}
