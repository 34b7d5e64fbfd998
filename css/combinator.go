package css

import "fmt"

// Relation between the two operands of a combined selector.
// ENUM(descendant, child, adjacent)
type Combinator int

// Symbol returns the literal token the combinator is written with in CSS text.
func (x Combinator) Symbol() string {
	switch x {
	case CombinatorChild:
		return ">"
	case CombinatorAdjacent:
		return "+"
	default:
		return " "
	}
}

// combinatorAliases maps literal CSS tokens to their canonical value. Canonical
// names are handled by ParseCombinator.
var combinatorAliases = map[string]Combinator{
	" ": CombinatorDescendant,
	">": CombinatorChild,
	"+": CombinatorAdjacent,
}

// ResolveCombinator normalizes either a literal token (" ", ">", "+") or a
// canonical name ("descendant", "child", "adjacent") to a Combinator.
func ResolveCombinator(token string) (Combinator, error) {
	if c, ok := combinatorAliases[token]; ok {
		return c, nil
	}
	c, err := ParseCombinator(token)
	if err != nil {
		return c, fmt.Errorf("unable to resolve combinator %q: %w", token, ErrInvalidCombinator)
	}
	return c, nil
}
