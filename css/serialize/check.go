package serialize

import (
	"errors"
	"fmt"

	"cssel/css"
)

// ErrRightNested is returned by Text for combined selector with combined right
// operand: CSS text has no grouping and reads such tree back left associated.
var ErrRightNested = errors.New("right operand is a combined selector")

// operands returns both sides of c, failing for incomplete trees.
func operands(c *css.Combined) (lhs, rhs css.Selector, err error) {
	lhs, rhs = c.LHS(), c.RHS()
	if css.IsNil(lhs) || css.IsNil(rhs) {
		return nil, nil, fmt.Errorf("%s: %w", c, css.ErrMissingOperand)
	}
	return lhs, rhs, nil
}

func member(i int, sel css.Selector) error {
	if css.IsNil(sel) {
		return fmt.Errorf("selector %d: %w", i, css.ErrMissingOperand)
	}
	return nil
}
