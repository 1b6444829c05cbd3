package cart

import "math"

// QuantityPolicy corrects a requested quantity against a product's
// minimum order quantity. The two storefront script variants shipped
// with different corrections, so both are kept and selected by config.
type QuantityPolicy interface {
	Name() string
	Correct(qty, min int) int
}

// snapPolicy rounds any off-multiple quantity to the nearest multiple
// of the minimum (public-site behavior). Rounding half up, like the
// original Math.round; small quantities can round down to zero.
type snapPolicy struct{}

func (snapPolicy) Name() string { return "snap" }

func (snapPolicy) Correct(qty, min int) int {
	if qty <= 0 || min <= 1 {
		return qty
	}
	if qty%min == 0 {
		return qty
	}
	return int(math.Round(float64(qty)/float64(min))) * min
}

// raisePolicy only corrects quantities strictly between zero and the
// minimum, raising them to the minimum (private-site behavior).
// Quantities above the minimum that are not exact multiples pass
// through unchanged; that matches the shipped script and is flagged as
// an open discrepancy rather than silently fixed here.
type raisePolicy struct{}

func (raisePolicy) Name() string { return "raise" }

func (raisePolicy) Correct(qty, min int) int {
	if qty > 0 && qty < min {
		return min
	}
	return qty
}

// PolicyByName resolves a configured policy name; unknown names fall
// back to the raise policy, which is what the live site ran.
func PolicyByName(name string) QuantityPolicy {
	if name == "snap" {
		return snapPolicy{}
	}
	return raisePolicy{}
}
