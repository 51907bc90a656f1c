package money

import "github.com/shopspring/decimal"

// Places is the number of decimal places every monetary and hour figure is rounded to.
const Places = 2

// Round rounds half away from zero to two places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// NonNegative clamps d to zero when negative.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// PositivePtr reports whether p is set and strictly positive.
func PositivePtr(p *decimal.Decimal) bool {
	return p != nil && p.IsPositive()
}
