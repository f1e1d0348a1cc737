package recap

import "github.com/shopspring/decimal"

// Null is an absent metric value. It is never the same thing as zero.
var Null = decimal.NullDecimal{}

// Value wraps a present decimal.
func Value(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}

// IntValue wraps a present integer.
func IntValue(n int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(n))
}

// IntPtrValue converts an optional integer column into a nullable metric.
func IntPtrValue(n *int64) decimal.NullDecimal {
	if n == nil {
		return Null
	}
	return IntValue(*n)
}

// SumNullable returns null only when both operands are null. Otherwise a
// null operand counts as zero, so folding in any order gives the same result.
func SumNullable(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid && !b.Valid {
		return Null
	}
	sum := decimal.Zero
	if a.Valid {
		sum = sum.Add(a.Decimal)
	}
	if b.Valid {
		sum = sum.Add(b.Decimal)
	}
	return decimal.NewNullDecimal(sum)
}

// FoldNullable sums values left to right with SumNullable.
func FoldNullable(values ...decimal.NullDecimal) decimal.NullDecimal {
	acc := Null
	for _, v := range values {
		acc = SumNullable(acc, v)
	}
	return acc
}

// SubNullable returns a - b, or null if either side is null.
func SubNullable(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid || !b.Valid {
		return Null
	}
	return decimal.NewNullDecimal(a.Decimal.Sub(b.Decimal))
}

// SafeDivide returns numerator / denominator, or null when either operand is
// null or the denominator is exactly zero.
func SafeDivide(numerator, denominator decimal.NullDecimal) decimal.NullDecimal {
	if !numerator.Valid || !denominator.Valid || denominator.Decimal.IsZero() {
		return Null
	}
	return decimal.NewNullDecimal(numerator.Decimal.Div(denominator.Decimal))
}
