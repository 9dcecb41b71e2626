// Package core provides the billing computation for hotel GST invoices.
//
// This file contains the permissive parsers used for form input and the
// Indian-rupee currency formatter.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RupeeSymbol prefixes amounts rendered by FormatINR.
const RupeeSymbol = "₹"

// ParseAmount converts a form value to a non-negative decimal amount.
//
// It accepts plain decimals (12.34), grouped input such as "1,250.50" and a
// leading rupee symbol.
// Blank, malformed or negative input is coerced to zero rather than rejected,
// matching how the invoice form treats half-typed values.
//
// Examples:
//
//	ParseAmount("2500")     -> 2500
//	ParseAmount("1,250.50") -> 1250.5
//	ParseAmount("abc")      -> 0
//	ParseAmount("-10")      -> 0
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, RupeeSymbol)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseCount converts a form value to a non-negative integer, coercing blank,
// malformed or negative input to zero.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FormatINR renders an amount as Indian rupees, e.g. ₹1,23,45,678.90.
//
// The value is rounded half away from zero to two decimals and grouped the
// Indian way: the last three integer digits together, then pairs. Negative
// amounts carry the minus sign ahead of the symbol.
func FormatINR(amount decimal.Decimal) string {
	s := FormatAmount(amount)
	if strings.HasPrefix(s, "-") {
		return "-" + RupeeSymbol + s[1:]
	}
	return RupeeSymbol + s
}

// FormatAmount renders an amount with Indian grouping and two decimals but
// without a currency symbol. PDF output uses it with a plain "Rs." prefix
// because the built-in PDF fonts lack the rupee glyph.
func FormatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	negative := rounded.IsNegative()
	raw := rounded.Abs().StringFixed(2)

	intPart, decPart, _ := strings.Cut(raw, ".")
	out := applyIndianGrouping(intPart) + "." + decPart
	if negative {
		return "-" + out
	}
	return out
}

// applyIndianGrouping inserts commas into a digit string: the rightmost three
// digits form the first group, then every two digits.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}
