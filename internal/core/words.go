package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var belowTwenty = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var tens = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

// AmountToWords spells an amount in Indian English for the "amount in words"
// line of an invoice.
//
// The whole part is read with the crore/lakh/thousand scale, the paise are the
// fraction times 100 rounded to the nearest integer:
//
//	AmountToWords(0)          -> "Zero rupees only"
//	AmountToWords(1)          -> "One rupee only"
//	AmountToWords(100000)     -> "One lakh rupees only"
//	AmountToWords(1234567.89) -> "Twelve lakh thirty four thousand five hundred and sixty seven rupees and eighty nine paise only"
func AmountToWords(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	abs := amount.Abs()

	whole := abs.Floor()
	paise := abs.Sub(whole).Shift(2).Round(0).IntPart()
	if paise >= 100 {
		whole = whole.Add(decimal.NewFromInt(1))
		paise -= 100
	}

	words := spellWhole(whole)
	if negative && (whole.IsPositive() || paise > 0) {
		words = "minus " + words
	}

	rupeeWord := "rupees"
	if whole.Equal(decimal.NewFromInt(1)) {
		rupeeWord = "rupee"
	}

	if paise > 0 {
		return fmt.Sprintf("%s %s and %s paise only", capitalize(words), rupeeWord, IntegerToWords(paise))
	}
	return fmt.Sprintf("%s %s only", capitalize(words), rupeeWord)
}

// IntegerToWords spells n using the Indian scale. Zero scale groups are
// skipped; "and" joins a hundred to its remainder.
func IntegerToWords(n int64) string {
	if n == 0 {
		return "zero"
	}
	if n < 0 {
		return "minus " + spellWhole(decimal.NewFromInt(n).Neg())
	}

	var parts []string
	if c := n / crore; c > 0 {
		// Amounts past 999 crore keep reading the crore count recursively.
		parts = append(parts, IntegerToWords(c)+" crore")
	}
	n %= crore
	if l := n / lakh; l > 0 {
		parts = append(parts, threeDigitsToWords(l)+" lakh")
	}
	n %= lakh
	if t := n / thousand; t > 0 {
		parts = append(parts, threeDigitsToWords(t)+" thousand")
	}
	n %= thousand
	if n > 0 {
		parts = append(parts, threeDigitsToWords(n))
	}
	return strings.Join(parts, " ")
}

// spellWhole spells a non-negative whole amount of any size. Counts of crore
// that do not fit an int64 are read as crore of crore.
func spellWhole(d decimal.Decimal) string {
	if d.LessThan(decimal.NewFromInt(crore)) {
		return IntegerToWords(d.IntPart())
	}
	c := d.Shift(-7).Floor()
	words := spellWhole(c) + " crore"
	if rest := d.Sub(c.Shift(7)); rest.IsPositive() {
		words += " " + IntegerToWords(rest.IntPart())
	}
	return words
}

func twoDigitsToWords(n int64) string {
	if n < 20 {
		return belowTwenty[n]
	}
	if ones := n % 10; ones != 0 {
		return tens[n/10] + " " + belowTwenty[ones]
	}
	return tens[n/10]
}

func threeDigitsToWords(n int64) string {
	hundred, rest := n/100, n%100
	var b strings.Builder
	if hundred > 0 {
		b.WriteString(belowTwenty[hundred])
		b.WriteString(" hundred")
		if rest > 0 {
			b.WriteString(" and ")
		}
	}
	if rest > 0 {
		b.WriteString(twoDigitsToWords(rest))
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
