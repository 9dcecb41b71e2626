package core

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountToWords(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"0", "Zero rupees only"},
		{"1", "One rupee only"},
		{"2", "Two rupees only"},
		{"100000", "One lakh rupees only"},
		{"1234567.89", "Twelve lakh thirty four thousand five hundred and sixty seven rupees and eighty nine paise only"},
		{"101", "One hundred and one rupees only"},
		{"110", "One hundred and ten rupees only"},
		{"1000", "One thousand rupees only"},
		{"10000000", "One crore rupees only"},
		{"5250", "Five thousand two hundred and fifty rupees only"},
		{"0.5", "Zero rupees and fifty paise only"},
		{"1.01", "One rupee and one paise only"},
		{"100.005", "One hundred rupees and one paise only"},
		{"0.999", "One rupee only"},
		{"-250", "Minus two hundred and fifty rupees only"},
		{"-1.5", "Minus one rupee and fifty paise only"},
		{"12345678901", "One thousand two hundred and thirty four crore fifty six lakh seventy eight thousand nine hundred and one rupees only"},
		{"9223372036854775808", "Ninety two thousand two hundred and thirty three crore seventy two lakh three thousand six hundred and eighty five crore forty seven lakh seventy five thousand eight hundred and eight rupees only"},
		{"-9223372036854775808.25", "Minus ninety two thousand two hundred and thirty three crore seventy two lakh three thousand six hundred and eighty five crore forty seven lakh seventy five thousand eight hundred and eight rupees and twenty five paise only"},
		{"10000000000000000000", "One lakh crore crore rupees only"},
		{"20000000000000000001", "Two lakh crore crore one rupees only"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := AmountToWords(decimal.RequireFromString(tc.in))
			if got != tc.out {
				t.Fatalf("expected %q, got %q", tc.out, got)
			}
		})
	}
}

func TestIntegerToWords(t *testing.T) {
	cases := map[int64]string{
		0:       "zero",
		7:       "seven",
		19:      "nineteen",
		20:      "twenty",
		99:      "ninety nine",
		100:     "one hundred",
		305:     "three hundred and five",
		20000:   "twenty thousand",
		1500000: "fifteen lakh",
		1000001: "ten lakh one",
		-5:      "minus five",

		math.MaxInt64: "ninety two thousand two hundred and thirty three crore seventy two lakh three thousand six hundred and eighty five crore forty seven lakh seventy five thousand eight hundred and seven",
		math.MinInt64: "minus ninety two thousand two hundred and thirty three crore seventy two lakh three thousand six hundred and eighty five crore forty seven lakh seventy five thousand eight hundred and eight",
	}
	for in, want := range cases {
		if got := IntegerToWords(in); got != want {
			t.Fatalf("%d expected %q, got %q", in, want, got)
		}
	}
}
