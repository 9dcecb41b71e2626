package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"2500", "2500"},
		{" 1999.50 ", "1999.5"},
		{"1,250.75", "1250.75"},
		{"₹4500", "4500"},
		{"", "0"},
		{"abc", "0"},
		{"-10", "0"},
		{"1.2.3", "0"},
	}
	for _, tc := range cases {
		got := ParseAmount(tc.in)
		if !got.Equal(decimal.RequireFromString(tc.out)) {
			t.Fatalf("%q expected %s, got %s", tc.in, tc.out, got)
		}
	}
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in  string
		out int
	}{
		{"3", 3},
		{" 12 ", 12},
		{"", 0},
		{"-2", 0},
		{"two", 0},
		{"1.5", 0},
	}
	for _, tc := range cases {
		if got := ParseCount(tc.in); got != tc.out {
			t.Fatalf("%q expected %d, got %d", tc.in, tc.out, got)
		}
	}
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"0", "₹0.00"},
		{"999", "₹999.00"},
		{"1000", "₹1,000.00"},
		{"100000", "₹1,00,000.00"},
		{"1234567.891", "₹12,34,567.89"},
		{"12345678.9", "₹1,23,45,678.90"},
		{"0.005", "₹0.01"},
		{"5250", "₹5,250.00"},
		{"-1500.5", "-₹1,500.50"},
		{"-0.001", "₹0.00"},
	}
	for _, tc := range cases {
		got := FormatINR(decimal.RequireFromString(tc.in))
		if got != tc.out {
			t.Fatalf("%s expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestFormatAmountHasNoSymbol(t *testing.T) {
	if got := FormatAmount(decimal.RequireFromString("123456.7")); got != "1,23,456.70" {
		t.Fatalf("unexpected %q", got)
	}
}
