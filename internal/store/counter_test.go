package store

import "testing"

func TestParseCounter(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"", 0},
		{"7", 7},
		{"007", 7},
		{"12abc", 12},
		{"  41", 41},
		{"3.9", 3},
		{"abc", 0},
		{"-3", 0},
		{"+3", 0},
		{"99999999999999999999", 0},
	}
	for _, tt := range tests {
		if got := ParseCounter(tt.raw); got != tt.want {
			t.Errorf("ParseCounter(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
