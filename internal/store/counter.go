package store

import (
	"strconv"
	"strings"
)

// ParseCounter reads the leading run of digits of a stored counter, after
// optional whitespace. "12abc" is 12; empty, signed or non-numeric values are
// zero.
func ParseCounter(raw string) int64 {
	s := strings.TrimLeft(raw, " \t\r\n")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
