package cart

import (
	"strconv"
	"strings"
)

// DefaultQuantity is used when an add request carries an unusable quantity.
const DefaultQuantity = 1

// ParseQuantity parses user input into a positive quantity.
func ParseQuantity(raw string) (int, bool) {
	n, ok := parseInt(raw)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseInt accepts a leading integer the way browser number inputs do ("3", " 4 ", "2.5" -> 2).
func parseInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	end := 0
	if s[0] == '-' || s[0] == '+' {
		end = 1
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
