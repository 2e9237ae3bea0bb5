package domain

import "regexp"

var symbolRe = regexp.MustCompile(`^[A-Z0-9]{5,20}$`)

// ValidateSymbol reports whether s looks like an exchange trading pair (BTCUSDT).
func ValidateSymbol(s string) bool {
	return symbolRe.MatchString(s)
}
