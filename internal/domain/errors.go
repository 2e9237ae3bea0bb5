package domain

import "errors"

var (
	ErrUnsupportedSymbol = errors.New("unsupported symbol")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidPrice      = errors.New("invalid price")
)
