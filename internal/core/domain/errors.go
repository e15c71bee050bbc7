package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("accounts file format error")

	ErrNotFound              = errors.New("account not found")
	ErrNoCapacity            = errors.New("no free account slot")
	ErrInvalidAmount         = errors.New("amount must be a positive finite number")
	ErrInvalidPin            = errors.New("pin must be between 2 and 9999")
	ErrInvalidName           = errors.New("names must be single non-empty words")
	ErrAuthenticationBlocked = errors.New("account is blocked")
	ErrSessionClosed         = errors.New("session is not authenticated")

	// ErrBalanceOutOfRange is an ErrInvalidAmount whose result would not fit
	// in a finite balance.
	ErrBalanceOutOfRange = fmt.Errorf("%w: balance out of range", ErrInvalidAmount)
)

// FormatError describes why a line of the accounts file could not be parsed.
// Line is 1-based; the header is line 1.
type FormatError struct {
	Line   int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("accounts file line %d: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("accounts file line %d: %s", e.Line, e.Reason)
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}
