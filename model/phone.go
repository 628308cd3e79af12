package model

import (
	"errors"
	"fmt"
)

const PhoneLength = 10

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrMissingField = errors.New("missing required field")
	ErrOutOfRange   = errors.New("value out of range")
)

// ValidatePhone accepts exactly ten ASCII digits.
func ValidatePhone(phone string) error {
	if len(phone) != PhoneLength {
		return fmt.Errorf("%w: expected %d digits, got %d characters", ErrInvalidPhone, PhoneLength, len(phone))
	}
	for i := 0; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return fmt.Errorf("%w: non-digit character at position %d", ErrInvalidPhone, i+1)
		}
	}
	return nil
}

// requireFields returns ErrMissingField naming the first empty field.
// Map iteration order is random, so callers pass an ordered slice.
func requireFields(fields [][2]string) error {
	for _, f := range fields {
		if f[1] == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f[0])
		}
	}
	return nil
}
