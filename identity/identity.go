// Package identity creates and verifies accounts with the external identity provider.
//
// Every call returns a Result instead of failing the caller: registration and login continue
// when the provider is unavailable, and the caller decides what to report.
package identity

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned by the disabled gateway.
	ErrNotConfigured = errors.New("identity provider not configured")
	// ErrPhoneMismatch is returned when the provider account has a different phone number.
	ErrPhoneMismatch = errors.New("identity account phone mismatch")
)

// Result is the outcome of a gateway call.
type Result struct {
	OK  bool
	Err error
}

func success() Result { return Result{OK: true} }

func failure(err error) Result { return Result{Err: err} }

// Gateway is the identity provider contract.
type Gateway interface {
	// CreateAccount registers uid with the country-code-prefixed phone as its identity claim.
	CreateAccount(ctx context.Context, uid, phone string) Result
	// VerifyAccount checks that uid exists and carries the expected phone.
	VerifyAccount(ctx context.Context, uid, phone string) Result
	// Enabled reports whether a real provider backs the gateway.
	Enabled() bool
}

// Disabled is used when no provider could be initialised ("demo mode").
type Disabled struct{}

func (Disabled) CreateAccount(context.Context, string, string) Result { return failure(ErrNotConfigured) }

func (Disabled) VerifyAccount(context.Context, string, string) Result { return failure(ErrNotConfigured) }

func (Disabled) Enabled() bool { return false }
