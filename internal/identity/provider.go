// Package identity verifies dashboard operators against an identity provider
// and turns provider failures into messages fit for the login form.
package identity

import (
	"context"

	"regadmin/dashboard/internal/model"
)

// Provider codes. They follow the auth/... namespace used by hosted identity
// services so the message table stays provider-neutral.
const (
	CodeInvalidCredential = "auth/invalid-credential"
	CodeUserNotFound      = "auth/user-not-found"
	CodeWrongPassword     = "auth/wrong-password"
	CodeTooManyRequests   = "auth/too-many-requests"
	CodeUserDisabled      = "auth/user-disabled"
	CodeInvalidEmail      = "auth/invalid-email"
	CodeInternal          = "auth/internal-error"
)

type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (model.User, error)
}

type ProviderError struct {
	Code string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *ProviderError) Unwrap() error { return e.Err }
