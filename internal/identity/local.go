package identity

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"regadmin/dashboard/internal/crypto"
	"regadmin/dashboard/internal/model"
)

// Local authenticates a single configured operator against a bcrypt hash.
type Local struct {
	user         model.User
	passwordHash string
}

func NewLocal(user model.User, passwordHash string) *Local {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return &Local{user: user, passwordHash: passwordHash}
}

func (l *Local) SignInWithPassword(_ context.Context, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return model.User{}, &ProviderError{Code: CodeInvalidEmail}
	}
	if l.passwordHash == "" {
		return model.User{}, &ProviderError{Code: CodeInternal, Err: errors.New("local_admin_password_hash_not_set")}
	}
	if email != l.user.Email {
		return model.User{}, &ProviderError{Code: CodeUserNotFound}
	}
	if err := crypto.CheckPassword(l.passwordHash, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return model.User{}, &ProviderError{Code: CodeWrongPassword}
		}
		return model.User{}, &ProviderError{Code: CodeInternal, Err: err}
	}
	return l.user, nil
}
