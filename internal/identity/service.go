package identity

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"regadmin/dashboard/internal/model"
)

const fallbackMessage = "Login failed. Please try again"

var messages = map[string]string{
	CodeInvalidCredential: "Invalid email or password",
	CodeUserNotFound:      "No account found with this email",
	CodeWrongPassword:     "Incorrect password",
	CodeTooManyRequests:   "Too many failed attempts. Please try again later",
}

type Result struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user,omitempty"`
	Message string      `json:"message,omitempty"`
}

type Service struct {
	provider Provider
	log      logrus.FieldLogger
}

func NewService(provider Provider, log logrus.FieldLogger) *Service {
	return &Service{provider: provider, log: log}
}

// Login never returns an error. Failures come back as an unsuccessful
// Result with a human-readable message.
func (s *Service) Login(ctx context.Context, email, password string) Result {
	user, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		code := CodeOf(err)
		s.log.WithError(err).WithField("code", code).Info("sign in rejected")
		return Result{Success: false, Message: MessageFor(code)}
	}
	return Result{Success: true, User: &user}
}

// CodeOf returns the provider code carried by err, or "" when err did not
// come from a provider.
func CodeOf(err error) string {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Code
	}
	return ""
}

func MessageFor(code string) string {
	if message, ok := messages[code]; ok {
		return message
	}
	return fallbackMessage
}
