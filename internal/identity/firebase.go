package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"regadmin/dashboard/internal/apiclient"
	"regadmin/dashboard/internal/model"
)

const DefaultFirebaseURL = "https://identitytoolkit.googleapis.com/v1"

// restCodes maps Identity Toolkit REST error messages to provider codes.
var restCodes = map[string]string{
	"EMAIL_NOT_FOUND":             CodeUserNotFound,
	"INVALID_PASSWORD":            CodeWrongPassword,
	"INVALID_LOGIN_CREDENTIALS":   CodeInvalidCredential,
	"TOO_MANY_ATTEMPTS_TRY_LATER": CodeTooManyRequests,
	"USER_DISABLED":               CodeUserDisabled,
	"INVALID_EMAIL":               CodeInvalidEmail,
}

// Firebase signs in through the Identity Toolkit REST API.
type Firebase struct {
	client  *apiclient.Client
	apiKey  string
	timeout time.Duration
}

func NewFirebase(baseURL, apiKey string, timeout time.Duration) *Firebase {
	if baseURL == "" {
		baseURL = DefaultFirebaseURL
	}
	return &Firebase{
		client:  apiclient.New(apiclient.Config{BaseURL: baseURL, Timeout: timeout}, nil),
		apiKey:  apiKey,
		timeout: timeout,
	}
}

type signInResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

func (f *Firebase) SignInWithPassword(ctx context.Context, email, password string) (model.User, error) {
	if f.apiKey == "" {
		return model.User{}, &ProviderError{Code: CodeInternal, Err: errors.New("missing_firebase_api_key")}
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	query := url.Values{"key": {f.apiKey}}
	body, err := f.client.Do(apiclient.WithBearer(ctx, ""), http.MethodPost, "/accounts:signInWithPassword", query, map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return model.User{}, translate(err)
	}
	var resp signInResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.User{}, &ProviderError{Code: CodeInternal, Err: err}
	}

	return model.User{
		ID:          resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		Role:        "admin",
	}, nil
}

// translate turns a REST failure into a ProviderError. Messages such as
// "TOO_MANY_ATTEMPTS_TRY_LATER : Access disabled..." carry detail after the
// code, so only the leading token is matched.
func translate(err error) error {
	statusErr, ok := apiclient.AsStatus(err)
	if !ok {
		return fmt.Errorf("sign in: %w", err)
	}
	restCode := strings.TrimSpace(strings.SplitN(statusErr.Message, ":", 2)[0])
	if code, ok := restCodes[restCode]; ok {
		return &ProviderError{Code: code, Err: err}
	}
	return &ProviderError{Code: CodeInternal, Err: err}
}
