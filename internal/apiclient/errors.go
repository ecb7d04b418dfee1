package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is a non-2xx answer from the far side.
type StatusError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

func newStatusError(status int, body []byte) *StatusError {
	return &StatusError{Status: status, Message: messageFrom(status, body), Body: body}
}

// messageFrom prefers a JSON "message" or "error" field and falls back to
// the trimmed body, then to the status text.
func messageFrom(status int, body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		var errText string
		if json.Unmarshal(payload.Error, &errText) == nil && errText != "" {
			return errText
		}
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 512 && !strings.HasPrefix(text, "{") {
		return text
	}
	return http.StatusText(status)
}

// AsStatus unwraps err into a *StatusError when one is present.
func AsStatus(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

func IsUnauthorized(err error) bool {
	statusErr, ok := AsStatus(err)
	return ok && statusErr.Status == http.StatusUnauthorized
}
