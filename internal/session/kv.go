// Package session is the two-tier token store behind the dashboard session
// cookie. The durable tier survives restarts and backs "remember me"
// logins; the session tier lives only as long as this process.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session: key not found")

// KV is the storage capability behind one tier.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Scope string

const (
	Durable Scope = "durable"
	Session Scope = "session"
)

func ParseScope(remember bool) Scope {
	if remember {
		return Durable
	}
	return Session
}
