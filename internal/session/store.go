package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"regadmin/dashboard/internal/crypto"
	"regadmin/dashboard/internal/model"
)

type idKey struct{}

// WithID binds a dashboard session to ctx. The raw cookie value is hashed
// before it is used as a storage key.
func WithID(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, idKey{}, crypto.HashSessionID(sessionID))
}

func keyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(idKey{}).(string)
	return key
}

func tokenKey(sid string) string { return "session:" + sid + ":token" }
func userKey(sid string) string  { return "session:" + sid + ":user" }

// Store reads and writes the bearer token of the session bound to the
// request context.
type Store struct {
	durable    KV
	session    KV
	durableTTL time.Duration
	sessionTTL time.Duration
	log        logrus.FieldLogger
}

func NewStore(durable, session KV, durableTTL, sessionTTL time.Duration, log logrus.FieldLogger) *Store {
	return &Store{
		durable:    durable,
		session:    session,
		durableTTL: durableTTL,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// Get returns the stored token, looking in the durable tier first. A tier
// that fails to answer counts as a miss.
func (s *Store) Get(ctx context.Context) (string, bool) {
	sid := keyFromContext(ctx)
	if sid == "" {
		return "", false
	}
	for _, tier := range s.lookupOrder() {
		value, err := tier.kv.Get(ctx, tokenKey(sid))
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				s.log.WithError(err).WithField("tier", tier.scope).Warn("token lookup failed")
			}
			continue
		}
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// User returns the user cached next to the token, with the same lookup order.
func (s *Store) User(ctx context.Context) (model.User, bool) {
	sid := keyFromContext(ctx)
	if sid == "" {
		return model.User{}, false
	}
	for _, tier := range s.lookupOrder() {
		raw, err := tier.kv.Get(ctx, userKey(sid))
		if err != nil || raw == "" {
			continue
		}
		var user model.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			s.log.WithError(err).WithField("tier", tier.scope).Warn("cached user unreadable")
			continue
		}
		return user, true
	}
	return model.User{}, false
}

// Set stores the token and user in the requested tier and drops whatever
// the other tier held for the same session so it cannot shadow the new
// login.
func (s *Store) Set(ctx context.Context, token string, user model.User, scope Scope) error {
	sid := keyFromContext(ctx)
	if sid == "" {
		return errors.New("session: no session bound to context")
	}
	if token == "" {
		return errors.New("session: empty token")
	}
	target, other, ttl := s.durable, s.session, s.durableTTL
	if scope == Session {
		target, other, ttl = s.session, s.durable, s.sessionTTL
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := other.Delete(ctx, tokenKey(sid), userKey(sid)); err != nil {
		s.log.WithError(err).Warn("stale token cleanup failed")
	}
	if err := target.Set(ctx, tokenKey(sid), token, ttl); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := target.Set(ctx, userKey(sid), string(encoded), ttl); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Clear removes token and user from both tiers. The caller usually does not
// know which tier holds the live token, so both are always attempted.
func (s *Store) Clear(ctx context.Context) error {
	sid := keyFromContext(ctx)
	if sid == "" {
		return nil
	}
	keys := []string{tokenKey(sid), userKey(sid)}
	durableErr := s.durable.Delete(ctx, keys...)
	sessionErr := s.session.Delete(ctx, keys...)
	return errors.Join(durableErr, sessionErr)
}

type tier struct {
	scope Scope
	kv    KV
}

func (s *Store) lookupOrder() []tier {
	return []tier{{Durable, s.durable}, {Session, s.session}}
}
