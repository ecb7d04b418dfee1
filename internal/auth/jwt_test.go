package auth

import (
  "testing"
  "time"
)

func TestFixtureTokenRoundTrip(t *testing.T) {
  token, err := NewAccessToken("secret", "issuer", time.Minute, "usr-1", Claims{
    Email:     "admin@example.local",
    Role:      "admin",
    StationID: "STN-001",
  })
  if err != nil {
    t.Fatalf("token error: %v", err)
  }

  claims, err := ParseToken("secret", "issuer", token)
  if err != nil {
    t.Fatalf("parse error: %v", err)
  }

  if claims.Subject != "usr-1" || claims.Email != "admin@example.local" || claims.StationID != "STN-001" {
    t.Fatalf("unexpected claims: %+v", claims)
  }
}

func TestParseTokenRejectsWrongIssuerAndSecret(t *testing.T) {
  token, err := NewAccessToken("secret", "issuer", time.Minute, "usr-1", Claims{Email: "a@b.c"})
  if err != nil {
    t.Fatalf("token error: %v", err)
  }
  if _, err := ParseToken("secret", "other", token); err == nil {
    t.Fatalf("expected issuer mismatch")
  }
  if _, err := ParseToken("different", "issuer", token); err == nil {
    t.Fatalf("expected signature mismatch")
  }
}

func TestNewAccessTokenRequiresSecret(t *testing.T) {
  if _, err := NewAccessToken("", "issuer", time.Minute, "usr-1", Claims{}); err == nil {
    t.Fatalf("expected missing secret error")
  }
}
