package crypto

import (
  "crypto/rand"
  "crypto/sha256"
  "encoding/base64"
)

// NewSessionID returns a random URL-safe identifier for a dashboard session.
func NewSessionID() (string, error) {
  buf := make([]byte, 32)
  if _, err := rand.Read(buf); err != nil {
    return "", err
  }
  return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashSessionID is used to derive storage keys so raw cookie values never
// reach the token store.
func HashSessionID(id string) string {
  sum := sha256.Sum256([]byte(id))
  return base64.RawURLEncoding.EncodeToString(sum[:])
}
