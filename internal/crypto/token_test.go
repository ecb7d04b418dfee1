package crypto

import "testing"

func TestSessionIDsAreUniqueAndHashed(t *testing.T) {
	first, err := NewSessionID()
	if err != nil {
		t.Fatalf("session id error: %v", err)
	}
	second, err := NewSessionID()
	if err != nil {
		t.Fatalf("session id error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct session ids")
	}
	if HashSessionID(first) != HashSessionID(first) {
		t.Fatalf("expected stable hash")
	}
	if HashSessionID(first) == first {
		t.Fatalf("expected hash to differ from raw id")
	}
}
