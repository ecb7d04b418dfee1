package crypto

import "testing"

func TestAdminPasswordHashing(t *testing.T) {
	hash, err := HashPassword("station-admin")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := CheckPassword(hash, "station-admin"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := CheckPassword(hash, "Station-Admin"); err == nil {
		t.Fatalf("expected password mismatch")
	}
	if err := CheckPassword("", "station-admin"); err == nil {
		t.Fatalf("expected empty hash to be rejected")
	}
}
