package authutil

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "admin123" {
		t.Fatal("hash should not equal the plaintext password")
	}
	if !CheckPassword(hash, "admin123") {
		t.Error("expected correct password to verify")
	}
	if CheckPassword(hash, "admin124") {
		t.Error("expected wrong password to fail")
	}
}

func TestCredentialSetMatches(t *testing.T) {
	hash, err := HashPassword("volunteer123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	cred := CredentialSet{Email: "volunteer@akshar.com", PasswordHash: hash}

	if !cred.Matches("volunteer@akshar.com", "volunteer123") {
		t.Error("expected exact credentials to match")
	}
	if !cred.Matches("  Volunteer@Akshar.COM ", "volunteer123") {
		t.Error("expected email match to be case- and space-insensitive")
	}
	if cred.Matches("volunteer@akshar.com", "wrong") {
		t.Error("expected wrong password to fail")
	}
	if cred.Matches("someone@else.com", "volunteer123") {
		t.Error("expected wrong email to fail")
	}
}
