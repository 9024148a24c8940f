package service

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("expected password to be hashed")
	}

	if !VerifyPassword("s3cret-pass", hash) {
		t.Fatalf("expected hash to verify against original password")
	}
	if VerifyPassword("wrong-pass", hash) {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestVerifyPassword_MalformedInputs(t *testing.T) {
	hash, err := HashPassword("whatever")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	cases := []struct {
		name  string
		plain string
		hash  string
	}{
		{"empty plain", "", hash},
		{"empty hash", "whatever", ""},
		{"both empty", "", ""},
		{"garbage hash", "whatever", "not-a-bcrypt-hash"},
	}

	for _, tc := range cases {
		if VerifyPassword(tc.plain, tc.hash) {
			t.Fatalf("%s: expected false", tc.name)
		}
	}
}
