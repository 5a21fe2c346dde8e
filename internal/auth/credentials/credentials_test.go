package credentials

import (
	"strings"
	"testing"
)

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		password, err := GeneratePassword(12)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(password) != 12 {
			t.Fatalf("expected length 12, got %d", len(password))
		}
		for _, c := range password {
			if !strings.ContainsRune(passwordCharset, c) {
				t.Fatalf("unexpected character %q in password", c)
			}
		}
		if seen[password] {
			t.Fatalf("generated duplicate password %q", password)
		}
		seen[password] = true
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong horse") {
		t.Error("expected non-matching password to fail")
	}
}
