package auth

import (
	"testing"
	"time"
)

func TestTokenRoundtrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate(42, "alice@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	userID, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("Expected user 42, got %d", userID)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.Verify(token); err == nil {
			t.Errorf("Expected error for token %q, got nil", token)
		}
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, _ := other.Generate(42, "alice@example.com")
	if _, err := tm.Verify(token); err == nil {
		t.Error("Expected error for token signed with a different key")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, _ := tm.Generate(42, "alice@example.com")
	if _, err := tm.Verify(token); err == nil {
		t.Error("Expected error for expired token")
	}
}
