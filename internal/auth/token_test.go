package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("claims.Email = %q, want %q", claims.Email, "user@example.com")
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected expiry to be set")
	}
	if remaining := time.Until(claims.ExpiresAt.Time); remaining <= 0 || remaining > time.Hour {
		t.Errorf("expiry %s outside expected window", remaining)
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify() error = %v, want ErrTokenExpired", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	tests := []string{
		"",
		"not-a-token",
		"aaa.bbb.ccc",
	}

	for _, tokenString := range tests {
		if _, err := svc.Verify(tokenString); err == nil {
			t.Errorf("Verify(%q) succeeded, want error", tokenString)
		}
	}
}
