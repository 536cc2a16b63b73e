package services

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)

	tok, err := svc.Issue("alice@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	email, err := svc.Decode(tok)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if email != "alice@x.com" {
		t.Fatalf("email mismatch: got %q want %q", email, "alice@x.com")
	}
}

func TestTokenDecode_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", -1*time.Second)

	tok, err := svc.Issue("bob@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Decode(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenDecode_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService("right-secret", time.Hour).Issue("carol@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewTokenService("wrong-secret", time.Hour).Decode(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenDecode_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("k", time.Hour).Decode("not.a.jwt")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
