// ABOUTME: Tests for password hashing and token round-trips
// ABOUTME: Covers verification, wrong secrets, and expiry
package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/carelens/reportqa/internal/models"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plaintext")
	}

	if !VerifyPassword("s3cret", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	signed, err := tokens.Issue("alice", models.RolePatient)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("subject = %q, want alice", claims.Subject)
	}
	if claims.Role != models.RolePatient {
		t.Errorf("role = %q, want patient", claims.Role)
	}
}

func TestTokens_WrongSecretRejected(t *testing.T) {
	signed, err := NewTokens("secret-a", time.Hour).Issue("alice", models.RoleDoctor)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = NewTokens("secret-b", time.Hour).Verify(signed)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokens_ExpiredRejected(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)

	signed, err := tokens.Issue("alice", models.RolePatient)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := tokens.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokens_GarbageRejected(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	if _, err := tokens.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}
