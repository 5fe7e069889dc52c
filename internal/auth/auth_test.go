package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("12345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashed == "12345678" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPassword("12345678", hashed) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong-password", hashed) {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 2)
	id := uuid.New()

	token, err := issuer.Generate(id, "1234567890", RoleCustomer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != id.String() {
		t.Errorf("expected subject %s, got %s", id, claims.Subject)
	}
	if claims.Username != "1234567890" {
		t.Errorf("expected username 1234567890, got %s", claims.Username)
	}
	if claims.Role != RoleCustomer {
		t.Errorf("expected role customer, got %s", claims.Role)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 2)
	other := NewTokenIssuer("different-secret", 2)

	token, err := issuer.Generate(uuid.New(), "officer1", RoleOfficer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 2)
	if _, err := issuer.Verify("not.a.token"); err == nil {
		t.Error("garbage token was accepted")
	}
}
