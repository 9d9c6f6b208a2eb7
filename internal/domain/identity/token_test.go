package identity

import (
	"testing"
	"time"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if err := ComparePassword(hash, "super-secret"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}

	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{UserID: "u1", Roles: []string{RoleManager, RoleEmployee}}

	token, err := GenerateToken(secret, claims, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if parsed.UserID != claims.UserID || len(parsed.Roles) != 2 || parsed.Roles[0] != RoleManager {
		t.Fatalf("claims mismatch: %+v", parsed)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestActorRolesAndOwnership(t *testing.T) {
	actor := Actor{ID: "u1", Roles: []string{RoleAdmin}}

	if !actor.IsAdmin() || actor.IsManager() || actor.IsEmployee() {
		t.Fatalf("unexpected role set: %+v", actor)
	}
	if !actor.IsOwner("u1") {
		t.Fatal("actor should own its own identity id")
	}
	if actor.IsOwner("u2") {
		t.Fatal("actor should not own another identity id")
	}

	anonymous := Actor{}
	if anonymous.Authenticated() {
		t.Fatal("zero actor should be anonymous")
	}
	if anonymous.IsOwner("") {
		t.Fatal("anonymous actor must not own the empty id")
	}
}
