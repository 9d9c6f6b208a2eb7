package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ocena/internal/domain/identity"
)

func TestAuthMiddlewareSetsActor(t *testing.T) {
	secret := "test-secret"
	token, err := identity.GenerateToken(secret, identity.Claims{UserID: "u1", Roles: []string{identity.RoleAdmin}}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActor(r.Context())
		if !actor.Authenticated() {
			t.Fatal("expected actor in context")
		}
		if actor.ID != "u1" || !actor.IsAdmin() {
			t.Fatalf("unexpected actor: %+v", actor)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetActor(r.Context()).Authenticated() {
			t.Fatal("did not expect actor in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	token, err := identity.GenerateToken("other-secret", identity.Claims{UserID: "u1", Roles: []string{identity.RoleAdmin}}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetActor(r.Context()).Authenticated() {
			t.Fatal("forged token must not authenticate")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}
