package middleware

import (
	"context"
	"net/http"
	"strings"

	"ocena/internal/domain/identity"
)

type ctxKey string

const ctxKeyActor ctxKey = "actor"

// Auth resolves the bearer token into an identity.Actor. Requests without
// a valid token pass through anonymous; the service layer decides what an
// anonymous actor may do.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := identity.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyActor, identity.Actor{
				ID:    claims.UserID,
				Roles: claims.Roles,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetActor(ctx context.Context) identity.Actor {
	if actor, ok := ctx.Value(ctxKeyActor).(identity.Actor); ok {
		return actor
	}
	return identity.Actor{}
}
