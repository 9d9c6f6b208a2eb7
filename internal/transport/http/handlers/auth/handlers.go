// Package authhandler issues tokens against the identity gateway.
package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ocena/internal/apperr"
	"ocena/internal/domain/identity"
	"ocena/internal/transport/http/api"
	"ocena/internal/transport/http/middleware"
)

const tokenTTL = 8 * time.Hour

type Handler struct {
	Users  identity.Gateway
	Secret string
}

func NewHandler(users identity.Gateway, secret string) *Handler {
	return &Handler{Users: users, Secret: secret}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	ID    string   `json:"id"`
	Roles []string `json:"roles"`
}

// HandleLogin accepts either a username or an email in the login field.
// Every failure path answers with the same message so the endpoint does
// not reveal which accounts exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, apperr.BadRequest, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	login := strings.TrimSpace(payload.Login)
	if login == "" || payload.Password == "" {
		api.Fail(w, apperr.BadRequest, "login and password are required", middleware.GetRequestID(r.Context()))
		return
	}

	ident, err := h.Users.FindByName(r.Context(), login)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if ident == nil {
		ident, err = h.Users.FindByEmail(r.Context(), login)
		if err != nil {
			api.Problem(w, err, middleware.GetRequestID(r.Context()))
			return
		}
	}
	if ident == nil {
		api.Fail(w, apperr.Unauthorized, "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	ok, err := h.Users.CheckPassword(r.Context(), ident.ID, payload.Password)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !ok {
		api.Fail(w, apperr.Unauthorized, "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	roles, err := h.Users.UserRoles(r.Context(), ident.ID)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	token, err := identity.GenerateToken(h.Secret, identity.Claims{UserID: ident.ID, Roles: roles}, tokenTTL)
	if err != nil {
		api.Fail(w, apperr.Internal, "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, loginResponse{Token: token, ID: ident.ID, Roles: roles}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if !actor.Authenticated() {
		api.Fail(w, apperr.Unauthorized, "", middleware.GetRequestID(r.Context()))
		return
	}

	ident, err := h.Users.FindByID(r.Context(), actor.ID)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if ident == nil {
		api.Fail(w, apperr.Unauthorized, "", middleware.GetRequestID(r.Context()))
		return
	}

	roles, err := h.Users.UserRoles(r.Context(), ident.ID)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"id":       ident.ID,
		"username": ident.Username,
		"email":    ident.Email,
		"roles":    roles,
	}, middleware.GetRequestID(r.Context()))
}
