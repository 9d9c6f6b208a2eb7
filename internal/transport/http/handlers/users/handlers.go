// Package userhandler exposes plain user accounts over HTTP.
package userhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ocena/internal/apperr"
	"ocena/internal/domain/users"
	"ocena/internal/transport/http/api"
	"ocena/internal/transport/http/middleware"
)

type Handler struct {
	Service *users.Service
}

func NewHandler(service *users.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Post("/password", h.handleChangePassword)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.Service.GetAll(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.GetByID(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "userID"))
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req users.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, apperr.BadRequest, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	view, err := h.Service.Add(r.Context(), middleware.GetActor(r.Context()), req)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req users.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, apperr.BadRequest, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	view, err := h.Service.Update(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "userID"), req)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Delete(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "userID"))
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req users.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, apperr.BadRequest, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.ChangePassword(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "userID"), req); err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Message(w, "password changed", nil, middleware.GetRequestID(r.Context()))
}
