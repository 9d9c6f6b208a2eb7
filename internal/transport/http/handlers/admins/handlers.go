// Package adminhandler exposes administrator profiles over HTTP.
package adminhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ocena/internal/apperr"
	"ocena/internal/domain/admins"
	"ocena/internal/transport/http/api"
	"ocena/internal/transport/http/middleware"
)

type Handler struct {
	Service *admins.Service
}

func NewHandler(service *admins.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admins", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/current", h.handleCurrent)
		r.Route("/{adminID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
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
	view, err := h.Service.GetByID(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "adminID"))
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Current(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req admins.CreateRequest
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
	var req admins.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, apperr.BadRequest, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	view, err := h.Service.Update(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "adminID"), req)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Delete(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "adminID"))
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}
