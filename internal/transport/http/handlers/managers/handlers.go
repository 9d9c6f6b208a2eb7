// Package managerhandler exposes manager profiles over HTTP.
package managerhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ocena/internal/apperr"
	"ocena/internal/domain/managers"
	"ocena/internal/transport/http/api"
	"ocena/internal/transport/http/middleware"
)

type Handler struct {
	Service *managers.Service
}

func NewHandler(service *managers.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/managers", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/current", h.handleCurrent)
		r.Route("/{managerID}", func(r chi.Router) {
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
	view, err := h.Service.GetByID(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "managerID"))
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
	var req managers.CreateRequest
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
	var req managers.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, apperr.BadRequest, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	view, err := h.Service.Update(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "managerID"), req)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Delete(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "managerID"))
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}
