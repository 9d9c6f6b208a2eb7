// Package examplehandler exposes the example resource over HTTP.
package examplehandler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ocena/internal/apperr"
	"ocena/internal/domain/examples"
	"ocena/internal/transport/http/api"
	"ocena/internal/transport/http/middleware"
)

type Handler struct {
	Service *examples.Service
}

func NewHandler(service *examples.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/examples", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{exampleID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

func exampleID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "exampleID"))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.Service.GetAll(r.Context())
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, all, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := exampleID(r)
	if err != nil {
		api.Fail(w, apperr.BadRequest, "invalid example id", middleware.GetRequestID(r.Context()))
		return
	}

	example, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, example, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req examples.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, apperr.BadRequest, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	example, err := h.Service.Add(r.Context(), req)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, example, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := exampleID(r)
	if err != nil {
		api.Fail(w, apperr.BadRequest, "invalid example id", middleware.GetRequestID(r.Context()))
		return
	}

	var req examples.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, apperr.BadRequest, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	example, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, example, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := exampleID(r)
	if err != nil {
		api.Fail(w, apperr.BadRequest, "invalid example id", middleware.GetRequestID(r.Context()))
		return
	}

	example, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, example, middleware.GetRequestID(r.Context()))
}
