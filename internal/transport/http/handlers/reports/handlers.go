// Package reportshandler serves the generated review PDF.
package reportshandler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ocena/internal/domain/reports"
	"ocena/internal/transport/http/api"
	"ocena/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/employees/{employeeID}/review.pdf", h.handleReviewPDF)
	})
}

func (h *Handler) handleReviewPDF(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	data, err := h.Service.ReviewPDF(r.Context(), middleware.GetActor(r.Context()), employeeID)
	if err != nil {
		api.Problem(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "review-"+employeeID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
