package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"reviewhub/internal/domain/auth"
	"reviewhub/internal/domain/reports"
	"reviewhub/internal/domain/review"
	"reviewhub/internal/transport/http/api"
	"reviewhub/internal/transport/http/middleware"
)

type Handler struct {
	Review *review.Service
}

func NewHandler(reviewSvc *review.Service) *Handler {
	return &Handler{Review: reviewSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	restricted := middleware.RequireRole(auth.RoleHR, auth.RoleManager)
	r.Route("/reports", func(r chi.Router) {
		r.With(restricted).Get("/cycles/{cycleID}/summary", h.handleCycleSummary)
		r.With(restricted).Get("/cycles/{cycleID}/summary.pdf", h.handleCycleSummaryPDF)
	})
}

func (h *Handler) cycleSummary(w http.ResponseWriter, r *http.Request) (reports.CycleSummary, []review.ReceiverView, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return reports.CycleSummary{}, nil, false
	}

	cycleID := chi.URLParam(r, "cycleID")
	cycle, err := h.Review.GetCycle(r.Context(), user.OrganizationID, cycleID)
	if err != nil {
		if review.IsNotFound(err) {
			api.Fail(w, http.StatusNotFound, "not_found", err.Error(), middleware.GetRequestID(r.Context()))
			return reports.CycleSummary{}, nil, false
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		return reports.CycleSummary{}, nil, false
	}

	views, err := h.Review.ListReceiverStatuses(r.Context(), user.OrganizationID, cycleID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		return reports.CycleSummary{}, nil, false
	}

	return reports.BuildCycleSummary(cycle, views), views, true
}

func (h *Handler) handleCycleSummary(w http.ResponseWriter, r *http.Request) {
	summary, _, ok := h.cycleSummary(w, r)
	if !ok {
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCycleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	summary, views, ok := h.cycleSummary(w, r)
	if !ok {
		return
	}

	rendered, err := reports.RenderCycleSummaryPDF(summary, views)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_error", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cycle-summary.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rendered)
}
