package reviewhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reviewhub/internal/domain/notifications"
	"reviewhub/internal/domain/review"
	"reviewhub/internal/transport/http/api"
	"reviewhub/internal/transport/http/middleware"
	"reviewhub/internal/transport/http/shared"
)

func (h *Handler) handleComputeRating(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload struct {
		EmployeeID string `json:"employeeId"`
		CycleID    string `json:"cycleId"`
		GivenBy    string `json:"givenBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("cycleId", payload.CycleID, "cycle id is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	rating, err := h.Service.ComputeRating(r.Context(), orgID, payload.EmployeeID, payload.CycleID, payload.GivenBy)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), orgID, userID, "review.rating.compute", "rating", rating.ID, middleware.GetRequestID(r.Context()), nil, rating); err != nil {
		slog.Warn("audit review.rating.compute failed", "err", err)
	}
	api.Created(w, rating, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePublishRating(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}

	ratingID := chi.URLParam(r, "ratingID")
	rating, err := h.Service.PublishRating(r.Context(), orgID, ratingID)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), orgID, userID, "review.rating.publish", "rating", ratingID, middleware.GetRequestID(r.Context()), nil, rating); err != nil {
		slog.Warn("audit review.rating.publish failed", "err", err)
	}
	if h.Notify != nil {
		if err := h.Notify.Notify(r.Context(), orgID, rating.EmployeeID, notifications.TypeRatingPublished,
			"Rating published", "Your final rating is now available."); err != nil {
			slog.Warn("rating published notification failed", "employee", rating.EmployeeID, "err", err)
		}
	}
	api.Success(w, rating, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRatings(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	cycleID := r.URL.Query().Get("cycleId")

	ratings, err := h.Service.GetRatings(r.Context(), orgID, employeeID, cycleID)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, ratings, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitSelfEvaluation(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload review.SelfEvaluation
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	saved, err := h.Service.SubmitSelfEvaluation(r.Context(), orgID, payload)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), orgID, userID, "review.selfeval.submit", "self_evaluation", saved.ID, middleware.GetRequestID(r.Context()), nil, saved); err != nil {
		slog.Warn("audit review.selfeval.submit failed", "err", err)
	}
	api.Created(w, saved, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListSelfEvaluations(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}
	evals, err := h.Service.GetSelfEvaluations(r.Context(), orgID, chi.URLParam(r, "employeeID"))
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, evals, middleware.GetRequestID(r.Context()))
}
