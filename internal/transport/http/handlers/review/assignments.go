package reviewhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reviewhub/internal/domain/directory"
	"reviewhub/internal/domain/notifications"
	"reviewhub/internal/domain/review"
	"reviewhub/internal/transport/http/api"
	"reviewhub/internal/transport/http/middleware"
)

func (h *Handler) handleAssignReviewers(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	var payload review.AssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	provider, err := h.Service.AssignReviewers(r.Context(), orgID, employeeID, payload)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), orgID, userID, "review.reviewers.assign", "provider", provider.ID, middleware.GetRequestID(r.Context()), nil, provider); err != nil {
		slog.Warn("audit review.reviewers.assign failed", "err", err)
	}
	if h.Notify != nil {
		for _, reviewer := range provider.Reviewers {
			if err := h.Notify.Notify(r.Context(), orgID, reviewer.ReviewerID, notifications.TypeReviewAssigned,
				"Review assigned", "You have been assigned to provide feedback."); err != nil {
				slog.Warn("review assigned notification failed", "reviewer", reviewer.ReviewerID, "err", err)
			}
		}
	}
	api.Created(w, provider, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateReviewers(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	var payload review.AssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	provider, err := h.Service.UpdateReviewers(r.Context(), orgID, employeeID, payload)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), orgID, userID, "review.reviewers.update", "provider", provider.ID, middleware.GetRequestID(r.Context()), nil, provider); err != nil {
		slog.Warn("audit review.reviewers.update failed", "err", err)
	}
	api.Success(w, provider, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetProvider(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	cycleID := r.URL.Query().Get("cycleId")
	if cycleID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "cycleId query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}

	provider, err := h.Service.GetProvider(r.Context(), orgID, employeeID, cycleID)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	view := providerView{FeedbackProvider: provider}
	if h.Directory != nil {
		ref, found, err := h.Directory.GetEmployee(r.Context(), orgID, provider.EmployeeID)
		if err != nil {
			slog.Warn("provider employee lookup failed", "employee", provider.EmployeeID, "err", err)
		} else if found {
			view.Employee = &ref
		}
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

type providerView struct {
	review.FeedbackProvider
	Employee *directory.EmployeeRef `json:"employee,omitempty"`
}

func (h *Handler) handleSubmitResponse(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload review.FeedbackResponse
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	saved, err := h.Service.SubmitResponse(r.Context(), orgID, payload)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), orgID, userID, "review.response.submit", "response", saved.ID, middleware.GetRequestID(r.Context()), nil, saved); err != nil {
		slog.Warn("audit review.response.submit failed", "err", err)
	}
	if h.Notify != nil {
		if err := h.Notify.Notify(r.Context(), orgID, saved.EmployeeID, notifications.TypeFeedbackSubmitted,
			"Feedback received", "New feedback has been submitted for your review."); err != nil {
			slog.Warn("feedback submitted notification failed", "employee", saved.EmployeeID, "err", err)
		}
	}
	api.Created(w, saved, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListResponses(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	cycleID := r.URL.Query().Get("cycleId")

	responses, err := h.Service.ListResponses(r.Context(), orgID, employeeID, cycleID)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, responses, middleware.GetRequestID(r.Context()))
}
