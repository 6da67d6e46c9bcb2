package reviewhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"reviewhub/internal/domain/notifications"
	"reviewhub/internal/domain/review"
	"reviewhub/internal/transport/http/api"
	"reviewhub/internal/transport/http/middleware"
	"reviewhub/internal/transport/http/shared"
)

type cyclePayload struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	Department       string `json:"department"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	SelfEvalDeadline string `json:"selfEvalDeadline"`
	FeedbackDeadline string `json:"feedbackDeadline"`
	QuestionnaireID  string `json:"questionnaireId"`
}

func (p cyclePayload) toCycle(w http.ResponseWriter, requestID string) (review.EvaluationCycle, bool) {
	v := shared.NewValidator()
	v.Required("name", p.Name, "name is required")
	v.Enum("type", p.Type, review.CycleTypes, "must be one of annual, mid_year, quarterly, probation")
	startDate, _ := v.Date("startDate", p.StartDate)
	endDate, _ := v.Date("endDate", p.EndDate)
	selfEvalDeadline, _ := v.Date("selfEvalDeadline", p.SelfEvalDeadline)
	feedbackDeadline, _ := v.Date("feedbackDeadline", p.FeedbackDeadline)
	if v.Reject(w, requestID) {
		return review.EvaluationCycle{}, false
	}
	return review.EvaluationCycle{
		Name:             strings.TrimSpace(p.Name),
		Type:             strings.ToLower(strings.TrimSpace(p.Type)),
		Department:       strings.TrimSpace(p.Department),
		StartDate:        startDate,
		EndDate:          endDate,
		SelfEvalDeadline: selfEvalDeadline,
		FeedbackDeadline: feedbackDeadline,
		QuestionnaireID:  p.QuestionnaireID,
	}, true
}

func (h *Handler) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload cyclePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	cycle, ok := payload.toCycle(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}

	created, err := h.Service.CreateCycle(r.Context(), orgID, cycle)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), orgID, userID, "review.cycle.create", "cycle", created.ID, middleware.GetRequestID(r.Context()), nil, created); err != nil {
		slog.Warn("audit review.cycle.create failed", "err", err)
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCycles(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}
	cycles, err := h.Service.ListCycles(r.Context(), orgID)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, cycles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetCycle(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}
	cycle, err := h.Service.GetCycle(r.Context(), orgID, chi.URLParam(r, "cycleID"))
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, cycle, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCurrentCycle(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}
	cycle, err := h.Service.CurrentActiveCycle(r.Context(), orgID)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, cycle, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateCycle(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}

	cycleID := chi.URLParam(r, "cycleID")
	var payload cyclePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	patch, ok := payload.toCycle(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}

	updated, err := h.Service.UpdateCycle(r.Context(), orgID, cycleID, patch)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), orgID, userID, "review.cycle.update", "cycle", cycleID, middleware.GetRequestID(r.Context()), nil, updated); err != nil {
		slog.Warn("audit review.cycle.update failed", "err", err)
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteCycle(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}
	cycleID := chi.URLParam(r, "cycleID")
	if err := h.Service.DeleteCycle(r.Context(), orgID, cycleID); err != nil {
		failDomain(w, r, err)
		return
	}
	if err := h.Audit.Record(r.Context(), orgID, userID, "review.cycle.delete", "cycle", cycleID, middleware.GetRequestID(r.Context()), nil, nil); err != nil {
		slog.Warn("audit review.cycle.delete failed", "err", err)
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateCycleStatus(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}

	cycleID := chi.URLParam(r, "cycleID")
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.UpdateCycleStatus(r.Context(), orgID, cycleID, strings.ToLower(strings.TrimSpace(payload.Status)))
	if err != nil {
		failDomain(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), orgID, userID, "review.cycle.status", "cycle", cycleID, middleware.GetRequestID(r.Context()), nil, map[string]string{"status": updated.Status}); err != nil {
		slog.Warn("audit review.cycle.status failed", "err", err)
	}
	if updated.Status == review.CycleStatusOpen {
		h.notifyCycleOpened(r, orgID, updated)
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) notifyCycleOpened(r *http.Request, orgID string, cycle review.EvaluationCycle) {
	if h.Notify == nil {
		return
	}
	receivers, err := h.Service.ListReceiverStatuses(r.Context(), orgID, cycle.ID)
	if err != nil {
		slog.Warn("cycle opened receiver lookup failed", "cycle", cycle.ID, "err", err)
		return
	}
	for _, receiver := range receivers {
		if err := h.Notify.Notify(r.Context(), orgID, receiver.EmployeeID, notifications.TypeCycleOpened,
			"Review cycle opened", "The review cycle "+cycle.Name+" is now open."); err != nil {
			slog.Warn("cycle opened notification failed", "employee", receiver.EmployeeID, "err", err)
		}
	}
}
