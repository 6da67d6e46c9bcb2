package reviewhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reviewhub/internal/domain/review"
	"reviewhub/internal/transport/http/api"
	"reviewhub/internal/transport/http/middleware"
)

func (h *Handler) handleAddReceivers(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload review.ReceiverBatch
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.CycleID = chi.URLParam(r, "cycleID")

	receivers, err := h.Service.AddReceivers(r.Context(), orgID, payload)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), orgID, userID, "review.receivers.add", "cycle", payload.CycleID, middleware.GetRequestID(r.Context()), nil, map[string]int{"count": len(receivers)}); err != nil {
		slog.Warn("audit review.receivers.add failed", "err", err)
	}
	api.Created(w, receivers, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateReceivers(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}

	cycleID := chi.URLParam(r, "cycleID")
	var payload review.ReceiverBatch
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.CycleID = cycleID

	receivers, err := h.Service.UpdateReceivers(r.Context(), orgID, cycleID, payload)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), orgID, userID, "review.receivers.update", "cycle", cycleID, middleware.GetRequestID(r.Context()), nil, map[string]int{"count": len(receivers)}); err != nil {
		slog.Warn("audit review.receivers.update failed", "err", err)
	}
	api.Success(w, receivers, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListReceivers(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := requireUser(w, r)
	if !ok {
		return
	}
	views, err := h.Service.ListReceiverStatuses(r.Context(), orgID, chi.URLParam(r, "cycleID"))
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}
