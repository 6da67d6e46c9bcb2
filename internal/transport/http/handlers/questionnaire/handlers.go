package questionnairehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reviewhub/internal/domain/audit"
	"reviewhub/internal/domain/auth"
	"reviewhub/internal/domain/questionnaire"
	"reviewhub/internal/transport/http/api"
	"reviewhub/internal/transport/http/middleware"
)

type Handler struct {
	Service *questionnaire.Service
	Audit   *audit.Service
}

func NewHandler(service *questionnaire.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/questionnaires", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/", h.handleCreate)
		r.Get("/{questionnaireID}", h.handleGet)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Name       string                   `json:"name"`
		Department string                   `json:"department"`
		Questions  []questionnaire.Question `json:"questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.Create(r.Context(), questionnaire.Questionnaire{
		OrganizationID: user.OrganizationID,
		Name:           payload.Name,
		Department:     payload.Department,
		Questions:      payload.Questions,
	})
	if err != nil {
		switch {
		case errors.Is(err, questionnaire.ErrNoQuestions):
			api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, questionnaire.ErrDuplicateSet):
			api.Fail(w, http.StatusConflict, "conflict", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.OrganizationID, user.UserID, "questionnaire.create", "questionnaire", id, middleware.GetRequestID(r.Context()), nil, payload); err != nil {
		slog.Warn("audit questionnaire.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	q, found, err := h.Service.Get(r.Context(), user.OrganizationID, chi.URLParam(r, "questionnaireID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", questionnaire.ErrNotFound.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, q, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	items, err := h.Service.List(r.Context(), user.OrganizationID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}
