package reviewhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"reviewhub/internal/domain/audit"
	"reviewhub/internal/domain/auth"
	"reviewhub/internal/domain/directory"
	"reviewhub/internal/domain/notifications"
	"reviewhub/internal/domain/review"
	"reviewhub/internal/transport/http/api"
	"reviewhub/internal/transport/http/middleware"
)

type Handler struct {
	Service   *review.Service
	Directory *directory.Service
	Notify    *notifications.Service
	Audit     *audit.Service
}

func NewHandler(service *review.Service, dir *directory.Service, notify *notifications.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Directory: dir, Notify: notify, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	hrOnly := middleware.RequireRole(auth.RoleHR)
	hrOrManager := middleware.RequireRole(auth.RoleHR, auth.RoleManager)

	r.Route("/cycles", func(r chi.Router) {
		r.Get("/", h.handleListCycles)
		r.With(hrOnly).Post("/", h.handleCreateCycle)
		r.Get("/current", h.handleCurrentCycle)
		r.Get("/{cycleID}", h.handleGetCycle)
		r.With(hrOnly).Put("/{cycleID}", h.handleUpdateCycle)
		r.With(hrOnly).Delete("/{cycleID}", h.handleDeleteCycle)
		r.With(hrOnly).Post("/{cycleID}/status", h.handleUpdateCycleStatus)
		r.Get("/{cycleID}/receivers", h.handleListReceivers)
		r.With(hrOnly).Post("/{cycleID}/receivers", h.handleAddReceivers)
		r.With(hrOnly).Put("/{cycleID}/receivers", h.handleUpdateReceivers)
	})

	r.Route("/employees/{employeeID}", func(r chi.Router) {
		r.With(hrOrManager).Post("/reviewers", h.handleAssignReviewers)
		r.With(hrOrManager).Put("/reviewers", h.handleUpdateReviewers)
		r.Get("/reviewers", h.handleGetProvider)
		r.Get("/responses", h.handleListResponses)
		r.Get("/self-evaluations", h.handleListSelfEvaluations)
		r.Get("/ratings", h.handleListRatings)
	})

	r.Post("/responses", h.handleSubmitResponse)
	r.Post("/self-evaluations", h.handleSubmitSelfEvaluation)

	r.Route("/ratings", func(r chi.Router) {
		r.With(hrOrManager).Post("/compute", h.handleComputeRating)
		r.With(hrOnly).Post("/{ratingID}/publish", h.handlePublishRating)
	})
}

// failDomain translates service errors into HTTP responses. The error text
// is surfaced as the message so transition violations read as stated by the
// state machine.
func failDomain(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case review.IsValidation(err):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case review.IsNotFound(err):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case review.IsConflict(err):
		api.Fail(w, http.StatusConflict, "conflict", err.Error(), requestID)
	case review.IsInvalidOperation(err):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_operation", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", requestID)
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (userID, orgID string, ok bool) {
	user, found := middleware.GetUser(r.Context())
	if !found {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return "", "", false
	}
	return user.UserID, user.OrganizationID, true
}
