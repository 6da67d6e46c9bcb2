package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"reviewhub/internal/domain/auth"
	"reviewhub/internal/transport/http/api"
	"reviewhub/internal/transport/http/middleware"
)

const tokenTTL = 8 * time.Hour

type Handler struct {
	Service *auth.Service
	Secret  string
}

func NewHandler(service *auth.Service, secret string) *Handler {
	return &Handler{Service: service, Secret: secret}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		EmployeeID:     user.EmployeeID,
		Role:           user.Role,
		DisplayName:    user.DisplayName,
	}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]string{
			"id":             user.ID,
			"organizationId": user.OrganizationID,
			"employeeId":     user.EmployeeID,
			"role":           user.Role,
			"displayName":    user.DisplayName,
		},
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{
		"id":             user.UserID,
		"organizationId": user.OrganizationID,
		"employeeId":     user.EmployeeID,
		"role":           user.Role,
		"displayName":    user.DisplayName,
	}, middleware.GetRequestID(r.Context()))
}
