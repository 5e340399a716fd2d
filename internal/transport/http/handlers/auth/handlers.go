package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lms/internal/domain/auth"
	"lms/internal/domain/employee"
	"lms/internal/transport/http/api"
	"lms/internal/transport/http/middleware"
)

type Handler struct {
	Employees *employee.Service
	Secret    string
	TokenTTL  time.Duration
}

func NewHandler(employees *employee.Service, secret string, ttl time.Duration) *Handler {
	return &Handler{Employees: employees, Secret: secret, TokenTTL: ttl}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
}

type loginPayload struct {
	EmployeeNumber string `json:"employeeNumber"`
	Password       string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.EmployeeNumber == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeNumber and password are required", reqID)
		return
	}

	creds, err := h.Employees.FindByNumber(r.Context(), payload.EmployeeNumber)
	if err != nil && !errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
		return
	}
	// Same response for unknown number and wrong password.
	if err != nil || auth.CheckPassword(creds.PasswordHash, payload.Password) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		EmployeeID: creds.ID,
		Name:       creds.Name,
		Role:       string(creds.Role),
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
		return
	}

	api.Success(w, map[string]any{
		"token":      token,
		"employeeId": creds.ID,
		"name":       creds.Name,
		"role":       string(creds.Role),
	}, reqID)
}

// Tokens are stateless, so logout is a client-side discard; the endpoint
// exists for API symmetry.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"message": "logged out"}, middleware.GetRequestID(r.Context()))
}
