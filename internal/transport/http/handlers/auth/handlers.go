package authhandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrledger/internal/domain/auth"
	"hrledger/internal/transport/http/api"
	"hrledger/internal/transport/http/middleware"
	"hrledger/internal/transport/http/shared"
)

type Handler struct {
	Service     *auth.Service
	AllowSignup bool
}

func NewHandler(service *auth.Service, allowSignup bool) *Handler {
	return &Handler{Service: service, AllowSignup: allowSignup}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.HandleRegister)
		r.Post("/login", h.HandleLogin)
	})
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if !h.AllowSignup {
		api.Fail(w, http.StatusForbidden, "signup_disabled", "self registration is disabled", requestID)
		return
	}
	var payload credentialsRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	validator := shared.NewValidator()
	validator.Required("username", payload.Username, "is required")
	validator.Required("password", payload.Password, "is required")
	if validator.Reject(w, requestID) {
		return
	}

	user, err := h.Service.Register(r.Context(), strings.TrimSpace(payload.Username), payload.Password)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, user, requestID)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload credentialsRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	session, err := h.Service.Login(r.Context(), strings.TrimSpace(payload.Username), payload.Password)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, session, requestID)
}
