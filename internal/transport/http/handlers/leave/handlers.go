package leavehandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrledger/internal/domain/leave"
	"hrledger/internal/transport/http/api"
	"hrledger/internal/transport/http/middleware"
	"hrledger/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Get("/requests", h.handleListRequests)
		r.Post("/requests", h.handleCreateRequest)
		r.Post("/requests/{requestID}/approve", h.handleApproveRequest)
		r.Get("/balances/{employeeID}", h.handleGetBalance)
		r.Post("/balances/{employeeID}/top-up", h.handleTopUp)
	})
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	validator := shared.NewValidator()
	employeeID := shared.QueryInt(validator, r, "employeeId")
	if validator.Reject(w, requestID) {
		return
	}

	requests, err := h.Service.List(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, requests, requestID)
}

type createRequestPayload struct {
	EmployeeID int    `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Type       string `json:"type"`
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload createRequestPayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	validator := shared.NewValidator()
	if payload.EmployeeID <= 0 {
		validator.Add("employeeId", "must be a positive integer")
	}
	start, _ := validator.Date("startDate", payload.StartDate)
	end, _ := validator.Date("endDate", payload.EndDate)
	validator.Required("type", payload.Type, "is required")
	if validator.Reject(w, requestID) {
		return
	}

	req, err := h.Service.RequestLeave(r.Context(), payload.EmployeeID, start, end, strings.TrimSpace(payload.Type))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, req, requestID)
}

func (h *Handler) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	leaveRequestID, ok := shared.PathID(w, r, "requestID", requestID)
	if !ok {
		return
	}
	req, err := h.Service.ApproveLeave(r.Context(), leaveRequestID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, req, requestID)
}

func (h *Handler) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	balance, err := h.Service.Balance(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, balance, requestID)
}

type topUpPayload struct {
	Type string  `json:"type"`
	Days float64 `json:"days"`
}

func (h *Handler) handleTopUp(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	var payload topUpPayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	leaveType := strings.TrimSpace(payload.Type)

	total, err := h.Service.AddBalance(r.Context(), employeeID, leaveType, payload.Days)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{
		"employeeId": employeeID,
		"type":       leaveType,
		"balance":    total,
	}, requestID)
}
