package payrollhandler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrledger/internal/domain/payroll"
	"hrledger/internal/transport/http/api"
	"hrledger/internal/transport/http/middleware"
	"hrledger/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/report", h.handleReport)
		r.Route("/employees/{employeeID}", func(r chi.Router) {
			r.Get("/salary", h.handleSalary)
			r.Put("/adjustments", h.handleAdjustments)
			r.Get("/payslip", h.handlePayslip)
		})
	})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	report, err := h.Service.Report(r.Context())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleSalary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	salary, err := h.Service.EmployeeSalary(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, salary, requestID)
}

type adjustmentsRequest struct {
	Bonus     *float64 `json:"bonus"`
	Deduction *float64 `json:"deduction"`
}

func (h *Handler) handleAdjustments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	var payload adjustmentsRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	validator := shared.NewValidator()
	if payload.Bonus == nil {
		validator.Add("bonus", "is required")
	}
	if payload.Deduction == nil {
		validator.Add("deduction", "is required")
	}
	if validator.Reject(w, requestID) {
		return
	}

	salary, err := h.Service.SetAdjustments(r.Context(), employeeID, *payload.Bonus, *payload.Deduction)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, salary, requestID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	pdf, err := h.Service.Payslip(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip-`+strconv.Itoa(employeeID)+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("payslip write failed", "err", err, "requestId", requestID)
	}
}
