package attendancehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrledger/internal/domain/attendance"
	"hrledger/internal/transport/http/api"
	"hrledger/internal/transport/http/middleware"
	"hrledger/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/check-out", h.handleCheckOut)
		r.Get("/report", h.handleReport)
	})
}

type clockPayload struct {
	EmployeeID int `json:"employeeId"`
}

func decodeEmployee(w http.ResponseWriter, r *http.Request, requestID string) (int, bool) {
	var payload clockPayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return 0, false
	}
	if payload.EmployeeID <= 0 {
		validator := shared.NewValidator()
		validator.Add("employeeId", "must be a positive integer")
		validator.Reject(w, requestID)
		return 0, false
	}
	return payload.EmployeeID, true
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := decodeEmployee(w, r, requestID)
	if !ok {
		return
	}
	record, err := h.Service.CheckIn(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, record, requestID)
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := decodeEmployee(w, r, requestID)
	if !ok {
		return
	}
	record, err := h.Service.CheckOut(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, record, requestID)
}

// handleReport lists attendance of one employee, or everyone without
// employeeId. Missing from/to leave the range open.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	validator := shared.NewValidator()
	employeeID := shared.QueryInt(validator, r, "employeeId")
	from := validator.OptionalDate("from", query.Get("from"))
	to := validator.OptionalDate("to", query.Get("to"))
	if validator.Reject(w, requestID) {
		return
	}

	report, err := h.Service.Report(r.Context(), employeeID, from, to)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, report, requestID)
}
