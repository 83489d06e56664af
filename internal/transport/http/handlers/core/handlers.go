package corehandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrledger/internal/domain/core"
	"hrledger/internal/transport/http/api"
	"hrledger/internal/transport/http/middleware"
	"hrledger/internal/transport/http/shared"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type Handler struct {
	Service *core.Service
}

func NewHandler(service *core.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.handleMe)
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Get("/search", h.handleSearchEmployees)
		r.Get("/export", h.handleExportEmployees)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGetEmployee)
			r.Put("/", h.handleUpdateEmployee)
			r.Delete("/", h.handleDeleteEmployee)
		})
	})
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.Post("/", h.handleCreateDepartment)
		r.Route("/{departmentID}", func(r chi.Router) {
			r.Get("/", h.handleGetDepartment)
			r.Put("/", h.handleUpdateDepartment)
			r.Delete("/", h.handleDeleteDepartment)
		})
	})
	r.Route("/positions", func(r chi.Router) {
		r.Get("/", h.handleListPositions)
		r.Post("/", h.handleCreatePosition)
		r.Route("/{positionID}", func(r chi.Router) {
			r.Get("/", h.handleGetPosition)
			r.Put("/", h.handleUpdatePosition)
			r.Delete("/", h.handleDeletePosition)
		})
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"id":       user.UserID,
		"username": user.Username,
	}, middleware.GetRequestID(r.Context()))
}

type employeePayload struct {
	Name         string  `json:"name"`
	DepartmentID int     `json:"departmentId"`
	PositionID   int     `json:"positionId"`
	Salary       float64 `json:"salary"`
	HireDate     string  `json:"hireDate"`
	Bonus        float64 `json:"bonus"`
	Deduction    float64 `json:"deduction"`
}

func (p employeePayload) employee(v *shared.Validator) core.Employee {
	v.Required("name", p.Name, "is required")
	return core.Employee{
		Name:         strings.TrimSpace(p.Name),
		DepartmentID: p.DepartmentID,
		PositionID:   p.PositionID,
		Salary:       p.Salary,
		HireDate:     v.OptionalDate("hireDate", p.HireDate),
		Bonus:        p.Bonus,
		Deduction:    p.Deduction,
	}
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	emp, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, emp, requestID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employeePayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	validator := shared.NewValidator()
	emp := payload.employee(validator)
	if validator.Reject(w, requestID) {
		return
	}

	created, err := h.Service.CreateEmployee(r.Context(), emp)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	var payload employeePayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	validator := shared.NewValidator()
	emp := payload.employee(validator)
	if validator.Reject(w, requestID) {
		return
	}

	emp.ID = employeeID
	if err := h.Service.UpdateEmployee(r.Context(), emp); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, emp, requestID)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeleteEmployee(r.Context(), employeeID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{"deleted": employeeID}, requestID)
}

func parseEmployeeQuery(r *http.Request) (core.EmployeeQuery, *shared.Validator) {
	validator := shared.NewValidator()
	query := r.URL.Query()
	q := core.EmployeeQuery{
		Name:         strings.TrimSpace(query.Get("name")),
		DepartmentID: shared.QueryInt(validator, r, "departmentId"),
		PositionID:   shared.QueryInt(validator, r, "positionId"),
		MinSalary:    shared.QueryFloat(validator, r, "minSalary"),
		MaxSalary:    shared.QueryFloat(validator, r, "maxSalary"),
		HiredFrom:    validator.OptionalDate("hiredFrom", query.Get("hiredFrom")),
		HiredTo:      validator.OptionalDate("hiredTo", query.Get("hiredTo")),
		SortBy:       strings.TrimSpace(query.Get("sort")),
		Descending:   strings.EqualFold(strings.TrimSpace(query.Get("order")), "desc"),
	}
	validator.Enum("order", query.Get("order"), []string{"asc", "desc"}, "must be asc or desc")
	return q, validator
}

func (h *Handler) handleSearchEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	q, validator := parseEmployeeQuery(r)
	if validator.Reject(w, requestID) {
		return
	}

	employees, err := h.Service.SearchEmployees(r.Context(), q)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	page := shared.ParsePagination(r, defaultPageSize, maxPageSize)
	api.Success(w, shared.Paginate(employees, page), requestID)
}
