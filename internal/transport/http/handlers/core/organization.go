package corehandler

import (
	"net/http"
	"strings"

	"hrledger/internal/domain/core"
	"hrledger/internal/transport/http/api"
	"hrledger/internal/transport/http/middleware"
	"hrledger/internal/transport/http/shared"
)

type departmentPayload struct {
	Name      string  `json:"name"`
	ManagerID *int    `json:"managerId"`
	Level     float64 `json:"level"`
}

func (p departmentPayload) department() core.Department {
	return core.Department{Name: strings.TrimSpace(p.Name), ManagerID: p.ManagerID, Level: p.Level}
}

type positionPayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SalaryBase  float64 `json:"salaryBase"`
}

func (p positionPayload) position() core.Position {
	return core.Position{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		SalaryBase:  p.SalaryBase,
	}
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, departments, requestID)
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departmentID, ok := shared.PathID(w, r, "departmentID", requestID)
	if !ok {
		return
	}
	dep, err := h.Service.GetDepartment(r.Context(), departmentID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, dep, requestID)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload departmentPayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	created, err := h.Service.CreateDepartment(r.Context(), payload.department())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departmentID, ok := shared.PathID(w, r, "departmentID", requestID)
	if !ok {
		return
	}
	var payload departmentPayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	dep := payload.department()
	dep.ID = departmentID
	if err := h.Service.UpdateDepartment(r.Context(), dep); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	updated, err := h.Service.GetDepartment(r.Context(), departmentID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departmentID, ok := shared.PathID(w, r, "departmentID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeleteDepartment(r.Context(), departmentID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{"deleted": departmentID}, requestID)
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	positions, err := h.Service.ListPositions(r.Context())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, positions, requestID)
}

func (h *Handler) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	positionID, ok := shared.PathID(w, r, "positionID", requestID)
	if !ok {
		return
	}
	pos, err := h.Service.GetPosition(r.Context(), positionID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, pos, requestID)
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload positionPayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	created, err := h.Service.CreatePosition(r.Context(), payload.position())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	positionID, ok := shared.PathID(w, r, "positionID", requestID)
	if !ok {
		return
	}
	var payload positionPayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	pos := payload.position()
	pos.ID = positionID
	if err := h.Service.UpdatePosition(r.Context(), pos); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, pos, requestID)
}

func (h *Handler) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	positionID, ok := shared.PathID(w, r, "positionID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeletePosition(r.Context(), positionID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{"deleted": positionID}, requestID)
}
