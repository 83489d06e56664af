package corehandler

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"

	"hrledger/internal/transport/http/api"
	"hrledger/internal/transport/http/middleware"
)

var exportHeader = []string{
	"id", "name", "departmentId", "department", "positionId", "position",
	"salary", "hireDate", "bonus", "deduction",
}

// handleExportEmployees streams the search result as CSV. Dangling
// references export with an empty name column.
func (h *Handler) handleExportEmployees(w http.ResponseWriter, r *http.Request) {
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
	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	positions, err := h.Service.ListPositions(r.Context())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	departmentNames := make(map[int]string, len(departments))
	for _, dep := range departments {
		departmentNames[dep.ID] = dep.Name
	}
	positionTitles := make(map[int]string, len(positions))
	for _, pos := range positions {
		positionTitles[pos.ID] = pos.Title
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.csv"`)
	writer := csv.NewWriter(w)
	rows := [][]string{exportHeader}
	for _, emp := range employees {
		rows = append(rows, []string{
			strconv.Itoa(emp.ID),
			emp.Name,
			strconv.Itoa(emp.DepartmentID),
			departmentNames[emp.DepartmentID],
			strconv.Itoa(emp.PositionID),
			positionTitles[emp.PositionID],
			formatAmount(emp.Salary),
			emp.HireDate.String(),
			formatAmount(emp.Bonus),
			formatAmount(emp.Deduction),
		})
	}
	if err := writer.WriteAll(rows); err != nil {
		slog.Warn("employee export failed", "err", err, "requestId", requestID)
	}
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
