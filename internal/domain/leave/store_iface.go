package leave

import (
	"context"

	"hrledger/internal/domain/core"
)

// EmployeeLookup fails with hrerr.ErrNotFound for unknown employees.
type EmployeeLookup interface {
	GetEmployee(ctx context.Context, employeeID int) (core.Employee, error)
}
