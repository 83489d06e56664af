package performance

import (
	"context"

	"hrledger/internal/domain/core"
)

type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, employeeID int) (core.Employee, error)
	ListEmployees(ctx context.Context) ([]core.Employee, error)
}
