package payroll

import (
	"context"

	"hrledger/internal/domain/core"
)

type DepartmentLookup interface {
	FindDepartment(ctx context.Context, departmentID int) (core.Department, bool, error)
}

type PositionLookup interface {
	FindPosition(ctx context.Context, positionID int) (core.Position, bool, error)
}

type EmployeeDirectory interface {
	ListEmployees(ctx context.Context) ([]core.Employee, error)
	GetEmployee(ctx context.Context, employeeID int) (core.Employee, error)
	SetAdjustments(ctx context.Context, employeeID int, bonus, deduction float64) (core.Employee, error)
}
