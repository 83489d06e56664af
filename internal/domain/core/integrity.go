package core

import (
	"context"
	"fmt"

	"hrledger/internal/domain/hrerr"
)

// CanDeleteDepartment returns how many employees reference the department.
// Zero means the department can be deleted.
func (s *Service) CanDeleteDepartment(ctx context.Context, departmentID int) (int, error) {
	employees, err := s.store.Employees.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, emp := range employees {
		if emp.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

// CanDeletePosition returns how many employees reference the position.
func (s *Service) CanDeletePosition(ctx context.Context, positionID int) (int, error) {
	employees, err := s.store.Employees.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, emp := range employees {
		if emp.PositionID == positionID {
			count++
		}
	}
	return count, nil
}

// ValidateEmployeeReferences checks that the department and position of emp
// exist. The record store does not enforce this.
func (s *Service) ValidateEmployeeReferences(ctx context.Context, emp Employee) error {
	if _, found, err := s.FindDepartment(ctx, emp.DepartmentID); err != nil {
		return err
	} else if !found {
		return fmt.Errorf("department %d: %w", emp.DepartmentID, hrerr.ErrInvalidReference)
	}
	if _, found, err := s.FindPosition(ctx, emp.PositionID); err != nil {
		return err
	} else if !found {
		return fmt.Errorf("position %d: %w", emp.PositionID, hrerr.ErrInvalidReference)
	}
	return nil
}

func (s *Service) validateManager(ctx context.Context, managerID *int) error {
	if managerID == nil {
		return nil
	}
	_, err := s.store.Employees.GetByID(ctx, *managerID)
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return fmt.Errorf("manager %d: %w", *managerID, hrerr.ErrInvalidReference)
	}
	return err
}

// clearManager drops department manager references to a deleted employee.
func (s *Service) clearManager(ctx context.Context, employeeID int) error {
	departments, err := s.store.Departments.GetAll(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range departments {
		if departments[i].ManagerID != nil && *departments[i].ManagerID == employeeID {
			departments[i].ManagerID = nil
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.store.Departments.Save(ctx, departments)
}
