package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hrledger/internal/domain/hrerr"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.store.Employees.GetAll(ctx)
}

func (s *Service) GetEmployee(ctx context.Context, employeeID int) (Employee, error) {
	return s.store.Employees.GetByID(ctx, employeeID)
}

func (s *Service) CreateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	emp.Name = strings.TrimSpace(emp.Name)
	if err := validateEmployee(emp); err != nil {
		return Employee{}, err
	}
	var created Employee
	err := s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		if err := s.ValidateEmployeeReferences(ctx, emp); err != nil {
			return err
		}
		var err error
		created, err = s.store.Employees.Add(ctx, emp)
		return err
	})
	return created, err
}

// UpdateEmployee replaces the stored employee with the same id.
func (s *Service) UpdateEmployee(ctx context.Context, emp Employee) error {
	emp.Name = strings.TrimSpace(emp.Name)
	if err := validateEmployee(emp); err != nil {
		return err
	}
	return s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		if err := s.ValidateEmployeeReferences(ctx, emp); err != nil {
			return err
		}
		return s.store.Employees.Update(ctx, emp)
	})
}

// SetAdjustments replaces the bonus and deduction of one employee. Department
// and position references are left as stored.
func (s *Service) SetAdjustments(ctx context.Context, employeeID int, bonus, deduction float64) (Employee, error) {
	if bonus < 0 || deduction < 0 {
		return Employee{}, fmt.Errorf("bonus %g, deduction %g: %w", bonus, deduction, hrerr.ErrInvalidAmount)
	}
	var updated Employee
	err := s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		emp, err := s.store.Employees.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		emp.Bonus = bonus
		emp.Deduction = deduction
		if err := s.store.Employees.Update(ctx, emp); err != nil {
			return err
		}
		updated = emp
		return nil
	})
	return updated, err
}

// DeleteEmployee removes the employee and clears any department that names
// them as manager. Employees are never blocked from deletion.
func (s *Service) DeleteEmployee(ctx context.Context, employeeID int) error {
	return s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		if _, err := s.store.Employees.GetByID(ctx, employeeID); err != nil {
			return err
		}
		if err := s.clearManager(ctx, employeeID); err != nil {
			return err
		}
		return s.store.Employees.Delete(ctx, employeeID)
	})
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.store.Departments.GetAll(ctx)
}

func (s *Service) GetDepartment(ctx context.Context, departmentID int) (Department, error) {
	return s.store.Departments.GetByID(ctx, departmentID)
}

// FindDepartment reports whether the department exists instead of failing
// with ErrNotFound.
func (s *Service) FindDepartment(ctx context.Context, departmentID int) (Department, bool, error) {
	dep, err := s.store.Departments.GetByID(ctx, departmentID)
	if err != nil {
		if isNotFound(err) {
			return Department{}, false, nil
		}
		return Department{}, false, err
	}
	return dep, true, nil
}

func (s *Service) CreateDepartment(ctx context.Context, dep Department) (Department, error) {
	dep.Name = strings.TrimSpace(dep.Name)
	if dep.Level == 0 {
		dep.Level = DefaultLevel
	}
	if err := validateDepartment(dep); err != nil {
		return Department{}, err
	}
	var created Department
	err := s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		if err := s.checkDepartment(ctx, dep); err != nil {
			return err
		}
		var err error
		created, err = s.store.Departments.Add(ctx, dep)
		return err
	})
	return created, err
}

func (s *Service) UpdateDepartment(ctx context.Context, dep Department) error {
	dep.Name = strings.TrimSpace(dep.Name)
	if dep.Level == 0 {
		dep.Level = DefaultLevel
	}
	if err := validateDepartment(dep); err != nil {
		return err
	}
	return s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		if err := s.checkDepartment(ctx, dep); err != nil {
			return err
		}
		return s.store.Departments.Update(ctx, dep)
	})
}

// DeleteDepartment fails with *hrerr.ReferentialConflictError while any
// employee belongs to the department.
func (s *Service) DeleteDepartment(ctx context.Context, departmentID int) error {
	return s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		if _, err := s.store.Departments.GetByID(ctx, departmentID); err != nil {
			return err
		}
		count, err := s.CanDeleteDepartment(ctx, departmentID)
		if err != nil {
			return err
		}
		if count > 0 {
			return &hrerr.ReferentialConflictError{Entity: "department", ID: departmentID, Count: count}
		}
		return s.store.Departments.Delete(ctx, departmentID)
	})
}

func (s *Service) ListPositions(ctx context.Context) ([]Position, error) {
	return s.store.Positions.GetAll(ctx)
}

func (s *Service) GetPosition(ctx context.Context, positionID int) (Position, error) {
	return s.store.Positions.GetByID(ctx, positionID)
}

func (s *Service) FindPosition(ctx context.Context, positionID int) (Position, bool, error) {
	pos, err := s.store.Positions.GetByID(ctx, positionID)
	if err != nil {
		if isNotFound(err) {
			return Position{}, false, nil
		}
		return Position{}, false, err
	}
	return pos, true, nil
}

func (s *Service) CreatePosition(ctx context.Context, pos Position) (Position, error) {
	pos.Title = strings.TrimSpace(pos.Title)
	if err := validatePosition(pos); err != nil {
		return Position{}, err
	}
	var created Position
	err := s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		if err := s.checkPositionTitle(ctx, pos); err != nil {
			return err
		}
		var err error
		created, err = s.store.Positions.Add(ctx, pos)
		return err
	})
	return created, err
}

func (s *Service) UpdatePosition(ctx context.Context, pos Position) error {
	pos.Title = strings.TrimSpace(pos.Title)
	if err := validatePosition(pos); err != nil {
		return err
	}
	return s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		if err := s.checkPositionTitle(ctx, pos); err != nil {
			return err
		}
		return s.store.Positions.Update(ctx, pos)
	})
}

func (s *Service) DeletePosition(ctx context.Context, positionID int) error {
	return s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		if _, err := s.store.Positions.GetByID(ctx, positionID); err != nil {
			return err
		}
		count, err := s.CanDeletePosition(ctx, positionID)
		if err != nil {
			return err
		}
		if count > 0 {
			return &hrerr.ReferentialConflictError{Entity: "position", ID: positionID, Count: count}
		}
		return s.store.Positions.Delete(ctx, positionID)
	})
}

func (s *Service) checkDepartment(ctx context.Context, dep Department) error {
	departments, err := s.store.Departments.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, other := range departments {
		if other.ID != dep.ID && strings.TrimSpace(other.Name) == dep.Name {
			return fmt.Errorf("department %q: %w", dep.Name, hrerr.ErrDuplicateName)
		}
	}
	return s.validateManager(ctx, dep.ManagerID)
}

func (s *Service) checkPositionTitle(ctx context.Context, pos Position) error {
	positions, err := s.store.Positions.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, other := range positions {
		if other.ID != pos.ID && strings.TrimSpace(other.Title) == pos.Title {
			return fmt.Errorf("position %q: %w", pos.Title, hrerr.ErrDuplicateName)
		}
	}
	return nil
}

func validateEmployee(emp Employee) error {
	if emp.Name == "" {
		return fmt.Errorf("employee name: %w", hrerr.ErrInvalidName)
	}
	if emp.Salary < 0 {
		return fmt.Errorf("salary %g: %w", emp.Salary, hrerr.ErrInvalidAmount)
	}
	if emp.Bonus < 0 || emp.Deduction < 0 {
		return fmt.Errorf("bonus %g, deduction %g: %w", emp.Bonus, emp.Deduction, hrerr.ErrInvalidAmount)
	}
	return nil
}

func validateDepartment(dep Department) error {
	if dep.Name == "" {
		return fmt.Errorf("department name: %w", hrerr.ErrInvalidName)
	}
	if dep.Level < MinLevel || dep.Level > MaxLevel {
		return fmt.Errorf("level %g: %w", dep.Level, hrerr.ErrInvalidLevel)
	}
	return nil
}

func validatePosition(pos Position) error {
	if pos.Title == "" {
		return fmt.Errorf("position title: %w", hrerr.ErrInvalidName)
	}
	if pos.SalaryBase <= 0 {
		return fmt.Errorf("salary base %g: %w", pos.SalaryBase, hrerr.ErrInvalidAmount)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, hrerr.ErrNotFound)
}
