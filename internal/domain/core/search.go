package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"hrledger/internal/domain/hrerr"
	"hrledger/internal/domain/records"
)

const (
	SortByName     = "name"
	SortBySalary   = "salary"
	SortByHireDate = "hireDate"
)

// EmployeeQuery filters and orders employees. Zero values match everything.
type EmployeeQuery struct {
	Name         string
	DepartmentID int
	PositionID   int
	MinSalary    *float64
	MaxSalary    *float64
	HiredFrom    records.Date
	HiredTo      records.Date
	SortBy       string
	Descending   bool
}

func ValidSortField(field string) bool {
	switch field {
	case "", SortByName, SortBySalary, SortByHireDate:
		return true
	}
	return false
}

func (q EmployeeQuery) validate() error {
	if !ValidSortField(q.SortBy) {
		return fmt.Errorf("sort field %q: %w", q.SortBy, hrerr.ErrInvalidSort)
	}
	if q.MinSalary != nil && q.MaxSalary != nil && *q.MinSalary > *q.MaxSalary {
		return fmt.Errorf("salary %g..%g: %w", *q.MinSalary, *q.MaxSalary, hrerr.ErrInvalidRange)
	}
	if !q.HiredFrom.IsZero() && !q.HiredTo.IsZero() && q.HiredFrom.After(q.HiredTo) {
		return fmt.Errorf("hired %s..%s: %w", q.HiredFrom, q.HiredTo, hrerr.ErrInvalidRange)
	}
	return nil
}

func (q EmployeeQuery) matches(emp Employee) bool {
	if q.Name != "" && !strings.Contains(strings.ToLower(emp.Name), strings.ToLower(q.Name)) {
		return false
	}
	if q.DepartmentID != 0 && emp.DepartmentID != q.DepartmentID {
		return false
	}
	if q.PositionID != 0 && emp.PositionID != q.PositionID {
		return false
	}
	if q.MinSalary != nil && emp.Salary < *q.MinSalary {
		return false
	}
	if q.MaxSalary != nil && emp.Salary > *q.MaxSalary {
		return false
	}
	if !q.HiredFrom.IsZero() && emp.HireDate.Before(q.HiredFrom) {
		return false
	}
	if !q.HiredTo.IsZero() && emp.HireDate.After(q.HiredTo) {
		return false
	}
	return true
}

func (s *Service) SearchEmployees(ctx context.Context, q EmployeeQuery) ([]Employee, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	employees, err := s.store.Employees.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]Employee, 0, len(employees))
	for _, emp := range employees {
		if q.matches(emp) {
			matched = append(matched, emp)
		}
	}
	SortEmployees(matched, q.SortBy, q.Descending)
	return matched, nil
}

// SortEmployees orders employees in place by field. Equal keys keep their
// relative order. An empty field leaves storage order.
func SortEmployees(employees []Employee, field string, descending bool) {
	var cmp func(a, b Employee) int
	switch field {
	case SortByName:
		cmp = func(a, b Employee) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortBySalary:
		cmp = func(a, b Employee) int {
			switch {
			case a.Salary < b.Salary:
				return -1
			case a.Salary > b.Salary:
				return 1
			}
			return 0
		}
	case SortByHireDate:
		cmp = func(a, b Employee) int {
			return a.HireDate.Time().Compare(b.HireDate.Time())
		}
	default:
		return
	}
	if descending {
		asc := cmp
		cmp = func(a, b Employee) int { return asc(b, a) }
	}
	slices.SortStableFunc(employees, cmp)
}
