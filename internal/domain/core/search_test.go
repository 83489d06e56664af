package core

import (
	"context"
	"errors"
	"testing"

	"hrledger/internal/domain/hrerr"
	"hrledger/internal/domain/records"
)

func seedSearch(t *testing.T) *Service {
	t.Helper()
	svc := newTestService(t)
	ctx := context.Background()
	employees := []Employee{
		{Name: "Charlie", DepartmentID: 1, PositionID: 1, Salary: 1200, HireDate: records.NewDate(2023, 3, 1)},
		{Name: "alice", DepartmentID: 2, PositionID: 2, Salary: 1000, HireDate: records.NewDate(2023, 1, 1)},
		{Name: "Bob", DepartmentID: 1, PositionID: 2, Salary: 1200, HireDate: records.NewDate(2023, 2, 1)},
	}
	for _, emp := range employees {
		if _, err := svc.CreateEmployee(ctx, emp); err != nil {
			t.Fatalf("create employee: %v", err)
		}
	}
	return svc
}

func names(employees []Employee) []string {
	out := make([]string, 0, len(employees))
	for _, emp := range employees {
		out = append(out, emp.Name)
	}
	return out
}

func TestSearchEmployeesFilters(t *testing.T) {
	svc := seedSearch(t)
	ctx := context.Background()
	floor := 1100.0

	got, err := svc.SearchEmployees(ctx, EmployeeQuery{DepartmentID: 1, MinSalary: &floor})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Charlie" || got[1].Name != "Bob" {
		t.Fatalf("unexpected result %v", names(got))
	}

	got, _ = svc.SearchEmployees(ctx, EmployeeQuery{Name: "ALI"})
	if len(got) != 1 || got[0].Name != "alice" {
		t.Fatalf("expected case-insensitive name match, got %v", names(got))
	}

	got, _ = svc.SearchEmployees(ctx, EmployeeQuery{HiredFrom: records.NewDate(2023, 2, 1), HiredTo: records.NewDate(2023, 2, 28)})
	if len(got) != 1 || got[0].Name != "Bob" {
		t.Fatalf("expected hire-date match, got %v", names(got))
	}
}

func TestSearchEmployeesSortIsStable(t *testing.T) {
	svc := seedSearch(t)
	ctx := context.Background()

	got, _ := svc.SearchEmployees(ctx, EmployeeQuery{SortBy: SortBySalary, Descending: true})
	want := []string{"Charlie", "Bob", "alice"}
	for i, name := range names(got) {
		if name != want[i] {
			t.Fatalf("expected %v, got %v", want, names(got))
		}
	}

	got, _ = svc.SearchEmployees(ctx, EmployeeQuery{SortBy: SortByName})
	want = []string{"alice", "Bob", "Charlie"}
	for i, name := range names(got) {
		if name != want[i] {
			t.Fatalf("expected %v, got %v", want, names(got))
		}
	}

	got, _ = svc.SearchEmployees(ctx, EmployeeQuery{SortBy: SortByHireDate})
	if got[0].Name != "alice" || got[2].Name != "Charlie" {
		t.Fatalf("unexpected hire-date order %v", names(got))
	}
}

func TestSearchEmployeesRejectsBadQuery(t *testing.T) {
	svc := seedSearch(t)
	ctx := context.Background()
	low, high := 2000.0, 1000.0

	if _, err := svc.SearchEmployees(ctx, EmployeeQuery{MinSalary: &low, MaxSalary: &high}); !errors.Is(err, hrerr.ErrInvalidRange) {
		t.Fatalf("expected invalid range, got %v", err)
	}
	if _, err := svc.SearchEmployees(ctx, EmployeeQuery{SortBy: "age"}); !errors.Is(err, hrerr.ErrInvalidSort) {
		t.Fatalf("expected invalid sort, got %v", err)
	}
}
