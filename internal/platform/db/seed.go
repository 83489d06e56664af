package db

import (
	"context"
	"errors"
	"log/slog"

	"hrledger/internal/domain/auth"
	"hrledger/internal/domain/core"
	"hrledger/internal/domain/hrerr"
	"hrledger/internal/domain/records"
	"hrledger/internal/platform/config"
)

// Seed writes the default departments, positions and employees. Each key is
// written only when it has never existed, so emptied lists stay empty.
func Seed(ctx context.Context, store *core.Store, users *auth.Service, cfg config.Config, logger *slog.Logger) error {
	if err := seedKey(ctx, logger, store.Departments, defaultDepartments()); err != nil {
		return err
	}
	if err := seedKey(ctx, logger, store.Positions, defaultPositions()); err != nil {
		return err
	}
	if err := seedKey(ctx, logger, store.Employees, defaultEmployees()); err != nil {
		return err
	}
	return ensureAdminUser(ctx, users, cfg.SeedAdminUsername, cfg.SeedAdminPassword, logger)
}

func seedKey[T records.Entity[T]](ctx context.Context, logger *slog.Logger, collection *records.Collection[T], defaults []T) error {
	seeded, err := collection.SeedIfAbsent(ctx, defaults)
	if err != nil {
		return err
	}
	if seeded {
		logger.Info("seeded default records", "key", collection.Key(), "count", len(defaults))
	}
	return nil
}

func ensureAdminUser(ctx context.Context, users *auth.Service, username, password string, logger *slog.Logger) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := users.Register(ctx, username, password)
	if errors.Is(err, hrerr.ErrDuplicateName) {
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("seeded admin user", "username", username)
	return nil
}

func defaultDepartments() []core.Department {
	managers := []int{1, 2, 3}
	return []core.Department{
		{ID: 1, Name: "IT", ManagerID: &managers[0], Level: 1.5},
		{ID: 2, Name: "HR", ManagerID: &managers[1], Level: 1.2},
		{ID: 3, Name: "Finance", ManagerID: &managers[2], Level: 1.7},
	}
}

func defaultPositions() []core.Position {
	return []core.Position{
		{ID: 1, Title: "Developer", Description: "Builds and maintains software", SalaryBase: 1000},
		{ID: 2, Title: "Manager", Description: "Leads a team", SalaryBase: 1500},
		{ID: 3, Title: "Analyst", Description: "Analyses data and processes", SalaryBase: 1200},
		{ID: 4, Title: "Tester", Description: "Verifies software quality", SalaryBase: 900},
		{ID: 5, Title: "Designer", Description: "Designs user interfaces", SalaryBase: 1100},
	}
}

func defaultEmployees() []core.Employee {
	return []core.Employee{
		{ID: 1, Name: "Nguyễn Văn A", DepartmentID: 1, PositionID: 1, Salary: 1000, HireDate: records.NewDate(2023, 1, 1)},
		{ID: 2, Name: "Trần Thị B", DepartmentID: 1, PositionID: 2, Salary: 1200, HireDate: records.NewDate(2023, 2, 1)},
		{ID: 3, Name: "Lê Văn C", DepartmentID: 2, PositionID: 1, Salary: 1100, HireDate: records.NewDate(2023, 3, 1)},
		{ID: 4, Name: "Phạm Thị D", DepartmentID: 2, PositionID: 3, Salary: 1300, HireDate: records.NewDate(2023, 4, 1)},
		{ID: 5, Name: "Hoàng Văn E", DepartmentID: 3, PositionID: 2, Salary: 1400, HireDate: records.NewDate(2023, 5, 1)},
	}
}
