package payroll

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"hrledger/internal/domain/core"
	"hrledger/internal/domain/hrerr"
)

type Service struct {
	employees   EmployeeDirectory
	departments DepartmentLookup
	positions   PositionLookup
}

func NewService(employees EmployeeDirectory, departments DepartmentLookup, positions PositionLookup) *Service {
	return &Service{employees: employees, departments: departments, positions: positions}
}

// EffectiveSalary computes the net salary of emp. A missing position falls
// back to the employee's stored salary and a missing department to factor 1.
func (s *Service) EffectiveSalary(ctx context.Context, emp core.Employee) (Breakdown, error) {
	line, err := s.salaryLine(ctx, emp)
	if err != nil {
		return Breakdown{}, err
	}
	return line.Breakdown, nil
}

func (s *Service) EmployeeSalary(ctx context.Context, employeeID int) (EmployeeSalary, error) {
	emp, err := s.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return EmployeeSalary{}, err
	}
	return s.salaryLine(ctx, emp)
}

// SetAdjustments stores the bonus and deduction of one employee and returns
// the recomputed salary.
func (s *Service) SetAdjustments(ctx context.Context, employeeID int, bonus, deduction float64) (EmployeeSalary, error) {
	emp, err := s.employees.SetAdjustments(ctx, employeeID, bonus, deduction)
	if err != nil {
		return EmployeeSalary{}, err
	}
	return s.salaryLine(ctx, emp)
}

func (s *Service) Report(ctx context.Context) (Report, error) {
	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return Report{}, err
	}
	report := Report{
		PerEmployee:   make([]EmployeeSalary, 0, len(employees)),
		PerDepartment: map[int]float64{},
	}
	for _, emp := range employees {
		line, err := s.salaryLine(ctx, emp)
		if err != nil {
			return Report{}, fmt.Errorf("employee %d: %w", emp.ID, err)
		}
		report.PerEmployee = append(report.PerEmployee, line)
		report.TotalNet += line.Net
		report.PerDepartment[emp.DepartmentID] += line.Net
		report.Stats.TotalBonus += line.Bonus
		report.Stats.TotalDeduction += line.Deduction
	}
	report.Stats.Count = len(report.PerEmployee)
	if report.Stats.Count > 0 {
		report.Stats.AvgNet = report.TotalNet / float64(report.Stats.Count)
	}
	return report, nil
}

// Payslip renders a one-page PDF for the employee's current salary.
func (s *Service) Payslip(ctx context.Context, employeeID int) ([]byte, error) {
	line, err := s.EmployeeSalary(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.Cell(0, 8, tr(fmt.Sprintf("Employee: %s (#%d)", line.Name, line.EmployeeID)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %d  Position: %d", line.DepartmentID, line.PositionID))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Base: %.2f x %.2f = %.2f", line.Base, line.Factor, line.Real))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Bonus: %.2f", line.Bonus))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deduction: %.2f", line.Deduction))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.0f", line.Net))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) salaryLine(ctx context.Context, emp core.Employee) (EmployeeSalary, error) {
	if emp.Bonus < 0 || emp.Deduction < 0 {
		return EmployeeSalary{}, fmt.Errorf("bonus %g, deduction %g: %w", emp.Bonus, emp.Deduction, hrerr.ErrInvalidAmount)
	}
	line := EmployeeSalary{
		EmployeeID:   emp.ID,
		Name:         emp.Name,
		DepartmentID: emp.DepartmentID,
		PositionID:   emp.PositionID,
	}

	base := emp.Salary
	pos, found, err := s.positions.FindPosition(ctx, emp.PositionID)
	if err != nil {
		return EmployeeSalary{}, err
	}
	fallback := !found
	if found {
		base = pos.SalaryBase
	} else {
		line.Warnings = append(line.Warnings, WarningMissingPosition)
	}

	factor := DefaultFactor
	dep, found, err := s.departments.FindDepartment(ctx, emp.DepartmentID)
	if err != nil {
		return EmployeeSalary{}, err
	}
	if !found {
		line.Warnings = append(line.Warnings, WarningMissingDepartment)
	} else if dep.Level > 0 {
		factor = dep.Level
	}

	breakdown, err := ComputeSalary(base, factor, emp.Bonus, emp.Deduction)
	if err != nil {
		return EmployeeSalary{}, err
	}
	breakdown.FallbackBase = fallback
	line.Breakdown = breakdown
	if breakdown.Net < 0 {
		line.Warnings = append(line.Warnings, WarningNegativeNet)
	}
	return line, nil
}
