package core

import "hrledger/internal/domain/records"

const (
	EmployeesKey   = "employees"
	DepartmentsKey = "departments"
	PositionsKey   = "positions"
)

// DefaultLevel is the salary multiplier of a department created without one.
const DefaultLevel = 1.0

const (
	MinLevel = 1.0
	MaxLevel = 2.0
)

type Employee struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	DepartmentID int          `json:"departmentId"`
	PositionID   int          `json:"positionId"`
	Salary       float64      `json:"salary"`
	HireDate     records.Date `json:"hireDate"`
	Bonus        float64      `json:"bonus"`
	Deduction    float64      `json:"deduction"`
}

func (e Employee) RecordID() int { return e.ID }

func (e Employee) WithRecordID(id int) Employee {
	e.ID = id
	return e
}

type Department struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	ManagerID *int    `json:"managerId"`
	Level     float64 `json:"level"`
}

func (d Department) RecordID() int { return d.ID }

func (d Department) WithRecordID(id int) Department {
	d.ID = id
	return d
}

type Position struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SalaryBase  float64 `json:"salaryBase"`
}

func (p Position) RecordID() int { return p.ID }

func (p Position) WithRecordID(id int) Position {
	p.ID = id
	return p
}
