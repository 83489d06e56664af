package payroll

type Breakdown struct {
	Base      float64 `json:"base"`
	Factor    float64 `json:"factor"`
	Real      float64 `json:"real"`
	Bonus     float64 `json:"bonus"`
	Deduction float64 `json:"deduction"`
	Net       float64 `json:"net"`
	// FallbackBase is set when the position was missing and the employee's
	// stored salary served as base.
	FallbackBase bool `json:"fallbackBase"`
}

type EmployeeSalary struct {
	EmployeeID   int      `json:"employeeId"`
	Name         string   `json:"name"`
	DepartmentID int      `json:"departmentId"`
	PositionID   int      `json:"positionId"`
	Warnings     []string `json:"warnings,omitempty"`
	Breakdown
}

type Stats struct {
	Count          int     `json:"count"`
	AvgNet         float64 `json:"avgNet"`
	TotalBonus     float64 `json:"totalBonus"`
	TotalDeduction float64 `json:"totalDeduction"`
}

type Report struct {
	PerEmployee   []EmployeeSalary `json:"perEmployee"`
	TotalNet      float64          `json:"totalNet"`
	PerDepartment map[int]float64  `json:"perDepartmentTotals"`
	Stats         Stats            `json:"stats"`
}
