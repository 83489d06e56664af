package payroll

const (
	WarningNegativeNet       = "negative_net"
	WarningMissingPosition   = "missing_position"
	WarningMissingDepartment = "missing_department"
)

// DefaultFactor applies when the department is missing or its level is not positive.
const DefaultFactor = 1.0
