package leave

import "hrledger/internal/domain/records"

const (
	RequestsKey = "leaves"
	BalancesKey = "leaveBalances"
)

const (
	TypeAnnual = "annual"
	TypeSick   = "sick"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

const (
	DefaultAnnualDays = 20
	DefaultSickDays   = 10
)

func ValidType(leaveType string) bool {
	return leaveType == TypeAnnual || leaveType == TypeSick
}

type Request struct {
	ID          int          `json:"id"`
	EmployeeID  int          `json:"employeeId"`
	StartDate   records.Date `json:"startDate"`
	EndDate     records.Date `json:"endDate"`
	Type        string       `json:"type"`
	Status      string       `json:"status"`
	RequestedAt records.Date `json:"requestedAt"`
}

func (r Request) RecordID() int { return r.ID }

func (r Request) WithRecordID(id int) Request {
	r.ID = id
	return r
}

// Balance holds the remaining days per leave type of one employee.
type Balance struct {
	Annual float64 `json:"annual"`
	Sick   float64 `json:"sick"`
}

func DefaultBalance() Balance {
	return Balance{Annual: DefaultAnnualDays, Sick: DefaultSickDays}
}

// Of returns the remaining days for leaveType. Unknown types have none.
func (b Balance) Of(leaveType string) float64 {
	switch leaveType {
	case TypeAnnual:
		return b.Annual
	case TypeSick:
		return b.Sick
	}
	return 0
}

func (b Balance) With(leaveType string, days float64) Balance {
	switch leaveType {
	case TypeAnnual:
		b.Annual = days
	case TypeSick:
		b.Sick = days
	}
	return b
}

// Balances maps employee id to balance. JSON object keys are the decimal ids.
type Balances map[int]Balance

func (b Balances) For(employeeID int) Balance {
	if bal, ok := b[employeeID]; ok {
		return bal
	}
	return DefaultBalance()
}
