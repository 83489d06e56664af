package attendance

import "hrledger/internal/domain/records"

const Key = "attendance"

const millisPerHour = 3.6e6

// Record is one check-in of an employee. Timestamps are unix milliseconds and
// CheckOut is nil while the record is open.
type Record struct {
	Date       records.Date `json:"date"`
	EmployeeID int          `json:"employeeId"`
	CheckIn    int64        `json:"checkIn"`
	CheckOut   *int64       `json:"checkOut"`
}

func (r Record) Open() bool { return r.CheckOut == nil }

// WorkedHours is the worked time of a closed record, zero while open.
func (r Record) WorkedHours() float64 {
	if r.CheckOut == nil {
		return 0
	}
	return float64(*r.CheckOut-r.CheckIn) / millisPerHour
}

type Entry struct {
	Record
	Hours float64 `json:"hours"`
}

type Report struct {
	Entries    []Entry `json:"entries"`
	TotalHours float64 `json:"totalHours"`
}
