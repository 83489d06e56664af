package performance

import "hrledger/internal/domain/records"

type Review struct {
	ID         int          `json:"id"`
	EmployeeID int          `json:"employeeId"`
	Date       records.Date `json:"date"`
	Rating     int          `json:"rating"`
	Feedback   string       `json:"feedback"`
}

func (r Review) RecordID() int { return r.ID }

func (r Review) WithRecordID(id int) Review {
	r.ID = id
	return r
}

// Standing is one leaderboard row.
type Standing struct {
	EmployeeID   int     `json:"employeeId"`
	Name         string  `json:"name"`
	DepartmentID int     `json:"departmentId"`
	AvgRating    float64 `json:"avgRating"`
	ReviewCount  int     `json:"reviewCount"`
}

type Summary struct {
	ReviewsTotal       int            `json:"reviewsTotal"`
	ReviewedEmployees  int            `json:"reviewedEmployees"`
	AverageRating      float64        `json:"averageRating"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
}
