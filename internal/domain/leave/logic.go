package leave

import (
	"fmt"
	"math"

	"hrledger/internal/domain/hrerr"
	"hrledger/internal/domain/records"
)

// CalculateDays returns the inclusive day count between start and end.
func CalculateDays(start, end records.Date) (float64, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("%s..%s: %w", start, end, hrerr.ErrInvalidRange)
	}
	return math.Ceil(start.DaysUntil(end)) + 1, nil
}

// Overlaps reports whether two inclusive date ranges share at least one day.
func Overlaps(start, end, otherStart, otherEnd records.Date) bool {
	return !(end.Before(otherStart) || start.After(otherEnd))
}

func conflictingRequest(requests []Request, employeeID int, start, end records.Date, skipID int) (Request, bool) {
	for _, other := range requests {
		if other.ID == skipID || other.EmployeeID != employeeID || other.Status != StatusApproved {
			continue
		}
		if Overlaps(start, end, other.StartDate, other.EndDate) {
			return other, true
		}
	}
	return Request{}, false
}
