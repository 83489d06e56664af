package shared

import (
	"strings"

	"hrledger/internal/domain/records"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD. An empty value is the zero date.
func ParseDate(value string) (records.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return records.Date{}, nil
	}
	return records.ParseDate(value)
}
