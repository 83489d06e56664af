package payroll

import (
	"fmt"
	"math"

	"hrledger/internal/domain/hrerr"
)

// ComputeSalary derives the net salary from a base, a department factor and
// the employee's adjustments. Net is rounded half away from zero.
func ComputeSalary(base, factor, bonus, deduction float64) (Breakdown, error) {
	if bonus < 0 || deduction < 0 {
		return Breakdown{}, fmt.Errorf("bonus %g, deduction %g: %w", bonus, deduction, hrerr.ErrInvalidAmount)
	}
	scaled := base * factor
	return Breakdown{
		Base:      base,
		Factor:    factor,
		Real:      scaled,
		Bonus:     bonus,
		Deduction: deduction,
		Net:       math.Round(scaled + bonus - deduction),
	}, nil
}
