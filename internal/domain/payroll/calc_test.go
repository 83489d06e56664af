package payroll

import (
	"errors"
	"testing"

	"hrledger/internal/domain/hrerr"
)

func TestComputeSalary(t *testing.T) {
	got, err := ComputeSalary(1000, 1.5, 200, 50)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got.Real != 1500 {
		t.Fatalf("expected real 1500, got %v", got.Real)
	}
	if got.Net != 1650 {
		t.Fatalf("expected net 1650, got %v", got.Net)
	}
}

func TestComputeSalaryRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		base, factor, bonus, deduction float64
		want                           float64
	}{
		{base: 1001, factor: 1.5, want: 1502},
		{base: 1000, factor: 1.2, bonus: 0.4, want: 1200},
		{base: 100, factor: 1, deduction: 100.5, want: -1},
	}
	for _, tc := range cases {
		got, err := ComputeSalary(tc.base, tc.factor, tc.bonus, tc.deduction)
		if err != nil {
			t.Fatalf("compute: %v", err)
		}
		if got.Net != tc.want {
			t.Fatalf("expected net %v, got %v", tc.want, got.Net)
		}
	}
}

func TestComputeSalaryIsDeterministic(t *testing.T) {
	a, _ := ComputeSalary(1200, 1.7, 10, 5)
	b, _ := ComputeSalary(1200, 1.7, 10, 5)
	if a != b {
		t.Fatalf("expected equal breakdowns, got %+v and %+v", a, b)
	}
}

func TestComputeSalaryRejectsNegativeAdjustments(t *testing.T) {
	if _, err := ComputeSalary(1000, 1, -1, 0); !errors.Is(err, hrerr.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for bonus, got %v", err)
	}
	if _, err := ComputeSalary(1000, 1, 0, -1); !errors.Is(err, hrerr.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for deduction, got %v", err)
	}
}
