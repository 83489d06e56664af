package hrerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestTypedErrorsMatchTheirKind(t *testing.T) {
	conflict := fmt.Errorf("delete department: %w", &ReferentialConflictError{Entity: "department", ID: 1, Count: 2})
	if !errors.Is(conflict, ErrReferentialConflict) {
		t.Fatal("expected referential conflict kind")
	}
	var rc *ReferentialConflictError
	if !errors.As(conflict, &rc) || rc.Count != 2 {
		t.Fatalf("expected count 2, got %+v", rc)
	}

	balance := fmt.Errorf("approve: %w", &InsufficientBalanceError{LeaveType: "annual", Available: 15, Required: 16})
	if !errors.Is(balance, ErrInsufficientBalance) {
		t.Fatal("expected insufficient balance kind")
	}
	if errors.Is(balance, ErrReferentialConflict) {
		t.Fatal("balance error must not match another kind")
	}

	capacity := &CapacityError{Key: "employees", Size: 10, Limit: 5}
	if !errors.Is(capacity, ErrCapacityExceeded) {
		t.Fatal("expected capacity kind")
	}
}
