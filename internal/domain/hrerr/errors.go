// Package hrerr defines the error kinds every HR operation reports. Callers
// test for a kind with errors.Is and pull attached data with errors.As.
package hrerr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidReference    = errors.New("invalid reference")
	ErrReferentialConflict = errors.New("referential conflict")
	ErrInvalidRange        = errors.New("invalid date range")
	ErrOverlapConflict     = errors.New("overlaps approved leave")
	ErrAlreadyProcessed    = errors.New("already processed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidRating       = errors.New("invalid rating")
	ErrInvalidFeedback     = errors.New("invalid feedback")
	ErrCapacityExceeded    = errors.New("capacity exceeded")

	ErrInvalidName        = errors.New("invalid name")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrInvalidLevel       = errors.New("invalid department level")
	ErrInvalidLeaveType   = errors.New("invalid leave type")
	ErrAlreadyCheckedIn   = errors.New("already checked in")
	ErrNotCheckedIn       = errors.New("not checked in")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSort        = errors.New("invalid sort field")
)

// ReferentialConflictError reports a deletion blocked by referencing employees.
type ReferentialConflictError struct {
	Entity string
	ID     int
	Count  int
}

func (e *ReferentialConflictError) Error() string {
	return fmt.Sprintf("%s %d is referenced by %d employee(s)", e.Entity, e.ID, e.Count)
}

func (e *ReferentialConflictError) Is(target error) bool {
	return target == ErrReferentialConflict
}

// InsufficientBalanceError carries the remaining and requested leave days.
type InsufficientBalanceError struct {
	LeaveType string
	Available float64
	Required  float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: available %g, required %g", e.LeaveType, e.Available, e.Required)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// CapacityError reports a serialized value larger than the store allows.
type CapacityError struct {
	Key   string
	Size  int
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds limit of %d", e.Key, e.Size, e.Limit)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
