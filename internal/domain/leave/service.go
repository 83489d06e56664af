package leave

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"time"

	"hrledger/internal/domain/hrerr"
	"hrledger/internal/domain/records"
)

type Service struct {
	store     *Store
	employees EmployeeLookup
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Service)

// WithClock replaces time.Now, which stamps requestedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(store *Store, employees EmployeeLookup, opts ...Option) *Service {
	s := &Service{store: store, employees: employees, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestLeave records a pending request. Only approved requests of the same
// employee block a new one.
func (s *Service) RequestLeave(ctx context.Context, employeeID int, start, end records.Date, leaveType string) (Request, error) {
	if _, err := s.employees.GetEmployee(ctx, employeeID); err != nil {
		return Request{}, err
	}
	if !ValidType(leaveType) {
		return Request{}, fmt.Errorf("leave type %q: %w", leaveType, hrerr.ErrInvalidLeaveType)
	}
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return Request{}, fmt.Errorf("%s..%s: %w", start, end, hrerr.ErrInvalidRange)
	}

	var created Request
	err := s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		requests, err := s.store.Requests.GetAll(ctx)
		if err != nil {
			return err
		}
		if other, found := conflictingRequest(requests, employeeID, start, end, 0); found {
			return fmt.Errorf("request %d (%s..%s): %w", other.ID, other.StartDate, other.EndDate, hrerr.ErrOverlapConflict)
		}
		created, err = s.store.Requests.Add(ctx, Request{
			EmployeeID:  employeeID,
			StartDate:   start,
			EndDate:     end,
			Type:        leaveType,
			Status:      StatusPending,
			RequestedAt: records.DateOf(s.now()),
		})
		return err
	})
	return created, err
}

// ApproveLeave deducts the request's days from the employee's balance and
// marks it approved. Either both writes persist or neither does.
func (s *Service) ApproveLeave(ctx context.Context, requestID int) (Request, error) {
	var approved Request
	err := s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		req, err := s.store.Requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != StatusPending {
			return fmt.Errorf("request %d is %s: %w", req.ID, req.Status, hrerr.ErrAlreadyProcessed)
		}
		if !ValidType(req.Type) {
			return fmt.Errorf("leave type %q: %w", req.Type, hrerr.ErrInvalidLeaveType)
		}
		days, err := CalculateDays(req.StartDate, req.EndDate)
		if err != nil {
			return err
		}

		requests, err := s.store.Requests.GetAll(ctx)
		if err != nil {
			return err
		}
		if other, found := conflictingRequest(requests, req.EmployeeID, req.StartDate, req.EndDate, req.ID); found {
			return fmt.Errorf("request %d (%s..%s): %w", other.ID, other.StartDate, other.EndDate, hrerr.ErrOverlapConflict)
		}

		balances, err := s.loadBalances(ctx)
		if err != nil {
			return err
		}
		current := balances.For(req.EmployeeID)
		available := current.Of(req.Type)
		if available < days {
			return &hrerr.InsufficientBalanceError{LeaveType: req.Type, Available: available, Required: days}
		}

		previous := maps.Clone(balances)
		balances[req.EmployeeID] = current.With(req.Type, available-days)
		if err := s.store.Balances.Put(ctx, balances); err != nil {
			return err
		}

		req.Status = StatusApproved
		if err := s.store.Requests.Update(ctx, req); err != nil {
			if restoreErr := s.store.Balances.Put(ctx, previous); restoreErr != nil {
				s.logger.Error("leave balance restore failed", "leaveRequestId", req.ID, "employeeId", req.EmployeeID, "err", restoreErr)
				return fmt.Errorf("approve request %d: %w (balance restore: %v)", req.ID, err, restoreErr)
			}
			return err
		}
		approved = req
		return nil
	})
	return approved, err
}

// AddBalance tops up one leave type and returns the new total.
func (s *Service) AddBalance(ctx context.Context, employeeID int, leaveType string, days float64) (float64, error) {
	if !(days > 0) || math.IsInf(days, 0) {
		return 0, fmt.Errorf("days %g: %w", days, hrerr.ErrInvalidAmount)
	}
	if !ValidType(leaveType) {
		return 0, fmt.Errorf("leave type %q: %w", leaveType, hrerr.ErrInvalidLeaveType)
	}
	if _, err := s.employees.GetEmployee(ctx, employeeID); err != nil {
		return 0, err
	}

	var total float64
	err := s.store.Records.Critical(ctx, aggregate, func(ctx context.Context) error {
		balances, err := s.loadBalances(ctx)
		if err != nil {
			return err
		}
		current := balances.For(employeeID)
		total = current.Of(leaveType) + days
		balances[employeeID] = current.With(leaveType, total)
		return s.store.Balances.Put(ctx, balances)
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Balance returns the stored balance or the default when none was recorded.
// Defaults are never written by a read.
func (s *Service) Balance(ctx context.Context, employeeID int) (Balance, error) {
	balances, err := s.loadBalances(ctx)
	if err != nil {
		return Balance{}, err
	}
	return balances.For(employeeID), nil
}

// List returns the requests of one employee, or all requests when
// employeeID is zero.
func (s *Service) List(ctx context.Context, employeeID int) ([]Request, error) {
	requests, err := s.store.Requests.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if employeeID == 0 {
		return requests, nil
	}
	out := make([]Request, 0, len(requests))
	for _, req := range requests {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (s *Service) loadBalances(ctx context.Context) (Balances, error) {
	balances, found, err := s.store.Balances.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found || balances == nil {
		return Balances{}, nil
	}
	return balances, nil
}
