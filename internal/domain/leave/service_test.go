package leave

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hrledger/internal/domain/core"
	"hrledger/internal/domain/hrerr"
	"hrledger/internal/domain/records"
	"hrledger/internal/platform/kv"
)

type fakeEmployees map[int]core.Employee

func (f fakeEmployees) GetEmployee(_ context.Context, id int) (core.Employee, error) {
	emp, ok := f[id]
	if !ok {
		return core.Employee{}, fmt.Errorf("employee %d: %w", id, hrerr.ErrNotFound)
	}
	return emp, nil
}

// flakyBackend fails writes to one key while failKey is set.
type flakyBackend struct {
	*kv.Memory
	failKey string
}

var errWriteFailed = errors.New("write failed")

func (b *flakyBackend) Set(ctx context.Context, key string, value []byte) error {
	if key == b.failKey {
		return errWriteFailed
	}
	return b.Memory.Set(ctx, key, value)
}

var fixedNow = time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, backend kv.Backend) *Service {
	t.Helper()
	employees := fakeEmployees{
		1: {ID: 1, Name: "A"},
		2: {ID: 2, Name: "B"},
	}
	return NewService(NewStore(records.NewStore(backend)), employees, WithClock(func() time.Time { return fixedNow }))
}

func day(month time.Month, d int) records.Date {
	return records.NewDate(2025, month, d)
}

func mustRequest(t *testing.T, svc *Service, employeeID int, start, end records.Date) Request {
	t.Helper()
	req, err := svc.RequestLeave(context.Background(), employeeID, start, end, TypeAnnual)
	if err != nil {
		t.Fatalf("request leave: %v", err)
	}
	return req
}

func TestRequestLeaveValidation(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	ctx := context.Background()

	if _, err := svc.RequestLeave(ctx, 99, day(1, 1), day(1, 2), TypeAnnual); !errors.Is(err, hrerr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.RequestLeave(ctx, 1, day(1, 3), day(1, 2), TypeAnnual); !errors.Is(err, hrerr.ErrInvalidRange) {
		t.Fatalf("expected invalid range, got %v", err)
	}
	if _, err := svc.RequestLeave(ctx, 1, day(1, 1), day(1, 2), "unpaid"); !errors.Is(err, hrerr.ErrInvalidLeaveType) {
		t.Fatalf("expected invalid leave type, got %v", err)
	}

	req := mustRequest(t, svc, 1, day(1, 1), day(1, 2))
	if req.ID != 1 || req.Status != StatusPending || !req.RequestedAt.Equal(day(1, 15)) {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestPendingRequestsDoNotBlock(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	mustRequest(t, svc, 1, day(2, 1), day(2, 5))
	mustRequest(t, svc, 1, day(2, 3), day(2, 4))
}

func TestOverlapWithApprovedRequest(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	ctx := context.Background()

	first := mustRequest(t, svc, 1, day(2, 1), day(2, 5))
	if _, err := svc.ApproveLeave(ctx, first.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := svc.RequestLeave(ctx, 1, day(2, 5), day(2, 6), TypeAnnual); !errors.Is(err, hrerr.ErrOverlapConflict) {
		t.Fatalf("expected overlap conflict, got %v", err)
	}
	mustRequest(t, svc, 1, day(2, 6), day(2, 7))
	mustRequest(t, svc, 2, day(2, 1), day(2, 5))
}

func TestApproveRejectsOverlapWithApproved(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	ctx := context.Background()

	first := mustRequest(t, svc, 1, day(3, 1), day(3, 3))
	second := mustRequest(t, svc, 1, day(3, 2), day(3, 4))
	if _, err := svc.ApproveLeave(ctx, first.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.ApproveLeave(ctx, second.ID); !errors.Is(err, hrerr.ErrOverlapConflict) {
		t.Fatalf("expected overlap conflict, got %v", err)
	}
}

func TestBalanceConservation(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	ctx := context.Background()

	bal, err := svc.Balance(ctx, 1)
	if err != nil || bal.Annual != 20 || bal.Sick != 10 {
		t.Fatalf("expected default balance, got %+v %v", bal, err)
	}

	first := mustRequest(t, svc, 1, day(2, 1), day(2, 5))
	approved, err := svc.ApproveLeave(ctx, first.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("expected approved status, got %s", approved.Status)
	}
	bal, _ = svc.Balance(ctx, 1)
	if bal.Annual != 15 {
		t.Fatalf("expected 15 remaining, got %v", bal.Annual)
	}

	second := mustRequest(t, svc, 1, day(3, 1), day(3, 16))
	_, err = svc.ApproveLeave(ctx, second.ID)
	var insufficient *hrerr.InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	if insufficient.Available != 15 || insufficient.Required != 16 {
		t.Fatalf("unexpected amounts %+v", insufficient)
	}
	bal, _ = svc.Balance(ctx, 1)
	if bal.Annual != 15 {
		t.Fatalf("failed approval must not deduct, got %v", bal.Annual)
	}
	reqs, _ := svc.List(ctx, 1)
	if reqs[1].Status != StatusPending {
		t.Fatalf("failed approval must leave request pending, got %s", reqs[1].Status)
	}
}

func TestApproveLeaveStateChecks(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	ctx := context.Background()

	if _, err := svc.ApproveLeave(ctx, 7); !errors.Is(err, hrerr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	req := mustRequest(t, svc, 1, day(1, 1), day(1, 1))
	if _, err := svc.ApproveLeave(ctx, req.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.ApproveLeave(ctx, req.ID); !errors.Is(err, hrerr.ErrAlreadyProcessed) {
		t.Fatalf("expected already processed, got %v", err)
	}
	bal, _ := svc.Balance(ctx, 1)
	if bal.Annual != 19 {
		t.Fatalf("expected one day deducted once, got %v", bal.Annual)
	}
}

func TestApproveRestoresBalanceWhenStatusWriteFails(t *testing.T) {
	backend := &flakyBackend{Memory: kv.NewMemory()}
	svc := newTestService(t, backend)
	ctx := context.Background()

	req := mustRequest(t, svc, 1, day(4, 1), day(4, 3))
	backend.failKey = RequestsKey

	if _, err := svc.ApproveLeave(ctx, req.ID); !errors.Is(err, errWriteFailed) {
		t.Fatalf("expected write failure, got %v", err)
	}
	backend.failKey = ""

	bal, _ := svc.Balance(ctx, 1)
	if bal.Annual != 20 {
		t.Fatalf("expected balance restored to 20, got %v", bal.Annual)
	}
	stored, _ := svc.List(ctx, 1)
	if stored[0].Status != StatusPending {
		t.Fatalf("expected request still pending, got %s", stored[0].Status)
	}
}

func TestAddBalance(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	ctx := context.Background()

	for _, days := range []float64{0, -2} {
		if _, err := svc.AddBalance(ctx, 1, TypeSick, days); !errors.Is(err, hrerr.ErrInvalidAmount) {
			t.Fatalf("expected invalid amount for %v, got %v", days, err)
		}
	}
	if _, err := svc.AddBalance(ctx, 99, TypeSick, 1); !errors.Is(err, hrerr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	total, err := svc.AddBalance(ctx, 1, TypeSick, 2.5)
	if err != nil {
		t.Fatalf("add balance: %v", err)
	}
	if total != 12.5 {
		t.Fatalf("expected 12.5, got %v", total)
	}
	bal, _ := svc.Balance(ctx, 1)
	if bal.Sick != 12.5 || bal.Annual != 20 {
		t.Fatalf("unexpected balance %+v", bal)
	}
}

func TestBalanceReadDoesNotWriteDefaults(t *testing.T) {
	backend := kv.NewMemory()
	svc := newTestService(t, backend)
	ctx := context.Background()

	if _, err := svc.Balance(ctx, 1); err != nil {
		t.Fatalf("balance: %v", err)
	}
	if _, found, _ := backend.Get(ctx, BalancesKey); found {
		t.Fatal("reading a balance must not persist defaults")
	}
}

func TestListFiltersByEmployee(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	mustRequest(t, svc, 1, day(1, 1), day(1, 1))
	mustRequest(t, svc, 2, day(1, 1), day(1, 1))

	all, _ := svc.List(context.Background(), 0)
	mine, _ := svc.List(context.Background(), 2)
	if len(all) != 2 || len(mine) != 1 || mine[0].EmployeeID != 2 {
		t.Fatalf("unexpected lists %+v %+v", all, mine)
	}
}
