package attendance

import (
	"context"
	"fmt"
	"time"

	"hrledger/internal/domain/core"
	"hrledger/internal/domain/hrerr"
	"hrledger/internal/domain/records"
)

const aggregate = "attendance"

type EmployeeLookup interface {
	GetEmployee(ctx context.Context, employeeID int) (core.Employee, error)
}

type Service struct {
	records   *records.Store
	log       *records.Document[[]Record]
	employees EmployeeLookup
	now       func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(rs *records.Store, employees EmployeeLookup, opts ...Option) *Service {
	s := &Service{
		records:   rs,
		log:       records.NewDocument[[]Record](rs, Key),
		employees: employees,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckIn opens a record for today. An employee has at most one open record per day.
func (s *Service) CheckIn(ctx context.Context, employeeID int) (Record, error) {
	if _, err := s.employees.GetEmployee(ctx, employeeID); err != nil {
		return Record{}, err
	}
	now := s.now()
	today := records.DateOf(now)

	var opened Record
	err := s.records.Critical(ctx, aggregate, func(ctx context.Context) error {
		all, err := s.load(ctx)
		if err != nil {
			return err
		}
		if _, found := openRecord(all, employeeID, today); found {
			return fmt.Errorf("employee %d on %s: %w", employeeID, today, hrerr.ErrAlreadyCheckedIn)
		}
		opened = Record{Date: today, EmployeeID: employeeID, CheckIn: now.UnixMilli()}
		return s.log.Put(ctx, append(all, opened))
	})
	return opened, err
}

func (s *Service) CheckOut(ctx context.Context, employeeID int) (Record, error) {
	now := s.now()
	today := records.DateOf(now)

	var closed Record
	err := s.records.Critical(ctx, aggregate, func(ctx context.Context) error {
		all, err := s.load(ctx)
		if err != nil {
			return err
		}
		i, found := openRecord(all, employeeID, today)
		if !found {
			return fmt.Errorf("employee %d on %s: %w", employeeID, today, hrerr.ErrNotCheckedIn)
		}
		out := now.UnixMilli()
		all[i].CheckOut = &out
		closed = all[i]
		return s.log.Put(ctx, all)
	})
	return closed, err
}

// Report lists the records of employeeID (every employee when zero) dated
// within [from, to]. A zero bound is open.
func (s *Service) Report(ctx context.Context, employeeID int, from, to records.Date) (Report, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return Report{}, fmt.Errorf("%s..%s: %w", from, to, hrerr.ErrInvalidRange)
	}
	all, err := s.load(ctx)
	if err != nil {
		return Report{}, err
	}
	report := Report{Entries: []Entry{}}
	for _, rec := range all {
		if employeeID != 0 && rec.EmployeeID != employeeID {
			continue
		}
		if (!from.IsZero() && rec.Date.Before(from)) || (!to.IsZero() && rec.Date.After(to)) {
			continue
		}
		hours := rec.WorkedHours()
		report.Entries = append(report.Entries, Entry{Record: rec, Hours: hours})
		report.TotalHours += hours
	}
	return report, nil
}

func (s *Service) load(ctx context.Context) ([]Record, error) {
	all, _, err := s.log.Get(ctx)
	if err != nil {
		return nil, err
	}
	return all, nil
}

func openRecord(all []Record, employeeID int, day records.Date) (int, bool) {
	for i, rec := range all {
		if rec.EmployeeID == employeeID && rec.Date.Equal(day) && rec.Open() {
			return i, true
		}
	}
	return -1, false
}
