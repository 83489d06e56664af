package core

import "hrledger/internal/domain/records"

// aggregate names the critical section guarding employees, departments and
// positions together, since their integrity rules span all three keys.
const aggregate = "core"

type Store struct {
	Records     *records.Store
	Employees   *records.Collection[Employee]
	Departments *records.Collection[Department]
	Positions   *records.Collection[Position]
}

func NewStore(rs *records.Store) *Store {
	return &Store{
		Records:     rs,
		Employees:   records.NewCollection[Employee](rs, EmployeesKey),
		Departments: records.NewCollection[Department](rs, DepartmentsKey),
		Positions:   records.NewCollection[Position](rs, PositionsKey),
	}
}
