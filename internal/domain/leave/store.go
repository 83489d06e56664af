package leave

import "hrledger/internal/domain/records"

const aggregate = "leave"

type Store struct {
	Records  *records.Store
	Requests *records.Collection[Request]
	Balances *records.Document[Balances]
}

func NewStore(rs *records.Store) *Store {
	return &Store{
		Records:  rs,
		Requests: records.NewCollection[Request](rs, RequestsKey),
		Balances: records.NewDocument[Balances](rs, BalancesKey),
	}
}
