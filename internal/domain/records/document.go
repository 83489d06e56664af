package records

import "context"

// Document is a single JSON value stored under one key, for data that is not
// a list of identified records (balance maps, attendance logs).
type Document[T any] struct {
	store *Store
	key   string
}

func NewDocument[T any](store *Store, key string) *Document[T] {
	return &Document[T]{store: store, key: key}
}

func (d *Document[T]) Key() string {
	return d.key
}

// Get returns the stored value. found is false for absent or unreadable data.
func (d *Document[T]) Get(ctx context.Context) (T, bool, error) {
	var value T
	found, err := d.store.load(ctx, d.key, &value)
	if err != nil || !found {
		var zero T
		return zero, false, err
	}
	return value, true, nil
}

func (d *Document[T]) Put(ctx context.Context, value T) error {
	unlock := d.store.lockKey(d.key)
	defer unlock()
	return d.store.save(ctx, d.key, value)
}
