package records

import (
	"context"
	"fmt"

	"hrledger/internal/domain/hrerr"
)

// Entity is a record with an integer identity assigned by its Collection.
type Entity[T any] interface {
	RecordID() int
	WithRecordID(id int) T
}

// Collection is the ordered list of one entity kind stored under a single key.
type Collection[T Entity[T]] struct {
	store *Store
	key   string
}

func NewCollection[T Entity[T]](store *Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// GetAll returns every record in storage order. An unreadable document yields
// an empty list rather than an error.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	var items []T
	found, err := c.store.load(ctx, c.key, &items)
	if err != nil {
		return nil, err
	}
	if !found || items == nil {
		return []T{}, nil
	}
	return items, nil
}

func (c *Collection[T]) GetByID(ctx context.Context, id int) (T, error) {
	var zero T
	items, err := c.GetAll(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if item.RecordID() == id {
			return item, nil
		}
	}
	return zero, fmt.Errorf("%s %d: %w", c.key, id, hrerr.ErrNotFound)
}

// Save replaces the whole list.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	unlock := c.store.lockKey(c.key)
	defer unlock()
	return c.store.save(ctx, c.key, items)
}

// Add assigns the next identity (max existing id + 1, starting at 1) and appends.
func (c *Collection[T]) Add(ctx context.Context, item T) (T, error) {
	unlock := c.store.lockKey(c.key)
	defer unlock()

	var zero T
	items, err := c.GetAll(ctx)
	if err != nil {
		return zero, err
	}
	item = item.WithRecordID(NextID(items))
	items = append(items, item)
	if err := c.store.save(ctx, c.key, items); err != nil {
		return zero, err
	}
	return item, nil
}

// Update replaces the record with the same id in place.
func (c *Collection[T]) Update(ctx context.Context, item T) error {
	unlock := c.store.lockKey(c.key)
	defer unlock()

	items, err := c.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].RecordID() == item.RecordID() {
			items[i] = item
			return c.store.save(ctx, c.key, items)
		}
	}
	return fmt.Errorf("%s %d: %w", c.key, item.RecordID(), hrerr.ErrNotFound)
}

func (c *Collection[T]) Delete(ctx context.Context, id int) error {
	unlock := c.store.lockKey(c.key)
	defer unlock()

	items, err := c.GetAll(ctx)
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.RecordID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return fmt.Errorf("%s %d: %w", c.key, id, hrerr.ErrNotFound)
	}
	return c.store.save(ctx, c.key, kept)
}

// SeedIfAbsent writes defaults only when the key has never been written.
func (c *Collection[T]) SeedIfAbsent(ctx context.Context, defaults []T) (bool, error) {
	unlock := c.store.lockKey(c.key)
	defer unlock()

	exists, err := c.store.Exists(ctx, c.key)
	if err != nil || exists {
		return false, err
	}
	if defaults == nil {
		defaults = []T{}
	}
	if err := c.store.save(ctx, c.key, defaults); err != nil {
		return false, err
	}
	return true, nil
}

func NextID[T Entity[T]](items []T) int {
	highest := 0
	for _, item := range items {
		highest = max(highest, item.RecordID())
	}
	return highest + 1
}
