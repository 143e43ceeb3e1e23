package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Keys under which locally created records are persisted.
const (
	KeyCreatedBands   = "createdBands"
	KeyCreatedReviews = "createdReviews"
	KeyDeletedReviews = "deletedReviews"
)

// Collection is the ordered list of locally created records stored under one
// key. Every mutation holds the lock across modify and persist, so two
// overlapping writers cannot lose each other's records.
type Collection[T any] struct {
	mu      sync.Mutex
	backend Backend
	key     string
	idOf    func(T) int64
	records []T
	log     *zap.Logger
}

// Open loads the collection stored under key. Missing or corrupt data yields
// an empty collection; Open never fails on content.
func Open[T any](backend Backend, key string, idOf func(T) int64, log *zap.Logger) *Collection[T] {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Collection[T]{backend: backend, key: key, idOf: idOf, log: log}
	c.records = c.load()
	return c
}

func (c *Collection[T]) load() []T {
	data, err := c.backend.Load(c.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.log.Warn("local store unreadable, starting empty", zap.String("key", c.key), zap.Error(err))
		}
		return nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		c.log.Warn("local store corrupt, starting empty", zap.String("key", c.key), zap.Error(err))
		return nil
	}
	return records
}

// All returns a copy of the stored records in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.records...)
}

// Len reports the number of stored records.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Get returns the record with id.
func (c *Collection[T]) Get(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		return c.records[i], true
	}
	var zero T
	return zero, false
}

// Has reports whether a record with id is stored.
func (c *Collection[T]) Has(id int64) bool {
	_, ok := c.Get(id)
	return ok
}

// Append adds rec and persists the full list.
func (c *Collection[T]) Append(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]T, 0, len(c.records)+1)
	next = append(next, c.records...)
	next = append(next, rec)
	return c.commit(next)
}

// Replace swaps the record sharing rec's id. It reports false when no such
// record exists.
func (c *Collection[T]) Replace(rec T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(c.idOf(rec))
	if i < 0 {
		return false, nil
	}
	next := append([]T(nil), c.records...)
	next[i] = rec
	return true, c.commit(next)
}

// Upsert replaces the record sharing rec's id or appends rec.
func (c *Collection[T]) Upsert(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := append([]T(nil), c.records...)
	if i := c.indexOf(c.idOf(rec)); i >= 0 {
		next[i] = rec
	} else {
		next = append(next, rec)
	}
	return c.commit(next)
}

// Remove deletes the record with id. It reports false when nothing matched.
func (c *Collection[T]) Remove(id int64) (bool, error) {
	return c.RemoveFunc(func(rec T) bool { return c.idOf(rec) == id })
}

// RemoveFunc deletes every record matching pred and reports whether any did.
func (c *Collection[T]) RemoveFunc(pred func(T) bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]T, 0, len(c.records))
	for _, rec := range c.records {
		if !pred(rec) {
			next = append(next, rec)
		}
	}
	if len(next) == len(c.records) {
		return false, nil
	}
	return true, c.commit(next)
}

// commit persists next and only then swaps it in, so memory never runs ahead
// of what is on disk. Callers hold c.mu.
func (c *Collection[T]) commit(next []T) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.backend.Save(c.key, data); err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	c.records = next
	return nil
}

func (c *Collection[T]) indexOf(id int64) int {
	for i, rec := range c.records {
		if c.idOf(rec) == id {
			return i
		}
	}
	return -1
}
