// Package memdb provides the in-process storage backing the user domain: a
// generic named-collection keyed store plus the UserRepository built on it.
package memdb

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrNotConnected is returned when the store is used outside its
// Connect/Disconnect lifecycle. It signals a wiring fault, not a user error.
var ErrNotConnected = errors.New("database not connected")

// Record is anything a Store collection can hold.
type Record interface {
	Key() string
}

// Store is an in-memory key/value store of named collections, keyed by
// collection name then record id. All operations are serialized behind one
// lock; Atomic exposes that lock for multi-step critical sections.
//
// Records are held by value, so callers never share memory with the store.
type Store[T Record] struct {
	mu        sync.RWMutex
	connected bool
	data      map[string]map[string]T
	logger    *logrus.Logger
}

func NewStore[T Record](logger *logrus.Logger) *Store[T] {
	return &Store[T]{logger: logger}
}

// Connect transitions the store to ready with no data.
func (s *Store[T]) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	s.data = make(map[string]map[string]T)
	if s.logger != nil {
		s.logger.Info("in-memory database connected")
	}
	return nil
}

// Disconnect marks the store unready and discards all data.
func (s *Store[T]) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.data = nil
	if s.logger != nil {
		s.logger.Info("in-memory database disconnected")
	}
	return nil
}

// GetAll returns a snapshot of the named collection, empty if it does not
// exist. Mutating the returned slice does not affect the store.
func (s *Store[T]) GetAll(collection string) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.connected {
		return nil, ErrNotConnected
	}
	return s.getAll(collection), nil
}

// GetByID returns the record under id, with ok reporting whether it exists.
// A missing id is not an error.
func (s *Store[T]) GetByID(collection, id string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.connected {
		var zero T
		return zero, false, ErrNotConnected
	}
	rec, ok := s.getByID(collection, id)
	return rec, ok, nil
}

// Put inserts or fully replaces the record under its key, creating the
// collection on first write.
func (s *Store[T]) Put(collection string, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return ErrNotConnected
	}
	s.put(collection, rec)
	return nil
}

// Update applies merge to the existing record and stores the result. When no
// record exists under id the store is left untouched and ok is false.
func (s *Store[T]) Update(collection, id string, merge func(T) T) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		var zero T
		return zero, false, ErrNotConnected
	}
	rec, ok := s.update(collection, id, merge)
	return rec, ok, nil
}

// Delete removes the record if present and reports whether it did.
func (s *Store[T]) Delete(collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return false, ErrNotConnected
	}
	return s.delete(collection, id), nil
}

// Atomic runs fn while holding the store's write lock, making multi-step
// read-modify-write sequences (check uniqueness, then insert) a single
// critical section against concurrent callers.
func (s *Store[T]) Atomic(fn func(tx *Tx[T]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return ErrNotConnected
	}
	return fn(&Tx[T]{s: s})
}

// Tx gives raw access to a Store inside an Atomic critical section. It must
// not be retained after the callback returns.
type Tx[T Record] struct {
	s *Store[T]
}

func (tx *Tx[T]) GetAll(collection string) []T { return tx.s.getAll(collection) }

func (tx *Tx[T]) GetByID(collection, id string) (T, bool) {
	return tx.s.getByID(collection, id)
}

func (tx *Tx[T]) Put(collection string, rec T) { tx.s.put(collection, rec) }

func (tx *Tx[T]) Update(collection, id string, merge func(T) T) (T, bool) {
	return tx.s.update(collection, id, merge)
}

func (tx *Tx[T]) Delete(collection, id string) bool { return tx.s.delete(collection, id) }

// Unlocked internals. Callers hold s.mu.

func (s *Store[T]) getAll(collection string) []T {
	recs := s.data[collection]
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec)
	}
	return out
}

func (s *Store[T]) getByID(collection, id string) (T, bool) {
	rec, ok := s.data[collection][id]
	return rec, ok
}

func (s *Store[T]) put(collection string, rec T) {
	recs, ok := s.data[collection]
	if !ok {
		recs = make(map[string]T)
		s.data[collection] = recs
	}
	recs[rec.Key()] = rec
}

func (s *Store[T]) update(collection, id string, merge func(T) T) (T, bool) {
	recs := s.data[collection]
	existing, ok := recs[id]
	if !ok {
		var zero T
		return zero, false
	}
	updated := merge(existing)
	recs[id] = updated
	return updated, true
}

func (s *Store[T]) delete(collection, id string) bool {
	recs := s.data[collection]
	if _, ok := recs[id]; !ok {
		return false
	}
	delete(recs, id)
	return true
}
