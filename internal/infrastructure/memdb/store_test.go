package memdb

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID  string
	Val string
}

func (r testRecord) Key() string { return r.ID }

func newTestStore(t *testing.T) *Store[testRecord] {
	t.Helper()
	s := NewStore[testRecord](nil)
	require.NoError(t, s.Connect())
	return s
}

func TestStore_NotConnected(t *testing.T) {
	s := NewStore[testRecord](nil)

	_, err := s.GetAll("things")
	assert.ErrorIs(t, err, ErrNotConnected)
	_, _, err = s.GetByID("things", "1")
	assert.ErrorIs(t, err, ErrNotConnected)
	err = s.Put("things", testRecord{ID: "1"})
	assert.ErrorIs(t, err, ErrNotConnected)
	_, _, err = s.Update("things", "1", func(r testRecord) testRecord { return r })
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = s.Delete("things", "1")
	assert.ErrorIs(t, err, ErrNotConnected)
	err = s.Atomic(func(tx *Tx[testRecord]) error { return nil })
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestStore_PutAndGet(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put("things", testRecord{ID: "1", Val: "a"}))

	rec, ok, err := s.GetByID("things", "1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", rec.Val)

	// full replace under the same key
	require.NoError(t, s.Put("things", testRecord{ID: "1", Val: "b"}))
	all, err := s.GetAll("things")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].Val)
}

func TestStore_GetByID_Missing(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.GetByID("things", "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	// unknown collection behaves the same
	_, ok, err = s.GetByID("other", "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_GetAll_Snapshot(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put("things", testRecord{ID: "1", Val: "a"}))

	all, err := s.GetAll("things")
	require.NoError(t, err)
	require.Len(t, all, 1)
	all[0].Val = "mutated"

	again, err := s.GetAll("things")
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Val)

	empty, err := s.GetAll("missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_Update(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put("things", testRecord{ID: "1", Val: "a"}))

	rec, ok, err := s.Update("things", "1", func(r testRecord) testRecord {
		r.Val = "merged"
		return r
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "merged", rec.Val)

	stored, ok, err := s.GetByID("things", "1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "merged", stored.Val)
}

func TestStore_Update_MissingLeavesStoreUntouched(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put("things", testRecord{ID: "1", Val: "a"}))

	_, ok, err := s.Update("things", "2", func(r testRecord) testRecord {
		r.Val = "merged"
		return r
	})
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := s.GetAll("things")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a", all[0].Val)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put("things", testRecord{ID: "1"}))

	removed, err := s.Delete("things", "1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Delete("things", "1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStore_DisconnectClearsData(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put("things", testRecord{ID: "1"}))

	require.NoError(t, s.Disconnect())
	_, err := s.GetAll("things")
	assert.ErrorIs(t, err, ErrNotConnected)

	// reconnect yields a clean ready state
	require.NoError(t, s.Connect())
	all, err := s.GetAll("things")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_AtomicCheckThenPut(t *testing.T) {
	s := newTestStore(t)

	const workers = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Atomic(func(tx *Tx[testRecord]) error {
				if _, ok := tx.GetByID("things", "only"); ok {
					return nil
				}
				tx.Put("things", testRecord{ID: "only"})
				wins <- struct{}{}
				return nil
			})
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count, "exactly one goroutine should pass the check")
}

func TestStore_ConcurrentMixedOps(t *testing.T) {
	s := newTestStore(t)
	ids := []string{"a", "b", "c", "d"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := ids[n%len(ids)]
			_ = s.Put("things", testRecord{ID: id, Val: "x"})
			_, _, _ = s.GetByID("things", id)
			_, _ = s.GetAll("things")
			_, _, _ = s.Update("things", id, func(r testRecord) testRecord { return r })
		}(i)
	}
	wg.Wait()

	all, err := s.GetAll("things")
	require.NoError(t, err)
	assert.Len(t, all, len(ids))
}
