package history

import (
	"container/list"
	"sync"
)

// MemoryStore is a bounded in-memory LRU cache that delegates to a backing
// Store on miss. The most recent records stay resident; older ones are
// evicted and served from the backing store.
type MemoryStore struct {
	mu    sync.Mutex
	cap   int
	back  Store
	order *list.List // most recent at front; values are *Record
	items map[string]*list.Element
}

// NewMemoryStore creates an LRU cache with the given capacity that
// delegates to back on cache misses. Capacity must be >= 1.
func NewMemoryStore(cap int, back Store) *MemoryStore {
	if cap < 1 {
		cap = 1
	}
	return &MemoryStore{
		cap:   cap,
		back:  back,
		order: list.New(),
		items: make(map[string]*list.Element, cap),
	}
}

// Save writes the record to the cache and delegates to the backing store.
func (s *MemoryStore) Save(rec *Record) error {
	s.mu.Lock()
	s.insert(rec)
	s.mu.Unlock()

	return s.back.Save(rec)
}

// Load checks the cache first. On miss, it loads from the backing store
// and promotes the record into the cache.
func (s *MemoryStore) Load(runID string) (*Record, error) {
	s.mu.Lock()
	if e, ok := s.items[runID]; ok {
		s.order.MoveToFront(e)
		rec := e.Value.(*Record)
		s.mu.Unlock()
		return rec, nil
	}
	s.mu.Unlock()

	rec, err := s.back.Load(runID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.insert(rec)
	s.mu.Unlock()
	return rec, nil
}

// insert adds or refreshes a record and evicts the oldest entry when over
// capacity. Callers must hold mu.
func (s *MemoryStore) insert(rec *Record) {
	if e, ok := s.items[rec.ID]; ok {
		e.Value = rec
		s.order.MoveToFront(e)
		return
	}
	s.items[rec.ID] = s.order.PushFront(rec)
	if s.order.Len() > s.cap {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.items, oldest.Value.(*Record).ID)
	}
}
