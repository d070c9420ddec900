package history

import (
	"sync"
	"time"
)

const defaultCapacity = 100

// Record is the outcome of one scheduler tick.
type Record struct {
	Time     time.Time     `json:"time"`
	Action   string        `json:"action"`
	Date     string        `json:"date"`
	PostID   string        `json:"post_id,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Store keeps a bounded window of recent tick records for the ops
// endpoints. The oldest records are dropped once capacity is reached.
type Store struct {
	mu       sync.RWMutex
	records  []Record
	capacity int
}

// NewStore creates a store with the default capacity.
func NewStore() *Store {
	return NewStoreWithCapacity(defaultCapacity)
}

// NewStoreWithCapacity creates a store keeping at most capacity records.
func NewStoreWithCapacity(capacity int) *Store {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Store{capacity: capacity}
}

// Append adds a record, evicting the oldest beyond capacity.
func (s *Store) Append(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	if len(s.records) > s.capacity {
		s.records = s.records[len(s.records)-s.capacity:]
	}
}

// Recent returns the stored records, newest first.
func (s *Store) Recent() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[len(s.records)-1-i] = r
	}
	return out
}

// Last returns the most recent record.
func (s *Store) Last() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}
