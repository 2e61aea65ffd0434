package verification

import (
	"context"
	"sync"
	"time"
)

type memoryRepository struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryRepository builds an in-memory verification store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{records: make(map[string]Record)}
}

func (r *memoryRepository) Upsert(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.Phone] = rec
	return nil
}

func (r *memoryRepository) FindLive(_ context.Context, phone string, now time.Time) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[phone]
	if !ok || !rec.Live(now) {
		return Record{}, ErrNoLiveRecord
	}
	return rec, nil
}

func (r *memoryRepository) Delete(_ context.Context, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, phone)
	return nil
}

func (r *memoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for phone, rec := range r.records {
		if !rec.Live(now) {
			delete(r.records, phone)
			removed++
		}
	}
	return removed, nil
}
