package purchase

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory purchase store for testing. It is
// exported so the admin package can share one instance with its own
// in-memory store.
type MemoryRepository struct {
	mu       sync.RWMutex
	requests map[string]Request
}

// NewMemoryRepository builds an in-memory purchase store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{requests: make(map[string]Request)}
}

// Create stores the request keyed by id. A retry may replace a still-pending
// row; a resolved row is final and is left untouched.
func (r *MemoryRepository) Create(_ context.Context, req Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.requests[req.ID]; ok && existing.Status != StatusPending {
		return nil
	}
	r.requests[req.ID] = req
	return nil
}

// Get fetches a request by id.
func (r *MemoryRepository) Get(_ context.Context, id string) (Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return req, nil
}

// List returns all requests, newest first.
func (r *MemoryRepository) List(_ context.Context) ([]Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	requests := make([]Request, 0, len(r.requests))
	for _, req := range r.requests {
		requests = append(requests, req)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].SubmittedAt.After(requests[j].SubmittedAt)
	})
	return requests, nil
}

// Update replaces an existing request; used by the in-memory admin store.
func (r *MemoryRepository) Update(_ context.Context, req Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[req.ID]; !ok {
		return ErrNotFound
	}
	r.requests[req.ID] = req
	return nil
}
