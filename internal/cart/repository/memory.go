package repository

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-order-service/internal/cart"
)

// MemoryRepository keeps carts in process memory. Used when Redis is not configured.
type MemoryRepository struct {
	mu    sync.Mutex
	carts map[string]cart.Snapshot
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[string]cart.Snapshot)}
}

func (r *MemoryRepository) Get(ctx context.Context, sessionID string) (*cart.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.carts[sessionID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *MemoryRepository) Save(ctx context.Context, sessionID string, s cart.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[sessionID] = s
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}
