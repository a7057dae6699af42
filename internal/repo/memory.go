package repo

import (
	"context"
	"sync"
	"time"

	"github.com/pkordes/drivetime/internal/domain"
)

// memOriginRepo keeps origins in process memory. Everything is lost on
// restart, which returns every user to the NO_ORIGIN state.
type memOriginRepo struct {
	mu      sync.RWMutex
	origins map[string]domain.OriginRecord
	now     func() time.Time
}

// NewMemoryOriginRepo constructs an empty in-memory OriginRepo.
// It is safe for concurrent use; each Set replaces one map entry atomically.
func NewMemoryOriginRepo() OriginRepo {
	return &memOriginRepo{
		origins: make(map[string]domain.OriginRecord),
		now:     time.Now,
	}
}

// Set never fails.
func (r *memOriginRepo) Set(_ context.Context, userID string, loc domain.LocationRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.origins[userID] = domain.OriginRecord{
		UserID:    userID,
		Location:  loc,
		UpdatedAt: r.now().UTC(),
	}
	return nil
}

func (r *memOriginRepo) Get(_ context.Context, userID string) (domain.OriginRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.origins[userID]
	return rec, ok, nil
}
