package quotes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Repository defines the storage contract for quote submissions. Both
// implementations assign the id and submission timestamp; callers pass a
// candidate without either and receive an owned copy of the stored record.
type Repository interface {
	Create(ctx context.Context, candidate *QuoteSubmission) (*QuoteSubmission, error)
	List(ctx context.Context) ([]*QuoteSubmission, error)
}

// InMemoryRepository keeps submissions in a process-local map. Used when no
// database is configured; state is lost on restart.
type InMemoryRepository struct {
	mu          sync.RWMutex
	submissions map[int]*QuoteSubmission
	nextID      int
}

// NewInMemoryRepository creates an empty in-memory repository. Ids start at 1.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		submissions: make(map[int]*QuoteSubmission),
		nextID:      1,
	}
}

// Create assigns the next id and the submission timestamp, then stores a copy.
func (r *InMemoryRepository) Create(ctx context.Context, candidate *QuoteSubmission) (*QuoteSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	if _, exists := r.submissions[id]; exists {
		return nil, ErrDuplicateID
	}
	r.nextID++

	stored := candidate.clone()
	stored.ID = id
	stored.SubmittedAt = time.Now().UTC()
	r.submissions[id] = stored

	return stored.clone(), nil
}

// List returns copies of all stored submissions in ascending id order.
func (r *InMemoryRepository) List(ctx context.Context) ([]*QuoteSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*QuoteSubmission, 0, len(r.submissions))
	for _, sub := range r.submissions {
		out = append(out, sub.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
