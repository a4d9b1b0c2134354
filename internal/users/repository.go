package users

import (
	"context"
	"sync"
)

// Repository defines the user storage contract.
type Repository interface {
	Create(ctx context.Context, username, password string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// InMemoryRepository keeps users in a process-local map.
type InMemoryRepository struct {
	mu     sync.RWMutex
	users  map[int]*User
	nextID int
}

// NewInMemoryRepository creates an empty in-memory user repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:  make(map[int]*User),
		nextID: 1,
	}
}

// Create stores a new user, enforcing username uniqueness.
func (r *InMemoryRepository) Create(ctx context.Context, username, password string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return nil, ErrUsernameTaken
		}
	}

	user := &User{ID: r.nextID, Username: username, Password: password}
	r.users[user.ID] = user
	r.nextID++

	out := *user
	return &out, nil
}

// GetByID looks a user up by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id int) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *user
	return &out, nil
}

// GetByUsername looks a user up by unique username.
func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}
