package repo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	dom "Reminder/internal/domain"
)

// CreateUserInput carries the caller-provided fields for a new user.
type CreateUserInput struct {
	Name  string
	Email string
}

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, in CreateUserInput) (dom.User, error)
	FindByID(ctx context.Context, id string) (dom.User, error)
	FindAll(ctx context.Context) ([]dom.User, error)
}

// MemoryUserRepo implements UserRepo with an in-process slice.
type MemoryUserRepo struct {
	mu      sync.RWMutex
	users   []dom.User
	counter int64
}

// NewMemoryUserRepo returns an empty MemoryUserRepo.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{}
}

// Create validates the input, assigns an id and creation time, and stores
// the user. Ids come from a monotonic counter, so they are never reused.
func (r *MemoryUserRepo) Create(ctx context.Context, in CreateUserInput) (dom.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return dom.User{}, &dom.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if err := validate.Var(in.Email, "required,email"); err != nil {
		return dom.User{}, &dom.ValidationError{Field: "email", Reason: "must be a valid email address"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	u := dom.User{
		ID:        fmt.Sprintf("user-%d", r.counter),
		Name:      name,
		Email:     in.Email,
		CreatedAt: time.Now().UTC(),
	}
	r.users = append(r.users, u)
	return u, nil
}

// FindByID returns the user with the exact id, or ErrNotFound.
func (r *MemoryUserRepo) FindByID(ctx context.Context, id string) (dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return dom.User{}, ErrNotFound
}

// FindAll returns all users in insertion order. The slice is a copy, so
// callers cannot reach the backing collection.
func (r *MemoryUserRepo) FindAll(ctx context.Context) ([]dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dom.User, len(r.users))
	copy(out, r.users)
	return out, nil
}
