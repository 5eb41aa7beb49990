package repo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/ksuid"

	dom "Reminder/internal/domain"
)

// CreateTodoInput carries the fields for a new todo. Status may be left
// empty, in which case the stored todo starts as PENDING.
type CreateTodoInput struct {
	UserID      string
	Title       string
	Description string
	Status      dom.Status
	RemindAt    *time.Time
}

// TodoPatch is a partial update. Id, owner and creation time have no
// members here, so they cannot be changed through Update.
type TodoPatch struct {
	Title       *string
	Description *string
	Status      *dom.Status
	RemindAt    *time.Time
	Deleted     *bool
}

// TodoRepo provides todo persistence and the queries the service needs.
type TodoRepo interface {
	Create(ctx context.Context, in CreateTodoInput) (dom.Todo, error)
	Update(ctx context.Context, id string, patch TodoPatch) (dom.Todo, error)
	FindByID(ctx context.Context, id string) (dom.Todo, error)
	FindByUserID(ctx context.Context, userID string) ([]dom.Todo, error)
	FindDueReminders(ctx context.Context, now time.Time) ([]dom.Todo, error)
}

// MemoryTodoRepo implements TodoRepo with an in-process slice.
type MemoryTodoRepo struct {
	mu    sync.RWMutex
	todos []dom.Todo
}

// NewMemoryTodoRepo returns an empty MemoryTodoRepo.
func NewMemoryTodoRepo() *MemoryTodoRepo {
	return &MemoryTodoRepo{}
}

// newTodoID derives an id from the owner and the creation instant. The
// KSUID part encodes the instant plus 128 random bits, so two todos created
// for the same user in the same instant still get distinct ids.
func newTodoID(userID string) string {
	return fmt.Sprintf("todo-%s-%s", userID, ksuid.New().String())
}

// Create validates the input, assigns an id and timestamps, and stores the
// todo. CreatedAt and UpdatedAt start equal.
func (r *MemoryTodoRepo) Create(ctx context.Context, in CreateTodoInput) (dom.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return dom.Todo{}, &dom.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	status := in.Status
	if status == "" {
		status = dom.StatusPending
	}

	now := time.Now().UTC()
	t := dom.Todo{
		ID:          newTodoID(in.UserID),
		UserID:      in.UserID,
		Title:       title,
		Description: in.Description,
		Status:      status,
		RemindAt:    copyTime(in.RemindAt),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.todos = append(r.todos, t)
	return t, nil
}

// Update applies a partial update to the todo with the given id and
// refreshes UpdatedAt. The lookup ignores the deleted flag: updates are
// mutations, and soft delete itself arrives through this path. Returns
// ErrNotFound when no todo has the id.
func (r *MemoryTodoRepo) Update(ctx context.Context, id string, patch TodoPatch) (dom.Todo, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return dom.Todo{}, &dom.ValidationError{Field: "title", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i := range r.todos {
		if r.todos[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return dom.Todo{}, ErrNotFound
	}

	t := &r.todos[idx]
	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.RemindAt != nil {
		t.RemindAt = copyTime(patch.RemindAt)
	}
	if patch.Deleted != nil {
		t.Deleted = *patch.Deleted
	}
	t.UpdatedAt = time.Now().UTC()
	return *t, nil
}

// FindByID returns the non-deleted todo with the id, or ErrNotFound.
func (r *MemoryTodoRepo) FindByID(ctx context.Context, id string) (dom.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.todos {
		if t.ID == id && !t.Deleted {
			return t, nil
		}
	}
	return dom.Todo{}, ErrNotFound
}

// FindByUserID returns the user's non-deleted todos in insertion order.
func (r *MemoryTodoRepo) FindByUserID(ctx context.Context, userID string) ([]dom.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []dom.Todo
	for _, t := range r.todos {
		if t.UserID == userID && !t.Deleted {
			out = append(out, t)
		}
	}
	return out, nil
}

// FindDueReminders returns non-deleted PENDING todos whose RemindAt has
// passed. Todos already DONE or REMINDER_DUE are excluded so repeated
// sweeps stay idempotent.
func (r *MemoryTodoRepo) FindDueReminders(ctx context.Context, now time.Time) ([]dom.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []dom.Todo
	for _, t := range r.todos {
		if t.Deleted || t.RemindAt == nil || t.Status != dom.StatusPending {
			continue
		}
		if !t.RemindAt.After(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
