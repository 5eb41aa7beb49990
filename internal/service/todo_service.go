package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"Reminder/internal/cache"
	dom "Reminder/internal/domain"
	"Reminder/internal/repo"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrTodoNotFound = errors.New("todo not found")
)

// TodoService orchestrates the stores: owner checks on creation, status
// transitions, sharing, and the recurring reminder sweep.
type TodoService struct {
	todos repo.TodoRepo
	users repo.UserRepo
	cache *cache.TodoCache
	log   *zap.Logger
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(todos repo.TodoRepo, users repo.UserRepo, c *cache.TodoCache, log *zap.Logger) *TodoService {
	return &TodoService{todos: todos, users: users, cache: c, log: log}
}

// CreateTodoInput is the caller-facing shape for CreateTodo. RemindAt is an
// optional date-like string ("2026-02-19" or RFC3339); it is parsed before
// storage.
type CreateTodoInput struct {
	UserID      string
	Title       string
	Description string
	RemindAt    string
}

// UpdateTodoInput is a partial update; nil fields are left unchanged.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Status      *string
	RemindAt    *string
}

// CreateUser delegates to the user store.
func (s *TodoService) CreateUser(ctx context.Context, name, email string) (dom.User, error) {
	return s.users.Create(ctx, repo.CreateUserInput{Name: name, Email: email})
}

// FindUserByID returns the user or ErrUserNotFound.
func (s *TodoService) FindUserByID(ctx context.Context, id string) (dom.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.User{}, ErrUserNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// FindAllUsers delegates to the user store.
func (s *TodoService) FindAllUsers(ctx context.Context) ([]dom.User, error) {
	return s.users.FindAll(ctx)
}

// CreateTodo creates a todo for an existing user. The owner must resolve at
// creation time; the todo always starts PENDING and gets a description
// default when none is given.
func (s *TodoService) CreateTodo(ctx context.Context, in CreateTodoInput) (dom.Todo, error) {
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Todo{}, ErrUserNotFound
		}
		return dom.Todo{}, err
	}

	remindAt, err := parseRemindAt(in.RemindAt)
	if err != nil {
		return dom.Todo{}, err
	}
	desc := in.Description
	if desc == "" {
		desc = "No Description"
	}

	t, err := s.todos.Create(ctx, repo.CreateTodoInput{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: desc,
		Status:      dom.StatusPending,
		RemindAt:    remindAt,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, t.UserID)
	return t, nil
}

// FindTodoByID returns the todo or ErrTodoNotFound.
func (s *TodoService) FindTodoByID(ctx context.Context, id string) (dom.Todo, error) {
	t, err := s.todos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Todo{}, ErrTodoNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// UpdateTodo applies a partial update. Id, owner and creation time cannot be
// changed through this path.
func (s *TodoService) UpdateTodo(ctx context.Context, id string, in UpdateTodoInput) (dom.Todo, error) {
	patch := repo.TodoPatch{
		Title:       in.Title,
		Description: in.Description,
	}
	if in.Status != nil {
		st, err := dom.ParseStatus(*in.Status)
		if err != nil {
			return dom.Todo{}, err
		}
		patch.Status = &st
	}
	if in.RemindAt != nil {
		remindAt, err := parseRemindAt(*in.RemindAt)
		if err != nil {
			return dom.Todo{}, err
		}
		patch.RemindAt = remindAt
	}

	t, err := s.todos.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Todo{}, ErrTodoNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, t.UserID)
	return t, nil
}

// DeleteTodo soft-deletes: the todo disappears from every read and sweep but
// stays in storage.
func (s *TodoService) DeleteTodo(ctx context.Context, id string) (dom.Todo, error) {
	deleted := true
	t, err := s.todos.Update(ctx, id, repo.TodoPatch{Deleted: &deleted})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Todo{}, ErrTodoNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, t.UserID)
	return t, nil
}

// GetTodosByUser returns the user's non-deleted todos, serving from cache
// when one is configured. Concurrent reads for one user collapse into a
// single store query.
func (s *TodoService) GetTodosByUser(ctx context.Context, userID string) ([]dom.Todo, error) {
	if s.cache == nil {
		return s.todos.FindByUserID(ctx, userID)
	}
	v, err, _ := s.sf.Do("list:"+userID, func() (interface{}, error) {
		if list, err := s.cache.GetUserList(ctx, userID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.todos.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetUserList(ctx, userID, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Todo), nil
}

// CompleteTodo transitions the todo to DONE. Completing an already-DONE todo
// is a no-op that returns it unchanged.
func (s *TodoService) CompleteTodo(ctx context.Context, id string) (dom.Todo, error) {
	t, err := s.FindTodoByID(ctx, id)
	if err != nil {
		return dom.Todo{}, err
	}
	if t.Status == dom.StatusDone {
		return t, nil
	}

	done := dom.StatusDone
	updated, err := s.todos.Update(ctx, id, repo.TodoPatch{Status: &done})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Todo{}, ErrTodoNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, updated.UserID)
	return updated, nil
}

// Share copies the todo to another user. The copy gets a fresh id and
// timestamps but keeps the source's content, including its status; source
// and copy evolve independently afterwards.
func (s *TodoService) Share(ctx context.Context, todoID, targetUserID string) (dom.Todo, error) {
	src, err := s.todos.FindByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Todo{}, ErrTodoNotFound
		}
		return dom.Todo{}, err
	}
	target, err := s.users.FindByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Todo{}, ErrUserNotFound
		}
		return dom.Todo{}, err
	}

	t, err := s.todos.Create(ctx, repo.CreateTodoInput{
		UserID:      target.ID,
		Title:       src.Title,
		Description: src.Description,
		Status:      src.Status,
		RemindAt:    src.RemindAt,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, target.ID)
	return t, nil
}

// ProcessReminders sweeps due PENDING todos into REMINDER_DUE. Invoked by
// the scheduler; a failed transition is logged and the sweep moves on, so
// one bad todo cannot stall the rest.
func (s *TodoService) ProcessReminders(ctx context.Context) error {
	now := time.Now().UTC()
	due, err := s.todos.FindDueReminders(ctx, now)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	reminderDue := dom.StatusReminderDue
	owners := make(map[string]struct{})
	for _, t := range due {
		if _, err := s.todos.Update(ctx, t.ID, repo.TodoPatch{Status: &reminderDue}); err != nil {
			s.log.Error("reminder transition failed", zap.String("todo_id", t.ID), zap.Error(err))
			continue
		}
		owners[t.UserID] = struct{}{}
	}
	for userID := range owners {
		s.invalidateCache(ctx, userID)
	}
	s.log.Info("reminder sweep", zap.Int("due", len(due)))
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}
}

// parseRemindAt accepts a date-only or RFC3339-style string. Empty input
// means no reminder.
func parseRemindAt(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	layouts := []string{
		"2006-01-02", // date only
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			return &parsed, nil
		}
	}
	return nil, &dom.ValidationError{Field: "remindAt", Reason: "use date (YYYY-MM-DD) or RFC3339 datetime"}
}
