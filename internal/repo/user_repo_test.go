package repo

import (
	"context"
	"errors"
	"testing"

	dom "Reminder/internal/domain"
)

func TestMemoryUserRepo_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns fresh ids and creation time", func(t *testing.T) {
		r := NewMemoryUserRepo()
		seen := map[string]bool{}
		for i := 0; i < 5; i++ {
			u, err := r.Create(ctx, CreateUserInput{Name: "Alice", Email: "a@x.com"})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if u.ID == "" || seen[u.ID] {
				t.Errorf("id %q is empty or reused", u.ID)
			}
			seen[u.ID] = true
			if u.CreatedAt.IsZero() {
				t.Error("CreatedAt not set")
			}
		}
	})

	t.Run("trims name", func(t *testing.T) {
		r := NewMemoryUserRepo()
		u, err := r.Create(ctx, CreateUserInput{Name: "  Alice  ", Email: "a@x.com"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if u.Name != "Alice" {
			t.Errorf("expected trimmed name, got %q", u.Name)
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		r := NewMemoryUserRepo()
		_, err := r.Create(ctx, CreateUserInput{Name: "   ", Email: "a@x.com"})
		var ve *dom.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if ve.Field != "name" {
			t.Errorf("expected name field, got %q", ve.Field)
		}
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		r := NewMemoryUserRepo()
		for _, email := range []string{"", "not-an-email", "a@", "@x.com"} {
			_, err := r.Create(ctx, CreateUserInput{Name: "Alice", Email: email})
			var ve *dom.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("email %q: expected ValidationError, got %v", email, err)
			}
		}
	})
}

func TestMemoryUserRepo_FindByID(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryUserRepo()
	u, err := r.Create(ctx, CreateUserInput{Name: "Alice", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("returns the matching user", func(t *testing.T) {
		got, err := r.FindByID(ctx, u.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.ID != u.ID || got.Email != "a@x.com" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("absence is ErrNotFound", func(t *testing.T) {
		_, err := r.FindByID(ctx, "user-999")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMemoryUserRepo_FindAll(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryUserRepo()
	names := []string{"Alice", "Bob", "Carol"}
	for _, n := range names {
		if _, err := r.Create(ctx, CreateUserInput{Name: n, Email: "x@x.com"}); err != nil {
			t.Fatalf("create %s: %v", n, err)
		}
	}

	all, err := r.FindAll(ctx)
	if err != nil {
		t.Fatalf("findAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
	for i, n := range names {
		if all[i].Name != n {
			t.Errorf("index %d: expected %s, got %s (insertion order broken)", i, n, all[i].Name)
		}
	}

	// The returned slice is a copy; mutating it must not affect the store.
	all[0].Name = "mutated"
	again, _ := r.FindAll(ctx)
	if again[0].Name != "Alice" {
		t.Error("caller mutation leaked into the store")
	}
}
