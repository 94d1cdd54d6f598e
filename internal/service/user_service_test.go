package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/devxpy/gea-telegram-bot/internal/model"
	"go.uber.org/zap"
)

type fakeUserStore struct {
	byUsername map[string]*model.User
	created    []*model.User
	updated    []*model.User
	err        error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byUsername: map[string]*model.User{}}
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUsername[username], nil
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	user.ID = int64(len(f.created) + 1)
	f.created = append(f.created, user)
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserStore) Update(ctx context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	f.updated = append(f.updated, user)
	return nil
}

func TestUserServiceEnsure(t *testing.T) {
	t.Run("creates user on first contact", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store, "IN", zap.NewNop())

		user, err := svc.Ensure(context.Background(), 42, "Dev", "X")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Username != "42" || user.TelegramID != 42 || user.FirstName != "Dev" {
			t.Fatalf("unexpected user: %+v", user)
		}
		if len(store.created) != 1 {
			t.Fatalf("expected one created user, got %d", len(store.created))
		}
		if user.Registered() {
			t.Fatal("expected fresh user to be unregistered")
		}
	})

	t.Run("returns existing user", func(t *testing.T) {
		store := newFakeUserStore()
		existing := &model.User{ID: 7, TelegramID: 42, Username: "42", PhoneNumber: "+91 98765 43210", Email: "dev@example.com"}
		store.byUsername["42"] = existing

		svc := NewUserService(store, "IN", zap.NewNop())
		user, err := svc.Ensure(context.Background(), 42, "Dev", "X")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user != existing {
			t.Fatalf("expected existing user back, got %+v", user)
		}
		if len(store.created) != 0 {
			t.Fatal("expected no new user to be created")
		}
		if !user.Registered() {
			t.Fatal("expected user with phone and email to be registered")
		}
	})

	t.Run("propagates store error", func(t *testing.T) {
		store := newFakeUserStore()
		store.err = errors.New("db down")

		svc := NewUserService(store, "IN", zap.NewNop())
		if _, err := svc.Ensure(context.Background(), 42, "Dev", "X"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestNormalizePhoneNumber(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), "IN", zap.NewNop())

	t.Run("valid international number", func(t *testing.T) {
		got, err := svc.NormalizePhoneNumber("+919876543210")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, "+91") {
			t.Fatalf("expected international format, got %q", got)
		}
	})

	t.Run("valid national number picks up region", func(t *testing.T) {
		got, err := svc.NormalizePhoneNumber("9876543210")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, "+91") {
			t.Fatalf("expected region prefix, got %q", got)
		}
	})

	t.Run("garbage input", func(t *testing.T) {
		for _, raw := range []string{"", "hello", "12", "+91 12"} {
			if _, err := svc.NormalizePhoneNumber(raw); !errors.Is(err, ErrInvalidPhoneNumber) {
				t.Fatalf("expected ErrInvalidPhoneNumber for %q, got %v", raw, err)
			}
		}
	})
}

func TestValidateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), "IN", zap.NewNop())

	if err := svc.ValidateEmail("dev@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, email := range []string{"", "dev", "dev@", "@example.com", "dev example.com"} {
		if err := svc.ValidateEmail(email); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("expected ErrInvalidEmail for %q, got %v", email, err)
		}
	}
}

func TestSaveContact(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, "IN", zap.NewNop())

	user := &model.User{ID: 1, TelegramID: 42, PhoneNumber: "+91 98765 43210", Email: "dev@example.com"}
	if err := svc.SaveContact(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.updated) != 1 || store.updated[0] != user {
		t.Fatalf("expected user to be persisted, got %+v", store.updated)
	}
}
