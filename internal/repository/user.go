package repository

import (
	"context"
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/store"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrForbidden     = errors.New("not allowed to modify this record")
	ErrInvalidPoints = errors.New("points cannot be negative")
)

type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	ByID(ctx context.Context, id string) (*model.User, error)
	ByName(ctx context.Context, name string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByIdentifier(ctx context.Context, nameOrEmail string) (*model.User, error)
	Save(ctx context.Context, actor model.Actor, user *model.User) error
	Update(ctx context.Context, actor model.Actor, id string, fn func(*model.User) error) (*model.User, error)
}

type userRepository struct {
	users collection[model.User]
}

func NewUserRepository(s *store.Store) UserRepository {
	return &userRepository{users: collection[model.User]{
		store:    s,
		key:      store.KeyUsers,
		id:       func(u *model.User) string { return u.ID },
		author:   func(u *model.User) string { return u.ID },
		notFound: ErrUserNotFound,
	}}
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	return r.users.list(ctx)
}

func (r *userRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	return r.users.byID(ctx, id)
}

// ByName matches the display name case-insensitively.
func (r *userRepository) ByName(ctx context.Context, name string) (*model.User, error) {
	key := Fold(name)
	return r.find(ctx, func(u *model.User) bool {
		return Fold(u.Name) == key
	})
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	key := Fold(email)
	if key == "" {
		return nil, ErrUserNotFound
	}
	return r.find(ctx, func(u *model.User) bool {
		return Fold(u.Email) == key
	})
}

// ByIdentifier matches either the display name or the email, case-insensitively.
func (r *userRepository) ByIdentifier(ctx context.Context, nameOrEmail string) (*model.User, error) {
	key := Fold(nameOrEmail)
	return r.find(ctx, func(u *model.User) bool {
		return Fold(u.Name) == key || Fold(u.Email) == key
	})
}

// Save upserts user. An existing record with the same id OR the same email
// is replaced in place; otherwise the user is appended. Matching on email
// merges a re-registration under a fresh id into the existing record.
// Only the user themself or a Trainer may save a record.
func (r *userRepository) Save(ctx context.Context, actor model.Actor, user *model.User) error {
	if !actor.CanModify(user.ID) {
		return ErrForbidden
	}
	if user.Points < 0 {
		return ErrInvalidPoints
	}

	return r.users.mutate(ctx, func(users []model.User) ([]model.User, error) {
		idx := slices.IndexFunc(users, func(u model.User) bool {
			return u.ID == user.ID || (user.Email != "" && u.Email == user.Email)
		})
		if idx > -1 {
			users[idx] = *user
			return users, nil
		}
		return append(users, *user), nil
	})
}

// Update applies fn to the stored user with id while the collection is
// locked, so concurrent updates to other fields or points are never lost.
// Nothing is written when fn fails.
func (r *userRepository) Update(ctx context.Context, actor model.Actor, id string, fn func(*model.User) error) (*model.User, error) {
	if !actor.CanModify(id) {
		return nil, ErrForbidden
	}

	var updated model.User
	err := r.users.mutate(ctx, func(users []model.User) ([]model.User, error) {
		idx := r.users.index(users, id)
		if idx < 0 {
			return nil, ErrUserNotFound
		}

		user := users[idx]
		err := fn(&user)
		if err != nil {
			return nil, err
		}
		if user.Points < 0 {
			return nil, ErrInvalidPoints
		}
		user.ID = id

		users[idx] = user
		updated = user
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *userRepository) find(ctx context.Context, match func(*model.User) bool) (*model.User, error) {
	users, err := r.users.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(&users[i]) {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// Fold normalizes s for case-insensitive comparison of names and emails.
// A Caser is stateful, so each call builds its own.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
