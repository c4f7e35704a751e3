package repository

import (
	"context"
	"errors"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/store"
)

var ErrThemeInvalid = errors.New("theme must be dark or light")

// SessionRepository holds the signed-in user of this portal instance.
type SessionRepository interface {
	// Current returns nil when nobody is signed in.
	Current(ctx context.Context) (*model.User, error)
	Set(ctx context.Context, user *model.User) error
	Clear(ctx context.Context) error
}

type sessionRepository struct {
	store *store.Store
}

func NewSessionRepository(s *store.Store) SessionRepository {
	return &sessionRepository{store: s}
}

func (r *sessionRepository) Current(ctx context.Context) (*model.User, error) {
	return store.Read[*model.User](ctx, r.store, store.KeyCurrentUser, nil)
}

func (r *sessionRepository) Set(ctx context.Context, user *model.User) error {
	return r.store.Write(ctx, store.KeyCurrentUser, user)
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, store.KeyCurrentUser)
}

type PreferenceRepository interface {
	Theme(ctx context.Context) (model.Theme, error)
	SetTheme(ctx context.Context, theme model.Theme) error
}

type preferenceRepository struct {
	store *store.Store
}

func NewPreferenceRepository(s *store.Store) PreferenceRepository {
	return &preferenceRepository{store: s}
}

// Theme returns the saved theme, light when none was saved.
func (r *preferenceRepository) Theme(ctx context.Context) (model.Theme, error) {
	theme, err := store.Read(ctx, r.store, store.KeyThemePreference, model.ThemeLight)
	if err != nil {
		return model.ThemeLight, err
	}
	if !theme.Valid() {
		return model.ThemeLight, nil
	}
	return theme, nil
}

func (r *preferenceRepository) SetTheme(ctx context.Context, theme model.Theme) error {
	if !theme.Valid() {
		return ErrThemeInvalid
	}
	return r.store.Write(ctx, store.KeyThemePreference, theme)
}
