package repository

import (
	"context"
	"errors"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/store"
)

var ErrMaterialNotFound = errors.New("choir material not found")

type ChoirRepository interface {
	// List returns materials newest first. An empty kind returns all kinds.
	List(ctx context.Context, kind model.MediaKind) ([]model.ChoirMaterial, error)
	ByID(ctx context.Context, id string) (*model.ChoirMaterial, error)
	Add(ctx context.Context, actor model.Actor, material model.ChoirMaterial) error
	Delete(ctx context.Context, actor model.Actor, id string) error
}

type choirRepository struct {
	materials collection[model.ChoirMaterial]
}

func NewChoirRepository(s *store.Store) ChoirRepository {
	return &choirRepository{materials: collection[model.ChoirMaterial]{
		store:    s,
		key:      store.KeyChoir,
		id:       func(m *model.ChoirMaterial) string { return m.ID },
		author:   func(m *model.ChoirMaterial) string { return m.UploadedBy },
		notFound: ErrMaterialNotFound,
	}}
}

func (r *choirRepository) List(ctx context.Context, kind model.MediaKind) ([]model.ChoirMaterial, error) {
	materials, err := r.materials.list(ctx)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		return materials, nil
	}

	filtered := make([]model.ChoirMaterial, 0, len(materials))
	for _, m := range materials {
		if m.Kind == kind {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

func (r *choirRepository) ByID(ctx context.Context, id string) (*model.ChoirMaterial, error) {
	return r.materials.byID(ctx, id)
}

func (r *choirRepository) Add(ctx context.Context, actor model.Actor, material model.ChoirMaterial) error {
	return r.materials.prepend(ctx, actor, material)
}

func (r *choirRepository) Delete(ctx context.Context, actor model.Actor, id string) error {
	return r.materials.remove(ctx, actor, id)
}
