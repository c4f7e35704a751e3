package repository

import (
	"context"
	"errors"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/store"
)

var ErrUpdateNotFound = errors.New("update not found")

type UpdateRepository interface {
	List(ctx context.Context) ([]model.UpdatePost, error)
	ByID(ctx context.Context, id string) (*model.UpdatePost, error)
	Add(ctx context.Context, actor model.Actor, post model.UpdatePost) error
	Edit(ctx context.Context, actor model.Actor, post model.UpdatePost) error
	Delete(ctx context.Context, actor model.Actor, id string) error
	// Seed writes posts when the collection has never been written,
	// reporting whether it did. Deleting every post does not re-seed.
	Seed(ctx context.Context, posts []model.UpdatePost) (bool, error)
}

type updateRepository struct {
	posts collection[model.UpdatePost]
}

func NewUpdateRepository(s *store.Store) UpdateRepository {
	return &updateRepository{posts: collection[model.UpdatePost]{
		store:    s,
		key:      store.KeyUpdates,
		id:       func(p *model.UpdatePost) string { return p.ID },
		author:   func(p *model.UpdatePost) string { return p.UserID },
		notFound: ErrUpdateNotFound,
	}}
}

// List returns posts newest first.
func (r *updateRepository) List(ctx context.Context) ([]model.UpdatePost, error) {
	return r.posts.list(ctx)
}

func (r *updateRepository) ByID(ctx context.Context, id string) (*model.UpdatePost, error) {
	return r.posts.byID(ctx, id)
}

func (r *updateRepository) Add(ctx context.Context, actor model.Actor, post model.UpdatePost) error {
	return r.posts.prepend(ctx, actor, post)
}

// Edit replaces the editable fields of an existing post. Author and
// publish date are kept.
func (r *updateRepository) Edit(ctx context.Context, actor model.Actor, post model.UpdatePost) error {
	return r.posts.modify(ctx, post.ID, r.posts.ownedBy(actor), func(existing *model.UpdatePost) {
		existing.Title = post.Title
		existing.Content = post.Content
		existing.Category = post.Category
		existing.Image = post.Image
	})
}

func (r *updateRepository) Delete(ctx context.Context, actor model.Actor, id string) error {
	return r.posts.remove(ctx, actor, id)
}

func (r *updateRepository) Seed(ctx context.Context, posts []model.UpdatePost) (bool, error) {
	return r.posts.seed(ctx, posts)
}
