package repository

import (
	"context"
	"slices"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/store"
)

// collection is an ordered list of records persisted under one store key.
// Every mutation reads the whole list, transforms it and writes it back.
type collection[T any] struct {
	store    *store.Store
	key      string
	id       func(*T) string
	author   func(*T) string
	notFound error
}

func (c collection[T]) list(ctx context.Context) ([]T, error) {
	items, err := store.Read(ctx, c.store, c.key, []T{})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c collection[T]) byID(ctx context.Context, id string) (*T, error) {
	items, err := c.list(ctx)
	if err != nil {
		return nil, err
	}

	idx := c.index(items, id)
	if idx < 0 {
		return nil, c.notFound
	}
	return &items[idx], nil
}

func (c collection[T]) index(items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool {
		return c.id(&item) == id
	})
}

func (c collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	return store.Mutate(ctx, c.store, c.key, []T{}, fn)
}

// seed writes items when the collection has never been written.
func (c collection[T]) seed(ctx context.Context, items []T) (bool, error) {
	return c.store.WriteIfAbsent(ctx, c.key, items)
}

// append adds item at the end (oldest-first collections).
func (c collection[T]) append(ctx context.Context, actor model.Actor, item T) error {
	if actor.UserID != c.author(&item) {
		return ErrForbidden
	}
	return c.mutate(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// prepend adds item at the front (newest-first collections).
func (c collection[T]) prepend(ctx context.Context, actor model.Actor, item T) error {
	if actor.UserID != c.author(&item) {
		return ErrForbidden
	}
	return c.mutate(ctx, func(items []T) ([]T, error) {
		return append([]T{item}, items...), nil
	})
}

// modify applies fn to the record with id once check allows the actor.
func (c collection[T]) modify(ctx context.Context, id string, check func(*T) error, fn func(*T)) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		idx := c.index(items, id)
		if idx < 0 {
			return nil, c.notFound
		}
		err := check(&items[idx])
		if err != nil {
			return nil, err
		}
		fn(&items[idx])
		return items, nil
	})
}

// remove deletes the record with id when the actor is its author or a Trainer.
func (c collection[T]) remove(ctx context.Context, actor model.Actor, id string) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		idx := c.index(items, id)
		if idx < 0 {
			return nil, c.notFound
		}
		if !actor.CanModify(c.author(&items[idx])) {
			return nil, ErrForbidden
		}
		return slices.Delete(items, idx, idx+1), nil
	})
}

// ownedBy allows the record's author and Trainers.
func (c collection[T]) ownedBy(actor model.Actor) func(*T) error {
	return func(item *T) error {
		if !actor.CanModify(c.author(item)) {
			return ErrForbidden
		}
		return nil
	}
}
