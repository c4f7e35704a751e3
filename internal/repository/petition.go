package repository

import (
	"context"
	"errors"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/store"
)

var ErrPetitionNotFound = errors.New("petition not found")

type PetitionRepository interface {
	List(ctx context.Context) ([]model.PrayerPetition, error)
	Add(ctx context.Context, actor model.Actor, petition model.PrayerPetition) error
	Edit(ctx context.Context, actor model.Actor, id, content string) error
	Delete(ctx context.Context, actor model.Actor, id string) error
	Like(ctx context.Context, actor model.Actor, id string) (int, error)
}

type petitionRepository struct {
	petitions collection[model.PrayerPetition]
}

func NewPetitionRepository(s *store.Store) PetitionRepository {
	return &petitionRepository{petitions: collection[model.PrayerPetition]{
		store:    s,
		key:      store.KeyPetitions,
		id:       func(p *model.PrayerPetition) string { return p.ID },
		author:   func(p *model.PrayerPetition) string { return p.UserID },
		notFound: ErrPetitionNotFound,
	}}
}

// List returns petitions newest first.
func (r *petitionRepository) List(ctx context.Context) ([]model.PrayerPetition, error) {
	return r.petitions.list(ctx)
}

func (r *petitionRepository) Add(ctx context.Context, actor model.Actor, petition model.PrayerPetition) error {
	return r.petitions.prepend(ctx, actor, petition)
}

func (r *petitionRepository) Edit(ctx context.Context, actor model.Actor, id, content string) error {
	return r.petitions.modify(ctx, id, r.petitions.ownedBy(actor), func(p *model.PrayerPetition) {
		p.Content = content
	})
}

func (r *petitionRepository) Delete(ctx context.Context, actor model.Actor, id string) error {
	return r.petitions.remove(ctx, actor, id)
}

// Like adds one to the petition's like counter and returns the new count.
// Any signed-in member may like any petition; there is no unlike.
func (r *petitionRepository) Like(ctx context.Context, actor model.Actor, id string) (int, error) {
	signedIn := func(*model.PrayerPetition) error {
		if !actor.Authenticated() {
			return ErrForbidden
		}
		return nil
	}

	var likes int
	err := r.petitions.modify(ctx, id, signedIn, func(p *model.PrayerPetition) {
		p.Likes++
		likes = p.Likes
	})
	if err != nil {
		return 0, err
	}
	return likes, nil
}
