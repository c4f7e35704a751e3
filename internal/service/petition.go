package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/repository"
)

var ErrEmptyPetition = errors.New("petition cannot be empty")

type PetitionService struct {
	petitionRepository repository.PetitionRepository
}

func NewPetitionService(petitionRepository repository.PetitionRepository) *PetitionService {
	return &PetitionService{petitionRepository: petitionRepository}
}

func (s *PetitionService) Petitions(ctx context.Context) ([]model.PrayerPetition, error) {
	return s.petitionRepository.List(ctx)
}

func (s *PetitionService) Submit(ctx context.Context, author *model.User, content string) (*model.PrayerPetition, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyPetition
	}

	petition := &model.PrayerPetition{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		UserName:  author.Name,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	err := s.petitionRepository.Add(ctx, author.Actor(), *petition)
	if err != nil {
		return nil, fmt.Errorf("failed to submit petition: %w", err)
	}
	return petition, nil
}

func (s *PetitionService) Edit(ctx context.Context, actor model.Actor, id, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyPetition
	}
	return s.petitionRepository.Edit(ctx, actor, id, content)
}

func (s *PetitionService) Delete(ctx context.Context, actor model.Actor, id string) error {
	return s.petitionRepository.Delete(ctx, actor, id)
}

// Amen records one more member praying along and returns the new count.
func (s *PetitionService) Amen(ctx context.Context, actor model.Actor, id string) (int, error) {
	return s.petitionRepository.Like(ctx, actor, id)
}
