package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/repository"
	"github.com/zuca/portal/internal/validation"
)

type ProfileInput struct {
	Name      string
	Bio       string
	StudentID string
	Picture   *Upload // Optional new profile picture
}

type UserService struct {
	userRepository    repository.UserRepository
	sessionRepository repository.SessionRepository
	mediaService      *MediaService
	log               *slog.Logger
}

func NewUserService(
	userRepository repository.UserRepository,
	sessionRepository repository.SessionRepository,
	mediaService *MediaService,
	log *slog.Logger,
) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		mediaService:      mediaService,
		log:               log,
	}
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mediaService.linkUser(ctx, user)
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		s.mediaService.linkUser(ctx, &users[i])
	}
	return users, nil
}

// UpdateProfile edits a member's profile. Only the member or a Trainer may
// do so. Points are left as stored; a replaced picture is removed from
// storage.
func (s *UserService) UpdateProfile(ctx context.Context, actor model.Actor, userID string, input ProfileInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	err := validation.ValidateName(name)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(userID) {
		return nil, repository.ErrForbidden
	}

	var picture string
	if input.Picture != nil {
		file, err := s.mediaService.Store(ctx, userID, *input.Picture, validation.ImageConstraints)
		if err != nil {
			return nil, err
		}
		picture = file.URL
	}

	var previous string
	user, err := s.update(ctx, actor, userID, func(u *model.User) error {
		u.Name = name
		u.Bio = strings.TrimSpace(input.Bio)
		if u.Role == model.RoleStudent {
			u.StudentID = strings.TrimSpace(input.StudentID)
		}
		if picture != "" {
			previous = u.ProfilePic
			u.ProfilePic = picture
		}
		return nil
	})
	if err != nil {
		s.mediaService.Remove(ctx, picture)
		return nil, err
	}

	s.mediaService.Remove(ctx, previous)
	return user, nil
}

// AddPoints adds delta to the stored points of userID. The change is applied
// to the stored record under the collection lock, so concurrent awards and
// profile edits are never lost.
func (s *UserService) AddPoints(ctx context.Context, actor model.Actor, userID string, delta int) (*model.User, error) {
	user, err := s.update(ctx, actor, userID, func(u *model.User) error {
		u.Points += delta
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("points awarded", "user_id", userID, "delta", delta, "points", user.Points)
	return user, nil
}

// update applies fn to the stored user and keeps the signed-in copy in sync.
func (s *UserService) update(ctx context.Context, actor model.Actor, userID string, fn func(*model.User) error) (*model.User, error) {
	user, err := s.userRepository.Update(ctx, actor, userID, fn)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	current, err := s.sessionRepository.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if current != nil && current.ID == user.ID {
		err = s.sessionRepository.Set(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("failed to update session: %w", err)
		}
	}

	s.mediaService.linkUser(ctx, user)
	return user, nil
}
