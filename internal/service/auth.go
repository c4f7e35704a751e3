package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/repository"
	"github.com/zuca/portal/internal/validation"
)

var (
	ErrDuplicateName   = errors.New("this name is already registered")
	ErrAccountNotFound = errors.New("no member with that name or email, please register")
	ErrInvalidRole     = errors.New("invalid role")
	ErrNotSignedIn     = errors.New("not signed in")
)

type RegisterInput struct {
	Name      string
	Email     string
	Role      model.Role
	StudentID string // Admission number, kept for students only
}

// AuthService manages membership and the signed-in member of this portal
// instance. There are no credentials: a member signs in by name or email.
type AuthService struct {
	userRepository    repository.UserRepository
	sessionRepository repository.SessionRepository
	mediaService      *MediaService
	log               *slog.Logger
}

func NewAuthService(
	userRepository repository.UserRepository,
	sessionRepository repository.SessionRepository,
	mediaService *MediaService,
	log *slog.Logger,
) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		mediaService:      mediaService,
		log:               log,
	}
}

// Register creates a member and signs them in. Names are unique
// case-insensitively.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	err := validation.ValidateName(name)
	if err != nil {
		return nil, err
	}
	err = validation.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, input.Role)
	}

	_, err = s.userRepository.ByName(ctx, name)
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check name: %w", err)
	}

	user := &model.User{
		ID:       uuid.NewString(),
		Username: name,
		Name:     name,
		Email:    email,
		Role:     input.Role,
		Points:   0,
		JoinedAt: time.Now().UTC(),
	}
	if input.Role == model.RoleStudent {
		user.StudentID = strings.TrimSpace(input.StudentID)
	}

	err = s.userRepository.Save(ctx, user.Actor(), user)
	if err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	err = s.sessionRepository.Set(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	s.log.Info("member registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// SignIn matches identifier against member names and emails, case-insensitively.
func (s *AuthService) SignIn(ctx context.Context, identifier string) (*model.User, error) {
	user, err := s.userRepository.ByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.sessionRepository.Set(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	s.mediaService.linkUser(ctx, user)
	s.log.Info("member signed in", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) SignOut(ctx context.Context) error {
	return s.sessionRepository.Clear(ctx)
}

// Current returns the signed-in member, refreshed from the member list so
// changes made elsewhere (points, profile) are visible. Nil when nobody is
// signed in.
func (s *AuthService) Current(ctx context.Context) (*model.User, error) {
	current, err := s.sessionRepository.Current(ctx)
	if err != nil || current == nil {
		return nil, err
	}

	user, err := s.userRepository.ByID(ctx, current.ID)
	if errors.Is(err, repository.ErrUserNotFound) {
		user, err = current, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	s.mediaService.linkUser(ctx, user)
	return user, nil
}

// RequireCurrent is Current with ErrNotSignedIn instead of nil.
func (s *AuthService) RequireCurrent(ctx context.Context) (*model.User, error) {
	user, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotSignedIn
	}
	return user, nil
}
