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
	ErrPayloadRequired = errors.New("please upload a file")
	ErrKindMismatch    = errors.New("uploaded file does not match the selected type")
)

type ChoirInput struct {
	Title       string
	Description string
	Kind        model.MediaKind // Optional; checked against the detected kind
	File        *Upload
}

type ChoirService struct {
	choirRepository repository.ChoirRepository
	mediaService    *MediaService
	log             *slog.Logger
}

func NewChoirService(choirRepository repository.ChoirRepository, mediaService *MediaService, log *slog.Logger) *ChoirService {
	if log == nil {
		log = slog.Default()
	}
	return &ChoirService{
		choirRepository: choirRepository,
		mediaService:    mediaService,
		log:             log,
	}
}

// Materials lists shared choir resources newest first, optionally one kind only.
func (s *ChoirService) Materials(ctx context.Context, kind model.MediaKind) ([]model.ChoirMaterial, error) {
	materials, err := s.choirRepository.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	for i := range materials {
		materials[i].Link = s.mediaService.Link(ctx, materials[i].URL)
	}
	return materials, nil
}

// Share uploads a hymn recording, video or score sheet.
func (s *ChoirService) Share(ctx context.Context, author *model.User, input ChoirInput) (*model.ChoirMaterial, error) {
	if input.File == nil || len(input.File.Data) == 0 {
		return nil, ErrPayloadRequired
	}
	if input.Kind != "" && !model.ChoirKind(input.Kind) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMedia, input.Kind)
	}

	file, err := s.mediaService.Store(ctx, author.ID, *input.File, validation.ChoirMedia...)
	if err != nil {
		return nil, err
	}
	if input.Kind != "" && input.Kind != file.Kind {
		return nil, fmt.Errorf("%w: detected %s", ErrKindMismatch, file.Kind)
	}

	material := &model.ChoirMaterial{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Kind:         file.Kind,
		URL:          file.URL,
		FileName:     file.OriginalName,
		UploadedBy:   author.ID,
		UploaderName: author.Name,
		Timestamp:    time.Now().UTC(),
	}
	if material.Title == "" {
		material.Title = file.OriginalName
	}

	err = s.choirRepository.Add(ctx, author.Actor(), *material)
	if err != nil {
		return nil, fmt.Errorf("failed to share material: %w", err)
	}

	material.Link = s.mediaService.Link(ctx, material.URL)
	s.log.Info("choir material shared", "material_id", material.ID, "kind", material.Kind)
	return material, nil
}

// Delete removes a material and its stored payload.
func (s *ChoirService) Delete(ctx context.Context, actor model.Actor, id string) error {
	material, err := s.choirRepository.ByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.choirRepository.Delete(ctx, actor, id)
	if err != nil {
		return err
	}

	s.mediaService.Remove(ctx, material.URL)
	return nil
}
