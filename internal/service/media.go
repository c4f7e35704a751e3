package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/storage"
	"github.com/zuca/portal/internal/validation"
)

var ErrInvalidMedia = errors.New("invalid media")

// Upload is a raw media payload as received from a member.
type Upload struct {
	FileName string
	Data     []byte
}

// MediaService turns uploads into payload references. With object storage
// configured the payload goes to the bucket and records keep a storage
// reference; otherwise it is kept inline as a data URL inside the record.
type MediaService struct {
	storage storage.Storage
	maxSize int64
	log     *slog.Logger
}

// NewMediaService accepts a nil storage for inline-only operation.
func NewMediaService(storage storage.Storage, maxSize int64, log *slog.Logger) *MediaService {
	if log == nil {
		log = slog.Default()
	}
	return &MediaService{storage: storage, maxSize: maxSize, log: log}
}

// Store validates upload against constraints and returns the stored file.
// The first constraint set the payload matches decides its kind.
func (s *MediaService) Store(ctx context.Context, userID string, upload Upload, constraints ...validation.MediaConstraints) (*model.File, error) {
	kind, mimeType, err := validation.DetectMedia(upload.FileName, upload.Data, s.maxSize, constraints...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMedia, err)
	}

	file := &model.File{
		UserID:       userID,
		Kind:         kind,
		OriginalName: filepath.Base(upload.FileName),
		MimeType:     mimeType,
		Size:         int64(len(upload.Data)),
		CreatedAt:    time.Now().UTC(),
	}

	if s.storage == nil {
		file.URL = dataURL(mimeType, upload.Data)
		return file, nil
	}

	// Generate unique filename
	ext := strings.ToLower(filepath.Ext(upload.FileName))
	file.Filename = uuid.NewString() + ext
	file.StoragePath = path.Join("media", string(kind)+"s", file.Filename) // audio -> audios

	err = s.storage.Save(ctx, file.StoragePath, bytes.NewReader(upload.Data), mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to save media: %w", err)
	}
	file.URL = storage.Ref(file.StoragePath)

	s.log.Info("media stored", "user_id", userID, "kind", kind, "path", file.StoragePath, "size", file.Size)
	return file, nil
}

// Link returns a fetchable address for a stored payload reference. Storage
// references get a fresh link on every call; anything else is returned as is.
func (s *MediaService) Link(ctx context.Context, ref string) string {
	path, ok := storage.PathOf(ref)
	if !ok || s == nil || s.storage == nil {
		return ref
	}
	return s.storage.URL(ctx, path)
}

// Remove deletes the object behind ref, if any. Failures are logged: a
// leftover object never blocks deleting the record that pointed at it.
func (s *MediaService) Remove(ctx context.Context, ref string) {
	path, ok := storage.PathOf(ref)
	if !ok || s == nil || s.storage == nil {
		return
	}

	err := s.storage.Delete(ctx, path)
	if err != nil {
		s.log.Error("failed to delete media from storage", "path", path, "error", err)
		return
	}
	s.log.Info("media deleted", "path", path)
}

func (s *MediaService) linkUser(ctx context.Context, user *model.User) {
	if user != nil {
		user.ProfilePicURL = s.Link(ctx, user.ProfilePic)
	}
}

func (s *MediaService) linkMessage(ctx context.Context, msg *model.ChatMessage) {
	msg.UserPicURL = s.Link(ctx, msg.UserPic)
	if msg.Media != nil {
		media := *msg.Media
		media.Link = s.Link(ctx, media.URL)
		msg.Media = &media
	}
}

// checkReference rejects a storage reference that did not come from the
// record being edited. Storage references only enter records via Store.
func checkReference(ref, existing string) error {
	_, ok := storage.PathOf(ref)
	if ok && ref != existing {
		return fmt.Errorf("%w: unknown storage reference", ErrInvalidMedia)
	}
	return nil
}

func dataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
