package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zuca/portal/internal/markdown"
	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/repository"
	"github.com/zuca/portal/internal/validation"
)

// SystemUserID authors the notices a fresh portal starts with.
const SystemUserID = "admin-system"

var ErrInvalidCategory = errors.New("invalid update category")

type UpdateInput struct {
	Title    string
	Content  string
	Category model.UpdateCategory
	Image    string  // Existing banner reference
	Banner   *Upload // New banner, replaces Image
}

type UpdateService struct {
	updateRepository repository.UpdateRepository
	mediaService     *MediaService
	parser           *markdown.Parser
	log              *slog.Logger
}

func NewUpdateService(
	updateRepository repository.UpdateRepository,
	mediaService *MediaService,
	log *slog.Logger,
) *UpdateService {
	if log == nil {
		log = slog.Default()
	}
	return &UpdateService{
		updateRepository: updateRepository,
		mediaService:     mediaService,
		parser:           markdown.NewParser(),
		log:              log,
	}
}

// Posts returns updates newest first with rendered content. An empty
// category returns every category.
func (s *UpdateService) Posts(ctx context.Context, category model.UpdateCategory) ([]model.UpdatePost, error) {
	posts, err := s.updateRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.UpdatePost, 0, len(posts))
	for _, post := range posts {
		if category != "" && post.Category != category {
			continue
		}
		s.present(ctx, &post)
		filtered = append(filtered, post)
	}
	return filtered, nil
}

func (s *UpdateService) Post(ctx context.Context, id string) (*model.UpdatePost, error) {
	post, err := s.updateRepository.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.present(ctx, post)
	return post, nil
}

// Create publishes an update. A missing title becomes "Untitled" and a
// missing category becomes Event.
func (s *UpdateService) Create(ctx context.Context, author *model.User, input UpdateInput) (*model.UpdatePost, error) {
	post := &model.UpdatePost{
		ID:     uuid.NewString(),
		UserID: author.ID,
		Date:   time.Now().UTC(),
	}

	err := s.apply(ctx, author.ID, post, input, "")
	if err != nil {
		return nil, err
	}

	err = s.updateRepository.Add(ctx, author.Actor(), *post)
	if err != nil {
		return nil, fmt.Errorf("failed to publish update: %w", err)
	}

	s.present(ctx, post)
	s.log.Info("update published", "update_id", post.ID, "category", post.Category)
	return post, nil
}

// Edit replaces the editable fields of a post. A replaced banner is removed
// from storage.
func (s *UpdateService) Edit(ctx context.Context, actor model.Actor, id string, input UpdateInput) (*model.UpdatePost, error) {
	existing, err := s.updateRepository.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post := &model.UpdatePost{ID: id}
	err = s.apply(ctx, actor.UserID, post, input, existing.Image)
	if err != nil {
		return nil, err
	}

	err = s.updateRepository.Edit(ctx, actor, *post)
	if err != nil {
		if input.Banner != nil {
			s.mediaService.Remove(ctx, post.Image)
		}
		return nil, err
	}

	if existing.Image != post.Image {
		s.mediaService.Remove(ctx, existing.Image)
	}
	return s.Post(ctx, id)
}

// Delete removes a post and its stored banner.
func (s *UpdateService) Delete(ctx context.Context, actor model.Actor, id string) error {
	post, err := s.updateRepository.ByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.updateRepository.Delete(ctx, actor, id)
	if err != nil {
		return err
	}

	s.mediaService.Remove(ctx, post.Image)
	return nil
}

// apply copies input onto post. existingImage is the banner the post
// already has, the only storage reference input.Image may carry.
func (s *UpdateService) apply(ctx context.Context, userID string, post *model.UpdatePost, input UpdateInput, existingImage string) error {
	post.Title = strings.TrimSpace(input.Title)
	if post.Title == "" {
		post.Title = "Untitled"
	}
	post.Content = strings.TrimSpace(input.Content)

	post.Category = input.Category
	if post.Category == "" {
		post.Category = model.CategoryEvent
	}
	if !post.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, input.Category)
	}

	err := checkReference(input.Image, existingImage)
	if err != nil {
		return err
	}

	post.Image = input.Image
	if input.Banner != nil {
		file, err := s.mediaService.Store(ctx, userID, *input.Banner, validation.ImageConstraints)
		if err != nil {
			return err
		}
		post.Image = file.URL
	}
	return nil
}

// present fills the computed fields of post.
func (s *UpdateService) present(ctx context.Context, post *model.UpdatePost) {
	post.ImageURL = s.mediaService.Link(ctx, post.Image)

	html, err := s.parser.Parse([]byte(post.Content))
	if err != nil {
		s.log.Warn("failed to render update", "update_id", post.ID, "error", err)
		return
	}
	post.HTMLContent = string(html)
}

// Seed loads the markdown notices under dir of content into an update
// collection that has never been written.
func (s *UpdateService) Seed(ctx context.Context, content fs.FS, dir string) (int, error) {
	posts, err := s.loadNotices(content, dir)
	if err != nil {
		return 0, err
	}

	seeded, err := s.updateRepository.Seed(ctx, posts)
	if err != nil {
		return 0, fmt.Errorf("failed to seed updates: %w", err)
	}
	if !seeded {
		return 0, nil
	}

	s.log.Info("seeded updates", "count", len(posts))
	return len(posts), nil
}

func (s *UpdateService) loadNotices(content fs.FS, dir string) ([]model.UpdatePost, error) {
	files, err := fs.Glob(content, dir+"/*.md")
	if err != nil {
		return nil, err
	}

	var posts []model.UpdatePost
	for _, file := range files {
		source, err := fs.ReadFile(content, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		_, meta, err := s.parser.ParseWithFrontmatter(source)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}

		post := model.UpdatePost{
			ID:       uuid.NewString(),
			UserID:   SystemUserID,
			Title:    "Untitled",
			Content:  string(markdown.Body(source)),
			Category: model.CategoryEvent,
		}

		id, ok := meta["id"].(string)
		if ok {
			post.ID = id
		}
		title, ok := meta["title"].(string)
		if ok {
			post.Title = title
		}
		category, ok := meta["category"].(string)
		if ok && model.UpdateCategory(category).Valid() {
			post.Category = model.UpdateCategory(category)
		}
		image, ok := meta["image"].(string)
		if ok {
			post.Image = image
		}
		post.Date = frontmatterDate(meta["date"])

		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})

	return posts, nil
}

func frontmatterDate(v any) time.Time {
	switch d := v.(type) {
	case time.Time:
		return d.UTC()
	case string:
		t, err := time.Parse("2006-01-02", d)
		if err == nil {
			return t
		}
		t, err = time.Parse(time.RFC3339, d)
		if err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
