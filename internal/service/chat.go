package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zuca/portal/internal/gateway"
	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/repository"
	"github.com/zuca/portal/internal/validation"
)

const MeetingURL = "https://meet.google.com/new"

var ErrEmptyMessage = errors.New("message needs text or an attachment")

// botTriggers start an assistant reply when a message mentions them.
var botTriggers = []string{"pray", "bible"}

type ChatService struct {
	chatRepository repository.ChatRepository
	mediaService   *MediaService
	gateway        *gateway.Gateway
	log            *slog.Logger
}

func NewChatService(
	chatRepository repository.ChatRepository,
	mediaService *MediaService,
	gateway *gateway.Gateway,
	log *slog.Logger,
) *ChatService {
	if log == nil {
		log = slog.Default()
	}
	return &ChatService{
		chatRepository: chatRepository,
		mediaService:   mediaService,
		gateway:        gateway,
		log:            log,
	}
}

func (s *ChatService) Messages(ctx context.Context) ([]model.ChatMessage, error) {
	msgs, err := s.chatRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range msgs {
		s.mediaService.linkMessage(ctx, &msgs[i])
	}
	return msgs, nil
}

// Post appends a message from author. A message mentioning prayer or the
// Bible is followed by a reply from the Spiritual Guide; Post returns once
// that reply is posted too. reply is nil when no reply was due.
func (s *ChatService) Post(ctx context.Context, author *model.User, content string, attachment *Upload) (msg *model.ChatMessage, reply *model.ChatMessage, err error) {
	content = strings.TrimSpace(content)
	if content == "" && attachment == nil {
		return nil, nil, ErrEmptyMessage
	}

	msg = &model.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		UserName:  author.Name,
		UserRole:  author.Role,
		UserPic:   author.ProfilePic,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	if attachment != nil {
		file, err := s.mediaService.Store(ctx, author.ID, *attachment, validation.AllMedia...)
		if err != nil {
			return nil, nil, err
		}
		msg.Media = file.Media()
	}

	err = s.chatRepository.Add(ctx, author.Actor(), *msg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to post message: %w", err)
	}

	s.mediaService.linkMessage(ctx, msg)
	if !TriggersBot(content) {
		return msg, nil, nil
	}

	reply = &model.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    model.BotUserID,
		UserName:  model.BotName,
		UserRole:  model.RoleGuest,
		Content:   s.gateway.GenerateInsight(ctx, content),
		Timestamp: time.Now().UTC(),
	}
	err = s.chatRepository.Add(ctx, model.BotActor, *reply)
	if err != nil {
		return msg, nil, fmt.Errorf("failed to post reply: %w", err)
	}

	s.mediaService.linkMessage(ctx, reply)
	s.log.Debug("spiritual guide replied", "message_id", msg.ID)
	return msg, reply, nil
}

// StartMeeting posts the online fellowship link on behalf of author.
func (s *ChatService) StartMeeting(ctx context.Context, author *model.User) (*model.ChatMessage, error) {
	msg, _, err := s.Post(ctx, author, "Join the online fellowship: "+MeetingURL, nil)
	return msg, err
}

// Delete removes a message and its stored attachment.
func (s *ChatService) Delete(ctx context.Context, actor model.Actor, id string) error {
	msg, err := s.chatRepository.ByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.chatRepository.Delete(ctx, actor, id)
	if err != nil {
		return err
	}

	if msg.Media != nil {
		s.mediaService.Remove(ctx, msg.Media.URL)
	}
	return nil
}

// TriggersBot reports whether content asks for the Spiritual Guide.
func TriggersBot(content string) bool {
	lower := strings.ToLower(content)
	for _, trigger := range botTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}
