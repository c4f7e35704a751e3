package repository

import (
	"context"
	"errors"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/store"
)

var ErrMessageNotFound = errors.New("chat message not found")

type ChatRepository interface {
	List(ctx context.Context) ([]model.ChatMessage, error)
	ByID(ctx context.Context, id string) (*model.ChatMessage, error)
	Add(ctx context.Context, actor model.Actor, msg model.ChatMessage) error
	Delete(ctx context.Context, actor model.Actor, id string) error
}

type chatRepository struct {
	messages collection[model.ChatMessage]
}

func NewChatRepository(s *store.Store) ChatRepository {
	return &chatRepository{messages: collection[model.ChatMessage]{
		store:    s,
		key:      store.KeyChat,
		id:       func(m *model.ChatMessage) string { return m.ID },
		author:   func(m *model.ChatMessage) string { return m.UserID },
		notFound: ErrMessageNotFound,
	}}
}

// List returns the history oldest first.
func (r *chatRepository) List(ctx context.Context) ([]model.ChatMessage, error) {
	return r.messages.list(ctx)
}

func (r *chatRepository) ByID(ctx context.Context, id string) (*model.ChatMessage, error) {
	return r.messages.byID(ctx, id)
}

// Add appends msg. The actor must be the message author; bot replies are
// posted with model.BotActor.
func (r *chatRepository) Add(ctx context.Context, actor model.Actor, msg model.ChatMessage) error {
	return r.messages.append(ctx, actor, msg)
}

// Delete removes a message. Authors may remove their own messages and
// Trainers may remove any, including bot replies.
func (r *chatRepository) Delete(ctx context.Context, actor model.Actor, id string) error {
	return r.messages.remove(ctx, actor, id)
}
