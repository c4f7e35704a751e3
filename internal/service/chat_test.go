package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zuca/portal/internal/gateway"
	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/repository"
)

// MockGenerator mocks the gateway.Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema *gateway.Schema) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, schema)
	return args.String(0), args.Error(1)
}

func TestTriggersBot(t *testing.T) {
	assert.True(t, TriggersBot("Please PRAY for me"))
	assert.True(t, TriggersBot("Bible study at 5"))
	assert.True(t, TriggersBot("prayer meeting"))
	assert.False(t, TriggersBot("See you at mass"))
}

func TestChatService_PostWithoutReply(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", model.RoleStudent)

	msg, reply, err := e.chat.Post(ctx, alice, "  See you at mass  ", nil)
	require.NoError(t, err)
	assert.Nil(t, reply)
	assert.Equal(t, "See you at mass", msg.Content)
	assert.Equal(t, alice.ID, msg.UserID)
	assert.Equal(t, model.RoleStudent, msg.UserRole)

	_, _, err = e.chat.Post(ctx, alice, "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestChatService_BotRepliesToPrayerRequests(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateText", mock.Anything, gateway.SystemInstruction, "Pray for my exams").
		Return("Trust in the Lord with all your heart.", nil).Once()

	e := newEnvWith(t, gen, nil)
	ctx := context.Background()
	alice := e.register(t, "Alice", model.RoleStudent)

	_, reply, err := e.chat.Post(ctx, alice, "Pray for my exams", nil)
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, model.BotUserID, reply.UserID)
	assert.Equal(t, model.BotName, reply.UserName)
	assert.Equal(t, model.RoleGuest, reply.UserRole)
	assert.Equal(t, "Trust in the Lord with all your heart.", reply.Content)

	msgs, err := e.chat.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, alice.ID, msgs[0].UserID)
	assert.True(t, msgs[1].FromBot())
	gen.AssertExpectations(t)
}

func TestChatService_BotFallsBackWhenGenerationFails(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("quota"))

	e := newEnvWith(t, gen, nil)
	alice := e.register(t, "Alice", model.RoleStudent)

	_, reply, err := e.chat.Post(context.Background(), alice, "any bible verses?", nil)
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, gateway.FallbackInsight, reply.Content)
}

func TestChatService_Attachment(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "Alice", model.RoleStudent)

	msg, _, err := e.chat.Post(context.Background(), alice, "", &Upload{FileName: "hymn.mp3", Data: mp3Header})
	require.NoError(t, err)
	require.NotNil(t, msg.Media)
	assert.Equal(t, model.MediaAudio, msg.Media.Kind)
	assert.Equal(t, "hymn.mp3", msg.Media.FileName)
	assert.Contains(t, msg.Media.URL, "data:audio/mpeg;base64,")
}

func TestChatService_StartMeeting(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "Alice", model.RoleStudent)

	msg, err := e.chat.StartMeeting(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, "Join the online fellowship: https://meet.google.com/new", msg.Content)
}

func TestChatService_Delete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", model.RoleStudent)
	bob := e.register(t, "Bob", model.RoleGuest)
	trainer := e.register(t, "Father Tom", model.RoleTrainer)

	msg, reply, err := e.chat.Post(ctx, alice, "Let us pray", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, e.chat.Delete(ctx, bob.Actor(), msg.ID), repository.ErrForbidden)
	assert.ErrorIs(t, e.chat.Delete(ctx, alice.Actor(), reply.ID), repository.ErrForbidden)
	require.NoError(t, e.chat.Delete(ctx, alice.Actor(), msg.ID))
	require.NoError(t, e.chat.Delete(ctx, trainer.Actor(), reply.ID))

	msgs, err := e.chat.Messages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestInsightService_Ask(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	reply, err := e.insight.Ask(ctx, Suggestions[0])
	require.NoError(t, err)
	assert.Equal(t, gateway.FallbackInsight, reply)

	_, err = e.insight.Ask(ctx, " ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}
