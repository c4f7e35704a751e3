package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zuca/portal/internal/bus"
	"github.com/zuca/portal/internal/gateway"
	"github.com/zuca/portal/internal/logger"
	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/repository"
	"github.com/zuca/portal/internal/store"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	pdfHeader = []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
	mp3Header = []byte("ID3\x04\x00\x00\x00\x00\x00\x00")
)

// memoryStorage records saved payloads in memory. Like presigned links,
// every URL it hands out is different.
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	failing bool
	signed  atomic.Int64
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (m *memoryStorage) Save(_ context.Context, path string, body io.Reader, _ string) error {
	if m.failing {
		return errors.New("bucket unavailable")
	}
	var buf bytes.Buffer
	_, err := buf.ReadFrom(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = buf.Bytes()
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, path)
	return nil
}

func (m *memoryStorage) URL(_ context.Context, path string) string {
	return fmt.Sprintf("https://media.example.org/%s?sig=%d", path, m.signed.Add(1))
}

func (m *memoryStorage) has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[path]
	return ok
}

// env wires services over an in-memory store, an offline gateway and no
// object storage.
type env struct {
	bus         *bus.Bus
	store       *store.Store
	users       repository.UserRepository
	session     repository.SessionRepository
	media       *MediaService
	auth        *AuthService
	userService *UserService
	chat        *ChatService
	updates     *UpdateService
	petitions   *PetitionService
	choir       *ChoirService
	trivia      *TriviaService
	leaderboard *LeaderboardService
	insight     *InsightService
}

func newEnv(t *testing.T) *env {
	return newEnvWith(t, nil, nil)
}

func newEnvWith(t *testing.T, generator gateway.Generator, objects *memoryStorage) *env {
	t.Helper()
	log := logger.Discard()
	b := bus.New()
	s := store.New(store.NewMemoryBackend(), b, log)

	e := &env{bus: b, store: s}
	e.users = repository.NewUserRepository(s)
	e.session = repository.NewSessionRepository(s)

	if objects != nil {
		e.media = NewMediaService(objects, 1<<20, log)
	} else {
		e.media = NewMediaService(nil, 1<<20, log)
	}

	gw := gateway.New(generator, 0, log)
	e.auth = NewAuthService(e.users, e.session, e.media, log)
	e.userService = NewUserService(e.users, e.session, e.media, log)
	e.chat = NewChatService(repository.NewChatRepository(s), e.media, gw, log)
	e.updates = NewUpdateService(repository.NewUpdateRepository(s), e.media, log)
	e.petitions = NewPetitionService(repository.NewPetitionRepository(s))
	e.choir = NewChoirService(repository.NewChoirRepository(s), e.media, log)
	e.trivia = NewTriviaService(gw, e.userService, log)
	e.leaderboard = NewLeaderboardService(e.userService)
	e.insight = NewInsightService(gw)
	return e
}

func (e *env) register(t *testing.T, name string, role model.Role) *model.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), RegisterInput{
		Name:  name,
		Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@zetech.ac.ke",
		Role:  role,
	})
	require.NoError(t, err)
	return user
}
