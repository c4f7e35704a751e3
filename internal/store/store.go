// Package store persists whole collections under string keys and raises a
// change notification after every write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zuca/portal/internal/bus"
)

// Collection keys.
const (
	KeyUsers           = "users"
	KeyChat            = "chat_history"
	KeyUpdates         = "updates"
	KeyPetitions       = "petitions"
	KeyChoir           = "choir_materials"
	KeyCurrentUser     = "current_user"
	KeyThemePreference = "theme_preference"
)

var ErrNotFound = errors.New("record not found")

// Backend is the durable medium under the store. Get returns ErrNotFound
// for a key that was never written or has been deleted.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Store struct {
	backend  Backend
	notifier bus.Notifier
	log      *slog.Logger

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func New(backend Backend, notifier bus.Notifier, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		backend:  backend,
		notifier: notifier,
		log:      log,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Read decodes the value stored under key. An absent value yields def.
// A value that cannot be decoded is treated as absent: it is logged and def
// is returned, so a corrupt collection never takes the portal down.
func Read[T any](ctx context.Context, s *Store, key string, def T) (T, error) {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var value T
	err = json.Unmarshal(data, &value)
	if err != nil {
		s.log.Warn("discarding corrupt collection", "key", key, "error", err)
		return def, nil
	}

	return value, nil
}

// Exists reports whether key has ever been written and not removed.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return true, nil
}

// Write replaces the whole value stored under key and notifies subscribers.
func (s *Store) Write(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	err = s.backend.Put(ctx, key, data)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	s.log.Debug("collection written", "key", key, "bytes", len(data))
	s.notify(ctx, key)
	return nil
}

// WriteIfAbsent writes value only when key has never been written, and
// reports whether it did. The check and the write hold the same per-key lock
// as Mutate, so a concurrent Mutate is never overwritten.
func (s *Store) WriteIfAbsent(ctx context.Context, key string, value any) (bool, error) {
	lock := s.lock(key)
	lock.Lock()
	defer lock.Unlock()

	exists, err := s.Exists(ctx, key)
	if err != nil || exists {
		return false, err
	}

	err = s.Write(ctx, key, value)
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes key and notifies subscribers.
func (s *Store) Remove(ctx context.Context, key string) error {
	err := s.backend.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}

	s.notify(ctx, key)
	return nil
}

// Mutate performs a read-modify-write of the collection under key. Writers
// in this process are serialized per key; other processes sharing the
// backend follow last-write-wins. When fn returns an error nothing is written.
func Mutate[T any](ctx context.Context, s *Store, key string, def T, fn func(T) (T, error)) error {
	lock := s.lock(key)
	lock.Lock()
	defer lock.Unlock()

	current, err := Read(ctx, s, key, def)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	return s.Write(ctx, key, next)
}

func (s *Store) lock(key string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

func (s *Store) notify(ctx context.Context, key string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, key)
	}
}
