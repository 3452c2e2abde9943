// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/danielhkuo/civic-pulse/models"
	"github.com/danielhkuo/civic-pulse/storage"
)

// DefaultKey is the storage key holding the whole response collection
const DefaultKey = "civic_research_responses"

var (
	// ErrDuplicateEmail is returned by Append when the email is already stored
	ErrDuplicateEmail = errors.New("email already has a stored response")
	// ErrUnsupportedVersion is returned by Append when the stored collection
	// was written by a newer schema than this build understands
	ErrUnsupportedVersion = errors.New("stored collection has a newer schema version")
)

// Event is the change notification. It carries no description of the change;
// listeners re-query the store.
type Event struct {
	Name string
}

// Listener receives change notifications
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Store owns the persisted survey collection. Every read-modify-write goes
// through mu, so concurrent appends cannot lose each other's records.
type Store struct {
	backend storage.Backend
	key     string
	log     *zap.Logger

	mu sync.Mutex

	subMu  sync.Mutex
	subs   []subscription
	nextID int
}

type Option func(*Store)

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListAll returns every stored response in insertion order. A missing or
// unreadable payload reads as an empty collection, as does a failed read.
func (s *Store) ListAll(ctx context.Context) []models.SurveyResponse {
	responses, _ := s.ReadAll(ctx)
	return responses
}

// ReadAll is ListAll that also reports a failed backend read. The returned
// slice is empty, never nil, when err is set. A missing or malformed payload
// is not an error.
func (s *Store) ReadAll(ctx context.Context) ([]models.SurveyResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	responses, _, err := s.load(ctx)
	return responses, err
}

// ExistsByEmail reports whether any stored response uses email, ignoring case.
// Blank input is never found.
func (s *Store) ExistsByEmail(ctx context.Context, email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	responses, _, _ := s.load(ctx)
	return containsEmail(responses, email)
}

// Count returns the number of stored responses
func (s *Store) Count(ctx context.Context) int {
	return len(s.ListAll(ctx))
}

// Append adds r to the end of the collection and writes the full collection
// back. Read and write failures are returned and not retried; a failed read
// never overwrites the stored collection.
func (s *Store) Append(ctx context.Context, r models.SurveyResponse) error {
	s.mu.Lock()

	responses, version, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if version > currentVersion {
		s.mu.Unlock()
		return ErrUnsupportedVersion
	}
	if containsEmail(responses, r.Demographics.Email) {
		s.mu.Unlock()
		return ErrDuplicateEmail
	}

	payload, err := encode(append(responses, r))
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to encode responses: %w", err)
	}

	if err := s.backend.Put(ctx, s.key, payload); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist responses: %w", err)
	}
	s.mu.Unlock()

	s.log.Info("response stored", zap.String("id", r.ID), zap.Int("total", len(responses)+1))
	s.notify()
	return nil
}

// ClearAll removes the whole collection
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	err := s.backend.Delete(ctx, s.key)
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to clear responses: %w", err)
	}

	s.log.Info("responses cleared")
	s.notify()
	return nil
}

// Subscribe registers fn for change notifications. Listeners run in
// registration order on the goroutine that made the change.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	ev := Event{Name: models.EventStorageUpdate}
	for _, sub := range subs {
		sub.fn(ev)
	}
}

// load must be called with mu held. The error is set only when the backend
// read itself failed; a missing or undecodable payload loads as empty.
func (s *Store) load(ctx context.Context) ([]models.SurveyResponse, int, error) {
	raw, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.SurveyResponse{}, currentVersion, nil
	}
	if err != nil {
		s.log.Warn("failed to read responses, treating as empty", zap.Error(err))
		return []models.SurveyResponse{}, currentVersion, fmt.Errorf("failed to read responses: %w", err)
	}

	responses, version, err := decode(raw)
	if err != nil {
		s.log.Warn("unreadable response payload, treating as empty", zap.Error(err), zap.Int("version", version))
		return []models.SurveyResponse{}, version, nil
	}
	return responses, version, nil
}

func containsEmail(responses []models.SurveyResponse, email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, r := range responses {
		if r.Demographics.Email != "" && strings.EqualFold(strings.TrimSpace(r.Demographics.Email), email) {
			return true
		}
	}
	return false
}
