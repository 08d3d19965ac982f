package quizstore

import (
	"context"
	"sync"
	"time"

	"secquiz/internal/domain"
)

type memoryEntry struct {
	quiz      *domain.Quiz
	expiresAt time.Time
}

// MemoryQuizStore is the default single-instance backend: a mutex-guarded map
// with per-entry TTL, swept lazily on access.
type MemoryQuizStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryQuizStore(ttl time.Duration) *MemoryQuizStore {
	return &MemoryQuizStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryQuizStore) Save(_ context.Context, quiz *domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.entries[quiz.ID] = memoryEntry{quiz: quiz, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryQuizStore) Get(_ context.Context, id string) (*domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		return nil, domain.ErrQuizStoreMiss
	}
	return entry.quiz, nil
}

// Delete is a no-op for unknown IDs, matching the Redis backend.
func (s *MemoryQuizStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *MemoryQuizStore) sweepLocked() {
	now := s.now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}

var _ domain.QuizStore = (*MemoryQuizStore)(nil)
