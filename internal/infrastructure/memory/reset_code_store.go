package memory

import (
	"context"
	"sync"
	"time"

	"github.com/smartlearn/platform-api/internal/domain"
)

type resetEntry struct {
	code      string
	expiresAt time.Time
}

// ResetCodeStore is the dev fallback when Redis is not configured.
type ResetCodeStore struct {
	mu    sync.Mutex
	codes map[string]resetEntry
	now   func() time.Time
}

func NewResetCodeStore() *ResetCodeStore {
	return &ResetCodeStore{
		codes: make(map[string]resetEntry),
		now:   time.Now,
	}
}

func (s *ResetCodeStore) Save(ctx context.Context, username string, code string, ttl time.Duration) error {
	if username == "" || code == "" || ttl <= 0 {
		return domain.ErrMissingField("reset code")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[username] = resetEntry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *ResetCodeStore) Consume(ctx context.Context, username string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.codes[username]
	if !ok || s.now().After(e.expiresAt) || e.code != code {
		return domain.ErrResetCodeInvalid()
	}
	delete(s.codes, username)
	return nil
}
