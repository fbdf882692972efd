package memory

import (
	"context"
	"sync"
	"time"

	"github.com/smartlearn/platform-api/internal/domain"
)

type ContactRepo struct {
	mu       sync.Mutex
	messages []domain.ContactMessage
}

func NewContactRepo() *ContactRepo {
	return &ContactRepo{}
}

func (r *ContactRepo) Save(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error) {
	if m.ID == "" {
		return domain.ContactMessage{}, domain.ErrMissingField("id")
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
	return m, nil
}

// All returns a copy of everything stored; used by tests.
func (r *ContactRepo) All() []domain.ContactMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ContactMessage, len(r.messages))
	copy(out, r.messages)
	return out
}
