package contact

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/smartlearn/platform-api/internal/domain"
	"github.com/smartlearn/platform-api/internal/logger"
)

/*
Store
-----
Persistence port for contact form submissions.
*/
type Store interface {
	Save(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error)
}

/*
EventPublisher
--------------
Notifies the mailer that a contact message arrived.
*/
type EventPublisher interface {
	PublishContactMessage(ctx context.Context, evt MessageReceivedEvent) error
}

type MessageReceivedEvent struct {
	ID    string
	Name  string
	Email string
}

type Service struct {
	store Store
	pub   EventPublisher
}

func NewService(store Store, pub EventPublisher) *Service {
	return &Service{store: store, pub: pub}
}

// Submit persists the message and notifies the mailer. A publish failure is
// logged but does not fail the request; the message is already stored.
func (s *Service) Submit(ctx context.Context, name, email, message string) (domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	message = strings.TrimSpace(message)

	if name == "" {
		return domain.ContactMessage{}, domain.ErrMissingField("name")
	}
	if email == "" {
		return domain.ContactMessage{}, domain.ErrMissingField("email")
	}
	if message == "" {
		return domain.ContactMessage{}, domain.ErrMissingField("message")
	}

	saved, err := s.store.Save(ctx, domain.ContactMessage{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Message: message,
	})
	if err != nil {
		return domain.ContactMessage{}, err
	}

	if err := s.pub.PublishContactMessage(ctx, MessageReceivedEvent{
		ID:    saved.ID,
		Name:  saved.Name,
		Email: saved.Email,
	}); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Str("message_id", saved.ID).Msg("contact event publish failed")
	}

	return saved, nil
}
