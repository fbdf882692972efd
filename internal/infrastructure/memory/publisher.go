package memory

import (
	"context"

	"github.com/smartlearn/platform-api/internal/application/auth"
	"github.com/smartlearn/platform-api/internal/application/contact"
	"github.com/smartlearn/platform-api/internal/logger"
)

// NoopPublisher stands in for RabbitMQ in dev; it only logs.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishPasswordReset(ctx context.Context, evt auth.PasswordResetEvent) error {
	logger.WithCtx(ctx).Info().
		Str("user_id", evt.UserID).
		Str("email", evt.Email).
		Msg("[noop-pub] password reset code issued")
	return nil
}

func (p *NoopPublisher) PublishContactMessage(ctx context.Context, evt contact.MessageReceivedEvent) error {
	logger.WithCtx(ctx).Info().
		Str("message_id", evt.ID).
		Str("email", evt.Email).
		Msg("[noop-pub] contact message received")
	return nil
}
