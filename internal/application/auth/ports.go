package auth

import (
	"context"
	"time"

	"github.com/smartlearn/platform-api/internal/domain"
)

/*
UserRepo
--------
Persistence port for credential records.
Only describes WHAT the auth flows need, not HOW it's stored.
Create must rely on a store-level uniqueness guarantee for Username:
two concurrent signups racing past the lookup are resolved by the
constraint, not by the application.
*/
type UserRepo interface {
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies access tokens (JWT).
Used by the service and the auth middleware.
*/
type TokenClaims struct {
	UserID   string
	Username string
	Exp      time.Time
}

type TokenSigner interface {
	Sign(userID string, username string, ttl time.Duration) (string, error)
	Verify(token string) (TokenClaims, error)
}

/*
ResetCodeStore
--------------
Single-use, time-limited password reset codes, keyed by username.
Consume must be atomic: a code can succeed exactly once.
*/
type ResetCodeStore interface {
	Save(ctx context.Context, username string, code string, ttl time.Duration) error
	Consume(ctx context.Context, username string, code string) error
}

/*
EventPublisher
--------------
Publishes events for the mailer; this service never sends email itself.
*/
type EventPublisher interface {
	PublishPasswordReset(ctx context.Context, evt PasswordResetEvent) error
}

type PasswordResetEvent struct {
	UserID string
	Email  string
	Code   string
}
