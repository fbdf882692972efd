package auth

import (
	"context"

	"github.com/smartlearn/platform-api/internal/domain"
)

// RequestPasswordReset stores a one-time code and publishes an email event.
// Must be non-enumerating: unknown emails return nil and the caller always
// answers 200.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeUsername(email)
	if email == "" {
		return domain.ErrMissingField("email")
	}

	u, err := s.users.FindByUsername(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return nil
		}
		return err
	}

	code, err := newResetCode()
	if err != nil {
		return domain.ErrRandomFailed(err)
	}

	if err := s.codes.Save(ctx, u.Username, code, s.resetCodeTTL); err != nil {
		return err
	}

	return s.pub.PublishPasswordReset(ctx, PasswordResetEvent{
		UserID: u.ID,
		Email:  u.Username,
		Code:   code,
	})
}

// ResetPassword consumes the code and swaps the stored hash.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeUsername(email)
	if email == "" {
		return domain.ErrMissingField("email")
	}
	if code == "" {
		return domain.ErrMissingField("code")
	}
	if newPassword == "" {
		return domain.ErrMissingField("newPassword")
	}
	if len(newPassword) < 8 {
		return domain.ErrWeakPassword("min length 8")
	}

	if err := s.codes.Consume(ctx, email, code); err != nil {
		return err
	}

	u, err := s.users.FindByUsername(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			// Code was valid but the account is gone; treat as a stale code.
			return domain.ErrResetCodeInvalid()
		}
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.ErrHashFailed(err)
	}

	return s.users.UpdatePasswordHash(ctx, u.ID, hash)
}
