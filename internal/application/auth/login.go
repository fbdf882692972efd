package auth

import (
	"context"

	"github.com/smartlearn/platform-api/internal/domain"
)

// Login authenticates a user and issues a bearer token.
// The frontend distinguishes "User not found" from "Invalid credentials",
// so both come back as their own 400 here.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = normalizeUsername(username)

	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials()
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return "", domain.ErrUserNotFound()
		}
		return "", err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials()
	}

	token, err := s.signer.Sign(u.ID, u.Username, s.accessTTL)
	if err != nil {
		return "", err
	}

	return token, nil
}
