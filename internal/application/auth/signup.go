package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartlearn/platform-api/internal/domain"
)

// Signup registers a new user.
// The lookup before hashing is a cost optimization only: it skips the bcrypt
// work for a username we already know is taken. Correctness against the
// lookup/insert race lives in the store's unique constraint, which Create
// surfaces as ErrUserAlreadyExists.
func (s *Service) Signup(ctx context.Context, username, password string) (domain.User, error) {
	username = normalizeUsername(username)

	if username == "" {
		return domain.User{}, domain.ErrMissingField("username")
	}
	if password == "" {
		return domain.User{}, domain.ErrMissingField("password")
	}

	_, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return domain.User{}, domain.ErrUserAlreadyExists()
	case !domain.Is(err, "user_not_found"):
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}

	return created, nil
}
