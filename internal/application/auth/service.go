package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner
	codes  ResetCodeStore
	pub    EventPublisher

	accessTTL    time.Duration
	resetCodeTTL time.Duration
}

type Config struct {
	AccessTTL    time.Duration
	ResetCodeTTL time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	codes ResetCodeStore,
	pub EventPublisher,
	cfg Config,
) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	resetTTL := cfg.ResetCodeTTL
	if resetTTL <= 0 {
		resetTTL = 15 * time.Minute
	}
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
		codes:  codes,
		pub:    pub,

		accessTTL:    accessTTL,
		resetCodeTTL: resetTTL,
	}
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// newResetCode returns a 6-digit numeric code, zero-padded.
func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
