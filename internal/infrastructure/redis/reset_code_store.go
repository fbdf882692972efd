package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/smartlearn/platform-api/internal/domain"
)

// ResetCodeStore keeps single-use password reset codes in Redis.
// Key layout: "reset:<username>" -> code, expiring with the code TTL.
type ResetCodeStore struct {
	rdb    *goredis.Client
	prefix string
}

func NewResetCodeStore(c *Client) *ResetCodeStore {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &ResetCodeStore{
		rdb:    rdb,
		prefix: "reset:",
	}
}

func (s *ResetCodeStore) Save(ctx context.Context, username string, code string, ttl time.Duration) error {
	username = strings.TrimSpace(username)
	code = strings.TrimSpace(code)
	if username == "" {
		return domain.ErrMissingField("username")
	}
	if code == "" {
		return domain.ErrMissingField("code")
	}
	if ttl <= 0 {
		return domain.ErrMissingField("ttl")
	}
	if s.rdb == nil {
		return errors.New("redis reset-code store not configured")
	}

	// overwrite is fine: a new request invalidates the previous code
	if err := s.rdb.Set(ctx, s.key(username), code, ttl).Err(); err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	return nil
}

// Consume validates and deletes the code in one atomic step so a code can
// never succeed twice, even for concurrent requests.
func (s *ResetCodeStore) Consume(ctx context.Context, username string, code string) error {
	username = strings.TrimSpace(username)
	code = strings.TrimSpace(code)
	if username == "" || code == "" {
		return domain.ErrResetCodeInvalid()
	}
	if s.rdb == nil {
		return errors.New("redis reset-code store not configured")
	}

	const lua = `
local v = redis.call("GET", KEYS[1])
if not v then
  return 0
end
if v ~= ARGV[1] then
  return -1
end
redis.call("DEL", KEYS[1])
return 1
`
	res, err := s.rdb.Eval(ctx, lua, []string{s.key(username)}, code).Result()
	if err != nil {
		return domain.ErrStoreUnavailable(fmt.Errorf("reset code consume: %w", err))
	}

	n, ok := res.(int64)
	if !ok {
		return domain.ErrStoreUnavailable(fmt.Errorf("reset code consume: unexpected result %T", res))
	}
	if n != 1 {
		// missing, expired, already consumed, or mismatched
		return domain.ErrResetCodeInvalid()
	}
	return nil
}

func (s *ResetCodeStore) key(username string) string {
	return s.prefix + strings.ToLower(username)
}
