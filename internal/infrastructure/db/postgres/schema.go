package postgres

import (
	"context"
	"database/sql"

	"github.com/smartlearn/platform-api/internal/domain"
)

// EnsureSchema creates the tables this service owns if they do not exist.
// The unique index on users.username is load-bearing: it is what makes
// concurrent duplicate signups safe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS contact_messages (
    id         UUID PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    message    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	return nil
}
