package postgres

import (
	"context"
	"database/sql"

	"github.com/smartlearn/platform-api/internal/domain"
)

type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Save(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error) {
	if m.ID == "" {
		return domain.ContactMessage{}, domain.ErrMissingField("id")
	}

	const q = `
INSERT INTO contact_messages (id, name, email, message)
VALUES ($1, $2, $3, $4)
RETURNING id, name, email, message, created_at;
`
	var saved domain.ContactMessage
	err := r.db.QueryRowContext(ctx, q, m.ID, m.Name, m.Email, m.Message).Scan(
		&saved.ID,
		&saved.Name,
		&saved.Email,
		&saved.Message,
		&saved.CreatedAt,
	)
	if err != nil {
		return domain.ContactMessage{}, domain.ErrStoreUnavailable(err)
	}
	return saved, nil
}
