package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawsitive-coach/internal/domain"
)

// MessageRepository persiste el transcript de chat.
type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) error
	ListBySessionID(ctx context.Context, sessionID string) ([]domain.Message, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Create(ctx context.Context, message domain.Message) error {
	const query = `
		INSERT INTO messages (id, user_id, session_id, content, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var sessionID interface{}
	if message.SessionID != "" {
		sessionID = message.SessionID
	}
	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.UserID,
		sessionID,
		message.Content,
		message.Role,
		message.CreatedAt,
	)
	return err
}

func (r *PgMessageRepository) ListBySessionID(ctx context.Context, sessionID string) ([]domain.Message, error) {
	const query = `
		SELECT id, user_id, session_id, content, role, created_at
		FROM messages
		WHERE session_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.SessionID,
			&m.Content,
			&m.Role,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
