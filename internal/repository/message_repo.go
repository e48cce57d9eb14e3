package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"chat-relay/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) error
	ListByCategory(ctx context.Context, category string) ([]domain.Message, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Create(ctx context.Context, message domain.Message) error {
	const query = `
		INSERT INTO messages (id, user_id, display_name, body, avatar_ref, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var avatarRef interface{}
	if message.AvatarRef != "" {
		avatarRef = message.AvatarRef
	}

	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.UserID,
		message.DisplayName,
		message.Body,
		avatarRef,
		message.Category,
		message.CreatedAt,
	)
	return err
}

func (r *PgMessageRepository) ListByCategory(ctx context.Context, category string) ([]domain.Message, error) {
	// seq es bigserial: desempata timestamps iguales por orden de inserción.
	const query = `
		SELECT id, user_id, display_name, body, avatar_ref, category, created_at
		FROM messages
		WHERE category = $1
		ORDER BY created_at ASC, seq ASC
	`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var avatarRef *string

		err = rows.Scan(
			&msg.ID,
			&msg.UserID,
			&msg.DisplayName,
			&msg.Body,
			&avatarRef,
			&msg.Category,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if avatarRef != nil {
			msg.AvatarRef = *avatarRef
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
