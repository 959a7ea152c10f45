package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"companion-backend/internal/models"
)

// ChatLogRepo is the append-only interaction log. Entries are never updated
// or deleted here; per-user ordering comes from created_at.
type ChatLogRepo struct {
	pool *pgxpool.Pool
}

func NewChatLogRepo(pool *pgxpool.Pool) *ChatLogRepo {
	return &ChatLogRepo{pool: pool}
}

func (r *ChatLogRepo) Append(ctx context.Context, entry *models.InteractionLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO chat_log (user_id, user_message, ai_response, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return r.pool.QueryRow(ctx, query,
		entry.UserID, entry.UserMessage, entry.AIResponse, entry.CreatedAt,
	).Scan(&entry.ID)
}

// ListByUser returns the most recent entries for a user, newest first.
func (r *ChatLogRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.InteractionLogEntry, error) {
	query := `
		SELECT id, user_id, user_message, ai_response, created_at
		FROM chat_log
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.InteractionLogEntry, 0)
	for rows.Next() {
		entry := &models.InteractionLogEntry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.UserMessage, &entry.AIResponse, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
