package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"companion-backend/internal/models"
)

type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get returns the stored settings, or the defaults when the user has never
// saved any.
func (r *SettingsRepo) Get(ctx context.Context, userID int64) (*models.CompanionSettings, error) {
	s := &models.CompanionSettings{}
	query := `
		SELECT user_id, ai_personality, learning_style, difficulty_level, notifications, updated_at
		FROM companion_settings
		WHERE user_id = $1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.AIPersonality, &s.LearningStyle, &s.DifficultyLevel, &s.Notifications, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultSettings(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Upsert writes the settings record, last write wins.
func (r *SettingsRepo) Upsert(ctx context.Context, s *models.CompanionSettings) error {
	query := `
		INSERT INTO companion_settings (user_id, ai_personality, learning_style, difficulty_level, notifications, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET ai_personality = EXCLUDED.ai_personality,
			learning_style = EXCLUDED.learning_style,
			difficulty_level = EXCLUDED.difficulty_level,
			notifications = EXCLUDED.notifications,
			updated_at = NOW()
		RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		s.UserID, s.AIPersonality, s.LearningStyle, s.DifficultyLevel, s.Notifications,
	).Scan(&s.UpdatedAt)
}
