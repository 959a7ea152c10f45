package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"companion-backend/internal/models"
)

type GoalRepo struct {
	pool *pgxpool.Pool
}

func NewGoalRepo(pool *pgxpool.Pool) *GoalRepo {
	return &GoalRepo{pool: pool}
}

func (r *GoalRepo) ListActiveByUser(ctx context.Context, userID int64) ([]models.LearningGoal, error) {
	query := `
		SELECT id, user_id, title, description, progress, status, target_date, created_at
		FROM learning_goals
		WHERE user_id = $1 AND status = 'active'
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]models.LearningGoal, 0)
	for rows.Next() {
		var g models.LearningGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Progress, &g.Status, &g.TargetDate, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

func (r *GoalRepo) Create(ctx context.Context, g *models.LearningGoal) error {
	query := `
		INSERT INTO learning_goals (user_id, title, description, progress, status, target_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	if g.Status == "" {
		g.Status = "active"
	}

	return r.pool.QueryRow(ctx, query,
		g.UserID, g.Title, g.Description, g.Progress, g.Status, g.TargetDate,
	).Scan(&g.ID, &g.CreatedAt)
}

func (r *GoalRepo) UpdateProgress(ctx context.Context, goalID, userID int64, progress int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE learning_goals
		SET progress = $1,
			status = CASE WHEN $1 >= 100 THEN 'completed' ELSE status END,
			updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, progress, goalID, userID)
	return err
}
