package models

import "time"

// Default companion settings applied when a user has never saved any.
const (
	DefaultPersonality     = "friendly"
	DefaultLearningStyle   = "visual"
	DefaultDifficultyLevel = "intermediate"
)

// CompanionSettings is a per-user preference record. Last write wins; the
// chat pipeline only ever reads it.
type CompanionSettings struct {
	UserID          int64     `json:"user_id"`
	AIPersonality   string    `json:"ai_personality"`
	LearningStyle   string    `json:"learning_style"`
	DifficultyLevel string    `json:"difficulty_level"`
	Notifications   bool      `json:"notifications"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultSettings returns the record served when no row exists yet.
func DefaultSettings(userID int64) *CompanionSettings {
	return &CompanionSettings{
		UserID:          userID,
		AIPersonality:   DefaultPersonality,
		LearningStyle:   DefaultLearningStyle,
		DifficultyLevel: DefaultDifficultyLevel,
		Notifications:   true,
	}
}

type UpdateSettingsRequest struct {
	AIPersonality   string `json:"ai_personality"`
	LearningStyle   string `json:"learning_style"`
	DifficultyLevel string `json:"difficulty_level"`
	Notifications   bool   `json:"notifications"`
}
