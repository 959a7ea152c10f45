package models

import "time"

// LearningGoal is a row of the learning_goals table shown on the progress
// panel.
type LearningGoal struct {
	ID          int64      `json:"-"`
	UserID      int64      `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Progress    int        `json:"progress"`
	Status      string     `json:"status"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	CreatedAt   time.Time  `json:"-"`
}

type CreateGoalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
}

type UpdateGoalProgressRequest struct {
	Progress int `json:"progress"`
}

type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type ProgressStats struct {
	LearningTime     string `json:"learning_time"`
	CompletedCourses string `json:"completed_courses"`
	CurrentStreak    string `json:"current_streak"`
}

// ProgressData is the payload of the progress panel. Achievements and stats
// are static placeholder values until a real analytics backend exists.
type ProgressData struct {
	Goals        []LearningGoal `json:"goals"`
	Achievements []Achievement  `json:"achievements"`
	Stats        ProgressStats  `json:"stats"`
}

// AnalyticsData is the payload of the analytics panel.
type AnalyticsData struct {
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
}

// ConfigSummary describes which companion features are live, for the client
// shell to decide which tabs to render.
type ConfigSummary struct {
	AIEnabled     bool            `json:"ai_enabled"`
	Features      map[string]bool `json:"features"`
	ResponseDelay int             `json:"response_delay"`
}
