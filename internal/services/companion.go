package services

import (
	"context"
	"log"

	"companion-backend/internal/models"
)

type goalStore interface {
	ListActiveByUser(ctx context.Context, userID int64) ([]models.LearningGoal, error)
	Create(ctx context.Context, g *models.LearningGoal) error
	UpdateProgress(ctx context.Context, goalID, userID int64, progress int) error
}

type recommender interface {
	Recommendations(ctx context.Context, settings *models.CompanionSettings, goals []models.LearningGoal) ([]string, error)
}

// CompanionService assembles the progress and analytics panels. Stats,
// achievements, strengths and improvements are placeholder values until a
// real analytics backend exists; goals come from the database and
// recommendations from the insights model when one is configured.
type CompanionService struct {
	goals    goalStore
	settings *SettingsService
	insights recommender
}

func NewCompanionService(goals goalStore, settings *SettingsService, insights recommender) *CompanionService {
	return &CompanionService{goals: goals, settings: settings, insights: insights}
}

func (s *CompanionService) ProgressData(ctx context.Context, userID int64) (*models.ProgressData, error) {
	goals, err := s.goals.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		goals = placeholderGoals()
	}

	return &models.ProgressData{
		Goals: goals,
		Achievements: []models.Achievement{
			{Title: "First Course Completed", Description: "Completed your first online course", Date: "2025-01-15"},
			{Title: "Week Streak", Description: "Studied for 7 consecutive days", Date: "2025-01-20"},
		},
		Stats: models.ProgressStats{
			LearningTime:     "12.5",
			CompletedCourses: "3",
			CurrentStreak:    "5",
		},
	}, nil
}

func (s *CompanionService) AnalyticsData(ctx context.Context, userID int64) (*models.AnalyticsData, error) {
	data := &models.AnalyticsData{
		Strengths: []string{
			"Strong in problem-solving",
			"Excellent time management",
			"Good at visual learning",
		},
		Improvements: []string{
			"Focus on practical applications",
			"Try different learning methods",
			"Increase study consistency",
		},
		Recommendations: staticRecommendations(),
	}

	if s.insights == nil {
		return data, nil
	}

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		settings = models.DefaultSettings(userID)
	}
	goals, err := s.goals.ListActiveByUser(ctx, userID)
	if err != nil {
		goals = nil
	}

	recommendations, err := s.insights.Recommendations(ctx, settings, goals)
	if err != nil {
		log.Printf("insights: falling back to static recommendations for user %d: %v", userID, err)
		return data, nil
	}

	data.Recommendations = recommendations
	return data, nil
}

// CreateGoal stores a new active goal for the user.
func (s *CompanionService) CreateGoal(ctx context.Context, userID int64, req models.CreateGoalRequest) (*models.LearningGoal, error) {
	goal := &models.LearningGoal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Status:      "active",
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateGoalProgress sets a goal's completion percentage. The store marks
// the goal completed once progress reaches 100.
func (s *CompanionService) UpdateGoalProgress(ctx context.Context, userID, goalID int64, progress int) error {
	return s.goals.UpdateProgress(ctx, goalID, userID, progress)
}

func placeholderGoals() []models.LearningGoal {
	return []models.LearningGoal{
		{Title: "Complete Python Course", Progress: 75, Description: "Learn Python programming fundamentals", Status: "active"},
		{Title: "Read 5 Books This Month", Progress: 40, Description: "Expand knowledge through reading", Status: "active"},
	}
}

func staticRecommendations() []string {
	return []string{
		"Try hands-on coding exercises",
		"Join study groups for collaboration",
		"Set daily learning goals",
	}
}
