package services

import (
	"context"
	"errors"
	"testing"

	"companion-backend/internal/models"
)

type stubGoalStore struct {
	goals   []models.LearningGoal
	err     error
	created []*models.LearningGoal
	updates map[int64]int
}

func (s *stubGoalStore) ListActiveByUser(_ context.Context, _ int64) ([]models.LearningGoal, error) {
	return s.goals, s.err
}

func (s *stubGoalStore) Create(_ context.Context, g *models.LearningGoal) error {
	if s.err != nil {
		return s.err
	}
	g.ID = int64(len(s.created) + 1)
	s.created = append(s.created, g)
	return nil
}

func (s *stubGoalStore) UpdateProgress(_ context.Context, goalID, _ int64, progress int) error {
	if s.err != nil {
		return s.err
	}
	if s.updates == nil {
		s.updates = make(map[int64]int)
	}
	s.updates[goalID] = progress
	return nil
}

type stubRecommender struct {
	recs []string
	err  error
}

func (s *stubRecommender) Recommendations(_ context.Context, _ *models.CompanionSettings, _ []models.LearningGoal) ([]string, error) {
	return s.recs, s.err
}

type stubSettingsStore struct {
	settings *models.CompanionSettings
	err      error
	saved    []*models.CompanionSettings
}

func (s *stubSettingsStore) Get(_ context.Context, userID int64) (*models.CompanionSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.settings != nil {
		return s.settings, nil
	}
	return models.DefaultSettings(userID), nil
}

func (s *stubSettingsStore) Upsert(_ context.Context, settings *models.CompanionSettings) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, settings)
	return nil
}

func TestProgressData_StoredGoals(t *testing.T) {
	goals := []models.LearningGoal{{ID: 1, Title: "Finish Go course", Progress: 60, Status: "active"}}
	svc := NewCompanionService(&stubGoalStore{goals: goals}, nil, nil)

	data, err := svc.ProgressData(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Goals) != 1 || data.Goals[0].Title != "Finish Go course" {
		t.Errorf("expected stored goals to pass through, got %+v", data.Goals)
	}
	if len(data.Achievements) == 0 {
		t.Error("expected placeholder achievements")
	}
	if data.Stats.LearningTime == "" {
		t.Error("expected placeholder stats")
	}
}

func TestProgressData_PlaceholderGoals(t *testing.T) {
	svc := NewCompanionService(&stubGoalStore{}, nil, nil)

	data, err := svc.ProgressData(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Goals) != 2 {
		t.Fatalf("expected 2 placeholder goals, got %d", len(data.Goals))
	}
}

func TestProgressData_StoreError(t *testing.T) {
	svc := NewCompanionService(&stubGoalStore{err: errors.New("db down")}, nil, nil)

	if _, err := svc.ProgressData(context.Background(), 7); err == nil {
		t.Fatal("expected store error to surface")
	}
}

func TestAnalyticsData_NoInsights(t *testing.T) {
	svc := NewCompanionService(&stubGoalStore{}, nil, nil)

	data, err := svc.AnalyticsData(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Strengths) == 0 || len(data.Improvements) == 0 {
		t.Error("expected static strengths and improvements")
	}
	if len(data.Recommendations) != 3 {
		t.Errorf("expected 3 static recommendations, got %d", len(data.Recommendations))
	}
}

func TestAnalyticsData_InsightsRecommendations(t *testing.T) {
	settings := NewSettingsService(&stubSettingsStore{}, nil)
	insights := &stubRecommender{recs: []string{"Review graph algorithms", "Practice SQL joins"}}
	svc := NewCompanionService(&stubGoalStore{}, settings, insights)

	data, err := svc.AnalyticsData(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Recommendations) != 2 || data.Recommendations[0] != "Review graph algorithms" {
		t.Errorf("expected model recommendations, got %v", data.Recommendations)
	}
}

func TestAnalyticsData_InsightsFailureFallsBack(t *testing.T) {
	settings := NewSettingsService(&stubSettingsStore{}, nil)
	insights := &stubRecommender{err: errors.New("quota exceeded")}
	svc := NewCompanionService(&stubGoalStore{}, settings, insights)

	data, err := svc.AnalyticsData(context.Background(), 7)
	if err != nil {
		t.Fatalf("insights failure must not fail the panel: %v", err)
	}
	if len(data.Recommendations) != 3 {
		t.Errorf("expected static fallback recommendations, got %v", data.Recommendations)
	}
}

func TestCreateGoal(t *testing.T) {
	store := &stubGoalStore{}
	svc := NewCompanionService(store, nil, nil)

	goal, err := svc.CreateGoal(context.Background(), 7, models.CreateGoalRequest{Title: "Learn Go", Description: "stdlib first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal.ID == 0 {
		t.Error("expected an assigned goal id")
	}
	if goal.UserID != 7 || goal.Status != "active" {
		t.Errorf("unexpected goal: %+v", goal)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 created goal, got %d", len(store.created))
	}
}

func TestUpdateGoalProgress(t *testing.T) {
	store := &stubGoalStore{}
	svc := NewCompanionService(store, nil, nil)

	if err := svc.UpdateGoalProgress(context.Background(), 7, 3, 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.updates[3] != 80 {
		t.Errorf("expected goal 3 at 80%%, got %v", store.updates)
	}
}

func TestSettingsService_SaveWritesStore(t *testing.T) {
	store := &stubSettingsStore{}
	svc := NewSettingsService(store, nil)

	settings := models.DefaultSettings(7)
	settings.AIPersonality = "professional"
	if err := svc.Save(context.Background(), settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.saved) != 1 || store.saved[0].AIPersonality != "professional" {
		t.Errorf("expected settings to reach the store, got %+v", store.saved)
	}
}

func TestSettingsService_GetWithoutCache(t *testing.T) {
	store := &stubSettingsStore{settings: &models.CompanionSettings{UserID: 7, AIPersonality: "casual"}}
	svc := NewSettingsService(store, nil)

	got, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AIPersonality != "casual" {
		t.Errorf("expected store settings, got %+v", got)
	}
}
