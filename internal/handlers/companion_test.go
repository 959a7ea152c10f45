package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"companion-backend/internal/config"
	"companion-backend/internal/models"
	"companion-backend/internal/services"
)

type stubGoalStore struct {
	goals   []models.LearningGoal
	created []*models.LearningGoal
	updates map[int64]int
}

func (s *stubGoalStore) ListActiveByUser(_ context.Context, _ int64) ([]models.LearningGoal, error) {
	return s.goals, nil
}

func (s *stubGoalStore) Create(_ context.Context, g *models.LearningGoal) error {
	g.ID = int64(len(s.created) + 1)
	s.created = append(s.created, g)
	return nil
}

func (s *stubGoalStore) UpdateProgress(_ context.Context, goalID, _ int64, progress int) error {
	if s.updates == nil {
		s.updates = make(map[int64]int)
	}
	s.updates[goalID] = progress
	return nil
}

func newCompanionHandler(cfg *config.Config) *CompanionHandler {
	companion := services.NewCompanionService(&stubGoalStore{}, nil, nil)
	return NewCompanionHandler(companion, cfg)
}

func TestProgress_Enabled(t *testing.T) {
	h := newCompanionHandler(&config.Config{EnableProgress: true})

	w := httptest.NewRecorder()
	h.Progress(w, authedRequest(http.MethodGet, "/api/v1/progress", "", 7))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Progress models.ProgressData `json:"progress"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Progress.Goals) == 0 || len(resp.Progress.Achievements) == 0 {
		t.Errorf("expected populated progress panel, got %+v", resp.Progress)
	}
}

func TestProgress_Disabled(t *testing.T) {
	h := newCompanionHandler(&config.Config{EnableProgress: false})

	w := httptest.NewRecorder()
	h.Progress(w, authedRequest(http.MethodGet, "/api/v1/progress", "", 7))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAnalytics_Disabled(t *testing.T) {
	h := newCompanionHandler(&config.Config{EnableAnalytics: false})

	w := httptest.NewRecorder()
	h.Analytics(w, authedRequest(http.MethodGet, "/api/v1/analytics", "", 7))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestCreateGoal_Valid(t *testing.T) {
	store := &stubGoalStore{}
	h := NewCompanionHandler(services.NewCompanionService(store, nil, nil), &config.Config{EnableProgress: true})

	body := `{"title":"Learn Go","description":"stdlib first"}`
	w := httptest.NewRecorder()
	h.CreateGoal(w, authedRequest(http.MethodPost, "/api/v1/progress/goals", body, 7))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.created) != 1 || store.created[0].UserID != 7 {
		t.Errorf("goal never reached the store: %+v", store.created)
	}
}

func TestCreateGoal_MissingTitle(t *testing.T) {
	store := &stubGoalStore{}
	h := NewCompanionHandler(services.NewCompanionService(store, nil, nil), &config.Config{EnableProgress: true})

	w := httptest.NewRecorder()
	h.CreateGoal(w, authedRequest(http.MethodPost, "/api/v1/progress/goals", `{"title":"  "}`, 7))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(store.created) != 0 {
		t.Error("invalid goal must not reach the store")
	}
}

func TestUpdateGoalProgress_Valid(t *testing.T) {
	store := &stubGoalStore{}
	h := NewCompanionHandler(services.NewCompanionService(store, nil, nil), &config.Config{EnableProgress: true})

	r := authedRequest(http.MethodPut, "/api/v1/progress/goals/3", `{"progress":80}`, 7)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("goalID", "3")
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.UpdateGoalProgress(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if store.updates[3] != 80 {
		t.Errorf("expected goal 3 at 80%%, got %v", store.updates)
	}
}

func TestUpdateGoalProgress_OutOfRange(t *testing.T) {
	store := &stubGoalStore{}
	h := NewCompanionHandler(services.NewCompanionService(store, nil, nil), &config.Config{EnableProgress: true})

	r := authedRequest(http.MethodPut, "/api/v1/progress/goals/3", `{"progress":150}`, 7)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("goalID", "3")
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.UpdateGoalProgress(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(store.updates) != 0 {
		t.Error("out-of-range progress must not reach the store")
	}
}

func TestConfigSummary(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.Config
		aiEnabled bool
	}{
		{"no backend configured", config.Config{}, false},
		{"openai key only", config.Config{OpenAIAPIKey: "sk-test"}, true},
		{"proxy only", config.Config{ServiceBaseURL: "http://proxy.local"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.EnableChat = true
			tc.cfg.ResponseDelay = 2
			h := newCompanionHandler(&tc.cfg)

			w := httptest.NewRecorder()
			h.Config(w, httptest.NewRequest(http.MethodGet, "/api/v1/companion/config", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}

			var summary models.ConfigSummary
			if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if summary.AIEnabled != tc.aiEnabled {
				t.Errorf("expected ai_enabled=%v, got %v", tc.aiEnabled, summary.AIEnabled)
			}
			if !summary.Features["chat"] {
				t.Error("expected chat feature flag to be set")
			}
			if summary.ResponseDelay != 2 {
				t.Errorf("expected response_delay 2, got %d", summary.ResponseDelay)
			}
		})
	}
}
