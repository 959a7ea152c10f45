package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"companion-backend/internal/models"
	"companion-backend/internal/services"
)

type stubSettingsStore struct {
	saved *models.CompanionSettings
}

func (s *stubSettingsStore) Get(_ context.Context, userID int64) (*models.CompanionSettings, error) {
	return models.DefaultSettings(userID), nil
}

func (s *stubSettingsStore) Upsert(_ context.Context, settings *models.CompanionSettings) error {
	s.saved = settings
	return nil
}

func TestSettingsGet_Defaults(t *testing.T) {
	h := NewSettingsHandler(services.NewSettingsService(&stubSettingsStore{}, nil))

	w := httptest.NewRecorder()
	h.Get(w, authedRequest(http.MethodGet, "/api/v1/user/settings", "", 7))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Settings models.CompanionSettings `json:"settings"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Settings.AIPersonality != models.DefaultPersonality {
		t.Errorf("expected default personality, got %q", resp.Settings.AIPersonality)
	}
	if !resp.Settings.Notifications {
		t.Error("notifications default to enabled")
	}
}

func TestSettingsUpdate_Valid(t *testing.T) {
	store := &stubSettingsStore{}
	h := NewSettingsHandler(services.NewSettingsService(store, nil))

	body := `{"ai_personality":"professional","learning_style":"auditory","difficulty_level":"advanced","notifications":false}`
	w := httptest.NewRecorder()
	h.Update(w, authedRequest(http.MethodPut, "/api/v1/user/settings", body, 7))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if store.saved == nil {
		t.Fatal("settings never reached the store")
	}
	if store.saved.UserID != 7 {
		t.Errorf("settings must be keyed by the authenticated user, got %d", store.saved.UserID)
	}
	if store.saved.AIPersonality != "professional" || store.saved.Notifications {
		t.Errorf("unexpected saved settings: %+v", store.saved)
	}
}

func TestSettingsUpdate_InvalidEnum(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad personality", `{"ai_personality":"sassy","learning_style":"visual","difficulty_level":"beginner"}`},
		{"bad style", `{"ai_personality":"friendly","learning_style":"osmosis","difficulty_level":"beginner"}`},
		{"bad difficulty", `{"ai_personality":"friendly","learning_style":"visual","difficulty_level":"impossible"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubSettingsStore{}
			h := NewSettingsHandler(services.NewSettingsService(store, nil))

			w := httptest.NewRecorder()
			h.Update(w, authedRequest(http.MethodPut, "/api/v1/user/settings", tc.body, 7))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if store.saved != nil {
				t.Error("invalid settings must not reach the store")
			}
		})
	}
}

func TestSettingsUpdate_InvalidBody(t *testing.T) {
	h := NewSettingsHandler(services.NewSettingsService(&stubSettingsStore{}, nil))

	w := httptest.NewRecorder()
	h.Update(w, authedRequest(http.MethodPut, "/api/v1/user/settings", "{not json", 7))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
