package handlers

import (
	"encoding/json"
	"net/http"

	"companion-backend/internal/middleware"
	"companion-backend/internal/models"
	"companion-backend/internal/services"
)

var (
	validPersonalities = map[string]bool{"friendly": true, "professional": true, "casual": true, "motivational": true}
	validStyles        = map[string]bool{"visual": true, "auditory": true, "kinesthetic": true, "reading": true}
	validDifficulties  = map[string]bool{"beginner": true, "intermediate": true, "advanced": true}
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	settings, err := h.settings.Get(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load settings", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"settings": settings,
	})
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if !validPersonalities[req.AIPersonality] {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid ai_personality", r))
		return
	}
	if !validStyles[req.LearningStyle] {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid learning_style", r))
		return
	}
	if !validDifficulties[req.DifficultyLevel] {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid difficulty_level", r))
		return
	}

	settings := &models.CompanionSettings{
		UserID:          userID,
		AIPersonality:   req.AIPersonality,
		LearningStyle:   req.LearningStyle,
		DifficultyLevel: req.DifficultyLevel,
		Notifications:   req.Notifications,
	}

	if err := h.settings.Save(r.Context(), settings); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save settings", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Settings saved successfully"})
}
