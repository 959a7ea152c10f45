package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"companion-backend/internal/config"
	"companion-backend/internal/middleware"
	"companion-backend/internal/models"
	"companion-backend/internal/services"
)

// CompanionHandler serves the progress and analytics panels plus the
// feature-toggle summary the client shell uses to decide which tabs to show.
type CompanionHandler struct {
	companion *services.CompanionService
	cfg       *config.Config
}

func NewCompanionHandler(companion *services.CompanionService, cfg *config.Config) *CompanionHandler {
	return &CompanionHandler{companion: companion, cfg: cfg}
}

func (h *CompanionHandler) Progress(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.EnableProgress {
		writeJSON(w, http.StatusForbidden, errorResp("FEATURE_DISABLED", "Progress tracking is disabled", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	progress, err := h.companion.ProgressData(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load progress data", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"progress": progress,
	})
}

func (h *CompanionHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.EnableAnalytics {
		writeJSON(w, http.StatusForbidden, errorResp("FEATURE_DISABLED", "Analytics is disabled", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	analytics, err := h.companion.AnalyticsData(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load analytics data", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"analytics": analytics,
	})
}

func (h *CompanionHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.EnableProgress {
		writeJSON(w, http.StatusForbidden, errorResp("FEATURE_DISABLED", "Progress tracking is disabled", r))
		return
	}

	var req models.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Title is required", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	goal, err := h.companion.CreateGoal(r.Context(), userID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create goal", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"goal": goal,
	})
}

func (h *CompanionHandler) UpdateGoalProgress(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.EnableProgress {
		writeJSON(w, http.StatusForbidden, errorResp("FEATURE_DISABLED", "Progress tracking is disabled", r))
		return
	}

	goalID, err := strconv.ParseInt(chi.URLParam(r, "goalID"), 10, 64)
	if err != nil || goalID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid goal id", r))
		return
	}

	var req models.UpdateGoalProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Progress < 0 || req.Progress > 100 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Progress must be between 0 and 100", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.companion.UpdateGoalProgress(r.Context(), userID, goalID, req.Progress); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update goal", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Goal updated successfully"})
}

func (h *CompanionHandler) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ConfigSummary{
		AIEnabled: h.cfg.OpenAIAPIKey != "" || h.cfg.ServiceBaseURL != "",
		Features: map[string]bool{
			"chat":      h.cfg.EnableChat,
			"progress":  h.cfg.EnableProgress,
			"analytics": h.cfg.EnableAnalytics,
		},
		ResponseDelay: h.cfg.ResponseDelay,
	})
}
