package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"companion-backend/internal/middleware"
	"companion-backend/internal/models"
)

type chatOrchestrator interface {
	HandleChat(ctx context.Context, req models.ChatRequest, authenticatedUserID int64) models.ChatResult
}

type chatLogReader interface {
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.InteractionLogEntry, error)
}

type ChatHandler struct {
	chat       chatOrchestrator
	chatLog    chatLogReader
	maxHistory int
	enabled    bool
}

func NewChatHandler(chat chatOrchestrator, chatLog chatLogReader, maxHistory int, enabled bool) *ChatHandler {
	return &ChatHandler{
		chat:       chat,
		chatLog:    chatLog,
		maxHistory: maxHistory,
		enabled:    enabled,
	}
}

// chatEnvelope mirrors the envelope the legacy client expects: the HTTP
// status is 200 for every processed turn, success/message carry the outcome.
type chatEnvelope struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		writeJSON(w, http.StatusForbidden, errorResp("FEATURE_DISABLED", "Chat is disabled", r))
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	result := h.chat.HandleChat(r.Context(), req, userID)

	if !result.Success {
		writeJSON(w, http.StatusOK, chatEnvelope{Message: result.ErrorDetail})
		return
	}

	writeJSON(w, http.StatusOK, chatEnvelope{
		Success:  true,
		Message:  "Chat processed successfully",
		Response: result.ReplyText,
	})
}

// History returns the caller's recent interaction log entries so a fresh
// tab can bootstrap its transcript.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		writeJSON(w, http.StatusForbidden, errorResp("FEATURE_DISABLED", "Chat is disabled", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	entries, err := h.chatLog.ListByUser(r.Context(), userID, h.maxHistory)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load chat history", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}
