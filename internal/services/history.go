package services

import (
	"encoding/json"

	"companion-backend/internal/models"
)

// historyWindow caps how many prior messages are sent upstream per turn.
// This bounds token usage; it is unrelated to the client-side storage cap.
const historyWindow = 10

// DecodeHistory parses the client-submitted transcript, an array of
// {sender, message} pairs. Malformed input decodes to an empty conversation,
// never an error: the chat must tolerate garbage history gracefully.
func DecodeHistory(raw string) []models.ChatMessage {
	if raw == "" {
		return nil
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil
	}

	messages := make([]models.ChatMessage, 0, len(entries))
	for _, e := range entries {
		role := models.RoleAssistant
		if e.Sender == "user" {
			role = models.RoleUser
		}
		messages = append(messages, models.ChatMessage{Role: role, Content: e.Message})
	}
	return messages
}

// EncodeHistory renders messages back into the client transcript format.
func EncodeHistory(history []models.ChatMessage) string {
	data, _ := json.Marshal(historyEntries(history))
	return string(data)
}

func historyEntries(history []models.ChatMessage) []models.HistoryEntry {
	entries := make([]models.HistoryEntry, 0, len(history))
	for _, m := range history {
		sender := "ai"
		if m.Role == models.RoleUser {
			sender = "user"
		}
		entries = append(entries, models.HistoryEntry{Sender: sender, Message: m.Content})
	}
	return entries
}

// windowHistory keeps the most recent n messages in original order.
func windowHistory(history []models.ChatMessage, n int) []models.ChatMessage {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
