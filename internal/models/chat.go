package models

import "time"

// Message roles used when talking to a model backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single role-tagged message in a conversation.
// Ordering within a conversation is chronological.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryEntry is the client-side transcript format: the UI stores
// {sender, message} pairs and submits them as a serialized array.
type HistoryEntry struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// ChatRequest is the payload sent to the chat endpoint. History is the raw
// serialized transcript exactly as the client submitted it; decoding it is
// the orchestrator's job, not the transport's.
type ChatRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
	History string `json:"chat_history"`
}

// ChatResult is the orchestrator's outcome for one turn. Once identity
// validation passes, Success is always true and ReplyText carries either a
// model reply or a user-safe degradation message.
type ChatResult struct {
	Success     bool
	ReplyText   string
	ErrorDetail string
}

// InteractionLogEntry is one row of the append-only chat audit trail.
type InteractionLogEntry struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	CreatedAt   time.Time `json:"created_at"`
}
