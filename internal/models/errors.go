package models

// API error envelope shared by all handlers.

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// WSMessage is the envelope pushed to connected WebSocket clients.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ChatTurnEvent notifies other tabs of a completed chat turn.
type ChatTurnEvent struct {
	UserMessage string `json:"user_message"`
	AIResponse  string `json:"ai_response"`
}
