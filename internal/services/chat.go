package services

import (
	"context"
	"strings"
	"time"

	"companion-backend/internal/models"
)

type chatLogStore interface {
	Append(ctx context.Context, entry *models.InteractionLogEntry) error
}

type eventPublisher interface {
	PublishChatTurn(ctx context.Context, userID int64, userMessage, aiResponse string)
}

// ChatService sequences one chat turn: validate the caller, decode the
// submitted history, walk the responder chain, persist the exchange.
type ChatService struct {
	responders []Responder
	chatLog    chatLogStore
	sink       DiagSink
	events     eventPublisher
	now        func() time.Time
}

func NewChatService(responders []Responder, chatLog chatLogStore, sink DiagSink, events eventPublisher) *ChatService {
	return &ChatService{
		responders: responders,
		chatLog:    chatLog,
		sink:       sink,
		events:     events,
		now:        time.Now,
	}
}

// HandleChat processes one turn on behalf of authenticatedUserID. Once the
// identity check passes the result is always Success=true with some reply
// text: backend failures degrade to fixed apology messages rather than
// surfacing as errors, so the chat pane never shows a raw failure.
func (s *ChatService) HandleChat(ctx context.Context, req models.ChatRequest, authenticatedUserID int64) models.ChatResult {
	if strings.TrimSpace(req.Message) == "" {
		return models.ChatResult{ErrorDetail: "Message is required"}
	}
	if req.UserID != authenticatedUserID {
		return models.ChatResult{ErrorDetail: "Invalid user"}
	}

	history := DecodeHistory(req.History)
	reply := s.getReply(ctx, req.UserID, req.Message, history)

	entry := &models.InteractionLogEntry{
		UserID:      req.UserID,
		UserMessage: req.Message,
		AIResponse:  reply,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.chatLog.Append(ctx, entry); err != nil {
		// The turn already has a reply; losing the audit row must not
		// turn it into a user-facing failure.
		s.sink.Record(context.WithoutCancel(ctx), DiagEvent{
			Component: "chat_log",
			Reason:    "append_failed",
			Detail:    err.Error(),
			UserID:    req.UserID,
		})
	}

	if s.events != nil {
		s.events.PublishChatTurn(ctx, req.UserID, req.Message, reply)
	}

	return models.ChatResult{Success: true, ReplyText: reply}
}

// getReply walks the backends in order and returns the first usable reply.
// The proxy is tried first when configured; the direct-model responder is
// terminal and always produces text, so a turn is never left unanswered.
func (s *ChatService) getReply(ctx context.Context, userID int64, message string, history []models.ChatMessage) string {
	for _, r := range s.responders {
		if reply, ok := r.TryRespond(ctx, userID, message, history); ok {
			return reply
		}
	}
	return MsgNotConfigured
}
