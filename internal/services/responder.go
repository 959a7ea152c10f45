package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"companion-backend/internal/config"
	"companion-backend/internal/models"
)

// Fixed user-safe replies. Backend failures are absorbed behind these; the
// real cause goes to the diagnostics sink, never to the chat pane.
const (
	MsgNotConfigured     = "I'm sorry, but the AI service is not properly configured. Please contact your administrator."
	MsgTroubleProcessing = "I'm sorry, I'm having trouble processing your request right now. Please try again later."
	MsgCouldNotGenerate  = "I'm sorry, I couldn't generate a proper response. Please try rephrasing your question."
)

const systemPrompt = "You are an AI Learning Companion designed to help students with their learning journey. " +
	"You are friendly, encouraging, and knowledgeable about educational topics. " +
	"Provide helpful, accurate, and personalized responses to help students learn effectively."

const (
	proxyTimeout  = 20 * time.Second
	openAITimeout = 30 * time.Second

	openAIEndpoint    = "https://api.openai.com/v1/chat/completions"
	openAIMaxTokens   = 500
	openAITemperature = 0.7

	maxResponseBody = 1 << 20
)

// Responder is one backend that may produce a reply for a chat turn.
// ok == false means "no usable response, try the next backend in the chain".
// Implementations read their configuration fresh on every call so admin
// changes apply between requests.
type Responder interface {
	TryRespond(ctx context.Context, userID int64, message string, history []models.ChatMessage) (reply string, ok bool)
}

// ProxyResponder forwards the turn to an operator-configured intermediary
// service. It never surfaces an error: any failure is recorded and treated
// as "no usable response" so the chain falls through silently.
type ProxyResponder struct {
	provider config.Provider
	client   *http.Client
	sink     DiagSink
}

func NewProxyResponder(provider config.Provider, sink DiagSink) *ProxyResponder {
	return &ProxyResponder{
		provider: provider,
		client:   &http.Client{Timeout: proxyTimeout},
		sink:     sink,
	}
}

func (p *ProxyResponder) TryRespond(ctx context.Context, userID int64, message string, history []models.ChatMessage) (string, bool) {
	base := strings.TrimSpace(p.provider.Get(config.KeyServiceBaseURL))
	if base == "" {
		return "", false
	}

	endpoint := strings.TrimRight(base, "/") + "/chat"
	payload, err := json.Marshal(map[string]interface{}{
		"message":      message,
		"user_id":      userID,
		"chat_history": historyEntries(history),
	})
	if err != nil {
		return "", false
	}

	callCtx, cancel := context.WithTimeout(ctx, proxyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		p.record(ctx, userID, "request_build_failed", err.Error())
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.record(ctx, userID, "request_failed", err.Error())
		return "", false
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if resp.StatusCode != http.StatusOK {
		p.record(ctx, userID, "bad_status", fmt.Sprintf("HTTP %d - %s", resp.StatusCode, raw))
		return "", false
	}

	var decoded struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded.Response == "" {
		p.record(ctx, userID, "no_response_field", string(raw))
		return "", false
	}

	return decoded.Response, true
}

func (p *ProxyResponder) record(ctx context.Context, userID int64, reason, detail string) {
	p.sink.Record(context.WithoutCancel(ctx), DiagEvent{
		Component: "proxy",
		Reason:    reason,
		Detail:    detail,
		UserID:    userID,
	})
}

// OpenAIResponder is the terminal backend: it always returns a reply, even
// if that reply is a fixed degradation message.
type OpenAIResponder struct {
	provider config.Provider
	client   *http.Client
	sink     DiagSink
	endpoint string
}

func NewOpenAIResponder(provider config.Provider, sink DiagSink) *OpenAIResponder {
	return &OpenAIResponder{
		provider: provider,
		client:   &http.Client{Timeout: openAITimeout},
		sink:     sink,
		endpoint: openAIEndpoint,
	}
}

type openAIRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float64              `json:"temperature"`
}

func (o *OpenAIResponder) TryRespond(ctx context.Context, userID int64, message string, history []models.ChatMessage) (string, bool) {
	apiKey := strings.TrimSpace(o.provider.Get(config.KeyOpenAIAPIKey))
	if apiKey == "" {
		o.record(ctx, userID, "not_configured", "openai_api_key is empty")
		return MsgNotConfigured, true
	}

	messages := make([]models.ChatMessage, 0, historyWindow+2)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: systemPrompt})
	messages = append(messages, windowHistory(history, historyWindow)...)
	messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: message})

	body, err := json.Marshal(openAIRequest{
		Model:       o.provider.Get(config.KeyAIModel),
		Messages:    messages,
		MaxTokens:   openAIMaxTokens,
		Temperature: openAITemperature,
	})
	if err != nil {
		o.record(ctx, userID, "request_build_failed", err.Error())
		return MsgTroubleProcessing, true
	}

	callCtx, cancel := context.WithTimeout(ctx, openAITimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		o.record(ctx, userID, "request_build_failed", err.Error())
		return MsgTroubleProcessing, true
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		o.record(ctx, userID, "request_failed", err.Error())
		return MsgTroubleProcessing, true
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if resp.StatusCode != http.StatusOK {
		o.record(ctx, userID, "bad_status", fmt.Sprintf("HTTP %d - %s", resp.StatusCode, raw))
		return MsgTroubleProcessing, true
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil || len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == "" {
		o.record(ctx, userID, "malformed_payload", string(raw))
		return MsgCouldNotGenerate, true
	}

	return decoded.Choices[0].Message.Content, true
}

func (o *OpenAIResponder) record(ctx context.Context, userID int64, reason, detail string) {
	o.sink.Record(context.WithoutCancel(ctx), DiagEvent{
		Component: "openai",
		Reason:    reason,
		Detail:    detail,
		UserID:    userID,
	})
}
