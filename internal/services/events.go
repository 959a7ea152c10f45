package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"companion-backend/internal/models"
)

// RedisEventPublisher pushes chat turn events to the per-user pub/sub
// channel the WebSocket hub subscribes to, so other open tabs can append
// the completed turn to their transcript.
type RedisEventPublisher struct {
	client *redis.Client
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{client: client}
}

func (p *RedisEventPublisher) PublishChatTurn(ctx context.Context, userID int64, userMessage, aiResponse string) {
	data, err := json.Marshal(models.WSMessage{
		Type: "chat_turn",
		Payload: models.ChatTurnEvent{
			UserMessage: userMessage,
			AIResponse:  aiResponse,
		},
	})
	if err != nil {
		return
	}

	channel := fmt.Sprintf("user_updates:%d", userID)
	if err := p.client.Publish(context.WithoutCancel(ctx), channel, string(data)).Err(); err != nil {
		log.Printf("event publish failed for user %d: %v", userID, err)
	}
}
