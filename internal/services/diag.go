package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// DiagEvent records a silently degraded path. Every apology reply the chat
// hands to a user has a matching event here, so operators can tell "all
// fine" apart from "degraded behind a friendly message".
type DiagEvent struct {
	Component string    `json:"component"`
	Reason    string    `json:"reason"`
	Detail    string    `json:"detail,omitempty"`
	UserID    int64     `json:"user_id,omitempty"`
	At        time.Time `json:"at"`
}

type DiagSink interface {
	Record(ctx context.Context, event DiagEvent)
}

// LogSink writes diagnostics to the process log.
type LogSink struct{}

func (LogSink) Record(_ context.Context, event DiagEvent) {
	log.Printf("diag [%s] %s: %s", event.Component, event.Reason, event.Detail)
}

// RedisSink keeps the most recent diagnostics in a capped Redis list for
// operator inspection. Write failures are logged and otherwise ignored; the
// sink must never take a request down with it.
type RedisSink struct {
	client *redis.Client
	key    string
	max    int64
}

func NewRedisSink(client *redis.Client) *RedisSink {
	return &RedisSink{client: client, key: "companion:diagnostics", max: 500}
}

func (s *RedisSink) Record(ctx context.Context, event DiagEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, s.key, data)
	pipe.LTrim(ctx, s.key, 0, s.max-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("diag sink: redis write failed: %v", err)
	}
}

// MultiSink fans an event out to every sink.
type MultiSink []DiagSink

func (m MultiSink) Record(ctx context.Context, event DiagEvent) {
	for _, s := range m {
		s.Record(ctx, event)
	}
}
