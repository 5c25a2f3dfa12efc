package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// MutualMatchEvent is published exactly once per pair, at the moment the
// pair transitions to mutual. The realtime transport consumes it to open the
// conversation for both members.
type MutualMatchEvent struct {
	EventID            string    `json:"event_id"`
	PairKey            string    `json:"pair_key"`
	ChatRoomID         string    `json:"chat_room_id"`
	CompatibilityScore int       `json:"compatibility_score"`
	OccurredAt         time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishMutualMatch(ctx context.Context, event *MutualMatchEvent) error
}

// NewMutualMatchEvent stamps the event with a fresh id and timestamp.
func NewMutualMatchEvent(pairKey, chatRoomID string, score int) *MutualMatchEvent {
	return &MutualMatchEvent{
		EventID:            uuid.NewString(),
		PairKey:            pairKey,
		ChatRoomID:         chatRoomID,
		CompatibilityScore: score,
		OccurredAt:         time.Now().UTC(),
	}
}

// redisEventPublisher publishes match events to a Redis pub/sub channel.
type redisEventPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisEventPublisher(client *redis.Client, channel string) EventPublisher {
	return &redisEventPublisher{client: client, channel: channel}
}

func (p *redisEventPublisher) PublishMutualMatch(ctx context.Context, event *MutualMatchEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal match event: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish match event: %w", err)
	}
	return nil
}

// logEventPublisher is the fallback when Redis is not configured
// (development mode).
type logEventPublisher struct{}

func NewLogEventPublisher() EventPublisher {
	return logEventPublisher{}
}

func (logEventPublisher) PublishMutualMatch(_ context.Context, event *MutualMatchEvent) error {
	log.Printf("mutual match %s (room %s, score %d)", event.PairKey, event.ChatRoomID, event.CompatibilityScore)
	return nil
}
