package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/mobkc/pkg/tracker"
	"github.com/redis/go-redis/v9"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeTargetSwitched EventType = EventType(tracker.ChangeTargetSwitched)
	EventTypeTargetCleared  EventType = EventType(tracker.ChangeTargetCleared)
	EventTypeKillRecorded   EventType = EventType(tracker.ChangeKillRecorded)
	EventTypeCountAdjusted  EventType = EventType(tracker.ChangeCountAdjusted)
)

// Event is the JSON payload published for each tracker change
type Event struct {
	Type      EventType              `json:"type"`
	SessionID string                 `json:"session_id"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Broadcaster publishes tracker changes to Redis Pub/Sub so other
// processes (stream overlays, bots) can follow along. It is one-way:
// nothing published here ever feeds back into a tracker.
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
	sessionID   uuid.UUID
	channel     string
}

// Ensure Broadcaster implements tracker.Notifier
var _ tracker.Notifier = (*Broadcaster)(nil)

// NewBroadcaster creates a broadcaster for one client session
func NewBroadcaster(redisClient *redis.Client, group string, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
		sessionID:   uuid.New(),
		channel:     Channel(group),
	}
}

// Channel is the Pub/Sub channel for a settings group
func Channel(group string) string {
	return fmt.Sprintf("kc-events:%s", group)
}

// SessionID identifies this client session in published events
func (b *Broadcaster) SessionID() uuid.UUID {
	return b.sessionID
}

// Notify publishes c
func (b *Broadcaster) Notify(ctx context.Context, c tracker.Change) error {
	data := map[string]interface{}{
		"count": c.Count,
	}
	if c.Name != "" {
		data["name"] = c.Name
	}
	if c.Previous != "" {
		data["previous"] = c.Previous
	}
	if c.Kind == tracker.ChangeCountAdjusted {
		data["delta"] = c.Delta
	}

	return b.publish(ctx, Event{
		Type:      EventType(c.Kind),
		SessionID: b.sessionID.String(),
		Timestamp: c.At,
		Data:      data,
	})
}

func (b *Broadcaster) publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event", event)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", b.channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", b.channel,
		"event_type", event.Type,
		"session_id", event.SessionID,
	)

	return nil
}
