package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goodjob/logger"
)

// WorkingsChannel carries working lifecycle events for downstream consumers
// (statistics, notification mails).
const WorkingsChannel = "workings-events"

// Event names.
const (
	WorkingCreated  = "working.created"
	WorkingArchived = "working.archived"
	WorkingReported = "working.reported"
)

// Event is the message published on WorkingsChannel.
type Event struct {
	Name      string    `json:"name"`
	WorkingID string    `json:"working_id"`
	CompanyID string    `json:"company_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher is the subset of a redis client the emitter needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Emitter publishes events to Redis pub/sub. Delivery is best-effort:
// failures are logged and never reach the caller.
type Emitter struct {
	pub     Publisher
	channel string
}

func NewEmitter(pub Publisher, channel string) *Emitter {
	if channel == "" {
		channel = WorkingsChannel
	}
	return &Emitter{pub: pub, channel: channel}
}

// Emit publishes ev, stamping its time when unset. It reports whether the
// event was handed to Redis.
func (e *Emitter) Emit(ctx context.Context, ev Event) bool {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		logger.Warn("marshal event", zap.String("event", ev.Name), zap.Error(err))
		return false
	}
	if err := e.pub.Publish(ctx, e.channel, data).Err(); err != nil {
		logger.Warn("publish event",
			zap.String("event", ev.Name),
			zap.String("working_id", ev.WorkingID),
			zap.Error(err),
		)
		return false
	}
	return true
}
