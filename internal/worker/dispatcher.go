package worker

import (
	"context"
	"encoding/json"

	"github.com/LeZelote01/stock-manager/internal/events"

	"github.com/redis/go-redis/v9"
)

const (
	QueueAudit         = "events:audit"
	QueueNotifications = "events:notifications"
)

// Dispatcher enqueues audit and notification events into Redis lists.
// The worker pool dequeues them via BRPOP and fans them out to the delivery
// channels. Implements events.Emitter.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

func (d *Dispatcher) EmitAudit(ctx context.Context, ev events.AuditEvent) error {
	return d.enqueue(ctx, QueueAudit, ev)
}

func (d *Dispatcher) EmitNotification(ctx context.Context, ev events.NotificationEvent) error {
	return d.enqueue(ctx, QueueNotifications, ev)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue string, payload interface{}) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

var _ events.Emitter = (*Dispatcher)(nil)
