package worker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Pub/sub channels the external delivery collaborators subscribe to:
// the audit-log writer consumes ChannelAudit, the real-time notifier
// (websocket gateway) consumes ChannelNotifications.
const (
	ChannelAudit         = "stream:audit"
	ChannelNotifications = "stream:notifications"
)

var queueToChannel = map[string]string{
	QueueAudit:         ChannelAudit,
	QueueNotifications: ChannelNotifications,
}

// StartWorkerPool launches numWorkers goroutines consuming both event queues
// and republishing each payload on its pub/sub channel. Each goroutine blocks
// on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int) {
	queues := []string{QueueAudit, QueueNotifications}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			forwardEvent(ctx, rdb, result[0], result[1])
		}
	}
}

// forwardEvent publishes one dequeued payload on the matching channel.
// A delivery failure is logged and dropped — it must never surface back into
// the withdrawal write path.
func forwardEvent(ctx context.Context, rdb *redis.Client, queue, raw string) {
	channel, ok := queueToChannel[queue]
	if !ok {
		log.Warn().Str("queue", queue).Msg("event from unknown queue dropped")
		return
	}
	if err := rdb.Publish(ctx, channel, raw).Err(); err != nil {
		log.Error().Str("channel", channel).Err(err).Msg("failed to publish event")
	}
}
