package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/onthi-app/onthi-backend/internal/config"
	"github.com/onthi-app/onthi-backend/internal/model"
	"github.com/onthi-app/onthi-backend/internal/repository"
	ws "github.com/onthi-app/onthi-backend/internal/websocket"
)

const NotificationPollTimeout = 1 * time.Second

// NotificationWorker drains the notification queue: each payload is
// persisted to PostgreSQL, then fanned out to the recipient's WebSocket
// room. Publishing stays decoupled from delivery; a user with no open
// connection simply finds the notification in the list endpoint later.
type NotificationWorker struct {
	repo *repository.NotificationRepository
	rdb  *redis.Client
	hub  *ws.Hub
	log  zerolog.Logger
}

// NewNotificationWorker creates a new NotificationWorker.
func NewNotificationWorker(repo *repository.NotificationRepository, rdb *redis.Client, hub *ws.Hub, log zerolog.Logger) *NotificationWorker {
	return &NotificationWorker{
		repo: repo,
		rdb:  rdb,
		hub:  hub,
		log:  log.With().Str("component", "notification_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled. On shutdown, whatever
// remains in Redis survives for the next run; only the item in flight gets
// requeued on failure.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("NotificationWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return

		default:
			item, err := w.rdb.BLPop(ctx, NotificationPollTimeout, config.WorkerKey.NotificationQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var req model.PublishNotificationRequest
			if err := json.Unmarshal([]byte(item[1]), &req); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload, dropping")
				continue
			}

			w.deliver(ctx, item[1], req)
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, raw string, req model.PublishNotificationRequest) {
	n := &model.Notification{
		UserID:  req.UserID,
		Subject: req.Subject,
		Content: req.Content,
		Type:    req.Type,
		Link:    req.Link,
	}

	if err := w.repo.Create(ctx, n); err != nil {
		w.log.Error().Err(err).Str("user_id", req.UserID.String()).Msg("Persist failed, requeueing")
		w.rdb.RPush(ctx, config.WorkerKey.NotificationQueue, raw)
		return
	}

	// Drop the cached unread count; it is recomputed on the next read.
	w.rdb.Del(ctx, config.CacheKey.UnreadCountKey(req.UserID.String()))

	delivered := w.hub.Broadcast(req.UserID, ws.NotificationEvent{
		Event:        ws.EventNewNotification,
		Notification: *n,
	})

	w.log.Debug().
		Str("notification_id", n.ID.String()).
		Str("user_id", req.UserID.String()).
		Int("live_clients", delivered).
		Msg("Notification delivered")
}
