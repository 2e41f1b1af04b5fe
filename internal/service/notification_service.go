package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/onthi-app/onthi-backend/internal/config"
	"github.com/onthi-app/onthi-backend/internal/model"
	"github.com/onthi-app/onthi-backend/internal/repository"
)

// ErrNotificationNotFound is returned when a notification does not exist or
// belongs to another user.
var ErrNotificationNotFound = errors.New("notification not found")

const unreadCountTTL = 10 * time.Minute

// NotificationService handles notification reads and enqueues publishes for
// the worker. Publishing never writes the database directly; the payload
// goes through the Redis queue so the HTTP path stays fast and delivery
// survives a burst.
type NotificationService struct {
	repo *repository.NotificationRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo *repository.NotificationRepository, rdb *redis.Client, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		repo: repo,
		rdb:  rdb,
		log:  log.With().Str("component", "notification_service").Logger(),
	}
}

// List retrieves a user's notifications filtered by cond with pagination.
func (s *NotificationService) List(ctx context.Context, cond model.NotificationCond, page, limit int) ([]model.Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	items, total, err := s.repo.List(ctx, cond, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []model.Notification{}
	}
	return items, total, nil
}

// MarkRead marks one notification read, scoped to the owner.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

// MarkAllRead marks every unread notification of a user read and returns the
// number touched.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.invalidateUnreadCount(ctx, userID)
	return n, nil
}

// CountUnread returns a user's unread count, cached in Redis.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	cacheKey := config.CacheKey.UnreadCountKey(userID.String())

	cached, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		if n, convErr := strconv.Atoi(cached); convErr == nil {
			return n, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Unread count cache read failed")
	}

	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.rdb.Set(ctx, cacheKey, strconv.Itoa(n), unreadCountTTL)
	return n, nil
}

// Publish enqueues a notification for the worker to persist and fan out.
func (s *NotificationService) Publish(ctx context.Context, req model.PublishNotificationRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.NotificationQueue, payload).Err(); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}

	s.log.Debug().Str("user_id", req.UserID.String()).Str("type", req.Type).Msg("Notification enqueued")
	return nil
}

func (s *NotificationService) invalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if err := s.rdb.Del(ctx, config.CacheKey.UnreadCountKey(userID.String())).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Unread count invalidation failed")
	}
}
