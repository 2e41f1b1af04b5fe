package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onthi-app/onthi-backend/internal/model"
)

// NotificationRepository handles notification data access.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

const notificationColumns = `id, user_id, subject, content, type, link, is_read, is_deleted, created_at, updated_at`

// Create inserts a notification.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, subject, content, type, link)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, is_read, is_deleted, created_at, updated_at`,
		n.UserID, n.Subject, n.Content, n.Type, n.Link,
	).Scan(&n.ID, &n.IsRead, &n.IsDeleted, &n.CreatedAt, &n.UpdatedAt)
}

// List retrieves a user's notifications filtered by cond, newest first.
func (r *NotificationRepository) List(ctx context.Context, cond model.NotificationCond, limit, offset int) ([]model.Notification, int, error) {
	where := ` WHERE is_deleted = FALSE`
	var args []interface{}
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		where += ` AND ` + fmt.Sprintf(clause, len(args))
	}

	if cond.UserID != nil {
		add(`user_id = $%d`, *cond.UserID)
	}
	if cond.IsRead != nil {
		add(`is_read = $%d`, *cond.IsRead)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM notifications%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		notificationColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Subject, &n.Content, &n.Type, &n.Link,
			&n.IsRead, &n.IsDeleted, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

// MarkRead marks one notification read; scoped to the owner.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkAllRead marks every unread notification of a user read. Returns the
// number of rows touched.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, updated_at = NOW()
		 WHERE user_id = $1 AND is_read = FALSE AND is_deleted = FALSE`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountUnread returns a user's unread notification count.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications
		 WHERE user_id = $1 AND is_read = FALSE AND is_deleted = FALSE`, userID).Scan(&n)
	return n, err
}
