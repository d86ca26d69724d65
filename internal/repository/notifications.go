package repository

import (
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
)

func (r *Repository) CreateNotification(n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, read, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{n.UserID, n.Title, n.Message, n.Type, n.Link}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.Read, &n.CreatedAt); err != nil {
		return err
	}

	return nil
}

// CreateNotifications 批量写入，用于保存搜索命中的推送
func (r *Repository) CreateNotifications(ns []*domain.Notification) error {
	for _, n := range ns {
		if err := r.CreateNotification(n); err != nil {
			return err
		}
	}
	return nil
}

// GetNotificationsByUser 返回最近 20 条通知和未读总数
func (r *Repository) GetNotificationsByUser(userID int64) ([]*domain.Notification, int, error) {
	query := `
		SELECT id, user_id, title, message, type, read, coalesce(link, ''), created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 20
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		dst := []any{&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.Link, &n.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	unreadCount := 0
	countQuery := `SELECT count(*) FROM notifications WHERE user_id = $1 AND read = false`
	if err := r.dbpool.QueryRowContext(ctx, countQuery, userID).Scan(&unreadCount); err != nil {
		return nil, 0, err
	}

	return notifications, unreadCount, nil
}

func (r *Repository) GetNotificationByID(id int64) (*domain.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, read, coalesce(link, ''), created_at
		FROM notifications
		WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	n := &domain.Notification{}
	dst := []any{&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.Link, &n.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return n, nil
}

func (r *Repository) MarkNotificationRead(id int64) error {
	query := `UPDATE notifications SET read = true WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) MarkAllNotificationsRead(userID int64) error {
	query := `UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, userID); err != nil {
		return err
	}

	return nil
}
