package repository

import (
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
)

func (r *Repository) CreateMessage(msg *domain.Message) error {
	query := `
		INSERT INTO messages (from_id, to_id, job_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, read, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{msg.FromID, msg.ToID, msg.JobID, msg.Text}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&msg.ID, &msg.Read, &msg.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetConversation 返回双方之间的全部消息，按时间正序
func (r *Repository) GetConversation(userID int64, otherID int64) ([]*domain.Message, error) {
	query := `
		SELECT id, from_id, to_id, job_id, text, read, created_at
		FROM messages
		WHERE (from_id = $1 AND to_id = $2) OR (from_id = $2 AND to_id = $1)
		ORDER BY created_at ASC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, otherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]*domain.Message, 0)
	for rows.Next() {
		msg := &domain.Message{}
		dst := []any{&msg.ID, &msg.FromID, &msg.ToID, &msg.JobID, &msg.Text, &msg.Read, &msg.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return msgs, nil
}

// MarkConversationRead 把对方发给我的未读消息全部标记为已读
func (r *Repository) MarkConversationRead(userID int64, otherID int64) error {
	query := `
		UPDATE messages SET read = true
		WHERE to_id = $1 AND from_id = $2 AND read = false
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, userID, otherID); err != nil {
		return err
	}

	return nil
}

// GetInbox 按对话另一方分组，每组只取最近一条消息，整体按最近消息时间倒序
func (r *Repository) GetInbox(userID int64) ([]*domain.InboxEntry, error) {
	query := `
		SELECT
			t.other_id, u.name, coalesce(u.company, ''),
			t.id, t.from_id, t.to_id, t.job_id, t.text, t.read, t.created_at,
			(
				SELECT count(*) FROM messages m
				WHERE m.from_id = t.other_id AND m.to_id = $1 AND m.read = false
			)
		FROM (
			SELECT DISTINCT ON (CASE WHEN from_id = $1 THEN to_id ELSE from_id END)
				CASE WHEN from_id = $1 THEN to_id ELSE from_id END AS other_id,
				id, from_id, to_id, job_id, text, read, created_at
			FROM messages
			WHERE from_id = $1 OR to_id = $1
			ORDER BY CASE WHEN from_id = $1 THEN to_id ELSE from_id END, created_at DESC
		) t
		JOIN users u ON u.id = t.other_id
		ORDER BY t.created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.InboxEntry, 0)
	for rows.Next() {
		entry := &domain.InboxEntry{}
		dst := []any{
			&entry.Partner.ID, &entry.Partner.Name, &entry.Partner.Company,
			&entry.LastMessage.ID, &entry.LastMessage.FromID, &entry.LastMessage.ToID,
			&entry.LastMessage.JobID, &entry.LastMessage.Text, &entry.LastMessage.Read, &entry.LastMessage.CreatedAt,
			&entry.UnreadCount,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
