package repository

import (
	"fmt"

	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/search"
)

// ListCandidates 按筛选条件分页查询求职者，返回当前页数据和总数
func (r *Repository) ListCandidates(filter *search.CandidateFilter) ([]*domain.User, int, error) {
	where, args := filter.WhereClause()

	ctx, cancel := r.queryContext()
	defer cancel()

	countQuery := `SELECT count(*) FROM users u ` + where

	var total int
	if err := r.dbpool.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageQuery := fmt.Sprintf(
		`SELECT id, `+userColumns+` FROM users u %s ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.dbpool.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	candidates := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := append([]any{&user.ID}, userFields(user)...)
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return candidates, total, nil
}
