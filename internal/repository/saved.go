package repository

import (
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
)

// ToggleSavedJob 按 (用户, 职位) 幂等切换收藏状态：已收藏则取消，未收藏则加入，
// 返回切换后的收藏状态
func (r *Repository) ToggleSavedJob(userID int64, jobID int64) (bool, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	deleteQuery := `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`
	res, err := r.dbpool.ExecContext(ctx, deleteQuery, userID, jobID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return false, nil
	}

	insertQuery := `
		INSERT INTO saved_jobs (user_id, job_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, job_id) DO NOTHING
	`
	if _, err := r.dbpool.ExecContext(ctx, insertQuery, userID, jobID); err != nil {
		return false, err
	}

	return true, nil
}

func (r *Repository) GetSavedJobIDs(userID int64) ([]int64, error) {
	query := `SELECT job_id FROM saved_jobs WHERE user_id = $1 ORDER BY created_at DESC`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *Repository) CreateSavedSearch(ss *domain.SavedSearch) error {
	query := `
		INSERT INTO saved_searches (user_id, name, q, location, min_salary, max_salary, remote)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{ss.UserID, ss.Name, ss.Query, ss.Location, ss.MinSalary, ss.MaxSalary, ss.Remote}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ss.ID, &ss.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSavedSearchesByUser(userID int64) ([]*domain.SavedSearch, error) {
	query := `
		SELECT id, user_id, name, coalesce(q, ''), coalesce(location, ''), min_salary, max_salary, remote, created_at
		FROM saved_searches
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	searches := make([]*domain.SavedSearch, 0)
	for rows.Next() {
		ss := &domain.SavedSearch{}
		dst := []any{&ss.ID, &ss.UserID, &ss.Name, &ss.Query, &ss.Location, &ss.MinSalary, &ss.MaxSalary, &ss.Remote, &ss.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		searches = append(searches, ss)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return searches, nil
}

// FindSavedSearchMatches 找出保存的搜索与新职位匹配的用户，用于 new_job 推送，
// 保存搜索中留空的条件不参与匹配
func (r *Repository) FindSavedSearchMatches(job *domain.Job) ([]int64, error) {
	query := `
		SELECT DISTINCT ss.user_id
		FROM saved_searches ss
		WHERE (coalesce(ss.q, '') = '' OR $1 ILIKE '%' || ss.q || '%' OR $2 ILIKE '%' || ss.q || '%')
			AND (coalesce(ss.location, '') = '' OR $3 ILIKE '%' || ss.location || '%')
			AND (ss.remote IS NULL OR ss.remote = $4)
			AND (ss.min_salary IS NULL OR $5::int >= ss.min_salary)
			AND (ss.max_salary IS NULL OR $6::int <= ss.max_salary)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{job.Title, job.Description, job.Location, job.Remote, job.SalaryMin, job.SalaryMax}
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	userIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return userIDs, nil
}
