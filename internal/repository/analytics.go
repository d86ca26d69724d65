package repository

import (
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
)

func (r *Repository) GetAnalytics() (*domain.Analytics, error) {
	query := `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM jobs),
			(SELECT count(*) FROM jobs WHERE status = 'open'),
			(SELECT count(*) FROM applications)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	analytics := &domain.Analytics{}
	dst := []any{&analytics.Users, &analytics.Jobs, &analytics.OpenJobs, &analytics.Applications}
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(dst...); err != nil {
		return nil, err
	}

	return analytics, nil
}
