package repository

import (
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
)

func (r *Repository) CreateApplication(app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, applicant_id, cover_letter, resume_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{app.JobID, app.ApplicantID, app.CoverLetter, app.ResumeURL}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&app.ID, &app.Status, &app.CreatedAt, &app.Version); err != nil {
		return err
	}

	return nil
}

// GetApplicationByID 返回投递详情，包含投递者的完整资料和职位的标题与公司
func (r *Repository) GetApplicationByID(id int64) (*domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_url, a.status, a.created_at, a.version,
			u.name, u.email, u.password_hash, u.role, u.company, u.phone, u.location, u.skills,
			u.experience, u.education, u.summary, u.linkedin, u.portfolio, u.resume, u.verified, u.created_at, u.version,
			j.title, j.company, j.status
		FROM applications a
		JOIN users u ON u.id = a.applicant_id
		JOIN jobs j ON j.id = a.job_id
		WHERE a.id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	app := &domain.Application{
		ID:            id,
		ApplicantFull: &domain.User{},
		Job:           &domain.ApplicationJob{},
	}

	dst := []any{
		&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.ResumeURL, &app.Status, &app.CreatedAt, &app.Version,
	}
	dst = append(dst, userFields(app.ApplicantFull)...)
	dst = append(dst, &app.Job.Title, &app.Job.Company, &app.Job.Status)

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	app.ApplicantFull.ID = app.ApplicantID
	app.Job.ID = app.JobID

	return app, nil
}

// ListApplicationsByJob 返回某职位收到的全部投递，投递者只保留精简投影，
// 内连接保证已删除账号的投递不会出现在结果中
func (r *Repository) ListApplicationsByJob(jobID int64) ([]*domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_url, a.status, a.created_at, a.version,
			u.name, u.email, u.resume
		FROM applications a
		JOIN users u ON u.id = a.applicant_id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*domain.Application, 0)
	for rows.Next() {
		app := &domain.Application{
			Applicant: &domain.ApplicantSummary{},
		}
		dst := []any{
			&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.ResumeURL, &app.Status, &app.CreatedAt, &app.Version,
			&app.Applicant.Name, &app.Applicant.Email, &app.Applicant.Resume,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		app.Applicant.ID = app.ApplicantID
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

// ListApplicationsByApplicant 返回求职者自己的投递，带上职位标题和雇主公司
func (r *Repository) ListApplicationsByApplicant(applicantID int64) ([]*domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_url, a.status, a.created_at, a.version,
			j.title, coalesce(NULLIF(j.company, ''), e.company, ''), j.status
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		LEFT JOIN users e ON e.id = j.employer_id
		WHERE a.applicant_id = $1
		ORDER BY a.created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*domain.Application, 0)
	for rows.Next() {
		app := &domain.Application{
			Job: &domain.ApplicationJob{},
		}
		dst := []any{
			&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.ResumeURL, &app.Status, &app.CreatedAt, &app.Version,
			&app.Job.Title, &app.Job.Company, &app.Job.Status,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		app.Job.ID = app.JobID
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *Repository) UpdateApplicationStatus(app *domain.Application) error {
	query := `
		UPDATE applications
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, app.Status, app.ID, app.Version).Scan(&app.Version); err != nil {
		return err
	}

	return nil
}
