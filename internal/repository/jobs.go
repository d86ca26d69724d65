package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/search"
)

// 职位的技能列表在 SQL 层以 text[] 存储，出入库时统一用逗号分隔的文本转换，
// 自定义字段则整体存为 jsonb
const jobSelectColumns = `
	j.id, j.title, j.description, j.company, j.location,
	j.salary_min, j.salary_max, j.salary_text,
	coalesce(array_to_string(j.skills, ','), ''), j.remote, j.status,
	j.resume_required, j.custom_fields, j.employer_id, j.created_at, j.version,
	e.id, e.name, e.company, e.email
`

const jobFromClause = `
	FROM jobs j
	LEFT JOIN users e ON e.id = j.employer_id
`

func scanJob(scan func(dst ...any) error) (*domain.Job, error) {
	job := &domain.Job{}

	var skills string
	var customFields []byte
	var employerID sql.NullInt64
	var employerName, employerCompany, employerEmail sql.NullString

	dst := []any{
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Company,
		&job.Location,
		&job.SalaryMin,
		&job.SalaryMax,
		&job.SalaryText,
		&skills,
		&job.Remote,
		&job.Status,
		&job.ResumeRequired,
		&customFields,
		&job.EmployerID,
		&job.CreatedAt,
		&job.Version,
		&employerID,
		&employerName,
		&employerCompany,
		&employerEmail,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}

	job.Skills = make([]string, 0)
	if skills != "" {
		job.Skills = strings.Split(skills, ",")
	}

	if len(customFields) > 0 {
		if err := json.Unmarshal(customFields, &job.CustomFields); err != nil {
			return nil, err
		}
	}

	// 雇主被删除后 employer 保持为 null
	if employerID.Valid {
		job.Employer = &domain.JobEmployer{
			ID:      employerID.Int64,
			Name:    employerName.String,
			Company: employerCompany.String,
			Email:   employerEmail.String,
		}
	}

	return job, nil
}

func marshalCustomFields(fields []domain.CustomField) (any, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	return json.Marshal(fields)
}

func (r *Repository) CreateJob(job *domain.Job) error {
	customFields, err := marshalCustomFields(job.CustomFields)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO jobs (
			title, description, company, location, salary_min, salary_max, salary_text,
			skills, remote, status, resume_required, custom_fields, employer_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, string_to_array(NULLIF($8, ''), ','), $9, $10, $11, $12, $13)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		job.Title,
		job.Description,
		job.Company,
		job.Location,
		job.SalaryMin,
		job.SalaryMax,
		job.SalaryText,
		strings.Join(job.Skills, ","),
		job.Remote,
		job.Status,
		job.ResumeRequired,
		customFields,
		job.EmployerID,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.ID, &job.CreatedAt, &job.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetJobByID(id int64) (*domain.Job, error) {
	query := `SELECT ` + jobSelectColumns + jobFromClause + ` WHERE j.id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanJob(row.Scan)
}

// ListJobs 返回满足过滤条件的当前页职位和不依赖分页的总数，按创建时间倒序
func (r *Repository) ListJobs(filter *search.JobFilter) ([]*domain.Job, int, error) {
	where, args := filter.WhereClause()

	ctx, cancel := r.queryContext()
	defer cancel()

	total := 0
	countQuery := `SELECT count(*) FROM jobs j ` + where
	if err := r.dbpool.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageQuery := fmt.Sprintf(
		`SELECT %s %s %s ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d`,
		jobSelectColumns, jobFromClause, where, len(args)+1, len(args)+2,
	)
	pageArgs := append(args, filter.Limit, filter.Offset())

	rows, err := r.dbpool.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *Repository) UpdateJob(job *domain.Job) error {
	customFields, err := marshalCustomFields(job.CustomFields)
	if err != nil {
		return err
	}

	query := `
		UPDATE jobs
		SET
			title = $1,
			description = $2,
			company = $3,
			location = $4,
			salary_min = $5,
			salary_max = $6,
			salary_text = $7,
			skills = string_to_array(NULLIF($8, ''), ','),
			remote = $9,
			status = $10,
			resume_required = $11,
			custom_fields = $12,
			version = version + 1
		WHERE id = $13 AND version = $14
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		job.Title,
		job.Description,
		job.Company,
		job.Location,
		job.SalaryMin,
		job.SalaryMax,
		job.SalaryText,
		strings.Join(job.Skills, ","),
		job.Remote,
		job.Status,
		job.ResumeRequired,
		customFields,
		job.ID,
		job.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteJob(id int64) error {
	query := `DELETE FROM jobs WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *Repository) GetAllJobs() ([]*domain.Job, error) {
	query := `SELECT ` + jobSelectColumns + jobFromClause + ` ORDER BY j.created_at DESC`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
