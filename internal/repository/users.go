package repository

import (
	"database/sql"

	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
)

const userColumns = `
	name, email, password_hash, role, company, phone, location, skills,
	experience, education, summary, linkedin, portfolio, resume, verified, created_at, version
`

func userFields(user *domain.User) []any {
	return []any{
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Company,
		&user.Phone,
		&user.Location,
		&user.Skills,
		&user.Experience,
		&user.Education,
		&user.Summary,
		&user.Linkedin,
		&user.Portfolio,
		&user.Resume,
		&user.Verified,
		&user.CreatedAt,
		&user.Version,
	}
}

func (r *Repository) CreateUser(user *domain.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, company)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, verified, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{user.Name, user.Email, user.PasswordHash, user.Role, user.Company}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Verified, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(userFields(user)...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByEmail(email string) (*domain.User, error) {
	query := `SELECT id, ` + userColumns + ` FROM users WHERE email = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	user := &domain.User{}

	dst := append([]any{&user.ID}, userFields(user)...)
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser 更新除角色之外的全部可变字段，角色在创建后不可变
func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			name = $1,
			email = $2,
			password_hash = $3,
			company = $4,
			phone = $5,
			location = $6,
			skills = $7,
			experience = $8,
			education = $9,
			summary = $10,
			linkedin = $11,
			portfolio = $12,
			resume = $13,
			verified = $14,
			version = version + 1
		WHERE id = $15 AND version = $16
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Company,
		user.Phone,
		user.Location,
		user.Skills,
		user.Experience,
		user.Education,
		user.Summary,
		user.Linkedin,
		user.Portfolio,
		user.Resume,
		user.Verified,
		user.ID,
		user.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) SetUserVerified(id int64) error {
	query := `UPDATE users SET verified = true, version = version + 1 WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateUserPassword(id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, version = version + 1 WHERE id = $2`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, passwordHash, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	query := `SELECT id, ` + userColumns + ` FROM users ORDER BY created_at DESC`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := append([]any{&user.ID}, userFields(user)...)
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) DeleteUser(id int64) error {
	query := `DELETE FROM users WHERE id = $1`

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
