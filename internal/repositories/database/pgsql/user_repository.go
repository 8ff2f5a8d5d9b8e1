package pgsql

import (
	"context"
	"fmt"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

// NewPgxUserRepository creates a new repository for user data.
func NewPgxUserRepository(pool *pgxpool.Pool) ports.UserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, first_name, last_name, username, password_hash, phone, role, notes,
	company_id, created_at, created_by, last_updated_at, last_updated_by`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID, &u.FirstName, &u.LastName, &u.Username, &u.PasswordHash, &u.Phone, &u.Role,
		&u.Notes, &u.CompanyID, &u.CreatedAt, &u.CreatedBy, &u.LastUpdatedAt, &u.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, u domain.User) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, u.UserID, u.FirstName, u.LastName, u.Username, u.PasswordHash, u.Phone, u.Role,
		u.Notes, u.CompanyID, u.CreatedAt, u.CreatedBy, u.LastUpdatedAt, u.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert user %s: %w", u.UserID, translateError(err))
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, translateError(err))
	}
	return u, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", translateError(err))
	}
	return u, nil
}

func (r *PgxUserRepository) ListUsers(ctx context.Context, companyID string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []interface{}{}
	if companyID != "" {
		query += ` WHERE company_id = $1`
		args = append(args, companyID)
	}
	query += ` ORDER BY username`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, u domain.User) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, username = $3, password_hash = $4, phone = $5,
		    role = $6, notes = $7, company_id = $8, last_updated_at = $9, last_updated_by = $10
		WHERE user_id = $11
	`, u.FirstName, u.LastName, u.Username, u.PasswordHash, u.Phone,
		u.Role, u.Notes, u.CompanyID, u.LastUpdatedAt, u.LastUpdatedBy, u.UserID)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", u.UserID, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, u.UserID)
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}
