package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSubscriptionRequestRepository struct {
	BaseRepository
}

// NewPgxSubscriptionRequestRepository creates a new repository for subscription
// request data.
func NewPgxSubscriptionRequestRepository(pool *pgxpool.Pool) ports.SubscriptionRequestRepository {
	return &PgxSubscriptionRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.SubscriptionRequestRepository = (*PgxSubscriptionRequestRepository)(nil)

const requestColumns = `request_id, company_name, company_avatar, contact_name, email, phone,
	country, company_size, industry, plan, additional_info, status, processed_by, processed_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRequest(row pgx.Row) (*domain.SubscriptionRequest, error) {
	var req domain.SubscriptionRequest
	err := row.Scan(
		&req.RequestID, &req.CompanyName, &req.CompanyAvatar, &req.ContactName, &req.Email, &req.Phone,
		&req.Country, &req.CompanySize, &req.Industry, &req.Plan, &req.AdditionalInfo, &req.Status,
		&req.ProcessedBy, &req.ProcessedAt, &req.CreatedAt, &req.CreatedBy, &req.LastUpdatedAt, &req.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PgxSubscriptionRequestRepository) SaveRequest(ctx context.Context, req domain.SubscriptionRequest) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO subscription_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, req.RequestID, req.CompanyName, req.CompanyAvatar, req.ContactName, req.Email, req.Phone,
		req.Country, req.CompanySize, req.Industry, req.Plan, req.AdditionalInfo, req.Status,
		req.ProcessedBy, req.ProcessedAt, req.CreatedAt, req.CreatedBy, req.LastUpdatedAt, req.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert subscription request %s: %w", req.RequestID, translateError(err))
	}
	return nil
}

func (r *PgxSubscriptionRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.SubscriptionRequest, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM subscription_requests WHERE request_id = $1`, requestID)
	req, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find subscription request %s: %w", requestID, translateError(err))
	}
	return req, nil
}

func (r *PgxSubscriptionRequestRepository) ListRequests(ctx context.Context, status string) ([]domain.SubscriptionRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM subscription_requests`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscription requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.SubscriptionRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription request row: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *PgxSubscriptionRequestRepository) UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus, processedBy string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE subscription_requests
		SET status = $1, processed_by = $2, processed_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE request_id = $4
	`, status, processedBy, now, requestID)
	if err != nil {
		return fmt.Errorf("failed to update subscription request %s: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: subscription request %s", apperrors.ErrNotFound, requestID)
	}
	return nil
}

func (r *PgxSubscriptionRequestRepository) DeleteRequest(ctx context.Context, requestID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM subscription_requests WHERE request_id = $1`, requestID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription request %s: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: subscription request %s", apperrors.ErrNotFound, requestID)
	}
	return nil
}
