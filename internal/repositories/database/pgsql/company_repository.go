package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// NewPgxCompanyRepository creates a new repository for company data.
func NewPgxCompanyRepository(pool *pgxpool.Pool) ports.CompanyRepository {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.CompanyRepository = (*PgxCompanyRepository)(nil)

const companyColumns = `company_id, name, logo, address, registration_date, subscription_end_date,
	subscription_type, subscription_status, contact_email, contact_phone, website, tax_number,
	notes, settings, created_at, created_by, last_updated_at, last_updated_by`

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	var settings []byte
	err := row.Scan(
		&c.CompanyID, &c.Name, &c.Logo, &c.Address, &c.RegistrationDate, &c.SubscriptionEndDate,
		&c.SubscriptionType, &c.SubscriptionStatus, &c.ContactEmail, &c.ContactPhone, &c.Website,
		&c.TaxNumber, &c.Notes, &settings, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &c.Settings); err != nil {
			return nil, fmt.Errorf("failed to decode company settings: %w", err)
		}
	}
	return &c, nil
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, c domain.Company) error {
	settings, err := json.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode company settings: %w", err)
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO companies (`+companyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, c.CompanyID, c.Name, c.Logo, c.Address, c.RegistrationDate, c.SubscriptionEndDate,
		c.SubscriptionType, c.SubscriptionStatus, c.ContactEmail, c.ContactPhone, c.Website,
		c.TaxNumber, c.Notes, settings, c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert company %s: %w", c.CompanyID, translateError(err))
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE company_id = $1`, companyID)
	c, err := scanCompany(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, translateError(err))
	}
	companies := []domain.Company{*c}
	if err := r.loadAuthorizedUsers(ctx, companies); err != nil {
		return nil, err
	}
	return &companies[0], nil
}

func (r *PgxCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return r.listCompanies(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name`)
}

// ListExpiringCompanies returns companies whose subscription ends before the
// given time and are not already marked expired.
func (r *PgxCompanyRepository) ListExpiringCompanies(ctx context.Context, before time.Time) ([]domain.Company, error) {
	return r.listCompanies(ctx, `
		SELECT `+companyColumns+` FROM companies
		WHERE subscription_end_date < $1 AND subscription_status <> 'expired'
		ORDER BY subscription_end_date
	`, before)
}

func (r *PgxCompanyRepository) listCompanies(ctx context.Context, query string, args ...interface{}) ([]domain.Company, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadAuthorizedUsers(ctx, companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *PgxCompanyRepository) loadAuthorizedUsers(ctx context.Context, companies []domain.Company) error {
	if len(companies) == 0 {
		return nil
	}
	ids := make([]string, len(companies))
	byID := make(map[string]*domain.Company, len(companies))
	for i := range companies {
		ids[i] = companies[i].CompanyID
		byID[companies[i].CompanyID] = &companies[i]
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT company_id, user_id FROM company_authorized_users WHERE company_id = ANY($1) ORDER BY user_id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load authorized users: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var companyID, userID string
		if err := rows.Scan(&companyID, &userID); err != nil {
			return fmt.Errorf("failed to scan authorized user: %w", err)
		}
		c := byID[companyID]
		c.AuthorizedUsers = append(c.AuthorizedUsers, userID)
	}
	return rows.Err()
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, c domain.Company) error {
	settings, err := json.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode company settings: %w", err)
	}
	tag, err := r.Pool.Exec(ctx, `
		UPDATE companies
		SET name = $1, logo = $2, address = $3, subscription_end_date = $4, subscription_type = $5,
		    subscription_status = $6, contact_email = $7, contact_phone = $8, website = $9,
		    tax_number = $10, notes = $11, settings = $12, last_updated_at = $13, last_updated_by = $14
		WHERE company_id = $15
	`, c.Name, c.Logo, c.Address, c.SubscriptionEndDate, c.SubscriptionType,
		c.SubscriptionStatus, c.ContactEmail, c.ContactPhone, c.Website,
		c.TaxNumber, c.Notes, settings, c.LastUpdatedAt, c.LastUpdatedBy, c.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update company %s: %w", c.CompanyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, c.CompanyID)
	}
	return nil
}

func (r *PgxCompanyRepository) AddAuthorizedUser(ctx context.Context, companyID string, userID string) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO company_authorized_users (company_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
	`, companyID, userID)
	if err != nil {
		return fmt.Errorf("failed to authorize user %s for company %s: %w", userID, companyID, err)
	}
	return nil
}

func (r *PgxCompanyRepository) RemoveAuthorizedUser(ctx context.Context, companyID string, userID string) error {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM company_authorized_users WHERE company_id = $1 AND user_id = $2
	`, companyID, userID)
	if err != nil {
		return fmt.Errorf("failed to deauthorize user %s for company %s: %w", userID, companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: authorized user %s on company %s", apperrors.ErrNotFound, userID, companyID)
	}
	return nil
}

func (r *PgxCompanyRepository) DeleteCompany(ctx context.Context, companyID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM companies WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete company %s: %w", companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
	}
	return nil
}
