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

type PgxServiceRepository struct {
	BaseRepository
}

// NewPgxServiceRepository creates a new repository for service data.
func NewPgxServiceRepository(pool *pgxpool.Pool) ports.ServiceRepository {
	return &PgxServiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.ServiceRepository = (*PgxServiceRepository)(nil)

const serviceColumns = `service_id, name, description, total_expenses, is_active, company_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanService(row pgx.Row) (*domain.Service, error) {
	var s domain.Service
	err := row.Scan(
		&s.ServiceID, &s.Name, &s.Description, &s.TotalExpenses, &s.IsActive, &s.CompanyID,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func insertServiceExpenseEntries(ctx context.Context, tx pgx.Tx, serviceID string, entries []domain.ServiceExpenseEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO service_expense_entries (service_id, position, expense_id, amount, date, description)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for i, e := range entries {
		batch.Queue(query, serviceID, i, e.ExpenseID, e.Amount, e.Date, e.Description)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert service expense entry: %w", err)
		}
	}
	return nil
}

func insertServiceProviders(ctx context.Context, tx pgx.Tx, serviceID string, supplierIDs []string) error {
	if len(supplierIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, supplierID := range supplierIDs {
		batch.Queue(`INSERT INTO service_providers (service_id, supplier_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, serviceID, supplierID)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range supplierIDs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert service provider link: %w", err)
		}
	}
	return nil
}

func (r *PgxServiceRepository) SaveService(ctx context.Context, s domain.Service) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO services (`+serviceColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, s.ServiceID, s.Name, s.Description, s.TotalExpenses, s.IsActive, s.CompanyID,
			s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to insert service %s: %w", s.ServiceID, translateError(err))
		}
		if err := insertServiceProviders(ctx, tx, s.ServiceID, s.Providers); err != nil {
			return err
		}
		return insertServiceExpenseEntries(ctx, tx, s.ServiceID, s.ExpenseHistory)
	})
}

func (r *PgxServiceRepository) FindServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE service_id = $1`, serviceID)
	s, err := scanService(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find service %s: %w", serviceID, translateError(err))
	}
	services := []domain.Service{*s}
	if err := r.loadServiceChildren(ctx, services); err != nil {
		return nil, err
	}
	return &services[0], nil
}

func (r *PgxServiceRepository) ListServices(ctx context.Context, supplierID string, companyID string, createdBy string) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services s WHERE 1=1`
	args := []interface{}{}
	if supplierID != "" {
		args = append(args, supplierID)
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM service_providers sp WHERE sp.service_id = s.service_id AND sp.supplier_id = $%d)", len(args))
	}
	if companyID != "" {
		args = append(args, companyID)
		query += fmt.Sprintf(" AND company_id = $%d", len(args))
	}
	if createdBy != "" {
		args = append(args, createdBy)
		query += fmt.Sprintf(" AND created_by = $%d", len(args))
	}
	query += " ORDER BY name"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		services = append(services, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadServiceChildren(ctx, services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *PgxServiceRepository) loadServiceChildren(ctx context.Context, services []domain.Service) error {
	if len(services) == 0 {
		return nil
	}
	ids := make([]string, len(services))
	byID := make(map[string]*domain.Service, len(services))
	for i := range services {
		ids[i] = services[i].ServiceID
		byID[services[i].ServiceID] = &services[i]
	}

	provRows, err := r.Pool.Query(ctx, `
		SELECT service_id, supplier_id FROM service_providers WHERE service_id = ANY($1) ORDER BY supplier_id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load service providers: %w", err)
	}
	defer provRows.Close()
	for provRows.Next() {
		var serviceID, supplierID string
		if err := provRows.Scan(&serviceID, &supplierID); err != nil {
			return fmt.Errorf("failed to scan service provider: %w", err)
		}
		s := byID[serviceID]
		s.Providers = append(s.Providers, supplierID)
	}
	if err := provRows.Err(); err != nil {
		return err
	}

	invRows, err := r.Pool.Query(ctx, `
		SELECT service_id, invoice_id FROM service_invoices WHERE service_id = ANY($1) ORDER BY invoice_id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load service invoices: %w", err)
	}
	defer invRows.Close()
	for invRows.Next() {
		var serviceID, invoiceID string
		if err := invRows.Scan(&serviceID, &invoiceID); err != nil {
			return fmt.Errorf("failed to scan service invoice: %w", err)
		}
		s := byID[serviceID]
		s.Invoices = append(s.Invoices, invoiceID)
	}
	if err := invRows.Err(); err != nil {
		return err
	}

	expRows, err := r.Pool.Query(ctx, `
		SELECT service_id, expense_id, amount, date, description
		FROM service_expense_entries WHERE service_id = ANY($1) ORDER BY service_id, position
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load service expense history: %w", err)
	}
	defer expRows.Close()
	for expRows.Next() {
		var serviceID string
		var entry domain.ServiceExpenseEntry
		if err := expRows.Scan(&serviceID, &entry.ExpenseID, &entry.Amount, &entry.Date, &entry.Description); err != nil {
			return fmt.Errorf("failed to scan service expense entry: %w", err)
		}
		s := byID[serviceID]
		s.ExpenseHistory = append(s.ExpenseHistory, entry)
	}
	return expRows.Err()
}

func (r *PgxServiceRepository) UpdateService(ctx context.Context, s domain.Service) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE services
		SET name = $1, description = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE service_id = $6
	`, s.Name, s.Description, s.IsActive, s.LastUpdatedAt, s.LastUpdatedBy, s.ServiceID)
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", s.ServiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: service %s", apperrors.ErrNotFound, s.ServiceID)
	}
	return nil
}

// AddProvider links a supplier to a service. Both sides read the junction table,
// so one idempotent insert covers the service's provider list and the supplier's
// services list.
func (r *PgxServiceRepository) AddProvider(ctx context.Context, serviceID string, supplierID string) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO service_providers (service_id, supplier_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
	`, serviceID, supplierID)
	if err != nil {
		return fmt.Errorf("failed to add provider %s to service %s: %w", supplierID, serviceID, err)
	}
	return nil
}

func (r *PgxServiceRepository) RemoveProvider(ctx context.Context, serviceID string, supplierID string) error {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM service_providers WHERE service_id = $1 AND supplier_id = $2
	`, serviceID, supplierID)
	if err != nil {
		return fmt.Errorf("failed to remove provider %s from service %s: %w", supplierID, serviceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: provider %s on service %s", apperrors.ErrNotFound, supplierID, serviceID)
	}
	return nil
}

// ReplaceExpenseHistory rewrites the expense-history rows and the derived total
// in one transaction.
func (r *PgxServiceRepository) ReplaceExpenseHistory(ctx context.Context, s domain.Service) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE services
			SET total_expenses = $1, last_updated_at = $2, last_updated_by = $3
			WHERE service_id = $4
		`, s.TotalExpenses, s.LastUpdatedAt, s.LastUpdatedBy, s.ServiceID)
		if err != nil {
			return fmt.Errorf("failed to update service %s totals: %w", s.ServiceID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: service %s", apperrors.ErrNotFound, s.ServiceID)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM service_expense_entries WHERE service_id = $1`, s.ServiceID); err != nil {
			return fmt.Errorf("failed to clear service expense history: %w", err)
		}
		return insertServiceExpenseEntries(ctx, tx, s.ServiceID, s.ExpenseHistory)
	})
}

func (r *PgxServiceRepository) DeleteService(ctx context.Context, serviceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM services WHERE service_id = $1`, serviceID)
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", serviceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: service %s", apperrors.ErrNotFound, serviceID)
	}
	return nil
}

// DeleteAllServices removes all provider links and deletes every service inside
// one transaction.
func (r *PgxServiceRepository) DeleteAllServices(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM service_providers`); err != nil {
			return fmt.Errorf("failed to clear service provider links: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM services`)
		if err != nil {
			return fmt.Errorf("failed to delete services: %w", err)
		}
		deleted = tag.RowsAffected()
		return nil
	})
	return deleted, err
}
