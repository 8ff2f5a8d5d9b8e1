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

type PgxSupplierRepository struct {
	BaseRepository
}

// NewPgxSupplierRepository creates a new repository for supplier data.
func NewPgxSupplierRepository(pool *pgxpool.Pool) ports.SupplierRepository {
	return &PgxSupplierRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.SupplierRepository = (*PgxSupplierRepository)(nil)

const supplierColumns = `supplier_id, supplier_name, company_name, supplier_type, phone, balance_due,
	geographical_location, location, notes, company_id, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(
		&s.SupplierID, &s.SupplierName, &s.CompanyName, &s.SupplierType, &s.Phone, &s.BalanceDue,
		&s.GeographicalLocation, &s.Location, &s.Notes, &s.CompanyID, &s.Version,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, s domain.Supplier) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, s.SupplierID, s.SupplierName, s.CompanyName, s.SupplierType, s.Phone, s.BalanceDue,
		s.GeographicalLocation, s.Location, s.Notes, s.CompanyID, s.Version,
		s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert supplier %s: %w", s.SupplierID, translateError(err))
	}
	return nil
}

func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE supplier_id = $1`, supplierID)
	s, err := scanSupplier(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, translateError(err))
	}
	suppliers := []domain.Supplier{*s}
	if err := r.loadBackRefs(ctx, suppliers); err != nil {
		return nil, err
	}
	return &suppliers[0], nil
}

func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, companyID string) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	args := []interface{}{}
	if companyID != "" {
		query += ` WHERE company_id = $1`
		args = append(args, companyID)
	}
	query += ` ORDER BY supplier_name`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		suppliers = append(suppliers, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadBackRefs(ctx, suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// loadBackRefs fills the invoice, expense and service back-reference lists from
// the child tables.
func (r *PgxSupplierRepository) loadBackRefs(ctx context.Context, suppliers []domain.Supplier) error {
	if len(suppliers) == 0 {
		return nil
	}
	ids := make([]string, len(suppliers))
	byID := make(map[string]*domain.Supplier, len(suppliers))
	for i := range suppliers {
		ids[i] = suppliers[i].SupplierID
		byID[suppliers[i].SupplierID] = &suppliers[i]
	}

	invRows, err := r.Pool.Query(ctx, `
		SELECT supplier_id, invoice_id FROM invoices WHERE supplier_id = ANY($1) ORDER BY created_at
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load supplier invoice refs: %w", err)
	}
	defer invRows.Close()
	for invRows.Next() {
		var supplierID, invoiceID string
		if err := invRows.Scan(&supplierID, &invoiceID); err != nil {
			return fmt.Errorf("failed to scan invoice ref: %w", err)
		}
		s := byID[supplierID]
		s.InvoiceList = append(s.InvoiceList, invoiceID)
	}
	if err := invRows.Err(); err != nil {
		return err
	}

	expRows, err := r.Pool.Query(ctx, `
		SELECT supplier_id, expense_id FROM expenses WHERE supplier_id = ANY($1) ORDER BY created_at
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load supplier expense refs: %w", err)
	}
	defer expRows.Close()
	for expRows.Next() {
		var supplierID, expenseID string
		if err := expRows.Scan(&supplierID, &expenseID); err != nil {
			return fmt.Errorf("failed to scan expense ref: %w", err)
		}
		s := byID[supplierID]
		s.ExpenseList = append(s.ExpenseList, expenseID)
	}
	if err := expRows.Err(); err != nil {
		return err
	}

	svcRows, err := r.Pool.Query(ctx, `
		SELECT supplier_id, service_id FROM service_providers WHERE supplier_id = ANY($1) ORDER BY service_id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load supplier service refs: %w", err)
	}
	defer svcRows.Close()
	for svcRows.Next() {
		var supplierID, serviceID string
		if err := svcRows.Scan(&supplierID, &serviceID); err != nil {
			return fmt.Errorf("failed to scan service ref: %w", err)
		}
		s := byID[supplierID]
		s.Services = append(s.Services, serviceID)
	}
	return svcRows.Err()
}

// UpdateSupplier rewrites the supplier's descriptive fields with a version guard.
// BalanceDue only moves inside ledger transactions.
func (r *PgxSupplierRepository) UpdateSupplier(ctx context.Context, s domain.Supplier) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE suppliers
		SET supplier_name = $1, company_name = $2, supplier_type = $3, phone = $4,
		    geographical_location = $5, location = $6, notes = $7,
		    version = version + 1, last_updated_at = $8, last_updated_by = $9
		WHERE supplier_id = $10 AND version = $11
	`, s.SupplierName, s.CompanyName, s.SupplierType, s.Phone,
		s.GeographicalLocation, s.Location, s.Notes,
		s.LastUpdatedAt, s.LastUpdatedBy, s.SupplierID, s.Version)
	if err != nil {
		return fmt.Errorf("failed to update supplier %s: %w", s.SupplierID, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM suppliers WHERE supplier_id = $1)`, s.SupplierID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check supplier %s: %w", s.SupplierID, err)
		}
		if !exists {
			return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, s.SupplierID)
		}
		return fmt.Errorf("%w: supplier %s was modified concurrently", apperrors.ErrConflict, s.SupplierID)
	}
	return nil
}

func (r *PgxSupplierRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM suppliers WHERE supplier_id = $1`, supplierID)
	if err != nil {
		return fmt.Errorf("failed to delete supplier %s: %w", supplierID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
	}
	return nil
}
