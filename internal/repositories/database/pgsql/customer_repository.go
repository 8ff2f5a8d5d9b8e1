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

type PgxCustomerRepository struct {
	BaseRepository
}

// NewPgxCustomerRepository creates a new repository for customer data.
func NewPgxCustomerRepository(pool *pgxpool.Pool) ports.CustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.CustomerRepository = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, customer_name, company_name, customer_type, phone, balance_due,
	geographical_location, location, notes, company_id, salesman_id, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.CustomerID, &c.CustomerName, &c.CompanyName, &c.CustomerType, &c.Phone, &c.BalanceDue,
		&c.GeographicalLocation, &c.Location, &c.Notes, &c.CompanyID, &c.SalesmanID, &c.Version,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, c domain.Customer) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, c.CustomerID, c.CustomerName, c.CompanyName, c.CustomerType, c.Phone, c.BalanceDue,
		c.GeographicalLocation, c.Location, c.Notes, c.CompanyID, c.SalesmanID, c.Version,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert customer %s: %w", c.CustomerID, translateError(err))
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, customerID)
	c, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, translateError(err))
	}
	customers := []domain.Customer{*c}
	if err := r.loadBackRefs(ctx, customers); err != nil {
		return nil, err
	}
	return &customers[0], nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, companyID string) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []interface{}{}
	if companyID != "" {
		query += ` WHERE company_id = $1`
		args = append(args, companyID)
	}
	query += ` ORDER BY customer_name`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadBackRefs(ctx, customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// loadBackRefs fills the invoice and payment back-reference lists from the child
// tables. The caller passes customers by value; the lists mutate the elements
// through the map below, so the input slice must be the one returned.
func (r *PgxCustomerRepository) loadBackRefs(ctx context.Context, customers []domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	ids := make([]string, len(customers))
	byID := make(map[string]*domain.Customer, len(customers))
	for i := range customers {
		ids[i] = customers[i].CustomerID
		byID[customers[i].CustomerID] = &customers[i]
	}

	invRows, err := r.Pool.Query(ctx, `
		SELECT customer_id, invoice_id FROM invoices WHERE customer_id = ANY($1) ORDER BY created_at
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load customer invoice refs: %w", err)
	}
	defer invRows.Close()
	for invRows.Next() {
		var customerID, invoiceID string
		if err := invRows.Scan(&customerID, &invoiceID); err != nil {
			return fmt.Errorf("failed to scan invoice ref: %w", err)
		}
		c := byID[customerID]
		c.InvoiceList = append(c.InvoiceList, invoiceID)
	}
	if err := invRows.Err(); err != nil {
		return err
	}

	payRows, err := r.Pool.Query(ctx, `
		SELECT customer_id, payment_id FROM payments WHERE customer_id = ANY($1) ORDER BY created_at
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load customer payment refs: %w", err)
	}
	defer payRows.Close()
	for payRows.Next() {
		var customerID, paymentID string
		if err := payRows.Scan(&customerID, &paymentID); err != nil {
			return fmt.Errorf("failed to scan payment ref: %w", err)
		}
		c := byID[customerID]
		c.PaymentList = append(c.PaymentList, paymentID)
	}
	return payRows.Err()
}

// UpdateCustomer rewrites the customer's descriptive fields with a version guard.
// BalanceDue is never written here; it only moves inside ledger transactions.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, c domain.Customer) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE customers
		SET customer_name = $1, company_name = $2, customer_type = $3, phone = $4,
		    geographical_location = $5, location = $6, notes = $7, salesman_id = $8,
		    version = version + 1, last_updated_at = $9, last_updated_by = $10
		WHERE customer_id = $11 AND version = $12
	`, c.CustomerName, c.CompanyName, c.CustomerType, c.Phone,
		c.GeographicalLocation, c.Location, c.Notes, c.SalesmanID,
		c.LastUpdatedAt, c.LastUpdatedBy, c.CustomerID, c.Version)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", c.CustomerID, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE customer_id = $1)`, c.CustomerID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check customer %s: %w", c.CustomerID, err)
		}
		if !exists {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, c.CustomerID)
		}
		return fmt.Errorf("%w: customer %s was modified concurrently", apperrors.ErrConflict, c.CustomerID)
	}
	return nil
}

func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	}
	return nil
}
