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
	"github.com/shopspring/decimal"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// NewPgxInvoiceRepository creates a new repository for invoice data.
func NewPgxInvoiceRepository(pool *pgxpool.Pool) ports.InvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.InvoiceRepository = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, reference_no, type, customer_id, supplier_id, company_id,
	issued_by, email, terms, date, due_date, amount, paid_amount, remaining_amount, status,
	version, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID, &inv.ReferenceNo, &inv.Type, &inv.CustomerID, &inv.SupplierID, &inv.CompanyID,
		&inv.IssuedBy, &inv.Email, &inv.Terms, &inv.Date, &inv.DueDate, &inv.Amount, &inv.PaidAmount,
		&inv.RemainingAmount, &inv.Status, &inv.Version, &inv.CreatedAt, &inv.CreatedBy,
		&inv.LastUpdatedAt, &inv.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// partyBalance returns the table and ID for the invoice's party reference.
func partyBalance(inv domain.Invoice) (table, id string) {
	if inv.Type == domain.PurchaseInvoice && inv.SupplierID != nil {
		return "suppliers", *inv.SupplierID
	}
	if inv.CustomerID != nil {
		return "customers", *inv.CustomerID
	}
	return "", ""
}

// applyPartyBalanceDelta adds delta to the owning party's balance due inside tx.
// A zero delta is skipped; a missing party row surfaces as ErrNotFound.
func applyPartyBalanceDelta(ctx context.Context, tx pgx.Tx, inv domain.Invoice, delta decimal.Decimal, updatedBy string, now time.Time) error {
	if delta.IsZero() {
		return nil
	}
	table, id := partyBalance(inv)
	if table == "" {
		return nil
	}
	idCol := "customer_id"
	if table == "suppliers" {
		idCol = "supplier_id"
	}
	query := fmt.Sprintf(`
		UPDATE %s
		SET balance_due = balance_due + $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
		WHERE %s = $4
	`, table, idCol)
	tag, err := tx.Exec(ctx, query, delta, now, updatedBy, id)
	if err != nil {
		return fmt.Errorf("failed to adjust %s balance: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, table, id)
	}
	return nil
}

func insertInvoiceItems(ctx context.Context, tx pgx.Tx, invoiceID string, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO invoice_items (invoice_id, position, product_id, product_name, quantity, free_quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for i, item := range items {
		batch.Queue(query, invoiceID, i, item.ProductID, item.ProductName, item.Quantity, item.FreeQuantity, item.UnitPrice, item.TotalPrice)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}
	return nil
}

func insertSettlements(ctx context.Context, tx pgx.Tx, inv domain.Invoice) error {
	kind := "payment"
	entries := inv.Payments
	if inv.Type == domain.PurchaseInvoice {
		kind = "expense"
		entries = inv.Expenses
	}
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO invoice_settlements (invoice_id, position, kind, reference_id, amount, date, method, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for i, e := range entries {
		batch.Queue(query, inv.InvoiceID, i, kind, e.ReferenceID, e.Amount, e.Date, e.Method, e.Reference)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert settlement entry: %w", translateError(err))
		}
	}
	return nil
}

// writeSettlementState rewrites the derived settlement fields and ledger rows for
// inv inside tx, guarded by the invoice's version.
func writeSettlementState(ctx context.Context, tx pgx.Tx, inv domain.Invoice) error {
	tag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET paid_amount = $1, remaining_amount = $2, status = $3, due_date = $4,
		    version = version + 1, last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $7 AND version = $8
	`, inv.PaidAmount, inv.RemainingAmount, inv.Status, inv.DueDate,
		inv.LastUpdatedAt, inv.LastUpdatedBy, inv.InvoiceID, inv.Version)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s settlement state: %w", inv.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_id = $1)`, inv.InvoiceID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check invoice %s: %w", inv.InvoiceID, err)
		}
		if !exists {
			return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, inv.InvoiceID)
		}
		return fmt.Errorf("%w: invoice %s was modified concurrently", apperrors.ErrConflict, inv.InvoiceID)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM invoice_settlements WHERE invoice_id = $1`, inv.InvoiceID); err != nil {
		return fmt.Errorf("failed to clear settlement rows for invoice %s: %w", inv.InvoiceID, err)
	}
	if err := insertSettlements(ctx, tx, inv); err != nil {
		return err
	}
	return syncLedgerBackLinks(ctx, tx, inv)
}

// syncLedgerBackLinks mirrors the settlement rows onto the ledger tables'
// invoice_id column so payment/expense listings by invoice stay consistent with
// attach and detach operations.
func syncLedgerBackLinks(ctx context.Context, tx pgx.Tx, inv domain.Invoice) error {
	table, idCol := "payments", "payment_id"
	entries := inv.Payments
	if inv.Type == domain.PurchaseInvoice {
		table, idCol = "expenses", "expense_id"
		entries = inv.Expenses
	}
	refs := make([]string, len(entries))
	for i, e := range entries {
		refs[i] = e.ReferenceID
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET invoice_id = NULL WHERE invoice_id = $1 AND NOT (%s = ANY($2))
	`, table, idCol), inv.InvoiceID, refs); err != nil {
		return fmt.Errorf("failed to clear detached %s links: %w", table, err)
	}
	if len(refs) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET invoice_id = $1 WHERE %s = ANY($2)
	`, table, idCol), inv.InvoiceID, refs); err != nil {
		return fmt.Errorf("failed to set attached %s links: %w", table, err)
	}
	return nil
}

// SaveInvoice inserts the invoice with its items and increments the owning
// party's balance due within a DB transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, inv domain.Invoice) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO invoices (`+invoiceColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		`, inv.InvoiceID, inv.ReferenceNo, inv.Type, inv.CustomerID, inv.SupplierID, inv.CompanyID,
			inv.IssuedBy, inv.Email, inv.Terms, inv.Date, inv.DueDate, inv.Amount, inv.PaidAmount,
			inv.RemainingAmount, inv.Status, inv.Version, inv.CreatedAt, inv.CreatedBy,
			inv.LastUpdatedAt, inv.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to insert invoice %s: %w", inv.InvoiceID, translateError(err))
		}
		if err := insertInvoiceItems(ctx, tx, inv.InvoiceID, inv.Items); err != nil {
			return err
		}
		return applyPartyBalanceDelta(ctx, tx, inv, inv.Amount, inv.CreatedBy, inv.CreatedAt)
	})
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1`, invoiceID)
	inv, err := scanInvoice(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, translateError(err))
	}
	invoices := []domain.Invoice{*inv}
	if err := r.loadInvoiceChildren(ctx, invoices); err != nil {
		return nil, err
	}
	return &invoices[0], nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter ports.InvoiceFilter) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []interface{}{}
	addArg := func(clause string, v interface{}) {
		args = append(args, v)
		query += fmt.Sprintf(" AND %s = $%d", clause, len(args))
	}
	if filter.Status != "" {
		addArg("status", filter.Status)
	}
	if filter.Type != "" {
		addArg("type", filter.Type)
	}
	if filter.CustomerID != "" {
		addArg("customer_id", filter.CustomerID)
	}
	if filter.SupplierID != "" {
		addArg("supplier_id", filter.SupplierID)
	}
	if filter.CompanyID != "" {
		addArg("company_id", filter.CompanyID)
	}
	if filter.IssuedBy != "" {
		addArg("issued_by", filter.IssuedBy)
	}
	if filter.Reference != "" {
		addArg("reference_no", filter.Reference)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice rows: %w", err)
	}
	if err := r.loadInvoiceChildren(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// loadInvoiceChildren populates Items, Payments and Expenses for the given
// invoices with two grouped queries.
func (r *PgxInvoiceRepository) loadInvoiceChildren(ctx context.Context, invoices []domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]string, len(invoices))
	byID := make(map[string]*domain.Invoice, len(invoices))
	for i := range invoices {
		ids[i] = invoices[i].InvoiceID
		byID[invoices[i].InvoiceID] = &invoices[i]
	}

	itemRows, err := r.Pool.Query(ctx, `
		SELECT invoice_id, product_id, product_name, quantity, free_quantity, unit_price, total_price
		FROM invoice_items WHERE invoice_id = ANY($1) ORDER BY invoice_id, position
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load invoice items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var invoiceID string
		var item domain.LineItem
		if err := itemRows.Scan(&invoiceID, &item.ProductID, &item.ProductName, &item.Quantity, &item.FreeQuantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return fmt.Errorf("failed to scan invoice item: %w", err)
		}
		inv := byID[invoiceID]
		inv.Items = append(inv.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate invoice items: %w", err)
	}

	settlementRows, err := r.Pool.Query(ctx, `
		SELECT invoice_id, kind, reference_id, amount, date, method, reference
		FROM invoice_settlements WHERE invoice_id = ANY($1) ORDER BY invoice_id, position
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load invoice settlements: %w", err)
	}
	defer settlementRows.Close()
	for settlementRows.Next() {
		var invoiceID, kind string
		var entry domain.SettlementEntry
		if err := settlementRows.Scan(&invoiceID, &kind, &entry.ReferenceID, &entry.Amount, &entry.Date, &entry.Method, &entry.Reference); err != nil {
			return fmt.Errorf("failed to scan settlement entry: %w", err)
		}
		inv := byID[invoiceID]
		if kind == "expense" {
			inv.Expenses = append(inv.Expenses, entry)
		} else {
			inv.Payments = append(inv.Payments, entry)
		}
	}
	if err := settlementRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate invoice settlements: %w", err)
	}
	return nil
}

// UpdateInvoice rewrites the invoice's mutable fields, replaces its line items
// and adjusts the party balance by the amount delta, all within one transaction.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, inv domain.Invoice) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		var oldAmount decimal.Decimal
		err := tx.QueryRow(ctx, `SELECT amount FROM invoices WHERE invoice_id = $1 FOR UPDATE`, inv.InvoiceID).Scan(&oldAmount)
		if err != nil {
			return fmt.Errorf("failed to lock invoice %s: %w", inv.InvoiceID, translateError(err))
		}

		tag, err := tx.Exec(ctx, `
			UPDATE invoices
			SET email = $1, terms = $2, date = $3, due_date = $4, amount = $5, paid_amount = $6,
			    remaining_amount = $7, status = $8, version = version + 1,
			    last_updated_at = $9, last_updated_by = $10
			WHERE invoice_id = $11 AND version = $12
		`, inv.Email, inv.Terms, inv.Date, inv.DueDate, inv.Amount, inv.PaidAmount,
			inv.RemainingAmount, inv.Status, inv.LastUpdatedAt, inv.LastUpdatedBy,
			inv.InvoiceID, inv.Version)
		if err != nil {
			return fmt.Errorf("failed to update invoice %s: %w", inv.InvoiceID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: invoice %s was modified concurrently", apperrors.ErrConflict, inv.InvoiceID)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.InvoiceID); err != nil {
			return fmt.Errorf("failed to clear invoice items: %w", err)
		}
		if err := insertInvoiceItems(ctx, tx, inv.InvoiceID, inv.Items); err != nil {
			return err
		}
		return applyPartyBalanceDelta(ctx, tx, inv, inv.Amount.Sub(oldAmount), inv.LastUpdatedBy, inv.LastUpdatedAt)
	})
}

func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE invoices
		SET status = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
		WHERE invoice_id = $4
	`, status, now, updatedBy, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s status: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	return nil
}

// SaveSettlementState persists a rederived settlement state after an attach or
// detach on the invoice itself (the caller writes the ledger record separately).
func (r *PgxInvoiceRepository) SaveSettlementState(ctx context.Context, inv domain.Invoice) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		return writeSettlementState(ctx, tx, inv)
	})
}

// DeleteInvoice removes the invoice and unwinds its balance contribution.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, inv domain.Invoice) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1`, inv.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to delete invoice %s: %w", inv.InvoiceID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, inv.InvoiceID)
		}
		return applyPartyBalanceDelta(ctx, tx, inv, inv.Amount.Neg(), inv.LastUpdatedBy, time.Now().UTC())
	})
}

// DeleteAllInvoices unwinds every invoice's balance contribution and deletes all
// invoices inside one transaction.
func (r *PgxInvoiceRepository) DeleteAllInvoices(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE customers c
			SET balance_due = c.balance_due - s.total, version = c.version + 1
			FROM (SELECT customer_id, SUM(amount) AS total FROM invoices WHERE customer_id IS NOT NULL GROUP BY customer_id) s
			WHERE c.customer_id = s.customer_id
		`)
		if err != nil {
			return fmt.Errorf("failed to unwind customer balances: %w", err)
		}
		_, err = tx.Exec(ctx, `
			UPDATE suppliers sp
			SET balance_due = sp.balance_due - s.total, version = sp.version + 1
			FROM (SELECT supplier_id, SUM(amount) AS total FROM invoices WHERE supplier_id IS NOT NULL GROUP BY supplier_id) s
			WHERE sp.supplier_id = s.supplier_id
		`)
		if err != nil {
			return fmt.Errorf("failed to unwind supplier balances: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM invoices`)
		if err != nil {
			return fmt.Errorf("failed to delete invoices: %w", err)
		}
		deleted = tag.RowsAffected()
		return nil
	})
	return deleted, err
}
