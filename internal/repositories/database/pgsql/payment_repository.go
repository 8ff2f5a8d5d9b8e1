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

type PgxPaymentRepository struct {
	BaseRepository
}

// NewPgxPaymentRepository creates a new repository for payment data.
func NewPgxPaymentRepository(pool *pgxpool.Pool) ports.PaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.PaymentRepository = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, reference_no, customer_id, company_id, invoice_id, amount,
	method, date, status, notes, reference, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.PaymentID, &p.ReferenceNo, &p.CustomerID, &p.CompanyID, &p.InvoiceID, &p.Amount,
		&p.Method, &p.Date, &p.Status, &p.Notes, &p.Reference, &p.CreatedAt, &p.CreatedBy,
		&p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func insertCheques(ctx context.Context, tx pgx.Tx, cheques []domain.Cheque) error {
	if len(cheques) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range cheques {
		batch.Queue(`
			INSERT INTO cheques (`+chequeColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		`, c.ChequeID, c.ReferenceNo, c.ChequeNumber, c.BankName, c.ChequeDate, c.Amount,
			c.HolderName, c.HolderPhone, c.Status, c.Type, c.CustomerID, c.SupplierID,
			c.PaymentID, c.ExpenseID, c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range cheques {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert cheque: %w", translateError(err))
		}
	}
	return nil
}

// SavePayment inserts the payment, decrements the customer's balance due, inserts
// any spawned cheques and rewrites the linked invoice's settlement state, all
// within one DB transaction.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, p domain.Payment, cheques []domain.Cheque, invoice *domain.Invoice) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO payments (`+paymentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, p.PaymentID, p.ReferenceNo, p.CustomerID, p.CompanyID, p.InvoiceID, p.Amount,
			p.Method, p.Date, p.Status, p.Notes, p.Reference, p.CreatedAt, p.CreatedBy,
			p.LastUpdatedAt, p.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to insert payment %s: %w", p.PaymentID, translateError(err))
		}

		tag, err := tx.Exec(ctx, `
			UPDATE customers
			SET balance_due = balance_due - $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
			WHERE customer_id = $4
		`, p.Amount, p.CreatedAt, p.CreatedBy, p.CustomerID)
		if err != nil {
			return fmt.Errorf("failed to decrement customer balance: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, p.CustomerID)
		}

		if err := insertCheques(ctx, tx, cheques); err != nil {
			return err
		}
		if invoice != nil {
			return writeSettlementState(ctx, tx, *invoice)
		}
		return nil
	})
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, paymentID)
	p, err := scanPayment(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, translateError(err))
	}
	if err := r.loadChequeRefs(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PgxPaymentRepository) loadChequeRefs(ctx context.Context, p *domain.Payment) error {
	rows, err := r.Pool.Query(ctx, `SELECT cheque_id FROM cheques WHERE payment_id = $1 ORDER BY created_at`, p.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to load payment cheques: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan cheque id: %w", err)
		}
		p.Cheques = append(p.Cheques, id)
	}
	return rows.Err()
}

func (r *PgxPaymentRepository) ListPayments(ctx context.Context, filter ports.LedgerFilter) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	args := []interface{}{}
	addArg := func(clause string, v interface{}) {
		args = append(args, v)
		query += fmt.Sprintf(" AND %s $%d", clause, len(args))
	}
	if filter.PartyID != "" {
		addArg("customer_id =", filter.PartyID)
	}
	if filter.InvoiceID != "" {
		addArg("invoice_id =", filter.InvoiceID)
	}
	if filter.CompanyID != "" {
		addArg("company_id =", filter.CompanyID)
	}
	if filter.Method != "" {
		addArg("method =", filter.Method)
	}
	if filter.Date != "" {
		addArg("date =", filter.Date)
	}
	if filter.DateFrom != "" {
		addArg("date >=", filter.DateFrom)
	}
	if filter.DateTo != "" {
		addArg("date <=", filter.DateTo)
	}
	if filter.CreatedBy != "" {
		addArg("created_by =", filter.CreatedBy)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

// UpdatePayment rewrites the payment's descriptive fields. Amount, customer and
// invoice links are immutable after creation; changing them means delete and recreate.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, p domain.Payment) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE payments
		SET method = $1, date = $2, status = $3, notes = $4, reference = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE payment_id = $8
	`, p.Method, p.Date, p.Status, p.Notes, p.Reference, p.LastUpdatedAt, p.LastUpdatedBy, p.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", p.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, p.PaymentID)
	}
	return nil
}

// deletePaymentCascade applies one payment's unwind inside tx: restore the
// customer balance, rewrite the linked invoice's settlement state, then delete
// the payment (cheques cascade via FK).
func deletePaymentCascade(ctx context.Context, tx pgx.Tx, cascade ports.PaymentCascade) error {
	p := cascade.Payment
	tag, err := tx.Exec(ctx, `
		UPDATE customers
		SET balance_due = balance_due + $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
		WHERE customer_id = $4
	`, p.Amount, p.LastUpdatedAt, p.LastUpdatedBy, p.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to restore customer balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, p.CustomerID)
	}

	if cascade.Invoice != nil {
		if err := writeSettlementState(ctx, tx, *cascade.Invoice); err != nil {
			return err
		}
	}

	tag, err = tx.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1`, p.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", p.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, p.PaymentID)
	}
	return nil
}

func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, cascade ports.PaymentCascade) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		return deletePaymentCascade(ctx, tx, cascade)
	})
}

func (r *PgxPaymentRepository) DeleteAllPayments(ctx context.Context, cascades []ports.PaymentCascade) (int64, error) {
	var deleted int64
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		for _, cascade := range cascades {
			if err := deletePaymentCascade(ctx, tx, cascade); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
