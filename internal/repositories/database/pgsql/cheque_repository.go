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

type PgxChequeRepository struct {
	BaseRepository
}

// NewPgxChequeRepository creates a new repository for cheque data.
func NewPgxChequeRepository(pool *pgxpool.Pool) ports.ChequeRepository {
	return &PgxChequeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.ChequeRepository = (*PgxChequeRepository)(nil)

const chequeColumns = `cheque_id, reference_no, cheque_number, bank_name, cheque_date, amount,
	holder_name, holder_phone, status, type, customer_id, supplier_id, payment_id, expense_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCheque(row pgx.Row) (*domain.Cheque, error) {
	var c domain.Cheque
	err := row.Scan(
		&c.ChequeID, &c.ReferenceNo, &c.ChequeNumber, &c.BankName, &c.ChequeDate, &c.Amount,
		&c.HolderName, &c.HolderPhone, &c.Status, &c.Type, &c.CustomerID, &c.SupplierID,
		&c.PaymentID, &c.ExpenseID, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxChequeRepository) SaveCheque(ctx context.Context, c domain.Cheque) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		return insertCheques(ctx, tx, []domain.Cheque{c})
	})
}

func (r *PgxChequeRepository) FindChequeByID(ctx context.Context, chequeID string) (*domain.Cheque, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+chequeColumns+` FROM cheques WHERE cheque_id = $1`, chequeID)
	c, err := scanCheque(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find cheque %s: %w", chequeID, translateError(err))
	}
	return c, nil
}

func (r *PgxChequeRepository) ListCheques(ctx context.Context, filter ports.ChequeFilter) ([]domain.Cheque, error) {
	query := `SELECT ` + chequeColumns + ` FROM cheques WHERE 1=1`
	args := []interface{}{}
	addArg := func(clause string, v interface{}) {
		args = append(args, v)
		query += fmt.Sprintf(" AND %s $%d", clause, len(args))
	}
	if filter.Status != "" {
		addArg("status =", filter.Status)
	}
	if filter.Type != "" {
		addArg("type =", filter.Type)
	}
	if filter.CustomerID != "" {
		addArg("customer_id =", filter.CustomerID)
	}
	if filter.SupplierID != "" {
		addArg("supplier_id =", filter.SupplierID)
	}
	if filter.PaymentID != "" {
		addArg("payment_id =", filter.PaymentID)
	}
	if filter.ExpenseID != "" {
		addArg("expense_id =", filter.ExpenseID)
	}
	if filter.Date != "" {
		addArg("cheque_date =", filter.Date)
	}
	if filter.DateFrom != "" {
		addArg("cheque_date >=", filter.DateFrom)
	}
	if filter.DateTo != "" {
		addArg("cheque_date <=", filter.DateTo)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cheques: %w", err)
	}
	defer rows.Close()

	var cheques []domain.Cheque
	for rows.Next() {
		c, err := scanCheque(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cheque row: %w", err)
		}
		cheques = append(cheques, *c)
	}
	return cheques, rows.Err()
}

func (r *PgxChequeRepository) UpdateCheque(ctx context.Context, c domain.Cheque) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE cheques
		SET cheque_number = $1, bank_name = $2, cheque_date = $3, amount = $4, holder_name = $5,
		    holder_phone = $6, status = $7, last_updated_at = $8, last_updated_by = $9
		WHERE cheque_id = $10
	`, c.ChequeNumber, c.BankName, c.ChequeDate, c.Amount, c.HolderName,
		c.HolderPhone, c.Status, c.LastUpdatedAt, c.LastUpdatedBy, c.ChequeID)
	if err != nil {
		return fmt.Errorf("failed to update cheque %s: %w", c.ChequeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cheque %s", apperrors.ErrNotFound, c.ChequeID)
	}
	return nil
}

func (r *PgxChequeRepository) UpdateChequeStatus(ctx context.Context, chequeID string, status domain.ChequeStatus, updatedBy string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE cheques
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE cheque_id = $4
	`, status, now, updatedBy, chequeID)
	if err != nil {
		return fmt.Errorf("failed to update cheque %s status: %w", chequeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cheque %s", apperrors.ErrNotFound, chequeID)
	}
	return nil
}

func (r *PgxChequeRepository) DeleteCheque(ctx context.Context, chequeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM cheques WHERE cheque_id = $1`, chequeID)
	if err != nil {
		return fmt.Errorf("failed to delete cheque %s: %w", chequeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cheque %s", apperrors.ErrNotFound, chequeID)
	}
	return nil
}
