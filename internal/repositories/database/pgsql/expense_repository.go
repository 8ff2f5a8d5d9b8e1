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

type PgxExpenseRepository struct {
	BaseRepository
}

// NewPgxExpenseRepository creates a new repository for expense data.
func NewPgxExpenseRepository(pool *pgxpool.Pool) ports.ExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.ExpenseRepository = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, reference_no, supplier_id, company_id, invoice_id, amount,
	method, date, status, notes, reference, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ExpenseID, &e.ReferenceNo, &e.SupplierID, &e.CompanyID, &e.InvoiceID, &e.Amount,
		&e.Method, &e.Date, &e.Status, &e.Notes, &e.Reference, &e.CreatedAt, &e.CreatedBy,
		&e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SaveExpense inserts the expense, decrements the supplier's balance due, inserts
// any spawned cheques and rewrites the linked invoice's settlement state, all
// within one DB transaction.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, e domain.Expense, cheques []domain.Cheque, invoice *domain.Invoice) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO expenses (`+expenseColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, e.ExpenseID, e.ReferenceNo, e.SupplierID, e.CompanyID, e.InvoiceID, e.Amount,
			e.Method, e.Date, e.Status, e.Notes, e.Reference, e.CreatedAt, e.CreatedBy,
			e.LastUpdatedAt, e.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", e.ExpenseID, translateError(err))
		}

		tag, err := tx.Exec(ctx, `
			UPDATE suppliers
			SET balance_due = balance_due - $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
			WHERE supplier_id = $4
		`, e.Amount, e.CreatedAt, e.CreatedBy, e.SupplierID)
		if err != nil {
			return fmt.Errorf("failed to decrement supplier balance: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, e.SupplierID)
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

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE expense_id = $1`, expenseID)
	e, err := scanExpense(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, translateError(err))
	}
	rows, err := r.Pool.Query(ctx, `SELECT cheque_id FROM cheques WHERE expense_id = $1 ORDER BY created_at`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense cheques: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cheque id: %w", err)
		}
		e.Cheques = append(e.Cheques, id)
	}
	return e, rows.Err()
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter ports.LedgerFilter) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`
	args := []interface{}{}
	addArg := func(clause string, v interface{}) {
		args = append(args, v)
		query += fmt.Sprintf(" AND %s $%d", clause, len(args))
	}
	if filter.PartyID != "" {
		addArg("supplier_id =", filter.PartyID)
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
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

// UpdateExpense rewrites the expense's descriptive fields. Amount, supplier and
// invoice links are immutable after creation.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, e domain.Expense) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE expenses
		SET method = $1, date = $2, status = $3, notes = $4, reference = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE expense_id = $8
	`, e.Method, e.Date, e.Status, e.Notes, e.Reference, e.LastUpdatedAt, e.LastUpdatedBy, e.ExpenseID)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", e.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, e.ExpenseID)
	}
	return nil
}

func deleteExpenseCascade(ctx context.Context, tx pgx.Tx, cascade ports.ExpenseCascade) error {
	e := cascade.Expense
	tag, err := tx.Exec(ctx, `
		UPDATE suppliers
		SET balance_due = balance_due + $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
		WHERE supplier_id = $4
	`, e.Amount, e.LastUpdatedAt, e.LastUpdatedBy, e.SupplierID)
	if err != nil {
		return fmt.Errorf("failed to restore supplier balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, e.SupplierID)
	}

	if cascade.Invoice != nil {
		if err := writeSettlementState(ctx, tx, *cascade.Invoice); err != nil {
			return err
		}
	}

	tag, err = tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1`, e.ExpenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", e.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, e.ExpenseID)
	}
	return nil
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, cascade ports.ExpenseCascade) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		return deleteExpenseCascade(ctx, tx, cascade)
	})
}

func (r *PgxExpenseRepository) DeleteAllExpenses(ctx context.Context, cascades []ports.ExpenseCascade) (int64, error) {
	var deleted int64
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		for _, cascade := range cascades {
			if err := deleteExpenseCascade(ctx, tx, cascade); err != nil {
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
