package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
	"github.com/bizflow/erp_backend/internal/utils"
)

// expenseService provides supplier expense operations; it mirrors the payment
// service with the supplier as the owning party and purchase invoices as the
// settlement target.
type expenseService struct {
	expenseRepo ports.ExpenseRepository
	invoiceRepo ports.InvoiceRepository
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo ports.ExpenseRepository, invoiceRepo ports.InvoiceRepository) ports.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo, invoiceRepo: invoiceRepo}
}

var _ ports.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	method := domain.PaymentMethod(req.Method)
	if method == domain.MethodCheck && len(req.Cheques) == 0 {
		return nil, fmt.Errorf("%w: check expenses require cheque details", apperrors.ErrValidation)
	}
	if method != domain.MethodCheck && len(req.Cheques) > 0 {
		return nil, fmt.Errorf("%w: cheque details are only valid for check expenses", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID}

	e := domain.Expense{
		ExpenseID:   uuid.NewString(),
		ReferenceNo: utils.NewBusinessRef("EXP"),
		SupplierID:  req.SupplierID,
		CompanyID:   req.CompanyID,
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		Method:      method,
		Date:        req.Date,
		Status:      domain.LedgerCompleted,
		Notes:       req.Notes,
		Reference:   req.Reference,
		AuditFields: audit,
	}

	cheques := make([]domain.Cheque, len(req.Cheques))
	for i, cr := range req.Cheques {
		cheques[i] = domain.Cheque{
			ChequeID:     uuid.NewString(),
			ReferenceNo:  utils.NewBusinessRef("CHQ"),
			ChequeNumber: cr.ChequeNumber,
			BankName:     cr.BankName,
			ChequeDate:   cr.ChequeDate,
			Amount:       cr.Amount,
			HolderName:   cr.HolderName,
			HolderPhone:  cr.HolderPhone,
			Status:       domain.ChequePending,
			Type:         domain.ChequeIssued,
			SupplierID:   &e.SupplierID,
			ExpenseID:    &e.ExpenseID,
			AuditFields:  audit,
		}
		if err := cheques[i].Validate(); err != nil {
			return nil, err
		}
		e.Cheques = append(e.Cheques, cheques[i].ChequeID)
	}

	var invoice *domain.Invoice
	if req.InvoiceID != nil {
		inv, err := s.invoiceRepo.FindInvoiceByID(ctx, *req.InvoiceID)
		if err != nil {
			return nil, err
		}
		if inv.Type != domain.PurchaseInvoice {
			return nil, fmt.Errorf("%w: expenses settle purchase invoices only", apperrors.ErrValidation)
		}
		if inv.SupplierID == nil || *inv.SupplierID != e.SupplierID {
			return nil, fmt.Errorf("%w: invoice %s belongs to a different supplier", apperrors.ErrValidation, inv.InvoiceID)
		}
		err = inv.AttachSettlement(domain.SettlementEntry{
			ReferenceID: e.ExpenseID,
			Amount:      e.Amount,
			Date:        e.Date,
			Method:      string(e.Method),
			Reference:   e.ReferenceNo,
		})
		if err != nil {
			return nil, err
		}
		inv.LastUpdatedAt = now
		inv.LastUpdatedBy = creatorUserID
		invoice = inv
	}

	if err := s.expenseRepo.SaveExpense(ctx, e, cheques, invoice); err != nil {
		logger.Error("failed to save expense", slog.String("expense_id", e.ExpenseID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("expense created", slog.String("expense_id", e.ExpenseID), slog.String("supplier_id", e.SupplierID), slog.String("amount", e.Amount.String()))
	return &e, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, expenseID)
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	if params.Method != "" && !domain.ValidExpenseMethod(params.Method) {
		return nil, fmt.Errorf("%w: unknown expense method %q", apperrors.ErrValidation, params.Method)
	}
	return s.expenseRepo.ListExpenses(ctx, ports.LedgerFilter{
		PartyID:   params.SupplierID,
		InvoiceID: params.InvoiceID,
		CompanyID: params.CompanyID,
		Method:    params.Method,
		Date:      params.Date,
		DateFrom:  params.DateFrom,
		DateTo:    params.DateTo,
		CreatedBy: params.CreatedBy,
	})
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, updaterUserID string) (*domain.Expense, error) {
	e, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if req.Method != nil {
		e.Method = domain.PaymentMethod(*req.Method)
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Status != nil {
		e.Status = domain.LedgerStatus(*req.Status)
	}
	if req.Notes != nil {
		e.Notes = *req.Notes
	}
	if req.Reference != nil {
		e.Reference = *req.Reference
	}
	e.LastUpdatedAt = time.Now().UTC()
	e.LastUpdatedBy = updaterUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *expenseService) buildCascade(ctx context.Context, e domain.Expense, deleterUserID string, now time.Time) (ports.ExpenseCascade, error) {
	e.LastUpdatedAt = now
	e.LastUpdatedBy = deleterUserID
	cascade := ports.ExpenseCascade{Expense: e}
	if e.InvoiceID == nil {
		return cascade, nil
	}
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, *e.InvoiceID)
	if err != nil {
		return cascade, err
	}
	inv.DetachSettlement(e.ExpenseID)
	inv.LastUpdatedAt = now
	inv.LastUpdatedBy = deleterUserID
	cascade.Invoice = inv
	return cascade, nil
}

// DeleteExpense unwinds the expense's side effects atomically, mirroring the
// payment delete cascade on the supplier side.
func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, deleterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	e, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	cascade, err := s.buildCascade(ctx, *e, deleterUserID, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := s.expenseRepo.DeleteExpense(ctx, cascade); err != nil {
		return err
	}
	logger.Info("expense deleted", slog.String("expense_id", expenseID))
	return nil
}

func (s *expenseService) DeleteAllExpenses(ctx context.Context, deleterUserID string) (int64, error) {
	now := time.Now().UTC()
	expenses, err := s.expenseRepo.ListExpenses(ctx, ports.LedgerFilter{})
	if err != nil {
		return 0, err
	}

	invoices := make(map[string]*domain.Invoice)
	lastForInvoice := make(map[string]int)
	cascades := make([]ports.ExpenseCascade, len(expenses))
	for i, e := range expenses {
		e.LastUpdatedAt = now
		e.LastUpdatedBy = deleterUserID
		cascades[i] = ports.ExpenseCascade{Expense: e}
		if e.InvoiceID == nil {
			continue
		}
		inv, ok := invoices[*e.InvoiceID]
		if !ok {
			inv, err = s.invoiceRepo.FindInvoiceByID(ctx, *e.InvoiceID)
			if err != nil {
				return 0, err
			}
			inv.LastUpdatedAt = now
			inv.LastUpdatedBy = deleterUserID
			invoices[*e.InvoiceID] = inv
		}
		inv.DetachSettlement(e.ExpenseID)
		lastForInvoice[*e.InvoiceID] = i
	}
	for invoiceID, idx := range lastForInvoice {
		cascades[idx].Invoice = invoices[invoiceID]
	}

	return s.expenseRepo.DeleteAllExpenses(ctx, cascades)
}
