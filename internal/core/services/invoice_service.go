package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
	"github.com/bizflow/erp_backend/internal/utils"
)

// invoiceService provides invoice operations, including the settlement
// attach/detach pipeline against the payment and expense ledgers.
type invoiceService struct {
	invoiceRepo ports.InvoiceRepository
	paymentRepo ports.PaymentRepository
	expenseRepo ports.ExpenseRepository
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo ports.InvoiceRepository, paymentRepo ports.PaymentRepository, expenseRepo ports.ExpenseRepository) ports.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		expenseRepo: expenseRepo,
	}
}

var _ ports.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice builds a new invoice from the request, derives the amount from
// the line items and persists it together with the party balance increment.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	status := domain.InvoicePending
	if req.Status != "" {
		status = domain.InvoiceStatus(req.Status)
	}

	inv := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		ReferenceNo: utils.NewBusinessRef("INV"),
		Type:        domain.InvoiceType(req.Type),
		CustomerID:  req.CustomerID,
		SupplierID:  req.SupplierID,
		CompanyID:   req.CompanyID,
		IssuedBy:    creatorUserID,
		Email:       req.Email,
		Terms:       req.Terms,
		Date:        req.Date,
		DueDate:     req.DueDate,
		Items:       dto.ToDomainLineItems(req.Items),
		Status:      status,
		Version:     1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := inv.ValidateParty(); err != nil {
		return nil, err
	}
	inv.CalculateTotalAmount()
	inv.RemainingAmount = inv.Amount

	if err := s.invoiceRepo.SaveInvoice(ctx, inv); err != nil {
		logger.Error("failed to save invoice", slog.String("invoice_id", inv.InvoiceID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("invoice created", slog.String("invoice_id", inv.InvoiceID), slog.String("reference_no", inv.ReferenceNo), slog.String("amount", inv.Amount.String()))
	return &inv, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	if params.Status != "" && !domain.ValidInvoiceStatus(params.Status) {
		return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, params.Status)
	}
	if params.Type != "" && !domain.ValidInvoiceType(params.Type) {
		return nil, fmt.Errorf("%w: unknown invoice type %q", apperrors.ErrValidation, params.Type)
	}
	return s.invoiceRepo.ListInvoices(ctx, ports.InvoiceFilter{
		Status:     params.Status,
		Type:       params.Type,
		CustomerID: params.CustomerID,
		SupplierID: params.SupplierID,
		CompanyID:  params.CompanyID,
		IssuedBy:   params.IssuedBy,
		Reference:  params.Reference,
	})
}

// UpdateInvoice applies the updatable fields. Replacing the items recomputes the
// amount and rederives the settlement state against the existing ledger.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, updaterUserID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		inv.Email = *req.Email
	}
	if req.Terms != nil {
		inv.Terms = *req.Terms
	}
	if req.Date != nil {
		inv.Date = *req.Date
	}
	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	}
	if req.Items != nil {
		inv.Items = dto.ToDomainLineItems(req.Items)
		inv.CalculateTotalAmount()
		inv.Recalculate()
	}

	inv.LastUpdatedAt = time.Now().UTC()
	inv.LastUpdatedBy = updaterUserID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *inv); err != nil {
		return nil, err
	}
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// UpdateInvoiceStatus sets a non-derived status. Paid and partially_paid are
// derived from the ledger and cannot be set directly; once settlement entries
// exist the status only moves through attach and detach.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, invoiceID string, req dto.UpdateInvoiceStatusRequest, updaterUserID string) (*domain.Invoice, error) {
	if !domain.ValidInvoiceStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, req.Status)
	}
	status := domain.InvoiceStatus(req.Status)
	if status == domain.InvoicePaid || status == domain.InvoicePartiallyPaid {
		return nil, fmt.Errorf("%w: status %q is derived from settlements and cannot be set directly", apperrors.ErrValidation, req.Status)
	}

	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if len(inv.Payments) > 0 || len(inv.Expenses) > 0 {
		return nil, fmt.Errorf("%w: invoice %s has settlements; its status is derived", apperrors.ErrValidation, invoiceID)
	}

	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, status, updaterUserID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// AttachPayment applies an existing payment against a sales invoice and
// rederives the settlement state.
func (s *invoiceService) AttachPayment(ctx context.Context, invoiceID string, paymentID string, updaterUserID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Type != domain.SalesInvoice {
		return nil, fmt.Errorf("%w: payments settle sales invoices only", apperrors.ErrValidation)
	}
	p, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if inv.CustomerID == nil || p.CustomerID != *inv.CustomerID {
		return nil, fmt.Errorf("%w: payment %s belongs to a different customer", apperrors.ErrValidation, paymentID)
	}
	if p.InvoiceID != nil && *p.InvoiceID != invoiceID {
		return nil, fmt.Errorf("%w: payment %s is already applied to invoice %s", apperrors.ErrValidation, paymentID, *p.InvoiceID)
	}

	entry := domain.SettlementEntry{
		ReferenceID: p.PaymentID,
		Amount:      p.Amount,
		Date:        p.Date,
		Method:      string(p.Method),
		Reference:   p.ReferenceNo,
	}
	return s.applySettlementChange(ctx, inv, updaterUserID, func() error {
		return inv.AttachSettlement(entry)
	})
}

// DetachPayment removes the payment's ledger entry and routes the invoice
// through the same recalculation path as an attach.
func (s *invoiceService) DetachPayment(ctx context.Context, invoiceID string, paymentID string, updaterUserID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.applySettlementChange(ctx, inv, updaterUserID, func() error {
		if !inv.DetachSettlement(paymentID) {
			return fmt.Errorf("%w: payment %s is not attached to invoice %s", apperrors.ErrNotFound, paymentID, invoiceID)
		}
		return nil
	})
}

// AttachExpense applies an existing expense against a purchase invoice.
func (s *invoiceService) AttachExpense(ctx context.Context, invoiceID string, expenseID string, updaterUserID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Type != domain.PurchaseInvoice {
		return nil, fmt.Errorf("%w: expenses settle purchase invoices only", apperrors.ErrValidation)
	}
	e, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if inv.SupplierID == nil || e.SupplierID != *inv.SupplierID {
		return nil, fmt.Errorf("%w: expense %s belongs to a different supplier", apperrors.ErrValidation, expenseID)
	}
	if e.InvoiceID != nil && *e.InvoiceID != invoiceID {
		return nil, fmt.Errorf("%w: expense %s is already applied to invoice %s", apperrors.ErrValidation, expenseID, *e.InvoiceID)
	}

	entry := domain.SettlementEntry{
		ReferenceID: e.ExpenseID,
		Amount:      e.Amount,
		Date:        e.Date,
		Method:      string(e.Method),
		Reference:   e.ReferenceNo,
	}
	return s.applySettlementChange(ctx, inv, updaterUserID, func() error {
		return inv.AttachSettlement(entry)
	})
}

func (s *invoiceService) DetachExpense(ctx context.Context, invoiceID string, expenseID string, updaterUserID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.applySettlementChange(ctx, inv, updaterUserID, func() error {
		if !inv.DetachSettlement(expenseID) {
			return fmt.Errorf("%w: expense %s is not attached to invoice %s", apperrors.ErrNotFound, expenseID, invoiceID)
		}
		return nil
	})
}

// applySettlementChange runs mutate against the loaded invoice and persists the
// rederived settlement state under the invoice's version guard.
func (s *invoiceService) applySettlementChange(ctx context.Context, inv *domain.Invoice, updaterUserID string, mutate func() error) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := mutate(); err != nil {
		return nil, err
	}
	inv.LastUpdatedAt = time.Now().UTC()
	inv.LastUpdatedBy = updaterUserID

	if err := s.invoiceRepo.SaveSettlementState(ctx, *inv); err != nil {
		logger.Warn("failed to persist settlement state", slog.String("invoice_id", inv.InvoiceID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("invoice settlement state updated",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("status", string(inv.Status)),
		slog.String("remaining", inv.RemainingAmount.String()))
	return s.invoiceRepo.FindInvoiceByID(ctx, inv.InvoiceID)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	return s.invoiceRepo.DeleteInvoice(ctx, *inv)
}

func (s *invoiceService) DeleteAllInvoices(ctx context.Context) (int64, error) {
	return s.invoiceRepo.DeleteAllInvoices(ctx)
}
