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

// paymentService provides customer payment operations and the delete cascades
// that unwind their side effects.
type paymentService struct {
	paymentRepo ports.PaymentRepository
	invoiceRepo ports.InvoiceRepository
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo ports.PaymentRepository, invoiceRepo ports.InvoiceRepository) ports.PaymentSvcFacade {
	return &paymentService{paymentRepo: paymentRepo, invoiceRepo: invoiceRepo}
}

var _ ports.PaymentSvcFacade = (*paymentService)(nil)

// CreatePayment records a payment, decrements the customer's balance due,
// spawns cheques for check payments and optionally applies the payment against
// a sales invoice, all in one repository transaction.
func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	method := domain.PaymentMethod(req.Method)
	if method == domain.MethodCheck && len(req.Cheques) == 0 {
		return nil, fmt.Errorf("%w: check payments require cheque details", apperrors.ErrValidation)
	}
	if method != domain.MethodCheck && len(req.Cheques) > 0 {
		return nil, fmt.Errorf("%w: cheque details are only valid for check payments", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID}

	p := domain.Payment{
		PaymentID:   uuid.NewString(),
		ReferenceNo: utils.NewBusinessRef("PAY"),
		CustomerID:  req.CustomerID,
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
			Type:         domain.ChequeReceived,
			CustomerID:   &p.CustomerID,
			PaymentID:    &p.PaymentID,
			AuditFields:  audit,
		}
		if err := cheques[i].Validate(); err != nil {
			return nil, err
		}
		p.Cheques = append(p.Cheques, cheques[i].ChequeID)
	}

	var invoice *domain.Invoice
	if req.InvoiceID != nil {
		inv, err := s.invoiceRepo.FindInvoiceByID(ctx, *req.InvoiceID)
		if err != nil {
			return nil, err
		}
		if inv.Type != domain.SalesInvoice {
			return nil, fmt.Errorf("%w: payments settle sales invoices only", apperrors.ErrValidation)
		}
		if inv.CustomerID == nil || *inv.CustomerID != p.CustomerID {
			return nil, fmt.Errorf("%w: invoice %s belongs to a different customer", apperrors.ErrValidation, inv.InvoiceID)
		}
		err = inv.AttachSettlement(domain.SettlementEntry{
			ReferenceID: p.PaymentID,
			Amount:      p.Amount,
			Date:        p.Date,
			Method:      string(p.Method),
			Reference:   p.ReferenceNo,
		})
		if err != nil {
			return nil, err
		}
		inv.LastUpdatedAt = now
		inv.LastUpdatedBy = creatorUserID
		invoice = inv
	}

	if err := s.paymentRepo.SavePayment(ctx, p, cheques, invoice); err != nil {
		logger.Error("failed to save payment", slog.String("payment_id", p.PaymentID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("payment created", slog.String("payment_id", p.PaymentID), slog.String("customer_id", p.CustomerID), slog.String("amount", p.Amount.String()))
	return &p, nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

func (s *paymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, error) {
	if params.Method != "" && !domain.ValidPaymentMethod(params.Method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, params.Method)
	}
	return s.paymentRepo.ListPayments(ctx, ports.LedgerFilter{
		PartyID:   params.CustomerID,
		InvoiceID: params.InvoiceID,
		CompanyID: params.CompanyID,
		Method:    params.Method,
		Date:      params.Date,
		DateFrom:  params.DateFrom,
		DateTo:    params.DateTo,
		CreatedBy: params.CreatedBy,
	})
}

func (s *paymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, updaterUserID string) (*domain.Payment, error) {
	p, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if req.Method != nil {
		p.Method = domain.PaymentMethod(*req.Method)
	}
	if req.Date != nil {
		p.Date = *req.Date
	}
	if req.Status != nil {
		p.Status = domain.LedgerStatus(*req.Status)
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}
	if req.Reference != nil {
		p.Reference = *req.Reference
	}
	p.LastUpdatedAt = time.Now().UTC()
	p.LastUpdatedBy = updaterUserID

	if err := s.paymentRepo.UpdatePayment(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

// buildCascade loads the payment's linked invoice (if any), detaches the
// payment's ledger entry and returns the bundle for a transactional delete.
func (s *paymentService) buildCascade(ctx context.Context, p domain.Payment, deleterUserID string, now time.Time) (ports.PaymentCascade, error) {
	p.LastUpdatedAt = now
	p.LastUpdatedBy = deleterUserID
	cascade := ports.PaymentCascade{Payment: p}
	if p.InvoiceID == nil {
		return cascade, nil
	}
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, *p.InvoiceID)
	if err != nil {
		return cascade, err
	}
	inv.DetachSettlement(p.PaymentID)
	inv.LastUpdatedAt = now
	inv.LastUpdatedBy = deleterUserID
	cascade.Invoice = inv
	return cascade, nil
}

// DeletePayment unwinds the payment's side effects atomically: the customer's
// balance is restored, the linked invoice's settlement state is rederived and
// the payment's cheques cascade away with it.
func (s *paymentService) DeletePayment(ctx context.Context, paymentID string, deleterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	p, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	cascade, err := s.buildCascade(ctx, *p, deleterUserID, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := s.paymentRepo.DeletePayment(ctx, cascade); err != nil {
		return err
	}
	logger.Info("payment deleted", slog.String("payment_id", paymentID))
	return nil
}

// DeleteAllPayments unwinds every payment inside one transaction. Payments
// settling the same invoice share one invoice snapshot so the version guard is
// bumped exactly once per invoice.
func (s *paymentService) DeleteAllPayments(ctx context.Context, deleterUserID string) (int64, error) {
	now := time.Now().UTC()
	payments, err := s.paymentRepo.ListPayments(ctx, ports.LedgerFilter{})
	if err != nil {
		return 0, err
	}

	invoices := make(map[string]*domain.Invoice)
	lastForInvoice := make(map[string]int)
	cascades := make([]ports.PaymentCascade, len(payments))
	for i, p := range payments {
		p.LastUpdatedAt = now
		p.LastUpdatedBy = deleterUserID
		cascades[i] = ports.PaymentCascade{Payment: p}
		if p.InvoiceID == nil {
			continue
		}
		inv, ok := invoices[*p.InvoiceID]
		if !ok {
			inv, err = s.invoiceRepo.FindInvoiceByID(ctx, *p.InvoiceID)
			if err != nil {
				return 0, err
			}
			inv.LastUpdatedAt = now
			inv.LastUpdatedBy = deleterUserID
			invoices[*p.InvoiceID] = inv
		}
		inv.DetachSettlement(p.PaymentID)
		lastForInvoice[*p.InvoiceID] = i
	}
	// Attach each invoice's final state to the last cascade touching it so the
	// settlement rewrite happens once, after all detaches.
	for invoiceID, idx := range lastForInvoice {
		cascades[idx].Invoice = invoices[invoiceID]
	}

	return s.paymentRepo.DeleteAllPayments(ctx, cascades)
}
