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

// chequeService provides standalone cheque operations. Cheques spawned by check
// payments and expenses are created inside those ledger transactions instead.
type chequeService struct {
	chequeRepo ports.ChequeRepository
}

// NewChequeService creates a new ChequeService.
func NewChequeService(chequeRepo ports.ChequeRepository) ports.ChequeSvcFacade {
	return &chequeService{chequeRepo: chequeRepo}
}

var _ ports.ChequeSvcFacade = (*chequeService)(nil)

func (s *chequeService) CreateCheque(ctx context.Context, req dto.CreateChequeRequest, creatorUserID string) (*domain.Cheque, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: cheque amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	c := domain.Cheque{
		ChequeID:     uuid.NewString(),
		ReferenceNo:  utils.NewBusinessRef("CHQ"),
		ChequeNumber: req.ChequeNumber,
		BankName:     req.BankName,
		ChequeDate:   req.ChequeDate,
		Amount:       req.Amount,
		HolderName:   req.HolderName,
		HolderPhone:  req.HolderPhone,
		Status:       domain.ChequePending,
		Type:         domain.ChequeType(req.Type),
		CustomerID:   req.CustomerID,
		SupplierID:   req.SupplierID,
		PaymentID:    req.PaymentID,
		ExpenseID:    req.ExpenseID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	// Direction must match the party side.
	if c.Type == domain.ChequeReceived && c.CustomerID == nil {
		return nil, fmt.Errorf("%w: received cheques come from a customer", apperrors.ErrValidation)
	}
	if c.Type == domain.ChequeIssued && c.SupplierID == nil {
		return nil, fmt.Errorf("%w: issued cheques go to a supplier", apperrors.ErrValidation)
	}

	if err := s.chequeRepo.SaveCheque(ctx, c); err != nil {
		logger.Error("failed to save cheque", slog.String("cheque_id", c.ChequeID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("cheque created", slog.String("cheque_id", c.ChequeID), slog.String("type", string(c.Type)))
	return &c, nil
}

func (s *chequeService) GetChequeByID(ctx context.Context, chequeID string) (*domain.Cheque, error) {
	return s.chequeRepo.FindChequeByID(ctx, chequeID)
}

func (s *chequeService) ListCheques(ctx context.Context, params dto.ListChequesParams) ([]domain.Cheque, error) {
	if params.Status != "" && !domain.ValidChequeStatus(params.Status) {
		return nil, fmt.Errorf("%w: unknown cheque status %q", apperrors.ErrValidation, params.Status)
	}
	if params.Type != "" && !domain.ValidChequeType(params.Type) {
		return nil, fmt.Errorf("%w: unknown cheque type %q", apperrors.ErrValidation, params.Type)
	}
	return s.chequeRepo.ListCheques(ctx, ports.ChequeFilter{
		Status:     params.Status,
		Type:       params.Type,
		CustomerID: params.CustomerID,
		SupplierID: params.SupplierID,
		PaymentID:  params.PaymentID,
		ExpenseID:  params.ExpenseID,
		Date:       params.Date,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
	})
}

func (s *chequeService) UpdateCheque(ctx context.Context, chequeID string, req dto.UpdateChequeRequest, updaterUserID string) (*domain.Cheque, error) {
	c, err := s.chequeRepo.FindChequeByID(ctx, chequeID)
	if err != nil {
		return nil, err
	}
	if req.ChequeNumber != nil {
		c.ChequeNumber = *req.ChequeNumber
	}
	if req.BankName != nil {
		c.BankName = *req.BankName
	}
	if req.ChequeDate != nil {
		c.ChequeDate = *req.ChequeDate
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: cheque amount must be positive", apperrors.ErrValidation)
		}
		c.Amount = *req.Amount
	}
	if req.HolderName != nil {
		c.HolderName = *req.HolderName
	}
	if req.HolderPhone != nil {
		c.HolderPhone = *req.HolderPhone
	}
	if req.Status != nil {
		c.Status = domain.ChequeStatus(*req.Status)
	}
	c.LastUpdatedAt = time.Now().UTC()
	c.LastUpdatedBy = updaterUserID

	if err := s.chequeRepo.UpdateCheque(ctx, *c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *chequeService) UpdateChequeStatus(ctx context.Context, chequeID string, req dto.UpdateChequeStatusRequest, updaterUserID string) (*domain.Cheque, error) {
	if err := s.chequeRepo.UpdateChequeStatus(ctx, chequeID, domain.ChequeStatus(req.Status), updaterUserID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.chequeRepo.FindChequeByID(ctx, chequeID)
}

func (s *chequeService) DeleteCheque(ctx context.Context, chequeID string) error {
	return s.chequeRepo.DeleteCheque(ctx, chequeID)
}
