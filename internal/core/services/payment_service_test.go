package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/core/services"
	"github.com/bizflow/erp_backend/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	paymentRepo *MockPaymentRepository
	invoiceRepo *MockInvoiceRepository
	service     ports.PaymentSvcFacade
	ctx         context.Context
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.paymentRepo = new(MockPaymentRepository)
	s.invoiceRepo = new(MockInvoiceRepository)
	s.service = services.NewPaymentService(s.paymentRepo, s.invoiceRepo)
	s.ctx = context.Background()
}

func (s *PaymentServiceTestSuite) cashPaymentRequest() dto.CreatePaymentRequest {
	return dto.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     decimal.NewFromInt(500),
		Method:     "cash",
		Date:       "2026-02-10",
	}
}

func (s *PaymentServiceTestSuite) settledSalesInvoice() *domain.Invoice {
	inv := &domain.Invoice{
		InvoiceID:  "inv-1",
		Type:       domain.SalesInvoice,
		CustomerID: stringPtr("cust-1"),
		Status:     domain.InvoicePending,
		Items: []domain.LineItem{{
			ProductName: "widget",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(1000),
			TotalPrice:  decimal.NewFromInt(1000),
		}},
		Version: 1,
	}
	inv.CalculateTotalAmount()
	inv.RemainingAmount = inv.Amount
	return inv
}

func (s *PaymentServiceTestSuite) TestCreatePayment_CashWithoutInvoice() {
	s.paymentRepo.On("SavePayment", s.ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("[]domain.Cheque"), (*domain.Invoice)(nil)).Return(nil).Once()

	p, err := s.service.CreatePayment(s.ctx, s.cashPaymentRequest(), "user-1")

	s.Require().NoError(err)
	s.Equal("cust-1", p.CustomerID)
	s.Equal(domain.MethodCash, p.Method)
	s.Equal(domain.LedgerCompleted, p.Status)
	s.Regexp("^PAY-", p.ReferenceNo)
	s.Equal("user-1", p.CreatedBy)
	s.Empty(p.Cheques)
	s.paymentRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestCreatePayment_RejectsNonPositiveAmount() {
	req := s.cashPaymentRequest()
	req.Amount = decimal.Zero

	_, err := s.service.CreatePayment(s.ctx, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.paymentRepo.AssertNotCalled(s.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestCreatePayment_CheckRequiresCheques() {
	req := s.cashPaymentRequest()
	req.Method = "check"

	_, err := s.service.CreatePayment(s.ctx, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PaymentServiceTestSuite) TestCreatePayment_ChequesOnlyForCheckMethod() {
	req := s.cashPaymentRequest()
	req.Cheques = []dto.ChequeDetailsRequest{{
		ChequeNumber: "100200",
		BankName:     "First National",
		ChequeDate:   "2026-03-01",
		Amount:       decimal.NewFromInt(500),
	}}

	_, err := s.service.CreatePayment(s.ctx, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PaymentServiceTestSuite) TestCreatePayment_SpawnsReceivedCheques() {
	req := s.cashPaymentRequest()
	req.Method = "check"
	req.Cheques = []dto.ChequeDetailsRequest{{
		ChequeNumber: "100200",
		BankName:     "First National",
		ChequeDate:   "2026-03-01",
		Amount:       decimal.NewFromInt(500),
		HolderName:   "Sami Odeh",
	}}

	var saved []domain.Cheque
	s.paymentRepo.On("SavePayment", s.ctx, mock.AnythingOfType("domain.Payment"), mock.MatchedBy(func(cheques []domain.Cheque) bool {
		saved = cheques
		return len(cheques) == 1
	}), (*domain.Invoice)(nil)).Return(nil).Once()

	p, err := s.service.CreatePayment(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().Len(saved, 1)
	cheque := saved[0]
	s.Equal(domain.ChequeReceived, cheque.Type)
	s.Equal(domain.ChequePending, cheque.Status)
	s.Regexp("^CHQ-", cheque.ReferenceNo)
	s.Require().NotNil(cheque.CustomerID)
	s.Equal(p.CustomerID, *cheque.CustomerID)
	s.Require().NotNil(cheque.PaymentID)
	s.Equal(p.PaymentID, *cheque.PaymentID)
	s.Equal([]string{cheque.ChequeID}, p.Cheques)
	s.paymentRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestCreatePayment_AppliesAgainstInvoice() {
	inv := s.settledSalesInvoice()
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()
	s.paymentRepo.On("SavePayment", s.ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("[]domain.Cheque"), mock.MatchedBy(func(saved *domain.Invoice) bool {
		return saved != nil &&
			saved.Status == domain.InvoicePartiallyPaid &&
			saved.PaidAmount.Equal(decimal.NewFromInt(500)) &&
			saved.DueDate == domain.DueDateIncomplete
	})).Return(nil).Once()

	req := s.cashPaymentRequest()
	req.InvoiceID = stringPtr("inv-1")

	p, err := s.service.CreatePayment(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(p.InvoiceID)
	s.Equal("inv-1", *p.InvoiceID)
	s.invoiceRepo.AssertExpectations(s.T())
	s.paymentRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestCreatePayment_RejectsPurchaseInvoice() {
	inv := s.settledSalesInvoice()
	inv.Type = domain.PurchaseInvoice
	inv.CustomerID = nil
	inv.SupplierID = stringPtr("sup-1")
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()

	req := s.cashPaymentRequest()
	req.InvoiceID = stringPtr("inv-1")

	_, err := s.service.CreatePayment(s.ctx, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.paymentRepo.AssertNotCalled(s.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestCreatePayment_RejectsOtherCustomersInvoice() {
	inv := s.settledSalesInvoice()
	inv.CustomerID = stringPtr("cust-2")
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()

	req := s.cashPaymentRequest()
	req.InvoiceID = stringPtr("inv-1")

	_, err := s.service.CreatePayment(s.ctx, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PaymentServiceTestSuite) TestListPayments_RejectsUnknownMethod() {
	_, err := s.service.ListPayments(s.ctx, dto.ListPaymentsParams{Method: "barter"})

	s.ErrorIs(err, apperrors.ErrValidation)
	s.paymentRepo.AssertNotCalled(s.T(), "ListPayments", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestDeletePayment_DetachesInvoiceEntry() {
	inv := s.settledSalesInvoice()
	s.Require().NoError(inv.AttachSettlement(domain.SettlementEntry{
		ReferenceID: "pay-1",
		Amount:      decimal.NewFromInt(500),
		Date:        "2026-02-10",
		Method:      "cash",
	}))

	p := &domain.Payment{
		PaymentID:  "pay-1",
		CustomerID: "cust-1",
		InvoiceID:  stringPtr("inv-1"),
		Amount:     decimal.NewFromInt(500),
		Method:     domain.MethodCash,
	}
	s.paymentRepo.On("FindPaymentByID", s.ctx, "pay-1").Return(p, nil).Once()
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()
	s.paymentRepo.On("DeletePayment", s.ctx, mock.MatchedBy(func(cascade ports.PaymentCascade) bool {
		return cascade.Payment.PaymentID == "pay-1" &&
			cascade.Invoice != nil &&
			cascade.Invoice.Status == domain.InvoicePending &&
			cascade.Invoice.DueDate == "" &&
			cascade.Invoice.RemainingAmount.Equal(cascade.Invoice.Amount)
	})).Return(nil).Once()

	err := s.service.DeletePayment(s.ctx, "pay-1", "user-1")

	s.Require().NoError(err)
	s.paymentRepo.AssertExpectations(s.T())
	s.invoiceRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestDeleteAllPayments_SharesInvoiceSnapshot() {
	inv := s.settledSalesInvoice()
	s.Require().NoError(inv.AttachSettlement(domain.SettlementEntry{ReferenceID: "pay-1", Amount: decimal.NewFromInt(500), Date: "2026-02-10", Method: "cash"}))
	s.Require().NoError(inv.AttachSettlement(domain.SettlementEntry{ReferenceID: "pay-2", Amount: decimal.NewFromInt(660), Date: "2026-02-15", Method: "cash"}))
	s.Equal(domain.InvoicePaid, inv.Status)

	payments := []domain.Payment{
		{PaymentID: "pay-1", CustomerID: "cust-1", InvoiceID: stringPtr("inv-1"), Amount: decimal.NewFromInt(500)},
		{PaymentID: "pay-2", CustomerID: "cust-1", InvoiceID: stringPtr("inv-1"), Amount: decimal.NewFromInt(660)},
		{PaymentID: "pay-3", CustomerID: "cust-2", Amount: decimal.NewFromInt(50)},
	}
	s.paymentRepo.On("ListPayments", s.ctx, ports.LedgerFilter{}).Return(payments, nil).Once()
	// The invoice is loaded once even though two payments settle it.
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()
	s.paymentRepo.On("DeleteAllPayments", s.ctx, mock.MatchedBy(func(cascades []ports.PaymentCascade) bool {
		if len(cascades) != 3 {
			return false
		}
		// Only the last cascade touching the invoice carries its final state.
		return cascades[0].Invoice == nil &&
			cascades[1].Invoice != nil &&
			cascades[1].Invoice.Status == domain.InvoicePending &&
			len(cascades[1].Invoice.Payments) == 0 &&
			cascades[2].Invoice == nil
	})).Return(int64(3), nil).Once()

	deleted, err := s.service.DeleteAllPayments(s.ctx, "user-1")

	s.Require().NoError(err)
	s.Equal(int64(3), deleted)
	s.paymentRepo.AssertExpectations(s.T())
	s.invoiceRepo.AssertExpectations(s.T())
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
