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

func stringPtr(s string) *string { return &s }

type InvoiceServiceTestSuite struct {
	suite.Suite
	invoiceRepo *MockInvoiceRepository
	paymentRepo *MockPaymentRepository
	expenseRepo *MockExpenseRepository
	service     ports.InvoiceSvcFacade
	ctx         context.Context
}

func (s *InvoiceServiceTestSuite) SetupTest() {
	s.invoiceRepo = new(MockInvoiceRepository)
	s.paymentRepo = new(MockPaymentRepository)
	s.expenseRepo = new(MockExpenseRepository)
	s.service = services.NewInvoiceService(s.invoiceRepo, s.paymentRepo, s.expenseRepo)
	s.ctx = context.Background()
}

func (s *InvoiceServiceTestSuite) salesInvoice(customerID string) *domain.Invoice {
	inv := &domain.Invoice{
		InvoiceID:  "inv-1",
		Type:       domain.SalesInvoice,
		CustomerID: stringPtr(customerID),
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

func (s *InvoiceServiceTestSuite) TestCreateInvoice_DerivesAmount() {
	s.invoiceRepo.On("SaveInvoice", s.ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	inv, err := s.service.CreateInvoice(s.ctx, dto.CreateInvoiceRequest{
		Type:       "sales",
		CustomerID: stringPtr("cust-1"),
		Date:       "2026-01-01",
		Items: []dto.LineItemRequest{{
			ProductName: "widget",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(1000),
			TotalPrice:  decimal.NewFromInt(1000),
		}},
	}, "user-1")

	s.Require().NoError(err)
	s.True(inv.Amount.Equal(decimal.NewFromInt(1160)))
	s.True(inv.RemainingAmount.Equal(inv.Amount))
	s.True(inv.PaidAmount.IsZero())
	s.Equal(domain.InvoicePending, inv.Status)
	s.Equal(int64(1), inv.Version)
	s.Regexp(`^INV-`, inv.ReferenceNo)
	s.Equal("user-1", inv.CreatedBy)
	s.invoiceRepo.AssertExpectations(s.T())
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_RejectsMissingParty() {
	_, err := s.service.CreateInvoice(s.ctx, dto.CreateInvoiceRequest{
		Type: "sales",
		Date: "2026-01-01",
		Items: []dto.LineItemRequest{{
			ProductName: "widget",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(10),
			TotalPrice:  decimal.NewFromInt(10),
		}},
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.invoiceRepo.AssertNotCalled(s.T(), "SaveInvoice")
}

func (s *InvoiceServiceTestSuite) TestListInvoices_RejectsUnknownStatus() {
	_, err := s.service.ListInvoices(s.ctx, dto.ListInvoicesParams{Status: "archived"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_RejectsDerivedStatus() {
	_, err := s.service.UpdateInvoiceStatus(s.ctx, "inv-1", dto.UpdateInvoiceStatusRequest{Status: "paid"}, "user-1")
	s.ErrorIs(err, apperrors.ErrValidation)
	s.invoiceRepo.AssertNotCalled(s.T(), "UpdateInvoiceStatus")
}

func (s *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_RejectsWhenSettled() {
	inv := s.salesInvoice("cust-1")
	inv.Payments = []domain.SettlementEntry{{ReferenceID: "pay-1", Amount: decimal.NewFromInt(100)}}
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()

	_, err := s.service.UpdateInvoiceStatus(s.ctx, "inv-1", dto.UpdateInvoiceStatusRequest{Status: "overdue"}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.invoiceRepo.AssertNotCalled(s.T(), "UpdateInvoiceStatus")
}

func (s *InvoiceServiceTestSuite) TestAttachPayment_PartialSettlement() {
	inv := s.salesInvoice("cust-1")
	payment := &domain.Payment{
		PaymentID:   "pay-1",
		ReferenceNo: "PAY-AAAA000001",
		CustomerID:  "cust-1",
		Amount:      decimal.NewFromInt(500),
		Method:      domain.MethodCash,
		Date:        "2026-01-10",
	}

	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()
	s.paymentRepo.On("FindPaymentByID", s.ctx, "pay-1").Return(payment, nil).Once()
	s.invoiceRepo.On("SaveSettlementState", s.ctx, mock.MatchedBy(func(saved domain.Invoice) bool {
		return saved.Status == domain.InvoicePartiallyPaid &&
			saved.PaidAmount.Equal(decimal.NewFromInt(500)) &&
			saved.RemainingAmount.Equal(decimal.NewFromInt(660)) &&
			saved.DueDate == domain.DueDateIncomplete
	})).Return(nil).Once()
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()

	result, err := s.service.AttachPayment(s.ctx, "inv-1", "pay-1", "user-1")

	s.Require().NoError(err)
	s.Equal(domain.InvoicePartiallyPaid, result.Status)
	s.invoiceRepo.AssertExpectations(s.T())
	s.paymentRepo.AssertExpectations(s.T())
}

func (s *InvoiceServiceTestSuite) TestAttachPayment_RejectsPurchaseInvoice() {
	inv := &domain.Invoice{
		InvoiceID:  "inv-2",
		Type:       domain.PurchaseInvoice,
		SupplierID: stringPtr("sup-1"),
		Status:     domain.InvoicePending,
	}
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-2").Return(inv, nil).Once()

	_, err := s.service.AttachPayment(s.ctx, "inv-2", "pay-1", "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.paymentRepo.AssertNotCalled(s.T(), "FindPaymentByID")
}

func (s *InvoiceServiceTestSuite) TestAttachPayment_RejectsWrongCustomer() {
	inv := s.salesInvoice("cust-1")
	payment := &domain.Payment{PaymentID: "pay-1", CustomerID: "cust-2", Amount: decimal.NewFromInt(100)}

	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()
	s.paymentRepo.On("FindPaymentByID", s.ctx, "pay-1").Return(payment, nil).Once()

	_, err := s.service.AttachPayment(s.ctx, "inv-1", "pay-1", "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.invoiceRepo.AssertNotCalled(s.T(), "SaveSettlementState")
}

func (s *InvoiceServiceTestSuite) TestAttachPayment_RejectsAlreadyApplied() {
	inv := s.salesInvoice("cust-1")
	payment := &domain.Payment{
		PaymentID:  "pay-1",
		CustomerID: "cust-1",
		InvoiceID:  stringPtr("inv-other"),
		Amount:     decimal.NewFromInt(100),
	}

	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()
	s.paymentRepo.On("FindPaymentByID", s.ctx, "pay-1").Return(payment, nil).Once()

	_, err := s.service.AttachPayment(s.ctx, "inv-1", "pay-1", "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *InvoiceServiceTestSuite) TestDetachPayment_EmptiedLedgerResetsStatus() {
	inv := s.salesInvoice("cust-1")
	s.Require().NoError(inv.AttachSettlement(domain.SettlementEntry{
		ReferenceID: "pay-1",
		Amount:      decimal.NewFromInt(1160),
		Date:        "2026-01-10",
	}))
	s.Require().Equal(domain.InvoicePaid, inv.Status)

	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()
	s.invoiceRepo.On("SaveSettlementState", s.ctx, mock.MatchedBy(func(saved domain.Invoice) bool {
		return saved.Status == domain.InvoicePending &&
			saved.DueDate == "" &&
			len(saved.Payments) == 0
	})).Return(nil).Once()
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()

	_, err := s.service.DetachPayment(s.ctx, "inv-1", "pay-1", "user-1")

	s.Require().NoError(err)
	s.invoiceRepo.AssertExpectations(s.T())
}

func (s *InvoiceServiceTestSuite) TestDetachPayment_NotAttached() {
	inv := s.salesInvoice("cust-1")
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()

	_, err := s.service.DetachPayment(s.ctx, "inv-1", "pay-unknown", "user-1")

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.invoiceRepo.AssertNotCalled(s.T(), "SaveSettlementState")
}

func (s *InvoiceServiceTestSuite) TestAttachExpense_SettlesPurchaseInvoice() {
	inv := &domain.Invoice{
		InvoiceID:  "inv-3",
		Type:       domain.PurchaseInvoice,
		SupplierID: stringPtr("sup-1"),
		Status:     domain.InvoicePending,
		Items: []domain.LineItem{{
			Quantity:   1,
			UnitPrice:  decimal.NewFromInt(100),
			TotalPrice: decimal.NewFromInt(100),
		}},
	}
	inv.CalculateTotalAmount()
	inv.RemainingAmount = inv.Amount

	expense := &domain.Expense{
		ExpenseID:  "exp-1",
		SupplierID: "sup-1",
		Amount:     decimal.NewFromInt(116),
		Method:     domain.MethodCash,
		Date:       "2026-02-01",
	}

	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-3").Return(inv, nil).Once()
	s.expenseRepo.On("FindExpenseByID", s.ctx, "exp-1").Return(expense, nil).Once()
	s.invoiceRepo.On("SaveSettlementState", s.ctx, mock.MatchedBy(func(saved domain.Invoice) bool {
		return saved.Status == domain.InvoicePaid &&
			len(saved.Expenses) == 1 &&
			saved.DueDate == "2026-02-01"
	})).Return(nil).Once()
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-3").Return(inv, nil).Once()

	_, err := s.service.AttachExpense(s.ctx, "inv-3", "exp-1", "user-1")

	s.Require().NoError(err)
	s.invoiceRepo.AssertExpectations(s.T())
	s.expenseRepo.AssertExpectations(s.T())
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
