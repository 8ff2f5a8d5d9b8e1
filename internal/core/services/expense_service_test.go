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

type ExpenseServiceTestSuite struct {
	suite.Suite
	expenseRepo *MockExpenseRepository
	invoiceRepo *MockInvoiceRepository
	service     ports.ExpenseSvcFacade
	ctx         context.Context
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.expenseRepo = new(MockExpenseRepository)
	s.invoiceRepo = new(MockInvoiceRepository)
	s.service = services.NewExpenseService(s.expenseRepo, s.invoiceRepo)
	s.ctx = context.Background()
}

func (s *ExpenseServiceTestSuite) cashExpenseRequest() dto.CreateExpenseRequest {
	return dto.CreateExpenseRequest{
		SupplierID: "sup-1",
		Amount:     decimal.NewFromInt(500),
		Method:     "cash",
		Date:       "2026-02-10",
	}
}

func (s *ExpenseServiceTestSuite) purchaseInvoice() *domain.Invoice {
	inv := &domain.Invoice{
		InvoiceID:  "inv-1",
		Type:       domain.PurchaseInvoice,
		SupplierID: stringPtr("sup-1"),
		Status:     domain.InvoicePending,
		Items: []domain.LineItem{{
			ProductName: "lumber",
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

func (s *ExpenseServiceTestSuite) TestCreateExpense_CashWithoutInvoice() {
	s.expenseRepo.On("SaveExpense", s.ctx, mock.AnythingOfType("domain.Expense"), mock.AnythingOfType("[]domain.Cheque"), (*domain.Invoice)(nil)).Return(nil).Once()

	e, err := s.service.CreateExpense(s.ctx, s.cashExpenseRequest(), "user-1")

	s.Require().NoError(err)
	s.Equal("sup-1", e.SupplierID)
	s.Equal(domain.MethodCash, e.Method)
	s.Equal(domain.LedgerCompleted, e.Status)
	s.Regexp("^EXP-", e.ReferenceNo)
	s.Equal("user-1", e.CreatedBy)
	s.Empty(e.Cheques)
	s.expenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_RejectsNonPositiveAmount() {
	req := s.cashExpenseRequest()
	req.Amount = decimal.NewFromInt(-5)

	_, err := s.service.CreateExpense(s.ctx, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.expenseRepo.AssertNotCalled(s.T(), "SaveExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_CheckRequiresCheques() {
	req := s.cashExpenseRequest()
	req.Method = "check"

	_, err := s.service.CreateExpense(s.ctx, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_SpawnsIssuedCheques() {
	req := s.cashExpenseRequest()
	req.Method = "check"
	req.Cheques = []dto.ChequeDetailsRequest{{
		ChequeNumber: "300400",
		BankName:     "First National",
		ChequeDate:   "2026-03-01",
		Amount:       decimal.NewFromInt(500),
	}}

	var saved []domain.Cheque
	s.expenseRepo.On("SaveExpense", s.ctx, mock.AnythingOfType("domain.Expense"), mock.MatchedBy(func(cheques []domain.Cheque) bool {
		saved = cheques
		return len(cheques) == 1
	}), (*domain.Invoice)(nil)).Return(nil).Once()

	e, err := s.service.CreateExpense(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().Len(saved, 1)
	cheque := saved[0]
	s.Equal(domain.ChequeIssued, cheque.Type)
	s.Equal(domain.ChequePending, cheque.Status)
	s.Regexp("^CHQ-", cheque.ReferenceNo)
	s.Require().NotNil(cheque.SupplierID)
	s.Equal(e.SupplierID, *cheque.SupplierID)
	s.Require().NotNil(cheque.ExpenseID)
	s.Equal(e.ExpenseID, *cheque.ExpenseID)
	s.Nil(cheque.CustomerID)
	s.Equal([]string{cheque.ChequeID}, e.Cheques)
	s.expenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_AppliesAgainstInvoice() {
	inv := s.purchaseInvoice()
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()
	s.expenseRepo.On("SaveExpense", s.ctx, mock.AnythingOfType("domain.Expense"), mock.AnythingOfType("[]domain.Cheque"), mock.MatchedBy(func(saved *domain.Invoice) bool {
		return saved != nil &&
			saved.Status == domain.InvoicePartiallyPaid &&
			saved.PaidAmount.Equal(decimal.NewFromInt(500)) &&
			saved.DueDate == domain.DueDateIncomplete
	})).Return(nil).Once()

	req := s.cashExpenseRequest()
	req.InvoiceID = stringPtr("inv-1")

	e, err := s.service.CreateExpense(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(e.InvoiceID)
	s.Equal("inv-1", *e.InvoiceID)
	s.invoiceRepo.AssertExpectations(s.T())
	s.expenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_RejectsSalesInvoice() {
	inv := s.purchaseInvoice()
	inv.Type = domain.SalesInvoice
	inv.SupplierID = nil
	inv.CustomerID = stringPtr("cust-1")
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()

	req := s.cashExpenseRequest()
	req.InvoiceID = stringPtr("inv-1")

	_, err := s.service.CreateExpense(s.ctx, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.expenseRepo.AssertNotCalled(s.T(), "SaveExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_RejectsOtherSuppliersInvoice() {
	inv := s.purchaseInvoice()
	inv.SupplierID = stringPtr("sup-2")
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()

	req := s.cashExpenseRequest()
	req.InvoiceID = stringPtr("inv-1")

	_, err := s.service.CreateExpense(s.ctx, req, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestListExpenses_RejectsUnknownMethod() {
	_, err := s.service.ListExpenses(s.ctx, dto.ListExpensesParams{Method: "card"})

	s.ErrorIs(err, apperrors.ErrValidation)
	s.expenseRepo.AssertNotCalled(s.T(), "ListExpenses", mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestDeleteExpense_DetachesInvoiceEntry() {
	inv := s.purchaseInvoice()
	s.Require().NoError(inv.AttachSettlement(domain.SettlementEntry{
		ReferenceID: "exp-1",
		Amount:      decimal.NewFromInt(500),
		Date:        "2026-02-10",
		Method:      "cash",
	}))

	e := &domain.Expense{
		ExpenseID:  "exp-1",
		SupplierID: "sup-1",
		InvoiceID:  stringPtr("inv-1"),
		Amount:     decimal.NewFromInt(500),
		Method:     domain.MethodCash,
	}
	s.expenseRepo.On("FindExpenseByID", s.ctx, "exp-1").Return(e, nil).Once()
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()
	s.expenseRepo.On("DeleteExpense", s.ctx, mock.MatchedBy(func(cascade ports.ExpenseCascade) bool {
		return cascade.Expense.ExpenseID == "exp-1" &&
			cascade.Invoice != nil &&
			cascade.Invoice.Status == domain.InvoicePending &&
			cascade.Invoice.DueDate == "" &&
			cascade.Invoice.RemainingAmount.Equal(cascade.Invoice.Amount)
	})).Return(nil).Once()

	err := s.service.DeleteExpense(s.ctx, "exp-1", "user-1")

	s.Require().NoError(err)
	s.expenseRepo.AssertExpectations(s.T())
	s.invoiceRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestDeleteAllExpenses_SharesInvoiceSnapshot() {
	inv := s.purchaseInvoice()
	s.Require().NoError(inv.AttachSettlement(domain.SettlementEntry{ReferenceID: "exp-1", Amount: decimal.NewFromInt(500), Date: "2026-02-10", Method: "cash"}))
	s.Require().NoError(inv.AttachSettlement(domain.SettlementEntry{ReferenceID: "exp-2", Amount: decimal.NewFromInt(660), Date: "2026-02-15", Method: "cash"}))
	s.Equal(domain.InvoicePaid, inv.Status)

	expenses := []domain.Expense{
		{ExpenseID: "exp-1", SupplierID: "sup-1", InvoiceID: stringPtr("inv-1"), Amount: decimal.NewFromInt(500)},
		{ExpenseID: "exp-2", SupplierID: "sup-1", InvoiceID: stringPtr("inv-1"), Amount: decimal.NewFromInt(660)},
		{ExpenseID: "exp-3", SupplierID: "sup-2", Amount: decimal.NewFromInt(50)},
	}
	s.expenseRepo.On("ListExpenses", s.ctx, ports.LedgerFilter{}).Return(expenses, nil).Once()
	// The invoice is loaded once even though two expenses settle it.
	s.invoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(inv, nil).Once()
	s.expenseRepo.On("DeleteAllExpenses", s.ctx, mock.MatchedBy(func(cascades []ports.ExpenseCascade) bool {
		if len(cascades) != 3 {
			return false
		}
		// Only the last cascade touching the invoice carries its final state.
		return cascades[0].Invoice == nil &&
			cascades[1].Invoice != nil &&
			cascades[1].Invoice.Status == domain.InvoicePending &&
			len(cascades[1].Invoice.Expenses) == 0 &&
			cascades[2].Invoice == nil
	})).Return(int64(3), nil).Once()

	deleted, err := s.service.DeleteAllExpenses(s.ctx, "user-1")

	s.Require().NoError(err)
	s.Equal(int64(3), deleted)
	s.expenseRepo.AssertExpectations(s.T())
	s.invoiceRepo.AssertExpectations(s.T())
}

func TestExpenseService(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
