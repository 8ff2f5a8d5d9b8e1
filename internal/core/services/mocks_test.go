package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ ports.InvoiceRepository = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, inv domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, filter ports.InvoiceFilter) ([]domain.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, inv domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, now time.Time) error {
	args := m.Called(ctx, invoiceID, status, updatedBy, now)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveSettlementState(ctx context.Context, inv domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, inv domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteAllInvoices(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ ports.PaymentRepository = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) SavePayment(ctx context.Context, p domain.Payment, cheques []domain.Cheque, invoice *domain.Invoice) error {
	args := m.Called(ctx, p, cheques, invoice)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, filter ports.LedgerFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, p domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeletePayment(ctx context.Context, cascade ports.PaymentCascade) error {
	args := m.Called(ctx, cascade)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeleteAllPayments(ctx context.Context, cascades []ports.PaymentCascade) (int64, error) {
	args := m.Called(ctx, cascades)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ ports.ExpenseRepository = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, e domain.Expense, cheques []domain.Cheque, invoice *domain.Invoice) error {
	args := m.Called(ctx, e, cheques, invoice)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, filter ports.LedgerFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, e domain.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, cascade ports.ExpenseCascade) error {
	args := m.Called(ctx, cascade)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteAllExpenses(ctx context.Context, cascades []ports.ExpenseCascade) (int64, error) {
	args := m.Called(ctx, cascades)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, u domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, companyID string) ([]domain.User, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, u domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

var _ ports.CompanyRepository = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, c domain.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListExpiringCompanies(ctx context.Context, before time.Time) ([]domain.Company, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, c domain.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) AddAuthorizedUser(ctx context.Context, companyID string, userID string) error {
	args := m.Called(ctx, companyID, userID)
	return args.Error(0)
}

func (m *MockCompanyRepository) RemoveAuthorizedUser(ctx context.Context, companyID string, userID string) error {
	args := m.Called(ctx, companyID, userID)
	return args.Error(0)
}

func (m *MockCompanyRepository) DeleteCompany(ctx context.Context, companyID string) error {
	args := m.Called(ctx, companyID)
	return args.Error(0)
}

// --- Mock SubscriptionRequestRepository ---
type MockSubscriptionRequestRepository struct {
	mock.Mock
}

var _ ports.SubscriptionRequestRepository = (*MockSubscriptionRequestRepository)(nil)

func (m *MockSubscriptionRequestRepository) SaveRequest(ctx context.Context, r domain.SubscriptionRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockSubscriptionRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.SubscriptionRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionRequest), args.Error(1)
}

func (m *MockSubscriptionRequestRepository) ListRequests(ctx context.Context, status string) ([]domain.SubscriptionRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubscriptionRequest), args.Error(1)
}

func (m *MockSubscriptionRequestRepository) UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus, processedBy string, now time.Time) error {
	args := m.Called(ctx, requestID, status, processedBy, now)
	return args.Error(0)
}

func (m *MockSubscriptionRequestRepository) DeleteRequest(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}
