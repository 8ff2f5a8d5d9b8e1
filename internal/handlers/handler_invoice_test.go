package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

const testJWTSecret = "handler-test-secret"

type mockInvoiceFacade struct {
	mock.Mock
}

var _ ports.InvoiceSvcFacade = (*mockInvoiceFacade)(nil)

func (m *mockInvoiceFacade) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *mockInvoiceFacade) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *mockInvoiceFacade) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *mockInvoiceFacade) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, updaterUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *mockInvoiceFacade) UpdateInvoiceStatus(ctx context.Context, invoiceID string, req dto.UpdateInvoiceStatusRequest, updaterUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *mockInvoiceFacade) AttachPayment(ctx context.Context, invoiceID string, paymentID string, updaterUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, paymentID, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *mockInvoiceFacade) DetachPayment(ctx context.Context, invoiceID string, paymentID string, updaterUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, paymentID, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *mockInvoiceFacade) AttachExpense(ctx context.Context, invoiceID string, expenseID string, updaterUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, expenseID, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *mockInvoiceFacade) DetachExpense(ctx context.Context, invoiceID string, expenseID string, updaterUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, expenseID, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *mockInvoiceFacade) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *mockInvoiceFacade) DeleteAllInvoices(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newInvoiceTestRouter(svc ports.InvoiceSvcFacade) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	registerInvoiceRoutes(group, svc)
	return r
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func settledInvoice() *domain.Invoice {
	amount := decimal.NewFromInt(1160)
	return &domain.Invoice{
		InvoiceID:       "inv-1",
		Type:            domain.SalesInvoice,
		Status:          domain.InvoicePending,
		Amount:          amount,
		RemainingAmount: amount,
	}
}

func TestDetachPaymentRoute(t *testing.T) {
	svc := new(mockInvoiceFacade)
	svc.On("DetachPayment", mock.Anything, "inv-1", "pay-1", "user-1").
		Return(settledInvoice(), nil).Once()
	r := newInvoiceTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/invoices/inv-1/payments/pay-1", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDetachExpenseRoute(t *testing.T) {
	svc := new(mockInvoiceFacade)
	svc.On("DetachExpense", mock.Anything, "inv-1", "exp-1", "user-1").
		Return(settledInvoice(), nil).Once()
	r := newInvoiceTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/invoices/inv-1/expenses/exp-1", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAttachPaymentRoute(t *testing.T) {
	svc := new(mockInvoiceFacade)
	svc.On("AttachPayment", mock.Anything, "inv-1", "pay-1", "user-1").
		Return(settledInvoice(), nil).Once()
	r := newInvoiceTestRouter(svc)

	body := strings.NewReader(`{"referenceID": "pay-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/inv-1/payments", body)
	req.Header.Set("Authorization", bearerToken(t, "user-1"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAttachPaymentRoute_MissingReference(t *testing.T) {
	svc := new(mockInvoiceFacade)
	r := newInvoiceTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/inv-1/payments", strings.NewReader(`{}`))
	req.Header.Set("Authorization", bearerToken(t, "user-1"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AttachPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
