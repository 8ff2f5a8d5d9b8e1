package ports

import (
	"context"
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
)

// InvoiceFilter narrows invoice listings. Zero values mean "no constraint".
type InvoiceFilter struct {
	Status     string
	Type       string
	CustomerID string
	SupplierID string
	CompanyID  string
	IssuedBy   string
	Reference  string
}

// InvoiceRepository persists invoices together with their line items and
// settlement ledger. Methods that touch more than one table run inside a single
// database transaction; writes against derived settlement state carry the
// invoice's version and fail with apperrors.ErrConflict on a lost update.
type InvoiceRepository interface {
	// SaveInvoice inserts the invoice, its items and (if a party is set) links it
	// to the party's invoice list and increments the party's balance due, atomically.
	SaveInvoice(ctx context.Context, inv domain.Invoice) error

	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, error)

	// UpdateInvoice rewrites the invoice's mutable fields and replaces its line
	// items. The party link and balance delta are adjusted when the amount changed.
	UpdateInvoice(ctx context.Context, inv domain.Invoice) error

	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, now time.Time) error

	// SaveSettlementState replaces the invoice's settlement rows and derived
	// fields (paid, remaining, status, due date) after an attach or detach.
	SaveSettlementState(ctx context.Context, inv domain.Invoice) error

	// DeleteInvoice removes the invoice and unwinds its party link and balance
	// contribution atomically.
	DeleteInvoice(ctx context.Context, inv domain.Invoice) error

	// DeleteAllInvoices unwinds every invoice's party references and balance
	// contributions and deletes all invoices inside one transaction, returning the
	// number deleted.
	DeleteAllInvoices(ctx context.Context) (int64, error)
}

// LedgerFilter narrows payment and expense listings.
type LedgerFilter struct {
	PartyID   string // customer for payments, supplier for expenses
	InvoiceID string
	CompanyID string
	Method    string
	Date      string
	DateFrom  string
	DateTo    string
	CreatedBy string
}

// PaymentCascade bundles a payment with the rederived state of its linked invoice
// (nil when the payment settles no invoice) for a transactional delete.
type PaymentCascade struct {
	Payment domain.Payment
	Invoice *domain.Invoice
}

// PaymentRepository persists customer payments and their cascading effects.
type PaymentRepository interface {
	// SavePayment inserts the payment, links it to the customer's payment list,
	// decrements the customer's balance due, inserts any spawned cheques, and (if
	// invoice is non-nil) replaces the invoice's settlement state in one transaction.
	SavePayment(ctx context.Context, p domain.Payment, cheques []domain.Cheque, invoice *domain.Invoice) error

	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, filter LedgerFilter) ([]domain.Payment, error)
	UpdatePayment(ctx context.Context, p domain.Payment) error

	// DeletePayment unwinds the payment's side effects atomically: customer list
	// pull, balance restore, invoice settlement rewrite, cheque cascade, delete.
	DeletePayment(ctx context.Context, cascade PaymentCascade) error

	// DeleteAllPayments applies every cascade and deletes all payments inside one
	// transaction, returning the number deleted.
	DeleteAllPayments(ctx context.Context, cascades []PaymentCascade) (int64, error)
}

// ExpenseCascade bundles an expense with the rederived state of its linked invoice.
type ExpenseCascade struct {
	Expense domain.Expense
	Invoice *domain.Invoice
}

// ExpenseRepository persists supplier expenses; it mirrors PaymentRepository with
// the supplier as the owning party.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, e domain.Expense, cheques []domain.Cheque, invoice *domain.Invoice) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, filter LedgerFilter) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, e domain.Expense) error
	DeleteExpense(ctx context.Context, cascade ExpenseCascade) error
	DeleteAllExpenses(ctx context.Context, cascades []ExpenseCascade) (int64, error)
}

// ChequeFilter narrows cheque listings.
type ChequeFilter struct {
	Status     string
	Type       string
	CustomerID string
	SupplierID string
	PaymentID  string
	ExpenseID  string
	Date       string
	DateFrom   string
	DateTo     string
}

// ChequeRepository persists cheques.
type ChequeRepository interface {
	SaveCheque(ctx context.Context, c domain.Cheque) error
	FindChequeByID(ctx context.Context, chequeID string) (*domain.Cheque, error)
	ListCheques(ctx context.Context, filter ChequeFilter) ([]domain.Cheque, error)
	UpdateCheque(ctx context.Context, c domain.Cheque) error
	UpdateChequeStatus(ctx context.Context, chequeID string, status domain.ChequeStatus, updatedBy string, now time.Time) error
	DeleteCheque(ctx context.Context, chequeID string) error
}

// CustomerRepository persists customers. Back-reference lists are loaded from the
// link tables; balance mutations only ever happen inside the invoice/payment
// repository transactions.
type CustomerRepository interface {
	SaveCustomer(ctx context.Context, c domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, companyID string) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, c domain.Customer) error
	DeleteCustomer(ctx context.Context, customerID string) error
}

// SupplierRepository persists suppliers.
type SupplierRepository interface {
	SaveSupplier(ctx context.Context, s domain.Supplier) error
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, companyID string) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, s domain.Supplier) error
	DeleteSupplier(ctx context.Context, supplierID string) error
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	SaveProduct(ctx context.Context, p domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, companyID string, category string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status         string
	DeliveryStatus string
	Type           string
	CustomerID     string
	SupplierID     string
	CompanyID      string
	IssuedBy       string
	DriverID       string
}

// OrderRepository persists orders and their line items.
type OrderRepository interface {
	SaveOrder(ctx context.Context, o domain.Order) error
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, o domain.Order) error
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedBy string, now time.Time) error
	UpdateDeliveryStatus(ctx context.Context, orderID string, status domain.DeliveryStatus, updatedBy string, now time.Time) error
	UpdateOrderDriver(ctx context.Context, orderID string, driverID string, updatedBy string, now time.Time) error
	DeleteOrder(ctx context.Context, orderID string) error
	DeleteAllOrders(ctx context.Context) (int64, error)
}

// ServiceRepository persists services, their provider links and expense history.
type ServiceRepository interface {
	SaveService(ctx context.Context, s domain.Service) error
	FindServiceByID(ctx context.Context, serviceID string) (*domain.Service, error)
	ListServices(ctx context.Context, supplierID string, companyID string, createdBy string) ([]domain.Service, error)
	UpdateService(ctx context.Context, s domain.Service) error

	// AddProvider / RemoveProvider maintain the supplier<->service junction on
	// both sides atomically. Adding an existing provider is a no-op.
	AddProvider(ctx context.Context, serviceID string, supplierID string) error
	RemoveProvider(ctx context.Context, serviceID string, supplierID string) error

	// ReplaceExpenseHistory rewrites the service's expense-history rows and the
	// derived total in one transaction.
	ReplaceExpenseHistory(ctx context.Context, s domain.Service) error

	DeleteService(ctx context.Context, serviceID string) error

	// DeleteAllServices removes all supplier links and deletes every service
	// inside one transaction, returning the number deleted.
	DeleteAllServices(ctx context.Context) (int64, error)
}

// CompanyRepository persists tenant companies.
type CompanyRepository interface {
	SaveCompany(ctx context.Context, c domain.Company) error
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	ListExpiringCompanies(ctx context.Context, before time.Time) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, c domain.Company) error
	AddAuthorizedUser(ctx context.Context, companyID string, userID string) error
	RemoveAuthorizedUser(ctx context.Context, companyID string, userID string) error
	DeleteCompany(ctx context.Context, companyID string) error
}

// UserRepository persists application users.
type UserRepository interface {
	SaveUser(ctx context.Context, u domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, companyID string) ([]domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) error
	DeleteUser(ctx context.Context, userID string) error
}

// SubscriptionRequestRepository persists subscription requests.
type SubscriptionRequestRepository interface {
	SaveRequest(ctx context.Context, r domain.SubscriptionRequest) error
	FindRequestByID(ctx context.Context, requestID string) (*domain.SubscriptionRequest, error)
	ListRequests(ctx context.Context, status string) ([]domain.SubscriptionRequest, error)
	UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus, processedBy string, now time.Time) error
	DeleteRequest(ctx context.Context, requestID string) error
}
