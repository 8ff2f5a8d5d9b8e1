package ports

import (
	"context"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/dto"
)

// InvoiceSvcFacade exposes invoice operations, including the settlement
// attach/detach pipeline.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, updaterUserID string) (*domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, req dto.UpdateInvoiceStatusRequest, updaterUserID string) (*domain.Invoice, error)

	// AttachPayment applies an existing payment against a sales invoice;
	// AttachExpense mirrors it for purchase invoices. Detach removes the link and
	// rederives the settlement state through the same recalculation path.
	AttachPayment(ctx context.Context, invoiceID string, paymentID string, updaterUserID string) (*domain.Invoice, error)
	DetachPayment(ctx context.Context, invoiceID string, paymentID string, updaterUserID string) (*domain.Invoice, error)
	AttachExpense(ctx context.Context, invoiceID string, expenseID string, updaterUserID string) (*domain.Invoice, error)
	DetachExpense(ctx context.Context, invoiceID string, expenseID string, updaterUserID string) (*domain.Invoice, error)

	DeleteInvoice(ctx context.Context, invoiceID string) error
	DeleteAllInvoices(ctx context.Context) (int64, error)
}

// PaymentSvcFacade exposes customer payment operations.
type PaymentSvcFacade interface {
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error)
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, error)
	UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, updaterUserID string) (*domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID string, deleterUserID string) error
	DeleteAllPayments(ctx context.Context, deleterUserID string) (int64, error)
}

// ExpenseSvcFacade exposes supplier expense operations.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, updaterUserID string) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string, deleterUserID string) error
	DeleteAllExpenses(ctx context.Context, deleterUserID string) (int64, error)
}

// ChequeSvcFacade exposes cheque operations.
type ChequeSvcFacade interface {
	CreateCheque(ctx context.Context, req dto.CreateChequeRequest, creatorUserID string) (*domain.Cheque, error)
	GetChequeByID(ctx context.Context, chequeID string) (*domain.Cheque, error)
	ListCheques(ctx context.Context, params dto.ListChequesParams) ([]domain.Cheque, error)
	UpdateCheque(ctx context.Context, chequeID string, req dto.UpdateChequeRequest, updaterUserID string) (*domain.Cheque, error)
	UpdateChequeStatus(ctx context.Context, chequeID string, req dto.UpdateChequeStatusRequest, updaterUserID string) (*domain.Cheque, error)
	DeleteCheque(ctx context.Context, chequeID string) error
}

// CustomerSvcFacade exposes customer operations.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, companyID string) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterUserID string) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

// SupplierSvcFacade exposes supplier operations.
type SupplierSvcFacade interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, companyID string) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, updaterUserID string) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, supplierID string) error
}

// ProductSvcFacade exposes catalog product operations.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// OrderSvcFacade exposes order operations.
type OrderSvcFacade interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, updaterUserID string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, req dto.UpdateOrderStatusRequest, updaterUserID string) (*domain.Order, error)
	UpdateDeliveryStatus(ctx context.Context, orderID string, req dto.UpdateDeliveryStatusRequest, updaterUserID string) (*domain.Order, error)
	AssignDriver(ctx context.Context, orderID string, req dto.AssignDriverRequest, updaterUserID string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
	DeleteAllOrders(ctx context.Context) (int64, error)
}

// ServiceSvcFacade exposes recurring-service operations.
type ServiceSvcFacade interface {
	CreateService(ctx context.Context, req dto.CreateServiceRequest, creatorUserID string) (*domain.Service, error)
	GetServiceByID(ctx context.Context, serviceID string) (*domain.Service, error)
	ListServices(ctx context.Context, params dto.ListServicesParams) ([]domain.Service, error)
	UpdateService(ctx context.Context, serviceID string, req dto.UpdateServiceRequest, updaterUserID string) (*domain.Service, error)
	AddExpenseRecord(ctx context.Context, serviceID string, req dto.AddServiceExpenseRequest, updaterUserID string) (*domain.Service, error)
	RemoveExpenseRecord(ctx context.Context, serviceID string, expenseID string, updaterUserID string) (*domain.Service, error)
	AddProvider(ctx context.Context, serviceID string, req dto.AddProviderRequest, updaterUserID string) (*domain.Service, error)
	RemoveProvider(ctx context.Context, serviceID string, supplierID string, updaterUserID string) (*domain.Service, error)
	DeleteService(ctx context.Context, serviceID string) error
	DeleteAllServices(ctx context.Context) (int64, error)
}

// CompanySvcFacade exposes tenant company operations.
type CompanySvcFacade interface {
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context, params dto.ListCompaniesParams) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, updaterUserID string) (*domain.Company, error)
	AuthorizeUser(ctx context.Context, companyID string, req dto.AuthorizeUserRequest) (*domain.Company, error)
	DeauthorizeUser(ctx context.Context, companyID string, userID string) (*domain.Company, error)
	DeleteCompany(ctx context.Context, companyID string) error
}

// UserSvcFacade exposes user operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, companyID string) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// AuthSvcFacade issues JWTs for username/password credentials.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// SubscriptionRequestSvcFacade exposes signup request operations. Approving a
// request provisions the tenant company.
type SubscriptionRequestSvcFacade interface {
	CreateRequest(ctx context.Context, req dto.CreateSubscriptionRequestRequest) (*domain.SubscriptionRequest, error)
	GetRequestByID(ctx context.Context, requestID string) (*domain.SubscriptionRequest, error)
	ListRequests(ctx context.Context, params dto.ListSubscriptionRequestsParams) ([]domain.SubscriptionRequest, error)
	ProcessRequest(ctx context.Context, requestID string, req dto.ProcessSubscriptionRequestRequest, processorUserID string) (*domain.SubscriptionRequest, error)
	DeleteRequest(ctx context.Context, requestID string) error
}

// ServiceContainer holds all service facades needed by the handlers.
type ServiceContainer struct {
	Invoice             InvoiceSvcFacade
	Payment             PaymentSvcFacade
	Expense             ExpenseSvcFacade
	Cheque              ChequeSvcFacade
	Customer            CustomerSvcFacade
	Supplier            SupplierSvcFacade
	Product             ProductSvcFacade
	Order               OrderSvcFacade
	Service             ServiceSvcFacade
	Company             CompanySvcFacade
	User                UserSvcFacade
	Auth                AuthSvcFacade
	SubscriptionRequest SubscriptionRequestSvcFacade
}

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	InvoiceRepo             InvoiceRepository
	PaymentRepo             PaymentRepository
	ExpenseRepo             ExpenseRepository
	ChequeRepo              ChequeRepository
	CustomerRepo            CustomerRepository
	SupplierRepo            SupplierRepository
	ProductRepo             ProductRepository
	OrderRepo               OrderRepository
	ServiceRepo             ServiceRepository
	CompanyRepo             CompanyRepository
	UserRepo                UserRepository
	SubscriptionRequestRepo SubscriptionRequestRepository
}
