package services

import (
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/platform/config"
)

// NewServiceContainer wires every service facade over the repository provider.
func NewServiceContainer(cfg *config.Config, repos ports.RepositoryProvider) *ports.ServiceContainer {
	return &ports.ServiceContainer{
		Invoice:             NewInvoiceService(repos.InvoiceRepo, repos.PaymentRepo, repos.ExpenseRepo),
		Payment:             NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo),
		Expense:             NewExpenseService(repos.ExpenseRepo, repos.InvoiceRepo),
		Cheque:              NewChequeService(repos.ChequeRepo),
		Customer:            NewCustomerService(repos.CustomerRepo),
		Supplier:            NewSupplierService(repos.SupplierRepo),
		Product:             NewProductService(repos.ProductRepo),
		Order:               NewOrderService(repos.OrderRepo, repos.UserRepo),
		Service:             NewServiceService(repos.ServiceRepo, repos.SupplierRepo),
		Company:             NewCompanyService(repos.CompanyRepo, repos.UserRepo),
		User:                NewUserService(repos.UserRepo),
		Auth:                NewAuthService(repos.UserRepo, cfg),
		SubscriptionRequest: NewSubscriptionRequestService(repos.SubscriptionRequestRepo, repos.CompanyRepo),
	}
}
