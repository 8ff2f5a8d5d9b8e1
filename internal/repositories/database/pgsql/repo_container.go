package pgsql

import (
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository against the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) ports.RepositoryProvider {
	return ports.RepositoryProvider{
		InvoiceRepo:             NewPgxInvoiceRepository(dbPool),
		PaymentRepo:             NewPgxPaymentRepository(dbPool),
		ExpenseRepo:             NewPgxExpenseRepository(dbPool),
		ChequeRepo:              NewPgxChequeRepository(dbPool),
		CustomerRepo:            NewPgxCustomerRepository(dbPool),
		SupplierRepo:            NewPgxSupplierRepository(dbPool),
		ProductRepo:             NewPgxProductRepository(dbPool),
		OrderRepo:               NewPgxOrderRepository(dbPool),
		ServiceRepo:             NewPgxServiceRepository(dbPool),
		CompanyRepo:             NewPgxCompanyRepository(dbPool),
		UserRepo:                NewPgxUserRepository(dbPool),
		SubscriptionRequestRepo: NewPgxSubscriptionRequestRepository(dbPool),
	}
}
