package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceExpenseEntry is one expense-history record on a service.
type ServiceExpenseEntry struct {
	ExpenseID   string          `json:"expenseID"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}

// Service is a recurring service provided by one or more suppliers. TotalExpenses
// is derived from the expense history and recomputed on every history mutation
// before persistence.
type Service struct {
	ServiceID      string                `json:"serviceID"` // Primary Key (UUID)
	Name           string                `json:"name"`
	Description    string                `json:"description,omitempty"`
	TotalExpenses  decimal.Decimal       `json:"totalExpenses"`
	Providers      []string              `json:"serviceProviders"` // Supplier ID references
	Invoices       []string              `json:"invoices"`
	ExpenseHistory []ServiceExpenseEntry `json:"expenseHistory"`
	IsActive       bool                  `json:"isActive"`
	CompanyID      *string               `json:"companyID,omitempty"`
	AuditFields
}

// RecalculateTotalExpenses rederives TotalExpenses from the expense history.
func (s *Service) RecalculateTotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.ExpenseHistory {
		total = total.Add(e.Amount)
	}
	s.TotalExpenses = total
	return total
}
