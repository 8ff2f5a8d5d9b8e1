package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateServiceRequest defines the data needed to create a service.
type CreateServiceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Providers   []string `json:"serviceProviders"`
	CompanyID   *string  `json:"companyID"`
}

// UpdateServiceRequest defines the updatable service fields.
type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AddServiceExpenseRequest appends an expense record to the service's history;
// the service total is rederived in the same transaction.
type AddServiceExpenseRequest struct {
	ExpenseID   string          `json:"expenseID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description"`
}

// AddProviderRequest links a supplier to the service.
type AddProviderRequest struct {
	SupplierID string `json:"supplierID" binding:"required"`
}

// ListServicesParams defines query parameters for listing services.
type ListServicesParams struct {
	SupplierID string `form:"supplierID"`
	CompanyID  string `form:"companyID"`
	CreatedBy  string `form:"createdBy"`
}

// ServiceExpenseEntryResponse defines one expense-history record.
type ServiceExpenseEntryResponse struct {
	ExpenseID   string          `json:"expenseID"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}

// ServiceResponse defines the data returned for a service.
type ServiceResponse struct {
	ServiceID      string                        `json:"serviceID"`
	Name           string                        `json:"name"`
	Description    string                        `json:"description,omitempty"`
	TotalExpenses  decimal.Decimal               `json:"totalExpenses"`
	Providers      []string                      `json:"serviceProviders"`
	Invoices       []string                      `json:"invoices"`
	ExpenseHistory []ServiceExpenseEntryResponse `json:"expenseHistory"`
	IsActive       bool                          `json:"isActive"`
	CompanyID      *string                       `json:"companyID,omitempty"`
	CreatedAt      time.Time                     `json:"createdAt"`
	LastUpdatedAt  time.Time                     `json:"lastUpdatedAt"`
}

// ToServiceResponse converts a domain.Service to ServiceResponse DTO.
func ToServiceResponse(s *domain.Service) ServiceResponse {
	history := make([]ServiceExpenseEntryResponse, len(s.ExpenseHistory))
	for i, e := range s.ExpenseHistory {
		history[i] = ServiceExpenseEntryResponse{
			ExpenseID:   e.ExpenseID,
			Amount:      e.Amount,
			Date:        e.Date,
			Description: e.Description,
		}
	}
	return ServiceResponse{
		ServiceID:      s.ServiceID,
		Name:           s.Name,
		Description:    s.Description,
		TotalExpenses:  s.TotalExpenses,
		Providers:      s.Providers,
		Invoices:       s.Invoices,
		ExpenseHistory: history,
		IsActive:       s.IsActive,
		CompanyID:      s.CompanyID,
		CreatedAt:      s.CreatedAt,
		LastUpdatedAt:  s.LastUpdatedAt,
	}
}

// ToServiceResponses converts a slice of domain.Service to []ServiceResponse.
func ToServiceResponses(services []domain.Service) []ServiceResponse {
	responses := make([]ServiceResponse, len(services))
	for i := range services {
		responses[i] = ToServiceResponse(&services[i])
	}
	return responses
}
