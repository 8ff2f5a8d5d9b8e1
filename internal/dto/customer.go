package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a customer.
type CreateCustomerRequest struct {
	CustomerName         string  `json:"customerName" binding:"required"`
	CompanyName          string  `json:"companyName"`
	CustomerType         string  `json:"customerType" binding:"required"`
	Phone                string  `json:"phone" binding:"required"`
	GeographicalLocation string  `json:"geographicalLocation"`
	Location             string  `json:"location"`
	Notes                string  `json:"notes"`
	CompanyID            *string `json:"companyID"`
	SalesmanID           *string `json:"salesmanID"`
}

// UpdateCustomerRequest defines the updatable customer fields. BalanceDue is
// explicitly absent: it only moves through ledger transactions.
type UpdateCustomerRequest struct {
	CustomerName         *string `json:"customerName"`
	CompanyName          *string `json:"companyName"`
	CustomerType         *string `json:"customerType"`
	Phone                *string `json:"phone"`
	GeographicalLocation *string `json:"geographicalLocation"`
	Location             *string `json:"location"`
	Notes                *string `json:"notes"`
	SalesmanID           *string `json:"salesmanID"`
	Version              int64   `json:"version"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID           string          `json:"customerID"`
	CustomerName         string          `json:"customerName"`
	CompanyName          string          `json:"companyName"`
	CustomerType         string          `json:"customerType"`
	Phone                string          `json:"phone"`
	BalanceDue           decimal.Decimal `json:"balanceDue"`
	InvoiceList          []string        `json:"invoiceList"`
	PaymentList          []string        `json:"paymentList"`
	GeographicalLocation string          `json:"geographicalLocation"`
	Location             string          `json:"location"`
	Notes                string          `json:"notes,omitempty"`
	CompanyID            *string         `json:"companyID,omitempty"`
	SalesmanID           *string         `json:"salesmanID,omitempty"`
	Version              int64           `json:"version"`
	CreatedAt            time.Time       `json:"createdAt"`
	LastUpdatedAt        time.Time       `json:"lastUpdatedAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:           c.CustomerID,
		CustomerName:         c.CustomerName,
		CompanyName:          c.CompanyName,
		CustomerType:         c.CustomerType,
		Phone:                c.Phone,
		BalanceDue:           c.BalanceDue,
		InvoiceList:          c.InvoiceList,
		PaymentList:          c.PaymentList,
		GeographicalLocation: c.GeographicalLocation,
		Location:             c.Location,
		Notes:                c.Notes,
		CompanyID:            c.CompanyID,
		SalesmanID:           c.SalesmanID,
		Version:              c.Version,
		CreatedAt:            c.CreatedAt,
		LastUpdatedAt:        c.LastUpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain.Customer to []CustomerResponse.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
