package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest defines the data needed to create a supplier.
type CreateSupplierRequest struct {
	SupplierName         string  `json:"supplierName" binding:"required"`
	CompanyName          string  `json:"companyName"`
	SupplierType         string  `json:"supplierType" binding:"omitempty,oneof=goods_supplier service_provider"`
	Phone                string  `json:"phone" binding:"required"`
	GeographicalLocation string  `json:"geographicalLocation"`
	Location             string  `json:"location"`
	Notes                string  `json:"notes"`
	CompanyID            *string `json:"companyID"`
}

// UpdateSupplierRequest defines the updatable supplier fields.
type UpdateSupplierRequest struct {
	SupplierName         *string `json:"supplierName"`
	CompanyName          *string `json:"companyName"`
	SupplierType         *string `json:"supplierType" binding:"omitempty,oneof=goods_supplier service_provider"`
	Phone                *string `json:"phone"`
	GeographicalLocation *string `json:"geographicalLocation"`
	Location             *string `json:"location"`
	Notes                *string `json:"notes"`
	Version              int64   `json:"version"`
}

// SupplierResponse defines the data returned for a supplier.
type SupplierResponse struct {
	SupplierID           string          `json:"supplierID"`
	SupplierName         string          `json:"supplierName"`
	CompanyName          string          `json:"companyName"`
	SupplierType         string          `json:"supplierType"`
	Phone                string          `json:"phone"`
	BalanceDue           decimal.Decimal `json:"balanceDue"`
	InvoiceList          []string        `json:"invoiceList"`
	ExpenseList          []string        `json:"expenseList"`
	Services             []string        `json:"services"`
	GeographicalLocation string          `json:"geographicalLocation"`
	Location             string          `json:"location"`
	Notes                string          `json:"notes,omitempty"`
	CompanyID            *string         `json:"companyID,omitempty"`
	Version              int64           `json:"version"`
	CreatedAt            time.Time       `json:"createdAt"`
	LastUpdatedAt        time.Time       `json:"lastUpdatedAt"`
}

// ToSupplierResponse converts a domain.Supplier to SupplierResponse DTO.
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID:           s.SupplierID,
		SupplierName:         s.SupplierName,
		CompanyName:          s.CompanyName,
		SupplierType:         string(s.SupplierType),
		Phone:                s.Phone,
		BalanceDue:           s.BalanceDue,
		InvoiceList:          s.InvoiceList,
		ExpenseList:          s.ExpenseList,
		Services:             s.Services,
		GeographicalLocation: s.GeographicalLocation,
		Location:             s.Location,
		Notes:                s.Notes,
		CompanyID:            s.CompanyID,
		Version:              s.Version,
		CreatedAt:            s.CreatedAt,
		LastUpdatedAt:        s.LastUpdatedAt,
	}
}

// ToSupplierResponses converts a slice of domain.Supplier to []SupplierResponse.
func ToSupplierResponses(suppliers []domain.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}
