package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest defines one product line on an invoice or order.
type LineItemRequest struct {
	ProductID    string          `json:"productID" binding:"required"`
	ProductName  string          `json:"productName" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	FreeQuantity int             `json:"freeQuantity" binding:"gte=0"`
	UnitPrice    decimal.Decimal `json:"unitPrice" binding:"required"`
	TotalPrice   decimal.Decimal `json:"totalPrice" binding:"required"`
}

// ToDomainLineItems converts line item requests to domain line items.
func ToDomainLineItems(items []LineItemRequest) []domain.LineItem {
	domainItems := make([]domain.LineItem, len(items))
	for i, item := range items {
		domainItems[i] = domain.LineItem{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			FreeQuantity: item.FreeQuantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
		}
	}
	return domainItems
}

// CreateInvoiceRequest defines the data needed to create an invoice. The amount
// is always derived from the items server-side.
type CreateInvoiceRequest struct {
	Type       string            `json:"type" binding:"required,oneof=sales purchase"`
	CustomerID *string           `json:"customerID"`
	SupplierID *string           `json:"supplierID"`
	CompanyID  *string           `json:"companyID"`
	Email      string            `json:"email" binding:"omitempty,email"`
	Terms      string            `json:"terms"`
	Date       string            `json:"date" binding:"required"`
	DueDate    string            `json:"dueDate"`
	Status     string            `json:"status" binding:"omitempty,oneof=draft pending overdue unpaid"`
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest defines the updatable invoice fields. Replacing the items
// recomputes the amount and the party balance delta.
type UpdateInvoiceRequest struct {
	Email   *string           `json:"email" binding:"omitempty,email"`
	Terms   *string           `json:"terms"`
	Date    *string           `json:"date"`
	DueDate *string           `json:"dueDate"`
	Items   []LineItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// UpdateInvoiceStatusRequest changes the invoice status directly. Settlement
// derived statuses are rejected by the service when a ledger exists.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AttachSettlementRequest links an existing payment or expense to an invoice.
type AttachSettlementRequest struct {
	ReferenceID string `json:"referenceID" binding:"required"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status     string `form:"status"`
	Type       string `form:"type"`
	CustomerID string `form:"customerID"`
	SupplierID string `form:"supplierID"`
	CompanyID  string `form:"companyID"`
	IssuedBy   string `form:"issuedBy"`
	Reference  string `form:"reference"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID       string                   `json:"invoiceID"`
	ReferenceNo     string                   `json:"referenceNo"`
	Type            string                   `json:"type"`
	CustomerID      *string                  `json:"customerID,omitempty"`
	SupplierID      *string                  `json:"supplierID,omitempty"`
	CompanyID       *string                  `json:"companyID,omitempty"`
	IssuedBy        string                   `json:"issuedBy,omitempty"`
	Email           string                   `json:"email,omitempty"`
	Terms           string                   `json:"terms,omitempty"`
	Date            string                   `json:"date"`
	DueDate         string                   `json:"dueDate,omitempty"`
	Items           []domain.LineItem        `json:"items"`
	Amount          decimal.Decimal          `json:"amount"`
	PaidAmount      decimal.Decimal          `json:"paidAmount"`
	RemainingAmount decimal.Decimal          `json:"remainingAmount"`
	Status          string                   `json:"status"`
	Payments        []domain.SettlementEntry `json:"payments"`
	Expenses        []domain.SettlementEntry `json:"expenses"`
	Version         int64                    `json:"version"`
	CreatedAt       time.Time                `json:"createdAt"`
	LastUpdatedAt   time.Time                `json:"lastUpdatedAt"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:       inv.InvoiceID,
		ReferenceNo:     inv.ReferenceNo,
		Type:            string(inv.Type),
		CustomerID:      inv.CustomerID,
		SupplierID:      inv.SupplierID,
		CompanyID:       inv.CompanyID,
		IssuedBy:        inv.IssuedBy,
		Email:           inv.Email,
		Terms:           inv.Terms,
		Date:            inv.Date,
		DueDate:         inv.DueDate,
		Items:           inv.Items,
		Amount:          inv.Amount,
		PaidAmount:      inv.PaidAmount,
		RemainingAmount: inv.RemainingAmount,
		Status:          string(inv.Status),
		Payments:        inv.Payments,
		Expenses:        inv.Expenses,
		Version:         inv.Version,
		CreatedAt:       inv.CreatedAt,
		LastUpdatedAt:   inv.LastUpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain.Invoice to []InvoiceResponse.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}
