package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateChequeRequest defines the data needed to register a standalone cheque.
// Exactly one of customerID/supplierID must be set; the domain validation
// enforces it beyond what binding can express.
type CreateChequeRequest struct {
	ChequeNumber string          `json:"chequeNumber" binding:"required"`
	BankName     string          `json:"bankName" binding:"required"`
	ChequeDate   string          `json:"chequeDate" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	HolderName   string          `json:"holderName"`
	HolderPhone  string          `json:"holderPhone"`
	Type         string          `json:"type" binding:"required,oneof=received issued"`
	CustomerID   *string         `json:"customerID"`
	SupplierID   *string         `json:"supplierID"`
	PaymentID    *string         `json:"paymentID"`
	ExpenseID    *string         `json:"expenseID"`
}

// UpdateChequeRequest defines the updatable cheque fields.
type UpdateChequeRequest struct {
	ChequeNumber *string          `json:"chequeNumber"`
	BankName     *string          `json:"bankName"`
	ChequeDate   *string          `json:"chequeDate"`
	Amount       *decimal.Decimal `json:"amount"`
	HolderName   *string          `json:"holderName"`
	HolderPhone  *string          `json:"holderPhone"`
	Status       *string          `json:"status" binding:"omitempty,oneof=pending cleared bounced"`
}

// UpdateChequeStatusRequest changes only the clearing status.
type UpdateChequeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending cleared bounced"`
}

// ListChequesParams defines query parameters for listing cheques.
type ListChequesParams struct {
	Status     string `form:"status"`
	Type       string `form:"type"`
	CustomerID string `form:"customerID"`
	SupplierID string `form:"supplierID"`
	PaymentID  string `form:"paymentID"`
	ExpenseID  string `form:"expenseID"`
	Date       string `form:"date"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`
}

// ChequeResponse defines the data returned for a cheque.
type ChequeResponse struct {
	ChequeID      string          `json:"chequeID"`
	ReferenceNo   string          `json:"referenceNo"`
	ChequeNumber  string          `json:"chequeNumber"`
	BankName      string          `json:"bankName"`
	ChequeDate    string          `json:"chequeDate"`
	Amount        decimal.Decimal `json:"amount"`
	HolderName    string          `json:"holderName,omitempty"`
	HolderPhone   string          `json:"holderPhone,omitempty"`
	Status        string          `json:"status"`
	Type          string          `json:"type"`
	CustomerID    *string         `json:"customerID,omitempty"`
	SupplierID    *string         `json:"supplierID,omitempty"`
	PaymentID     *string         `json:"paymentID,omitempty"`
	ExpenseID     *string         `json:"expenseID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToChequeResponse converts a domain.Cheque to ChequeResponse DTO.
func ToChequeResponse(c *domain.Cheque) ChequeResponse {
	return ChequeResponse{
		ChequeID:      c.ChequeID,
		ReferenceNo:   c.ReferenceNo,
		ChequeNumber:  c.ChequeNumber,
		BankName:      c.BankName,
		ChequeDate:    c.ChequeDate,
		Amount:        c.Amount,
		HolderName:    c.HolderName,
		HolderPhone:   c.HolderPhone,
		Status:        string(c.Status),
		Type:          string(c.Type),
		CustomerID:    c.CustomerID,
		SupplierID:    c.SupplierID,
		PaymentID:     c.PaymentID,
		ExpenseID:     c.ExpenseID,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToChequeResponses converts a slice of domain.Cheque to []ChequeResponse.
func ToChequeResponses(cheques []domain.Cheque) []ChequeResponse {
	responses := make([]ChequeResponse, len(cheques))
	for i := range cheques {
		responses[i] = ToChequeResponse(&cheques[i])
	}
	return responses
}
