package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ChequeDetailsRequest describes a cheque spawned alongside a check payment or
// expense.
type ChequeDetailsRequest struct {
	ChequeNumber string          `json:"chequeNumber" binding:"required"`
	BankName     string          `json:"bankName" binding:"required"`
	ChequeDate   string          `json:"chequeDate" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	HolderName   string          `json:"holderName"`
	HolderPhone  string          `json:"holderPhone"`
}

// CreatePaymentRequest defines the data needed to record a customer payment.
// InvoiceID, when set, applies the payment against that sales invoice in the
// same transaction. Method check requires at least one cheque.
type CreatePaymentRequest struct {
	CustomerID string                 `json:"customerID" binding:"required"`
	CompanyID  *string                `json:"companyID"`
	InvoiceID  *string                `json:"invoiceID"`
	Amount     decimal.Decimal        `json:"amount" binding:"required"`
	Method     string                 `json:"method" binding:"required,oneof=cash check card"`
	Date       string                 `json:"date" binding:"required"`
	Notes      string                 `json:"notes"`
	Reference  string                 `json:"reference"`
	Cheques    []ChequeDetailsRequest `json:"cheques" binding:"omitempty,dive"`
}

// UpdatePaymentRequest defines the updatable payment fields. Amount and links
// are immutable; correcting them means delete and recreate.
type UpdatePaymentRequest struct {
	Method    *string `json:"method" binding:"omitempty,oneof=cash check card"`
	Date      *string `json:"date"`
	Status    *string `json:"status" binding:"omitempty,oneof=pending completed failed cancelled"`
	Notes     *string `json:"notes"`
	Reference *string `json:"reference"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	CustomerID string `form:"customerID"`
	InvoiceID  string `form:"invoiceID"`
	CompanyID  string `form:"companyID"`
	Method     string `form:"method"`
	Date       string `form:"date"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`
	CreatedBy  string `form:"createdBy"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	ReferenceNo   string          `json:"referenceNo"`
	CustomerID    string          `json:"customerID"`
	CompanyID     *string         `json:"companyID,omitempty"`
	InvoiceID     *string         `json:"invoiceID,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Date          string          `json:"date"`
	Cheques       []string        `json:"cheques,omitempty"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		ReferenceNo:   p.ReferenceNo,
		CustomerID:    p.CustomerID,
		CompanyID:     p.CompanyID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Date:          p.Date,
		Cheques:       p.Cheques,
		Status:        string(p.Status),
		Notes:         p.Notes,
		Reference:     p.Reference,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to []PaymentResponse.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
