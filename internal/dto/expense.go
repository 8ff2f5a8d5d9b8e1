package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record a supplier expense.
// InvoiceID, when set, applies the expense against that purchase invoice in the
// same transaction. Expenses do not support card.
type CreateExpenseRequest struct {
	SupplierID string                 `json:"supplierID" binding:"required"`
	CompanyID  *string                `json:"companyID"`
	InvoiceID  *string                `json:"invoiceID"`
	Amount     decimal.Decimal        `json:"amount" binding:"required"`
	Method     string                 `json:"method" binding:"required,oneof=cash check"`
	Date       string                 `json:"date" binding:"required"`
	Notes      string                 `json:"notes"`
	Reference  string                 `json:"reference"`
	Cheques    []ChequeDetailsRequest `json:"cheques" binding:"omitempty,dive"`
}

// UpdateExpenseRequest defines the updatable expense fields.
type UpdateExpenseRequest struct {
	Method    *string `json:"method" binding:"omitempty,oneof=cash check"`
	Date      *string `json:"date"`
	Status    *string `json:"status" binding:"omitempty,oneof=pending completed failed cancelled"`
	Notes     *string `json:"notes"`
	Reference *string `json:"reference"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	SupplierID string `form:"supplierID"`
	InvoiceID  string `form:"invoiceID"`
	CompanyID  string `form:"companyID"`
	Method     string `form:"method"`
	Date       string `form:"date"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`
	CreatedBy  string `form:"createdBy"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string          `json:"expenseID"`
	ReferenceNo   string          `json:"referenceNo"`
	SupplierID    string          `json:"supplierID"`
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

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		ReferenceNo:   e.ReferenceNo,
		SupplierID:    e.SupplierID,
		CompanyID:     e.CompanyID,
		InvoiceID:     e.InvoiceID,
		Amount:        e.Amount,
		Method:        string(e.Method),
		Date:          e.Date,
		Cheques:       e.Cheques,
		Status:        string(e.Status),
		Notes:         e.Notes,
		Reference:     e.Reference,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ToExpenseResponses converts a slice of domain.Expense to []ExpenseResponse.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
