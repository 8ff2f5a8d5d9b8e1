package domain

import "github.com/shopspring/decimal"

// Expense is a standalone ledger record of money paid to a supplier, optionally
// applied against one purchase invoice.
type Expense struct {
	ExpenseID   string          `json:"expenseID"` // Primary Key (UUID)
	ReferenceNo string          `json:"referenceNo"`
	SupplierID  string          `json:"supplierID"`
	CompanyID   *string         `json:"companyID,omitempty"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	Date        string          `json:"date"`
	Cheques     []string        `json:"cheques,omitempty"` // Cheque ID back-references
	Status      LedgerStatus    `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	AuditFields
}
