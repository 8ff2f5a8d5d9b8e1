package domain

import "github.com/shopspring/decimal"

// PaymentMethod is how a payment or expense was made.
type PaymentMethod string

const (
	MethodCash  PaymentMethod = "cash"
	MethodCheck PaymentMethod = "check"
	MethodCard  PaymentMethod = "card"
)

// LedgerStatus is the processing state of a payment or expense record.
type LedgerStatus string

const (
	LedgerPending   LedgerStatus = "pending"
	LedgerCompleted LedgerStatus = "completed"
	LedgerFailed    LedgerStatus = "failed"
	LedgerCancelled LedgerStatus = "cancelled"
)

// Payment is a standalone ledger record of money received from a customer,
// optionally applied against one sales invoice.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	ReferenceNo string          `json:"referenceNo"`
	CustomerID  string          `json:"customerID"`
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

// ValidPaymentMethod reports whether s is an allowed payment method.
func ValidPaymentMethod(s string) bool {
	switch PaymentMethod(s) {
	case MethodCash, MethodCheck, MethodCard:
		return true
	}
	return false
}

// ValidExpenseMethod reports whether s is an allowed expense method. Expenses do
// not support card.
func ValidExpenseMethod(s string) bool {
	return PaymentMethod(s) == MethodCash || PaymentMethod(s) == MethodCheck
}
