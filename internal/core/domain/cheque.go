package domain

import (
	"fmt"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ChequeStatus is the clearing state of a cheque.
type ChequeStatus string

const (
	ChequePending ChequeStatus = "pending"
	ChequeCleared ChequeStatus = "cleared"
	ChequeBounced ChequeStatus = "bounced"
)

// ChequeType distinguishes cheques received from customers from cheques issued to
// suppliers.
type ChequeType string

const (
	ChequeReceived ChequeType = "received"
	ChequeIssued   ChequeType = "issued"
)

// Cheque is a cheque tied to exactly one party (customer XOR supplier) and at most
// one originating ledger record (payment or expense, never both).
type Cheque struct {
	ChequeID     string          `json:"chequeID"` // Primary Key (UUID)
	ReferenceNo  string          `json:"referenceNo"`
	ChequeNumber string          `json:"chequeNumber"`
	BankName     string          `json:"bankName"`
	ChequeDate   string          `json:"chequeDate"`
	Amount       decimal.Decimal `json:"amount"`
	HolderName   string          `json:"holderName,omitempty"`
	HolderPhone  string          `json:"holderPhone,omitempty"`
	Status       ChequeStatus    `json:"status"`
	Type         ChequeType      `json:"type"`
	CustomerID   *string         `json:"customerID,omitempty"`
	SupplierID   *string         `json:"supplierID,omitempty"`
	PaymentID    *string         `json:"paymentID,omitempty"`
	ExpenseID    *string         `json:"expenseID,omitempty"`
	AuditFields
}

// Validate enforces the cheque integrity rules before persistence: exactly one of
// customer/supplier must be set, and at most one of payment/expense may be set.
func (c *Cheque) Validate() error {
	hasCustomer := c.CustomerID != nil && *c.CustomerID != ""
	hasSupplier := c.SupplierID != nil && *c.SupplierID != ""
	if hasCustomer == hasSupplier {
		return fmt.Errorf("%w: cheque must be linked to either a customer or a supplier, not both or neither", apperrors.ErrValidation)
	}

	hasPayment := c.PaymentID != nil && *c.PaymentID != ""
	hasExpense := c.ExpenseID != nil && *c.ExpenseID != ""
	if hasPayment && hasExpense {
		return fmt.Errorf("%w: cheque can be linked to either a payment or an expense, not both", apperrors.ErrValidation)
	}

	return nil
}

// ValidChequeStatus reports whether s is an allowed cheque status.
func ValidChequeStatus(s string) bool {
	switch ChequeStatus(s) {
	case ChequePending, ChequeCleared, ChequeBounced:
		return true
	}
	return false
}

// ValidChequeType reports whether s is an allowed cheque type.
func ValidChequeType(s string) bool {
	return ChequeType(s) == ChequeReceived || ChequeType(s) == ChequeIssued
}
