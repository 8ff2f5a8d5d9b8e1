package domain

import "github.com/shopspring/decimal"

// Customer is a party entity holding the balance-due aggregate and back-reference
// lists for reverse lookup of its invoices and payments. BalanceDue only changes
// inside the same transaction as the ledger event that caused it.
type Customer struct {
	CustomerID           string          `json:"customerID"` // Primary Key (UUID)
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

	Version int64 `json:"version"`
	AuditFields
}
