package domain

import "github.com/shopspring/decimal"

// SupplierType distinguishes goods suppliers from service providers.
type SupplierType string

const (
	GoodsSupplier   SupplierType = "goods_supplier"
	ServiceProvider SupplierType = "service_provider"
)

// Supplier is a party entity holding the balance-due aggregate and back-reference
// lists for reverse lookup of its invoices, expenses and services.
type Supplier struct {
	SupplierID           string          `json:"supplierID"` // Primary Key (UUID)
	SupplierName         string          `json:"supplierName"`
	CompanyName          string          `json:"companyName"`
	SupplierType         SupplierType    `json:"supplierType"`
	Phone                string          `json:"phone"`
	BalanceDue           decimal.Decimal `json:"balanceDue"`
	InvoiceList          []string        `json:"invoiceList"`
	ExpenseList          []string        `json:"expenseList"`
	Services             []string        `json:"services"`
	GeographicalLocation string          `json:"geographicalLocation"`
	Location             string          `json:"location"`
	Notes                string          `json:"notes,omitempty"`
	CompanyID            *string         `json:"companyID,omitempty"`

	Version int64 `json:"version"`
	AuditFields
}

// ValidSupplierType reports whether s is an allowed supplier type.
func ValidSupplierType(s string) bool {
	return SupplierType(s) == GoodsSupplier || SupplierType(s) == ServiceProvider
}
