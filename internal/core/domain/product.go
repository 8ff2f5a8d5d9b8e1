package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry referenced by invoice and order line items.
type Product struct {
	ProductID   string          `json:"productID"` // Primary Key (UUID)
	ProductName string          `json:"productName"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"minQuantity"`
	Unit        string          `json:"unit"`
	Barcode     string          `json:"barcode,omitempty"`
	SupplierIDs []string        `json:"supplierIDs"`
	CompanyID   *string         `json:"companyID,omitempty"`
	AuditFields
}
