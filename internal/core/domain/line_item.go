package domain

import "github.com/shopspring/decimal"

// LineItem is a single product line on an invoice or order. TotalPrice is
// pre-computed by the caller; totals are derived from it, not from
// quantity × unitPrice.
type LineItem struct {
	ProductID    string          `json:"productID"`
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	FreeQuantity int             `json:"freeQuantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
}

// SumLineItems returns the sum of the items' total prices.
func SumLineItems(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.TotalPrice)
	}
	return sum
}
