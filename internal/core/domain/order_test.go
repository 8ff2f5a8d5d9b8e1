package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bizflow/erp_backend/internal/core/domain"
)

func TestOrder_CalculateTotalAmount_NoTax(t *testing.T) {
	o := domain.Order{
		Items: []domain.LineItem{
			{Quantity: 2, UnitPrice: decimal.NewFromInt(50), TotalPrice: decimal.NewFromInt(100)},
			{Quantity: 1, UnitPrice: decimal.NewFromFloat(25.50), TotalPrice: decimal.NewFromFloat(25.50)},
		},
	}

	total := o.CalculateTotalAmount()

	// Orders carry the plain item sum; no surcharge applies.
	assert.True(t, total.Equal(decimal.NewFromFloat(125.50)))
	assert.True(t, o.Amount.Equal(decimal.NewFromFloat(125.50)))
}

func TestOrder_ValidateParty(t *testing.T) {
	sales := domain.Order{Type: domain.SalesInvoice, CustomerID: stringPtr("c1")}
	assert.NoError(t, sales.ValidateParty())

	missing := domain.Order{Type: domain.SalesInvoice}
	assert.Error(t, missing.ValidateParty())

	purchase := domain.Order{Type: domain.PurchaseInvoice, SupplierID: stringPtr("s1")}
	assert.NoError(t, purchase.ValidateParty())
}
