package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
)

func stringPtr(s string) *string { return &s }

func newSalesInvoice(t *testing.T, itemTotals ...float64) *domain.Invoice {
	t.Helper()
	items := make([]domain.LineItem, len(itemTotals))
	for i, total := range itemTotals {
		items[i] = domain.LineItem{
			ProductName: "item",
			Quantity:    1,
			UnitPrice:   decimal.NewFromFloat(total),
			TotalPrice:  decimal.NewFromFloat(total),
		}
	}
	inv := &domain.Invoice{
		InvoiceID:  "inv-1",
		Type:       domain.SalesInvoice,
		CustomerID: stringPtr("cust-1"),
		Status:     domain.InvoicePending,
		Items:      items,
	}
	inv.CalculateTotalAmount()
	inv.RemainingAmount = inv.Amount
	return inv
}

func TestInvoice_CalculateTotalAmount(t *testing.T) {
	tests := []struct {
		name       string
		itemTotals []float64
		want       string
	}{
		{"single item", []float64{1000}, "1160"},
		{"multiple items", []float64{100, 250.50}, "406.58"},
		{"rounding half up", []float64{10.55}, "12.24"},
		{"no items", nil, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newSalesInvoice(t, tt.itemTotals...)
			assert.True(t, inv.Amount.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", inv.Amount, tt.want)
		})
	}
}

func TestInvoice_ValidateParty(t *testing.T) {
	tests := []struct {
		name    string
		invoice domain.Invoice
		wantErr bool
	}{
		{
			name:    "sales with customer",
			invoice: domain.Invoice{Type: domain.SalesInvoice, CustomerID: stringPtr("c1")},
			wantErr: false,
		},
		{
			name:    "sales without customer",
			invoice: domain.Invoice{Type: domain.SalesInvoice},
			wantErr: true,
		},
		{
			name:    "sales with supplier",
			invoice: domain.Invoice{Type: domain.SalesInvoice, CustomerID: stringPtr("c1"), SupplierID: stringPtr("s1")},
			wantErr: true,
		},
		{
			name:    "purchase with supplier",
			invoice: domain.Invoice{Type: domain.PurchaseInvoice, SupplierID: stringPtr("s1")},
			wantErr: false,
		},
		{
			name:    "purchase with customer",
			invoice: domain.Invoice{Type: domain.PurchaseInvoice, SupplierID: stringPtr("s1"), CustomerID: stringPtr("c1")},
			wantErr: true,
		},
		{
			name:    "unknown type",
			invoice: domain.Invoice{Type: "credit_note"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.invoice.ValidateParty()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInvoice_AttachSettlement_PartialPayment(t *testing.T) {
	inv := newSalesInvoice(t, 1000) // amount 1160

	err := inv.AttachSettlement(domain.SettlementEntry{
		ReferenceID: "pay-1",
		Amount:      decimal.NewFromInt(500),
		Date:        "2026-01-10",
		Method:      "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InvoicePartiallyPaid, inv.Status)
	assert.True(t, inv.PaidAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, inv.RemainingAmount.Equal(decimal.NewFromInt(660)))
	assert.Equal(t, domain.DueDateIncomplete, inv.DueDate)
}

func TestInvoice_AttachSettlement_FullPayment(t *testing.T) {
	inv := newSalesInvoice(t, 1000)

	require.NoError(t, inv.AttachSettlement(domain.SettlementEntry{
		ReferenceID: "pay-1",
		Amount:      decimal.NewFromInt(500),
		Date:        "2026-01-10",
	}))
	require.NoError(t, inv.AttachSettlement(domain.SettlementEntry{
		ReferenceID: "pay-2",
		Amount:      decimal.NewFromInt(660),
		Date:        "2026-01-05",
	}))

	assert.Equal(t, domain.InvoicePaid, inv.Status)
	assert.True(t, inv.RemainingAmount.IsZero())
	// Due date comes from the last appended entry, not the latest date.
	assert.Equal(t, "2026-01-05", inv.DueDate)
}

func TestInvoice_AttachSettlement_Overpayment(t *testing.T) {
	inv := newSalesInvoice(t, 1000)

	require.NoError(t, inv.AttachSettlement(domain.SettlementEntry{
		ReferenceID: "pay-1",
		Amount:      decimal.NewFromInt(2000),
		Date:        "2026-02-01",
	}))

	assert.Equal(t, domain.InvoicePaid, inv.Status)
	assert.True(t, inv.RemainingAmount.Equal(decimal.NewFromInt(-840)))
}

func TestInvoice_AttachSettlement_Duplicate(t *testing.T) {
	inv := newSalesInvoice(t, 1000)

	entry := domain.SettlementEntry{ReferenceID: "pay-1", Amount: decimal.NewFromInt(100), Date: "2026-01-10"}
	require.NoError(t, inv.AttachSettlement(entry))

	err := inv.AttachSettlement(entry)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Len(t, inv.Payments, 1)
}

func TestInvoice_DetachSettlement(t *testing.T) {
	inv := newSalesInvoice(t, 1000)

	require.NoError(t, inv.AttachSettlement(domain.SettlementEntry{
		ReferenceID: "pay-1",
		Amount:      decimal.NewFromInt(400),
		Date:        "2026-01-10",
	}))
	require.NoError(t, inv.AttachSettlement(domain.SettlementEntry{
		ReferenceID: "pay-2",
		Amount:      decimal.NewFromInt(760),
		Date:        "2026-01-12",
	}))
	require.Equal(t, domain.InvoicePaid, inv.Status)

	ok := inv.DetachSettlement("pay-2")
	require.True(t, ok)

	assert.Equal(t, domain.InvoicePartiallyPaid, inv.Status)
	assert.True(t, inv.PaidAmount.Equal(decimal.NewFromInt(400)))
	assert.True(t, inv.RemainingAmount.Equal(decimal.NewFromInt(760)))
	assert.Equal(t, domain.DueDateIncomplete, inv.DueDate)
}

func TestInvoice_DetachSettlement_EmptiesLedger(t *testing.T) {
	inv := newSalesInvoice(t, 1000)

	require.NoError(t, inv.AttachSettlement(domain.SettlementEntry{
		ReferenceID: "pay-1",
		Amount:      decimal.NewFromInt(1160),
		Date:        "2026-01-10",
	}))
	require.Equal(t, domain.InvoicePaid, inv.Status)

	ok := inv.DetachSettlement("pay-1")
	require.True(t, ok)

	assert.Equal(t, domain.InvoicePending, inv.Status)
	assert.Empty(t, inv.DueDate)
	assert.True(t, inv.PaidAmount.IsZero())
	assert.True(t, inv.RemainingAmount.Equal(inv.Amount))
}

func TestInvoice_DetachSettlement_Missing(t *testing.T) {
	inv := newSalesInvoice(t, 1000)
	assert.False(t, inv.DetachSettlement("pay-unknown"))
}

func TestInvoice_Recalculate_EmptyLedgerKeepsManualStatus(t *testing.T) {
	inv := newSalesInvoice(t, 1000)
	inv.Status = domain.InvoiceOverdue

	inv.Recalculate()

	// A manually set status survives as long as no settlements exist.
	assert.Equal(t, domain.InvoiceOverdue, inv.Status)
}

func TestInvoice_PurchaseUsesExpenseLedger(t *testing.T) {
	inv := &domain.Invoice{
		InvoiceID:  "inv-2",
		Type:       domain.PurchaseInvoice,
		SupplierID: stringPtr("sup-1"),
		Status:     domain.InvoicePending,
		Items: []domain.LineItem{{
			Quantity:   2,
			UnitPrice:  decimal.NewFromInt(50),
			TotalPrice: decimal.NewFromInt(100),
		}},
	}
	inv.CalculateTotalAmount()
	inv.RemainingAmount = inv.Amount

	require.NoError(t, inv.AttachSettlement(domain.SettlementEntry{
		ReferenceID: "exp-1",
		Amount:      decimal.NewFromInt(116),
		Date:        "2026-03-01",
	}))

	assert.Empty(t, inv.Payments)
	assert.Len(t, inv.Expenses, 1)
	assert.Equal(t, domain.InvoicePaid, inv.Status)
}
