package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bizflow/erp_backend/internal/core/domain"
)

func TestService_RecalculateTotalExpenses(t *testing.T) {
	now := time.Now().UTC()
	svc := domain.Service{
		ExpenseHistory: []domain.ServiceExpenseEntry{
			{ExpenseID: "e1", Amount: decimal.NewFromFloat(120.40), Date: now},
			{ExpenseID: "e2", Amount: decimal.NewFromFloat(79.60), Date: now},
		},
	}

	total := svc.RecalculateTotalExpenses()

	assert.True(t, total.Equal(decimal.NewFromInt(200)))
	assert.True(t, svc.TotalExpenses.Equal(decimal.NewFromInt(200)))

	svc.ExpenseHistory = nil
	assert.True(t, svc.RecalculateTotalExpenses().IsZero())
}
