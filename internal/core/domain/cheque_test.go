package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
)

func TestCheque_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cheque  domain.Cheque
		wantErr bool
	}{
		{
			name:    "customer only",
			cheque:  domain.Cheque{CustomerID: stringPtr("c1")},
			wantErr: false,
		},
		{
			name:    "supplier only",
			cheque:  domain.Cheque{SupplierID: stringPtr("s1")},
			wantErr: false,
		},
		{
			name:    "neither party",
			cheque:  domain.Cheque{},
			wantErr: true,
		},
		{
			name:    "both parties",
			cheque:  domain.Cheque{CustomerID: stringPtr("c1"), SupplierID: stringPtr("s1")},
			wantErr: true,
		},
		{
			name:    "empty customer counts as unset",
			cheque:  domain.Cheque{CustomerID: stringPtr(""), SupplierID: stringPtr("s1")},
			wantErr: false,
		},
		{
			name:    "payment link only",
			cheque:  domain.Cheque{CustomerID: stringPtr("c1"), PaymentID: stringPtr("p1")},
			wantErr: false,
		},
		{
			name:    "expense link only",
			cheque:  domain.Cheque{SupplierID: stringPtr("s1"), ExpenseID: stringPtr("e1")},
			wantErr: false,
		},
		{
			name:    "both ledger links",
			cheque:  domain.Cheque{CustomerID: stringPtr("c1"), PaymentID: stringPtr("p1"), ExpenseID: stringPtr("e1")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cheque.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
