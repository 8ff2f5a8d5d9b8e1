package domain

import (
	"fmt"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes customer-facing sales invoices from supplier-facing
// purchase invoices. The type decides which party reference is required and which
// ledger (payments or expenses) settles the invoice.
type InvoiceType string

const (
	SalesInvoice    InvoiceType = "sales"
	PurchaseInvoice InvoiceType = "purchase"
)

// InvoiceStatus indicates the settlement state of an invoice. Once settlement
// entries exist, paid and partially_paid are derived and not independently settable.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "draft"
	InvoicePending       InvoiceStatus = "pending"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceOverdue       InvoiceStatus = "overdue"
	InvoiceUnpaid        InvoiceStatus = "unpaid"
)

// DueDateIncomplete is the due-date sentinel carried while an invoice is
// partially paid.
const DueDateIncomplete = "Incomplete"

// taxMultiplier is the 16% tax surcharge applied on top of the item total.
var taxMultiplier = decimal.RequireFromString("1.16")

// SettlementEntry is one ledger-array record on an invoice: a payment (sales) or an
// expense (purchase) applied against the owed amount.
type SettlementEntry struct {
	ReferenceID string          `json:"referenceID"` // Payment or Expense ID
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference,omitempty"`
}

// Invoice is the central ledger document. Amount, PaidAmount, RemainingAmount and
// (once settlements exist) Status are derived fields; Recalculate is the single
// derivation path for all of them.
type Invoice struct {
	InvoiceID   string      `json:"invoiceID"` // Primary Key (UUID)
	ReferenceNo string      `json:"referenceNo"`
	Type        InvoiceType `json:"type"`
	CustomerID  *string     `json:"customerID,omitempty"` // set iff Type == sales
	SupplierID  *string     `json:"supplierID,omitempty"` // set iff Type == purchase
	CompanyID   *string     `json:"companyID,omitempty"`
	IssuedBy    string      `json:"issuedBy,omitempty"`
	Email       string      `json:"email,omitempty"`
	Terms       string      `json:"terms,omitempty"`

	Date    string `json:"date"`
	DueDate string `json:"dueDate,omitempty"`

	Items []LineItem `json:"items"`

	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Status          InvoiceStatus   `json:"status"`

	Payments []SettlementEntry `json:"payments"`
	Expenses []SettlementEntry `json:"expenses"`

	// Version guards read-modify-write updates against lost updates.
	Version int64 `json:"version"`
	AuditFields
}

// ValidateParty enforces the tagged party reference: sales invoices belong to
// exactly one customer, purchase invoices to exactly one supplier.
func (inv *Invoice) ValidateParty() error {
	switch inv.Type {
	case SalesInvoice:
		if inv.CustomerID == nil || *inv.CustomerID == "" {
			return fmt.Errorf("%w: sales invoice requires a customerID", apperrors.ErrValidation)
		}
		if inv.SupplierID != nil {
			return fmt.Errorf("%w: sales invoice must not reference a supplier", apperrors.ErrValidation)
		}
	case PurchaseInvoice:
		if inv.SupplierID == nil || *inv.SupplierID == "" {
			return fmt.Errorf("%w: purchase invoice requires a supplierID", apperrors.ErrValidation)
		}
		if inv.CustomerID != nil {
			return fmt.Errorf("%w: purchase invoice must not reference a customer", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown invoice type %q", apperrors.ErrValidation, inv.Type)
	}
	return nil
}

// CalculateTotalAmount recomputes Amount from the line items, applying the 16% tax
// surcharge and rounding to 2 decimal places (half-up). Invoked at creation and
// whenever the items are replaced.
func (inv *Invoice) CalculateTotalAmount() decimal.Decimal {
	inv.Amount = SumLineItems(inv.Items).Mul(taxMultiplier).Round(2)
	return inv.Amount
}

// settlements returns the ledger array that settles this invoice type.
func (inv *Invoice) settlements() []SettlementEntry {
	if inv.Type == PurchaseInvoice {
		return inv.Expenses
	}
	return inv.Payments
}

// Recalculate rederives PaidAmount, RemainingAmount, Status and DueDate from the
// current ledger arrays. Status priority: remaining <= 0 -> paid (dueDate frozen to
// the last appended entry's date); paid > 0 -> partially_paid (dueDate sentinel);
// otherwise the caller-supplied status stands. An emptied ledger resets the status
// to pending; that override is not derivable from the general rule, since zero paid
// with a prior partially_paid status would otherwise stick.
func (inv *Invoice) Recalculate() {
	entries := inv.settlements()

	paid := decimal.Zero
	for _, e := range entries {
		paid = paid.Add(e.Amount)
	}
	inv.PaidAmount = paid
	inv.RemainingAmount = inv.Amount.Sub(paid)

	switch {
	case len(entries) == 0:
		if inv.Status == InvoicePaid || inv.Status == InvoicePartiallyPaid {
			inv.Status = InvoicePending
			inv.DueDate = ""
		}
	case inv.RemainingAmount.LessThanOrEqual(decimal.Zero):
		inv.Status = InvoicePaid
		// Tie-break by insertion order, not by the entries' date fields.
		inv.DueDate = entries[len(entries)-1].Date
	case inv.PaidAmount.GreaterThan(decimal.Zero):
		inv.Status = InvoicePartiallyPaid
		inv.DueDate = DueDateIncomplete
	}
}

// AttachSettlement appends an entry to the ledger array matching the invoice type
// and rederives the settlement state. Re-attaching an already attached reference
// fails with ErrDuplicate.
func (inv *Invoice) AttachSettlement(entry SettlementEntry) error {
	for _, e := range inv.settlements() {
		if e.ReferenceID == entry.ReferenceID {
			return fmt.Errorf("%w: settlement %s already attached to invoice %s", apperrors.ErrDuplicate, entry.ReferenceID, inv.InvoiceID)
		}
	}
	if inv.Type == PurchaseInvoice {
		inv.Expenses = append(inv.Expenses, entry)
	} else {
		inv.Payments = append(inv.Payments, entry)
	}
	inv.Recalculate()
	return nil
}

// DetachSettlement removes the ledger entry with the given reference ID and
// rederives the settlement state. It returns false when no such entry exists.
func (inv *Invoice) DetachSettlement(referenceID string) bool {
	entries := inv.settlements()
	idx := -1
	for i, e := range entries {
		if e.ReferenceID == referenceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	entries = append(entries[:idx], entries[idx+1:]...)
	if inv.Type == PurchaseInvoice {
		inv.Expenses = entries
	} else {
		inv.Payments = entries
	}
	inv.Recalculate()
	return true
}

// ValidInvoiceStatus reports whether s is one of the allowed invoice statuses.
func ValidInvoiceStatus(s string) bool {
	switch InvoiceStatus(s) {
	case InvoiceDraft, InvoicePending, InvoicePartiallyPaid, InvoicePaid, InvoiceOverdue, InvoiceUnpaid:
		return true
	}
	return false
}

// ValidInvoiceType reports whether s is a known invoice type.
func ValidInvoiceType(s string) bool {
	return InvoiceType(s) == SalesInvoice || InvoiceType(s) == PurchaseInvoice
}
