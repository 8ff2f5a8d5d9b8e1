package domain

import (
	"fmt"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// OrderStatus is the processing state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderReady      OrderStatus = "ready"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderDraft      OrderStatus = "draft"
)

// DeliveryStatus tracks the physical delivery of an order.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryShipped   DeliveryStatus = "shipped"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryReturned  DeliveryStatus = "returned"
)

// Order is a sales or purchase order. Unlike invoices, the order amount is the
// plain sum of line-item totals; no tax surcharge applies.
type Order struct {
	OrderID     string      `json:"orderID"` // Primary Key (UUID)
	OrderNumber string      `json:"orderNumber"`
	Type        InvoiceType `json:"type"` // sales or purchase, same tagged party rule
	CustomerID  *string     `json:"customerID,omitempty"`
	SupplierID  *string     `json:"supplierID,omitempty"`
	CompanyID   *string     `json:"companyID,omitempty"`
	IssuedBy    string      `json:"issuedBy,omitempty"`
	Email       string      `json:"email,omitempty"`

	Date         string `json:"date"`
	DeliveryDate string `json:"deliveryDate,omitempty"`

	Items  []LineItem      `json:"items"`
	Amount decimal.Decimal `json:"amount"`
	Status OrderStatus     `json:"status"`
	Notes  string          `json:"notes,omitempty"`

	DeliveryStatus  DeliveryStatus `json:"deliveryStatus"`
	DeliveryAddress string         `json:"deliveryAddress,omitempty"`
	DeliveryNotes   string         `json:"deliveryNotes,omitempty"`
	DriverID        *string        `json:"driverID,omitempty"`

	Version int64 `json:"version"`
	AuditFields
}

// CalculateTotalAmount recomputes Amount as the sum of line-item totals.
func (o *Order) CalculateTotalAmount() decimal.Decimal {
	o.Amount = SumLineItems(o.Items)
	return o.Amount
}

// ValidateParty enforces the tagged party reference, mirroring Invoice.ValidateParty.
func (o *Order) ValidateParty() error {
	switch o.Type {
	case SalesInvoice:
		if o.CustomerID == nil || *o.CustomerID == "" {
			return fmt.Errorf("%w: sales order requires a customerID", apperrors.ErrValidation)
		}
		if o.SupplierID != nil {
			return fmt.Errorf("%w: sales order must not reference a supplier", apperrors.ErrValidation)
		}
	case PurchaseInvoice:
		if o.SupplierID == nil || *o.SupplierID == "" {
			return fmt.Errorf("%w: purchase order requires a supplierID", apperrors.ErrValidation)
		}
		if o.CustomerID != nil {
			return fmt.Errorf("%w: purchase order must not reference a customer", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown order type %q", apperrors.ErrValidation, o.Type)
	}
	return nil
}

// ValidOrderStatus reports whether s is an allowed order status.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderProcessing, OrderReady, OrderCompleted, OrderCancelled, OrderDraft:
		return true
	}
	return false
}

// ValidDeliveryStatus reports whether s is an allowed delivery status.
func ValidDeliveryStatus(s string) bool {
	switch DeliveryStatus(s) {
	case DeliveryPending, DeliveryShipped, DeliveryDelivered, DeliveryReturned:
		return true
	}
	return false
}
