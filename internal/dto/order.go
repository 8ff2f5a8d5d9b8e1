package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest defines the data needed to create an order. The amount is
// derived from the items server-side; no tax applies to orders.
type CreateOrderRequest struct {
	Type            string            `json:"type" binding:"required,oneof=sales purchase"`
	CustomerID      *string           `json:"customerID"`
	SupplierID      *string           `json:"supplierID"`
	CompanyID       *string           `json:"companyID"`
	Email           string            `json:"email" binding:"omitempty,email"`
	Date            string            `json:"date" binding:"required"`
	DeliveryDate    string            `json:"deliveryDate"`
	Items           []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Status          string            `json:"status" binding:"omitempty,oneof=pending processing ready completed cancelled draft"`
	Notes           string            `json:"notes"`
	DeliveryAddress string            `json:"deliveryAddress"`
	DeliveryNotes   string            `json:"deliveryNotes"`
	DriverID        *string           `json:"driverID"`
}

// UpdateOrderRequest defines the updatable order fields.
type UpdateOrderRequest struct {
	Email           *string           `json:"email" binding:"omitempty,email"`
	Date            *string           `json:"date"`
	DeliveryDate    *string           `json:"deliveryDate"`
	Items           []LineItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	Notes           *string           `json:"notes"`
	DeliveryAddress *string           `json:"deliveryAddress"`
	DeliveryNotes   *string           `json:"deliveryNotes"`
	Version         int64             `json:"version"`
}

// UpdateOrderStatusRequest changes the order processing status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateDeliveryStatusRequest changes the delivery tracking status.
type UpdateDeliveryStatusRequest struct {
	DeliveryStatus string `json:"deliveryStatus" binding:"required"`
}

// AssignDriverRequest assigns a driver user to the order.
type AssignDriverRequest struct {
	DriverID string `json:"driverID" binding:"required"`
}

// ListOrdersParams defines query parameters for listing orders.
type ListOrdersParams struct {
	Status         string `form:"status"`
	DeliveryStatus string `form:"deliveryStatus"`
	Type           string `form:"type"`
	CustomerID     string `form:"customerID"`
	SupplierID     string `form:"supplierID"`
	CompanyID      string `form:"companyID"`
	IssuedBy       string `form:"issuedBy"`
	DriverID       string `form:"driverID"`
}

// OrderResponse defines the data returned for an order.
type OrderResponse struct {
	OrderID         string            `json:"orderID"`
	OrderNumber     string            `json:"orderNumber"`
	Type            string            `json:"type"`
	CustomerID      *string           `json:"customerID,omitempty"`
	SupplierID      *string           `json:"supplierID,omitempty"`
	CompanyID       *string           `json:"companyID,omitempty"`
	IssuedBy        string            `json:"issuedBy,omitempty"`
	Email           string            `json:"email,omitempty"`
	Date            string            `json:"date"`
	DeliveryDate    string            `json:"deliveryDate,omitempty"`
	Items           []domain.LineItem `json:"items"`
	Amount          decimal.Decimal   `json:"amount"`
	Status          string            `json:"status"`
	Notes           string            `json:"notes,omitempty"`
	DeliveryStatus  string            `json:"deliveryStatus"`
	DeliveryAddress string            `json:"deliveryAddress,omitempty"`
	DeliveryNotes   string            `json:"deliveryNotes,omitempty"`
	DriverID        *string           `json:"driverID,omitempty"`
	Version         int64             `json:"version"`
	CreatedAt       time.Time         `json:"createdAt"`
	LastUpdatedAt   time.Time         `json:"lastUpdatedAt"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:         o.OrderID,
		OrderNumber:     o.OrderNumber,
		Type:            string(o.Type),
		CustomerID:      o.CustomerID,
		SupplierID:      o.SupplierID,
		CompanyID:       o.CompanyID,
		IssuedBy:        o.IssuedBy,
		Email:           o.Email,
		Date:            o.Date,
		DeliveryDate:    o.DeliveryDate,
		Items:           o.Items,
		Amount:          o.Amount,
		Status:          string(o.Status),
		Notes:           o.Notes,
		DeliveryStatus:  string(o.DeliveryStatus),
		DeliveryAddress: o.DeliveryAddress,
		DeliveryNotes:   o.DeliveryNotes,
		DriverID:        o.DriverID,
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
		LastUpdatedAt:   o.LastUpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain.Order to []OrderResponse.
func ToOrderResponses(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
