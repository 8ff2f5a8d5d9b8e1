package dto

import (
	"time"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a catalog product.
type CreateProductRequest struct {
	ProductName string          `json:"productName" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CostPrice   decimal.Decimal `json:"costPrice" binding:"required"`
	Quantity    int             `json:"quantity" binding:"gte=0"`
	MinQuantity int             `json:"minQuantity" binding:"gte=0"`
	Unit        string          `json:"unit" binding:"required"`
	Barcode     string          `json:"barcode"`
	SupplierIDs []string        `json:"supplierIDs"`
	CompanyID   *string         `json:"companyID"`
}

// UpdateProductRequest defines the updatable product fields.
type UpdateProductRequest struct {
	ProductName *string          `json:"productName"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	CostPrice   *decimal.Decimal `json:"costPrice"`
	Quantity    *int             `json:"quantity" binding:"omitempty,gte=0"`
	MinQuantity *int             `json:"minQuantity" binding:"omitempty,gte=0"`
	Unit        *string          `json:"unit"`
	Barcode     *string          `json:"barcode"`
	SupplierIDs []string         `json:"supplierIDs"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	CompanyID string `form:"companyID"`
	Category  string `form:"category"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	ProductName   string          `json:"productName"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	Quantity      int             `json:"quantity"`
	MinQuantity   int             `json:"minQuantity"`
	Unit          string          `json:"unit"`
	Barcode       string          `json:"barcode,omitempty"`
	SupplierIDs   []string        `json:"supplierIDs"`
	CompanyID     *string         `json:"companyID,omitempty"`
	LowStock      bool            `json:"lowStock"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		ProductName:   p.ProductName,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		Quantity:      p.Quantity,
		MinQuantity:   p.MinQuantity,
		Unit:          p.Unit,
		Barcode:       p.Barcode,
		SupplierIDs:   p.SupplierIDs,
		CompanyID:     p.CompanyID,
		LowStock:      p.Quantity <= p.MinQuantity,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToProductResponses converts a slice of domain.Product to []ProductResponse.
func ToProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
