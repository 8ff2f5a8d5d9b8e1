package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// productService provides catalog product operations.
type productService struct {
	productRepo ports.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo ports.ProductRepository) ports.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ ports.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	p := domain.Product{
		ProductID:   uuid.NewString(),
		ProductName: req.ProductName,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Unit:        req.Unit,
		Barcode:     req.Barcode,
		SupplierIDs: req.SupplierIDs,
		CompanyID:   req.CompanyID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, p); err != nil {
		logger.Error("failed to save product", slog.String("product_id", p.ProductID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("product created", slog.String("product_id", p.ProductID), slog.String("product_name", p.ProductName))
	return &p, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	return s.productRepo.ListProducts(ctx, params.CompanyID, params.Category)
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error) {
	p, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if req.ProductName != nil {
		p.ProductName = *req.ProductName
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.MinQuantity != nil {
		p.MinQuantity = *req.MinQuantity
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.Barcode != nil {
		p.Barcode = *req.Barcode
	}
	if req.SupplierIDs != nil {
		p.SupplierIDs = req.SupplierIDs
	}
	p.LastUpdatedAt = time.Now().UTC()
	p.LastUpdatedBy = updaterUserID

	if err := s.productRepo.UpdateProduct(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	return s.productRepo.DeleteProduct(ctx, productID)
}
