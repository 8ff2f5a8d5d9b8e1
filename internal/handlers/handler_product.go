package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// productHandler handles HTTP requests related to catalog products.
type productHandler struct {
	productService ports.ProductSvcFacade
}

func newProductHandler(productService ports.ProductSvcFacade) *productHandler {
	return &productHandler{productService: productService}
}

func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateProductRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create product")
		return
	}

	logger.Info("Product created successfully", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	product, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListProductsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listProducts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid query parameters")})
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	updateReq := dto.UpdateProductRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, updateReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) deleteProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete product")
		return
	}

	logger.Info("Product deleted", slog.String("product_id", productID))
	c.Status(http.StatusNoContent)
}

// registerProductRoutes registers product specific routes.
func registerProductRoutes(group *gin.RouterGroup, productService ports.ProductSvcFacade) {
	h := newProductHandler(productService)

	products := group.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:productID", h.getProduct)
		products.PUT("/:productID", h.updateProduct)
		products.DELETE("/:productID", h.deleteProduct)
	}
}
