package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/erp/odoo-connector/internal/application/connector"
)

// CatalogHandler serves the inbound product, category and manufacturer
// endpoints.
type CatalogHandler struct {
	BaseHandler
	products      *connector.ProductMapper
	categories    *connector.CategoryMapper
	manufacturers *connector.ManufacturerMapper
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(products *connector.ProductMapper, categories *connector.CategoryMapper, manufacturers *connector.ManufacturerMapper) *CatalogHandler {
	return &CatalogHandler{products: products, categories: categories, manufacturers: manufacturers}
}

// RegisterRoutes registers the catalog endpoints.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/product/odoo", h.UpsertProducts)
	rg.POST("/product/update/odoo", h.UpsertProducts)
	rg.POST("/product/stock/update/odoo", h.UpdateStock)
	rg.POST("/category/odoo", h.UpsertCategories)
	rg.POST("/category/update/odoo", h.UpsertCategories)
	rg.POST("/category/default/odoo", h.SetDefaultCategory)
	rg.POST("/manufacturer/odoo", h.UpsertManufacturers)
}

// UpsertProducts applies a batch of product templates with their nested
// variant, tax, category, brand and image data.
func (h *CatalogHandler) UpsertProducts(c *gin.Context) {
	payloads, err := bindList[connector.ProductPayload](c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.BatchResult(c, h.products.UpsertBatch(c.Request.Context(), payloads))
}

// UpdateStock applies a stock-only batch.
func (h *CatalogHandler) UpdateStock(c *gin.Context) {
	payloads, err := bindList[connector.StockPayload](c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.BatchResult(c, h.products.UpdateStock(c.Request.Context(), payloads))
}

// UpsertCategories applies a batch of category nodes with their ancestor
// chains.
func (h *CatalogHandler) UpsertCategories(c *gin.Context) {
	payloads, err := bindList[connector.CategoryPayload](c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.BatchResult(c, h.categories.UpsertBatch(c.Request.Context(), payloads))
}

// SetDefaultCategory records the category Odoo root nodes are re-parented
// under.
func (h *CatalogHandler) SetDefaultCategory(c *gin.Context) {
	var payload struct {
		OdooID int64 `json:"id"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	category, err := h.categories.SetDefaultRoot(c.Request.Context(), payload.OdooID)
	if err != nil {
		h.NotFound(c, err.Error())
		return
	}
	h.Success(c, gin.H{"shopwareId": category.ID.String()})
}

// UpsertManufacturers applies a batch of brand records.
func (h *CatalogHandler) UpsertManufacturers(c *gin.Context) {
	payloads, err := bindList[connector.ManufacturerPayload](c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.BatchResult(c, h.manufacturers.UpsertBatch(c.Request.Context(), payloads))
}
