package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/odoo-connector/internal/application/connector"
	"github.com/erp/odoo-connector/internal/interfaces/http/dto"
)

// BaseHandler provides the envelope helpers shared by every handler.
type BaseHandler struct{}

// Success sends a 200 success envelope.
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.Success(http.StatusOK, data))
}

// BatchResult sends the outcome of an inbound batch: always HTTP 200, with
// the per-item pairings and failures in the body. A batch where every item
// failed is still a 200; the Odoo side inspects the errors array.
func (h *BaseHandler) BatchResult(c *gin.Context, result *connector.BatchResult) {
	c.JSON(http.StatusOK, dto.SuccessWithReports(http.StatusOK, result.Reports, result.Errors))
}

// BadRequest sends a 400 error envelope.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Error(http.StatusBadRequest, message))
}

// NotFound sends a 404 error envelope.
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.Error(http.StatusNotFound, message))
}

// Unauthorized sends a 401 error envelope.
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.Error(http.StatusUnauthorized, message))
}

// Internal sends a 500 error envelope.
func (h *BaseHandler) Internal(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, dto.Error(http.StatusInternalServerError, message))
}
