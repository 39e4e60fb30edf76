package handler

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/erp/odoo-connector/internal/infrastructure/config"
)

// SystemHandler serves the credential check and the health probe.
type SystemHandler struct {
	BaseHandler
	cfg *config.OdooConfig
}

// NewSystemHandler creates a system handler.
func NewSystemHandler(cfg *config.OdooConfig) *SystemHandler {
	return &SystemHandler{cfg: cfg}
}

// RegisterRoutes registers the system endpoints.
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/check/web-url-credential", h.CheckCredential)
	rg.GET("/health", h.Health)
}

// CheckCredential verifies the shared secret Odoo presents before it
// starts pushing entity batches.
func (h *SystemHandler) CheckCredential(c *gin.Context) {
	var payload struct {
		Credential string `json:"credential" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if h.cfg.CredentialHash == "" {
		h.Unauthorized(c, "no credential configured")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.CredentialHash), []byte(payload.Credential)); err != nil {
		h.Unauthorized(c, "credential mismatch")
		return
	}
	h.Success(c, gin.H{"valid": true})
}

// Health reports process liveness and whether the Odoo connection is
// configured.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":     "ok",
		"configured": h.cfg.Configured(),
	})
}
