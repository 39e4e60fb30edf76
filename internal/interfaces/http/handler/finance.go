package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/erp/odoo-connector/internal/application/connector"
)

// FinanceHandler serves the inbound currency, tax and pricing rule
// endpoints.
type FinanceHandler struct {
	BaseHandler
	currencies *connector.CurrencyMapper
	taxes      *connector.TaxMapper
	pricing    *connector.PricingEngine
}

// NewFinanceHandler creates a finance handler.
func NewFinanceHandler(currencies *connector.CurrencyMapper, taxes *connector.TaxMapper, pricing *connector.PricingEngine) *FinanceHandler {
	return &FinanceHandler{currencies: currencies, taxes: taxes, pricing: pricing}
}

// RegisterRoutes registers the finance endpoints. The currency upsert is
// reachable under both path spellings Odoo has used over time.
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/currency/odoo", h.UpsertCurrencies)
	rg.POST("/odoo/currency", h.UpsertCurrencies)
	rg.POST("/currency/default/odoo", h.SetDefaultCurrency)
	rg.POST("/odoo/tax", h.UpsertTaxes)
	rg.POST("/odoo/rule", h.ApplyRules)
}

// UpsertCurrencies applies a batch of currency records.
func (h *FinanceHandler) UpsertCurrencies(c *gin.Context) {
	payloads, err := bindList[connector.CurrencyPayload](c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.BatchResult(c, h.currencies.UpsertBatch(c.Request.Context(), payloads))
}

// SetDefaultCurrency marks one currency as the system default.
func (h *FinanceHandler) SetDefaultCurrency(c *gin.Context) {
	var payload struct {
		OdooID int64 `json:"id"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	currency, err := h.currencies.SetDefault(c.Request.Context(), payload.OdooID)
	if err != nil {
		h.NotFound(c, err.Error())
		return
	}
	h.Success(c, gin.H{"shopwareId": currency.ID.String(), "isoCode": currency.ISOCode})
}

// UpsertTaxes applies a batch of tax records.
func (h *FinanceHandler) UpsertTaxes(c *gin.Context) {
	payloads, err := bindList[connector.TaxPayload](c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.BatchResult(c, h.taxes.UpsertBatch(c.Request.Context(), payloads))
}

// ApplyRules applies a batch of pricelist items.
func (h *FinanceHandler) ApplyRules(c *gin.Context) {
	payloads, err := bindList[connector.RulePayload](c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.BatchResult(c, h.pricing.Apply(c.Request.Context(), payloads))
}
