package connector

import (
	"github.com/erp/odoo-connector/internal/domain/pricing"
	"github.com/erp/odoo-connector/internal/domain/sync"
)

// Inbound payloads mirror the flat record shapes Odoo posts to the
// connector. Every optional field is a tri-state sync.Field so the mappers
// can distinguish "omitted, preserve" from "sent null" from "sent value".

// TaxPayload is an Odoo account.tax record.
type TaxPayload struct {
	OdooID int64               `json:"id"`
	Name   sync.Field[string]  `json:"name"`
	Amount sync.Field[float64] `json:"amount"`
}

// CurrencyPayload is an Odoo res.currency record. Odoo uses the ISO code
// as the record name.
type CurrencyPayload struct {
	OdooID        int64               `json:"id"`
	Name          sync.Field[string]  `json:"name"`
	Symbol        sync.Field[string]  `json:"symbol"`
	Rate          sync.Field[float64] `json:"rate"`
	DecimalPlaces sync.Field[int]     `json:"decimal_places"`
}

// ManufacturerPayload is an Odoo brand record.
type ManufacturerPayload struct {
	OdooID      int64              `json:"id"`
	Name        sync.Field[string] `json:"name"`
	Website     sync.Field[string] `json:"website"`
	Description sync.Field[string] `json:"description"`
}

// CategoryPayload is an Odoo product.category record. Parent holds the
// nested parent record when the parent may not exist locally yet; an Odoo
// root sends no parent at all.
type CategoryPayload struct {
	OdooID int64              `json:"id"`
	Name   sync.Field[string] `json:"name"`
	Parent *CategoryPayload   `json:"parent_data"`
}

// ImagePayload is one product image reference.
type ImagePayload struct {
	FileName string `json:"filename"`
	MimeType string `json:"mimetype"`
	URL      string `json:"url"`
}

// AttributeValuePayload assigns one property option to a variant.
type AttributeValuePayload struct {
	AttributeName string `json:"attribute_name"`
	ValueName     string `json:"value_name"`
}

// VariantPayload is one nested variant record of a product template.
type VariantPayload struct {
	OdooID      int64                   `json:"id"`
	DefaultCode sync.Field[string]      `json:"default_code"`
	Barcode     sync.Field[string]      `json:"barcode"`
	SalesPrice  sync.Field[float64]     `json:"sales_price"`
	Stock       sync.Field[float64]     `json:"qty_available"`
	Description sync.Field[string]      `json:"description"`
	Attributes  []AttributeValuePayload `json:"variant_attribute_values_data"`
}

// ProductPayload is an Odoo product.template record with nested variant,
// tax, category, brand and image data.
type ProductPayload struct {
	OdooID       int64                `json:"id"`
	ShopwareID   sync.Field[string]   `json:"shopware_id"`
	Name         sync.Field[string]   `json:"name"`
	Description  sync.Field[string]   `json:"description"`
	DefaultCode  sync.Field[string]   `json:"default_code"`
	Barcode      sync.Field[string]   `json:"barcode"`
	SalesPrice   sync.Field[float64]  `json:"sales_price"`
	Stock        sync.Field[float64]  `json:"qty_available"`
	Active       sync.Field[bool]     `json:"active"`
	TaxID        sync.Field[int64]    `json:"tax_id"`
	Tax          *TaxPayload          `json:"tax_data"`
	Categories   []CategoryPayload    `json:"category_data"`
	Manufacturer *ManufacturerPayload `json:"brand_data"`
	Images       []ImagePayload       `json:"image_data"`
	Variants     []VariantPayload     `json:"variant_detail_data"`
}

// StockPayload is one row of a stock-only update.
type StockPayload struct {
	OdooID int64   `json:"id"`
	Stock  float64 `json:"qty_available"`
}

// RulePayload is an Odoo pricelist item, covering both the Basic and the
// Advanced rule families.
type RulePayload struct {
	PricelistID   int64               `json:"pricelist_id"`
	PricelistName string              `json:"pricelist_name"`
	MainRuleID    int64               `json:"main_rule_id"`
	AppliedOn     pricing.AppliedOn   `json:"applied_on"`
	ComputePrice  sync.Field[string]  `json:"compute_price"`
	FixedPrice    sync.Field[float64] `json:"fixed_price"`
	PercentPrice  sync.Field[float64] `json:"percent_price"`
	MinQuantity   sync.Field[float64] `json:"min_quantity"`
	TemplateID    sync.Field[int64]   `json:"product_tmpl_id"`
	VariantID     sync.Field[int64]   `json:"product_id"`
	CategoryID    sync.Field[int64]   `json:"categ_id"`
	// FromWrite signals a pricelist edit on the Odoo side; existing tier
	// rows for the affected rule+product pairs are replaced, not merged.
	FromWrite bool `json:"from_write"`
}

// StatusPayload is an inbound order status notification from Odoo.
type StatusPayload struct {
	OrderNumber   string             `json:"orderNumber"`
	OrderID       sync.Field[string] `json:"orderId"`
	DeliveryState sync.Field[string] `json:"delivery_state"`
	OrderState    sync.Field[string] `json:"order_state"`
	PaymentState  sync.Field[string] `json:"payment_state"`
	Return        bool               `json:"return"`
	TrackingCode  sync.Field[string] `json:"tracking_code"`
}
