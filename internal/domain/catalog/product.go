package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/odoo-connector/internal/domain/sync"
)

// Product is a Shopware product record. A template has no parent and owns
// price, tax, categories, manufacturer and media; a variant references its
// template through ParentID and owns its own price, stock and option set,
// inheriting tax, manufacturer and description when unspecified.
type Product struct {
	ID             uuid.UUID
	ParentID       *uuid.UUID
	Number         string
	Name           string
	Description    string
	EAN            string
	Stock          int
	Active         bool
	TaxID          uuid.UUID
	ManufacturerID *uuid.UUID
	// PriceNet is the ERP sales price; PriceGross is always derived as
	// net × (1 + taxRate/100) and never copied from a payload.
	PriceNet    decimal.Decimal
	PriceGross  decimal.Decimal
	CategoryIDs []uuid.UUID
	// OptionIDs are the property option values differentiating this
	// variant from its siblings. Empty for templates.
	OptionIDs []uuid.UUID
	// ConfiguratorOptionIDs are the option values already attached to a
	// template's configurator. Empty for variants.
	ConfiguratorOptionIDs []uuid.UUID
	MediaIDs              []uuid.UUID
	Children              []*Product
	Correlation           sync.Correlation
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewProduct creates a new product template.
func NewProduct(number, name string, taxID uuid.UUID) (*Product, error) {
	if number == "" {
		return nil, ErrProductNumberRequired
	}
	if name == "" {
		return nil, ErrProductNameRequired
	}
	if taxID == uuid.Nil {
		return nil, ErrProductTaxRequired
	}
	now := time.Now()
	return &Product{
		ID:        uuid.New(),
		Number:    number,
		Name:      name,
		TaxID:     taxID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsTemplate reports whether this product is a template (no parent).
func (p *Product) IsTemplate() bool { return p.ParentID == nil }

// IsVariant reports whether this product is a variant of a template.
func (p *Product) IsVariant() bool { return p.ParentID != nil }

// SetPrice stores the net price and recomputes the gross price from the
// given tax rate. Gross is derived, never assigned from a payload.
func (p *Product) SetPrice(net, taxRate decimal.Decimal) {
	hundred := decimal.NewFromInt(100)
	p.PriceNet = net
	p.PriceGross = net.Mul(hundred.Add(taxRate)).Div(hundred).Round(2)
	p.UpdatedAt = time.Now()
}

// AddChild attaches a variant to this template. Variants cannot nest.
func (p *Product) AddChild(child *Product) error {
	if p.IsVariant() {
		return ErrVariantCannotNest
	}
	child.ParentID = &p.ID
	p.Children = append(p.Children, child)
	p.UpdatedAt = time.Now()
	return nil
}

// ReplaceCategories swaps the full category assignment. Category, media and
// manufacturer associations are replaced wholesale on update, not merged.
func (p *Product) ReplaceCategories(categoryIDs []uuid.UUID) {
	p.CategoryIDs = categoryIDs
	p.UpdatedAt = time.Now()
}

// MissingConfiguratorOptions returns the option IDs from the given set that
// are not yet attached to this template's configurator. Writing an already
// attached option is a duplicate-key error on the storefront side, so
// callers insert only the set difference.
func (p *Product) MissingConfiguratorOptions(optionIDs []uuid.UUID) []uuid.UUID {
	attached := make(map[uuid.UUID]bool, len(p.ConfiguratorOptionIDs))
	for _, id := range p.ConfiguratorOptionIDs {
		attached[id] = true
	}
	var missing []uuid.UUID
	for _, id := range optionIDs {
		if !attached[id] {
			missing = append(missing, id)
			attached[id] = true
		}
	}
	return missing
}
