package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/odoo-connector/internal/domain/pricing"
)

// RuleModel is the persistence model for the pricing Rule entity.
type RuleModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"type:varchar(255);not null"`
	ForeignKey     string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	SalesChannelID uuid.UUID `gorm:"type:uuid;not null"`
	OdooCorrelation
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RuleModel) TableName() string {
	return "pricing_rules"
}

// ToDomain converts the persistence model to a domain Rule entity.
func (m *RuleModel) ToDomain() *pricing.Rule {
	return &pricing.Rule{
		ID:             m.ID,
		Name:           m.Name,
		ForeignKey:     m.ForeignKey,
		SalesChannelID: m.SalesChannelID,
		Correlation:    m.OdooCorrelation.ToDomain(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Rule entity.
func (m *RuleModel) FromDomain(r *pricing.Rule) {
	m.ID = r.ID
	m.Name = r.Name
	m.ForeignKey = r.ForeignKey
	m.SalesChannelID = r.SalesChannelID
	m.OdooCorrelation.FromDomain(r.Correlation)
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
}

// PriceModel is one quantity-tier price row for a rule+product pair.
type PriceModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	RuleID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_prices_rule_product,priority:1"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_prices_rule_product,priority:2"`
	QuantityStart int             `gorm:"not null"`
	QuantityEnd   *int            `gorm:""`
	Net           decimal.Decimal `gorm:"type:decimal(13,4);not null"`
	Gross         decimal.Decimal `gorm:"type:decimal(13,4);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PriceModel) TableName() string {
	return "pricing_rule_prices"
}

// ToDomain converts the persistence model to a domain Price value.
func (m *PriceModel) ToDomain() pricing.Price {
	return pricing.Price{
		ID:            m.ID,
		RuleID:        m.RuleID,
		ProductID:     m.ProductID,
		QuantityStart: m.QuantityStart,
		QuantityEnd:   m.QuantityEnd,
		Net:           m.Net,
		Gross:         m.Gross,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Price value.
func (m *PriceModel) FromDomain(p pricing.Price) {
	m.ID = p.ID
	m.RuleID = p.RuleID
	m.ProductID = p.ProductID
	m.QuantityStart = p.QuantityStart
	m.QuantityEnd = p.QuantityEnd
	m.Net = p.Net
	m.Gross = p.Gross
	m.CreatedAt = p.CreatedAt
}
