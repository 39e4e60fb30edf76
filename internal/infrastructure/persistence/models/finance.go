package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/odoo-connector/internal/domain/finance"
)

// TaxModel is the persistence model for the Tax domain entity.
type TaxModel struct {
	ID   uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name string          `gorm:"type:varchar(255);not null"`
	Rate decimal.Decimal `gorm:"type:decimal(10,4);not null;index"`
	OdooCorrelation
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TaxModel) TableName() string {
	return "taxes"
}

// ToDomain converts the persistence model to a domain Tax entity.
func (m *TaxModel) ToDomain() *finance.Tax {
	return &finance.Tax{
		ID:          m.ID,
		Name:        m.Name,
		Rate:        m.Rate,
		Correlation: m.OdooCorrelation.ToDomain(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Tax entity.
func (m *TaxModel) FromDomain(t *finance.Tax) {
	m.ID = t.ID
	m.Name = t.Name
	m.Rate = t.Rate
	m.OdooCorrelation.FromDomain(t.Correlation)
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// CurrencyModel is the persistence model for the Currency domain entity.
type CurrencyModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	ISOCode         string          `gorm:"type:varchar(3);not null;uniqueIndex"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Symbol          string          `gorm:"type:varchar(16)"`
	Factor          decimal.Decimal `gorm:"type:decimal(13,6);not null"`
	DecimalPlaces   int             `gorm:"not null;default:2"`
	IsSystemDefault bool            `gorm:"not null;default:false"`
	OdooCorrelation
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToDomain converts the persistence model to a domain Currency entity.
func (m *CurrencyModel) ToDomain() *finance.Currency {
	return &finance.Currency{
		ID:              m.ID,
		ISOCode:         m.ISOCode,
		Name:            m.Name,
		Symbol:          m.Symbol,
		Factor:          m.Factor,
		DecimalPlaces:   m.DecimalPlaces,
		IsSystemDefault: m.IsSystemDefault,
		Correlation:     m.OdooCorrelation.ToDomain(),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Currency entity.
func (m *CurrencyModel) FromDomain(c *finance.Currency) {
	m.ID = c.ID
	m.ISOCode = c.ISOCode
	m.Name = c.Name
	m.Symbol = c.Symbol
	m.Factor = c.Factor
	m.DecimalPlaces = c.DecimalPlaces
	m.IsSystemDefault = c.IsSystemDefault
	m.OdooCorrelation.FromDomain(c.Correlation)
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}
