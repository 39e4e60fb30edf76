package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/odoo-connector/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product domain entity.
// Association lists are stored as JSONB and replaced wholesale on update.
type ProductModel struct {
	ID                        uuid.UUID  `gorm:"type:uuid;primary_key"`
	ParentID                  *uuid.UUID `gorm:"type:uuid;index"`
	Number                    string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name                      string     `gorm:"type:varchar(255);not null"`
	Description               string     `gorm:"type:text"`
	EAN                       string     `gorm:"type:varchar(64)"`
	Stock                     int        `gorm:"not null;default:0"`
	Active                    bool       `gorm:"not null;default:true"`
	TaxID                     uuid.UUID  `gorm:"type:uuid;not null"`
	ManufacturerID            *uuid.UUID `gorm:"type:uuid"`
	PriceNet                  decimal.Decimal `gorm:"type:decimal(13,4);not null;default:0"`
	PriceGross                decimal.Decimal `gorm:"type:decimal(13,4);not null;default:0"`
	CategoryIDsJSON           string     `gorm:"type:jsonb;column:category_ids"`
	OptionIDsJSON             string     `gorm:"type:jsonb;column:option_ids"`
	ConfiguratorOptionIDsJSON string     `gorm:"type:jsonb;column:configurator_option_ids"`
	MediaIDsJSON              string     `gorm:"type:jsonb;column:media_ids"`
	OdooCorrelation
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
// Children are not loaded here; the repository attaches them.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:                    m.ID,
		ParentID:              m.ParentID,
		Number:                m.Number,
		Name:                  m.Name,
		Description:           m.Description,
		EAN:                   m.EAN,
		Stock:                 m.Stock,
		Active:                m.Active,
		TaxID:                 m.TaxID,
		ManufacturerID:        m.ManufacturerID,
		PriceNet:              m.PriceNet,
		PriceGross:            m.PriceGross,
		CategoryIDs:           uuidsFromJSON(m.CategoryIDsJSON),
		OptionIDs:             uuidsFromJSON(m.OptionIDsJSON),
		ConfiguratorOptionIDs: uuidsFromJSON(m.ConfiguratorOptionIDsJSON),
		MediaIDs:              uuidsFromJSON(m.MediaIDsJSON),
		Correlation:           m.OdooCorrelation.ToDomain(),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.ID = p.ID
	m.ParentID = p.ParentID
	m.Number = p.Number
	m.Name = p.Name
	m.Description = p.Description
	m.EAN = p.EAN
	m.Stock = p.Stock
	m.Active = p.Active
	m.TaxID = p.TaxID
	m.ManufacturerID = p.ManufacturerID
	m.PriceNet = p.PriceNet
	m.PriceGross = p.PriceGross
	m.CategoryIDsJSON = uuidsToJSON(p.CategoryIDs)
	m.OptionIDsJSON = uuidsToJSON(p.OptionIDs)
	m.ConfiguratorOptionIDsJSON = uuidsToJSON(p.ConfiguratorOptionIDs)
	m.MediaIDsJSON = uuidsToJSON(p.MediaIDs)
	m.OdooCorrelation.FromDomain(p.Correlation)
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	Name     string     `gorm:"type:varchar(255);not null"`
	Active   bool       `gorm:"not null;default:true"`
	OdooCorrelation
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		ID:          m.ID,
		ParentID:    m.ParentID,
		Name:        m.Name,
		Active:      m.Active,
		Correlation: m.OdooCorrelation.ToDomain(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.ID = c.ID
	m.ParentID = c.ParentID
	m.Name = c.Name
	m.Active = c.Active
	m.OdooCorrelation.FromDomain(c.Correlation)
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// ManufacturerModel is the persistence model for the Manufacturer entity.
type ManufacturerModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"type:varchar(255);not null;index"`
	Link        string    `gorm:"type:varchar(500)"`
	Description string    `gorm:"type:text"`
	OdooCorrelation
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ManufacturerModel) TableName() string {
	return "manufacturers"
}

// ToDomain converts the persistence model to a domain Manufacturer entity.
func (m *ManufacturerModel) ToDomain() *catalog.Manufacturer {
	return &catalog.Manufacturer{
		ID:          m.ID,
		Name:        m.Name,
		Link:        m.Link,
		Description: m.Description,
		Correlation: m.OdooCorrelation.ToDomain(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Manufacturer entity.
func (m *ManufacturerModel) FromDomain(mf *catalog.Manufacturer) {
	m.ID = mf.ID
	m.Name = mf.Name
	m.Link = mf.Link
	m.Description = mf.Description
	m.OdooCorrelation.FromDomain(mf.Correlation)
	m.CreatedAt = mf.CreatedAt
	m.UpdatedAt = mf.UpdatedAt
}

// PropertyGroupModel is the persistence model for the PropertyGroup entity.
type PropertyGroupModel struct {
	ID        uuid.UUID             `gorm:"type:uuid;primary_key"`
	Name      string                `gorm:"type:varchar(255);not null;uniqueIndex"`
	Options   []PropertyOptionModel `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time             `gorm:"not null"`
	UpdatedAt time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PropertyGroupModel) TableName() string {
	return "property_groups"
}

// PropertyOptionModel is one option row of a property group.
type PropertyOptionModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	GroupID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (PropertyOptionModel) TableName() string {
	return "property_group_options"
}

// ToDomain converts the persistence model to a domain PropertyGroup entity.
func (m *PropertyGroupModel) ToDomain() *catalog.PropertyGroup {
	group := &catalog.PropertyGroup{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, opt := range m.Options {
		group.Options = append(group.Options, catalog.PropertyOption{
			ID:      opt.ID,
			GroupID: opt.GroupID,
			Name:    opt.Name,
		})
	}
	return group
}

// FromDomain populates the persistence model from a domain PropertyGroup entity.
func (m *PropertyGroupModel) FromDomain(g *catalog.PropertyGroup) {
	m.ID = g.ID
	m.Name = g.Name
	m.CreatedAt = g.CreatedAt
	m.UpdatedAt = g.UpdatedAt
	m.Options = m.Options[:0]
	for _, opt := range g.Options {
		m.Options = append(m.Options, PropertyOptionModel{
			ID:      opt.ID,
			GroupID: opt.GroupID,
			Name:    opt.Name,
		})
	}
}

// MediaModel is the persistence model for the Media entity.
type MediaModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName  string    `gorm:"type:varchar(255);not null"`
	MimeType  string    `gorm:"type:varchar(100)"`
	URL       string    `gorm:"type:varchar(1000)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MediaModel) TableName() string {
	return "product_media"
}

// ToDomain converts the persistence model to a domain Media entity.
func (m *MediaModel) ToDomain() *catalog.Media {
	return &catalog.Media{
		ID:        m.ID,
		ProductID: m.ProductID,
		FileName:  m.FileName,
		MimeType:  m.MimeType,
		URL:       m.URL,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Media entity.
func (m *MediaModel) FromDomain(media *catalog.Media) {
	m.ID = media.ID
	m.ProductID = media.ProductID
	m.FileName = media.FileName
	m.MimeType = media.MimeType
	m.URL = media.URL
	m.CreatedAt = media.CreatedAt
}
