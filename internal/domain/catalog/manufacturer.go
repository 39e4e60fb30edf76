package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/odoo-connector/internal/domain/sync"
)

// Manufacturer mirrors a Shopware product manufacturer (Odoo brand).
type Manufacturer struct {
	ID          uuid.UUID
	Name        string
	Link        string
	Description string
	Correlation sync.Correlation
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewManufacturer creates a new manufacturer.
func NewManufacturer(name string) (*Manufacturer, error) {
	if name == "" {
		return nil, ErrManufacturerNameRequired
	}
	now := time.Now()
	return &Manufacturer{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
