package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/odoo-connector/internal/domain/sync"
)

// Category is one node of the Shopware category tree, keyed across systems
// by its correlation field. Odoo root categories (parent = false) are
// re-parented under the storefront's configured default root category.
type Category struct {
	ID          uuid.UUID
	ParentID    *uuid.UUID
	Name        string
	Active      bool
	Correlation sync.Correlation
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates a new category under the given parent. A nil parent
// is only valid for the storefront's own root.
func NewCategory(name string, parentID *uuid.UUID) (*Category, error) {
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	now := time.Now()
	return &Category{
		ID:        uuid.New(),
		ParentID:  parentID,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Reparent moves the category under a new parent.
func (c *Category) Reparent(parentID *uuid.UUID) {
	c.ParentID = parentID
	c.UpdatedAt = time.Now()
}
