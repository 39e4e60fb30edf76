package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository persists products. SaveTree writes a template together
// with its nested children as one transactional tree write.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByForeignID looks a product up by its Odoo identifier,
	// optionally narrowed to a specific local record when foreign IDs are
	// reused across template/variant boundaries. Returns (nil, nil) when
	// no record matches.
	FindByForeignID(ctx context.Context, odooID int64, localID *uuid.UUID) (*Product, error)
	// FindTemplateByForeignID matches template rows only. Odoo hands out
	// template and variant IDs from independent sequences, so a plain
	// foreign-ID match can land on an unrelated variant. Returns
	// (nil, nil) when no template matches.
	FindTemplateByForeignID(ctx context.Context, odooID int64) (*Product, error)
	FindByNumber(ctx context.Context, number string) (*Product, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]*Product, error)
	// FindTemplates returns all template products (no parent), used by
	// pricing rules scoped to a category or to the whole catalogue.
	FindTemplates(ctx context.Context) ([]*Product, error)
	Save(ctx context.Context, product *Product) error
	SaveTree(ctx context.Context, template *Product) error
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository persists category tree nodes.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	// FindByForeignID returns (nil, nil) when no record matches.
	FindByForeignID(ctx context.Context, odooID int64) (*Category, error)
	FindRoot(ctx context.Context) (*Category, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]*Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ManufacturerRepository persists manufacturers.
type ManufacturerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Manufacturer, error)
	// FindByForeignID returns (nil, nil) when no record matches.
	FindByForeignID(ctx context.Context, odooID int64) (*Manufacturer, error)
	FindByName(ctx context.Context, name string) (*Manufacturer, error)
	Save(ctx context.Context, manufacturer *Manufacturer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PropertyGroupRepository persists property groups with their options.
type PropertyGroupRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PropertyGroup, error)
	FindByName(ctx context.Context, name string) (*PropertyGroup, error)
	Save(ctx context.Context, group *PropertyGroup) error
}

// MediaRepository persists media records; binary payloads live in object
// storage under Media.StorageKey.
type MediaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Media, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*Media, error)
	Save(ctx context.Context, media *Media) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
