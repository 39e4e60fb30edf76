package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence/models"
)

// GormManufacturerRepository implements catalog.ManufacturerRepository using GORM
type GormManufacturerRepository struct {
	db *gorm.DB
}

// NewGormManufacturerRepository creates a new GormManufacturerRepository
func NewGormManufacturerRepository(db *gorm.DB) *GormManufacturerRepository {
	return &GormManufacturerRepository{db: db}
}

// Ensure interface compliance
var _ catalog.ManufacturerRepository = (*GormManufacturerRepository)(nil)

// FindByID finds a manufacturer by its ID
func (r *GormManufacturerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	var model models.ManufacturerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrManufacturerNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByForeignID looks a manufacturer up by its Odoo identifier.
// Returns (nil, nil) when no record matches.
func (r *GormManufacturerRepository) FindByForeignID(ctx context.Context, odooID int64) (*catalog.Manufacturer, error) {
	var model models.ManufacturerModel
	if err := r.db.WithContext(ctx).First(&model, "odoo_id = ?", odooID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a manufacturer by its exact name.
func (r *GormManufacturerRepository) FindByName(ctx context.Context, name string) (*catalog.Manufacturer, error) {
	var model models.ManufacturerModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrManufacturerNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts a manufacturer row.
func (r *GormManufacturerRepository) Save(ctx context.Context, manufacturer *catalog.Manufacturer) error {
	var model models.ManufacturerModel
	model.FromDomain(manufacturer)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a manufacturer row.
func (r *GormManufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ManufacturerModel{}, "id = ?", id).Error
}
