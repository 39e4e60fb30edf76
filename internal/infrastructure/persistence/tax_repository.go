package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence/models"
)

// GormTaxRepository implements finance.TaxRepository using GORM
type GormTaxRepository struct {
	db *gorm.DB
}

// NewGormTaxRepository creates a new GormTaxRepository
func NewGormTaxRepository(db *gorm.DB) *GormTaxRepository {
	return &GormTaxRepository{db: db}
}

// Ensure interface compliance
var _ finance.TaxRepository = (*GormTaxRepository)(nil)

// FindByID finds a tax by its ID
func (r *GormTaxRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Tax, error) {
	var model models.TaxModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, finance.ErrTaxNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByForeignID looks a tax up by its Odoo identifier.
// Returns (nil, nil) when no record matches.
func (r *GormTaxRepository) FindByForeignID(ctx context.Context, odooID int64) (*finance.Tax, error) {
	var model models.TaxModel
	if err := r.db.WithContext(ctx).First(&model, "odoo_id = ?", odooID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRate finds a tax by its exact rate.
func (r *GormTaxRepository) FindByRate(ctx context.Context, rate decimal.Decimal) (*finance.Tax, error) {
	var model models.TaxModel
	if err := r.db.WithContext(ctx).First(&model, "rate = ?", rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, finance.ErrTaxNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts a tax row.
func (r *GormTaxRepository) Save(ctx context.Context, tax *finance.Tax) error {
	var model models.TaxModel
	model.FromDomain(tax)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a tax row.
func (r *GormTaxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.TaxModel{}, "id = ?", id).Error
}
