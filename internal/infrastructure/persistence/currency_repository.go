package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence/models"
)

// GormCurrencyRepository implements finance.CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// Ensure interface compliance
var _ finance.CurrencyRepository = (*GormCurrencyRepository)(nil)

// FindByID finds a currency by its ID
func (r *GormCurrencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Currency, error) {
	var model models.CurrencyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, finance.ErrCurrencyNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByForeignID looks a currency up by its Odoo identifier.
// Returns (nil, nil) when no record matches.
func (r *GormCurrencyRepository) FindByForeignID(ctx context.Context, odooID int64) (*finance.Currency, error) {
	var model models.CurrencyModel
	if err := r.db.WithContext(ctx).First(&model, "odoo_id = ?", odooID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByISOCode finds a currency by its ISO 4217 code.
func (r *GormCurrencyRepository) FindByISOCode(ctx context.Context, isoCode string) (*finance.Currency, error) {
	var model models.CurrencyModel
	if err := r.db.WithContext(ctx).First(&model, "iso_code = ?", isoCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, finance.ErrCurrencyNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDefault returns the system default currency.
func (r *GormCurrencyRepository) FindDefault(ctx context.Context) (*finance.Currency, error) {
	var model models.CurrencyModel
	if err := r.db.WithContext(ctx).First(&model, "is_system_default = ?", true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, finance.ErrCurrencyNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts a currency row.
func (r *GormCurrencyRepository) Save(ctx context.Context, currency *finance.Currency) error {
	var model models.CurrencyModel
	model.FromDomain(currency)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a currency row.
func (r *GormCurrencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CurrencyModel{}, "id = ?", id).Error
}
