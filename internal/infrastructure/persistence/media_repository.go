package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence/models"
)

// GormMediaRepository implements catalog.MediaRepository using GORM
type GormMediaRepository struct {
	db *gorm.DB
}

// NewGormMediaRepository creates a new GormMediaRepository
func NewGormMediaRepository(db *gorm.DB) *GormMediaRepository {
	return &GormMediaRepository{db: db}
}

// Ensure interface compliance
var _ catalog.MediaRepository = (*GormMediaRepository)(nil)

// FindByID finds a media record by its ID
func (r *GormMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Media, error) {
	var model models.MediaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct returns all media records of a product.
func (r *GormMediaRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*catalog.Media, error) {
	var mediaModels []models.MediaModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("file_name ASC").
		Find(&mediaModels).Error; err != nil {
		return nil, err
	}

	media := make([]*catalog.Media, len(mediaModels))
	for i := range mediaModels {
		media[i] = mediaModels[i].ToDomain()
	}
	return media, nil
}

// Save upserts a media row.
func (r *GormMediaRepository) Save(ctx context.Context, media *catalog.Media) error {
	var model models.MediaModel
	model.FromDomain(media)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteByProduct removes all media rows of a product, the destructive half
// of a full media replacement.
func (r *GormMediaRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MediaModel{}, "product_id = ?", productID).Error
}
