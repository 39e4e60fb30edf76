package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence/models"
)

// GormPropertyGroupRepository implements catalog.PropertyGroupRepository using GORM
type GormPropertyGroupRepository struct {
	db *gorm.DB
}

// NewGormPropertyGroupRepository creates a new GormPropertyGroupRepository
func NewGormPropertyGroupRepository(db *gorm.DB) *GormPropertyGroupRepository {
	return &GormPropertyGroupRepository{db: db}
}

// Ensure interface compliance
var _ catalog.PropertyGroupRepository = (*GormPropertyGroupRepository)(nil)

// FindByID finds a property group with its options by ID.
func (r *GormPropertyGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PropertyGroup, error) {
	var model models.PropertyGroupModel
	if err := r.db.WithContext(ctx).
		Preload("Options").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrPropertyGroupNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a property group with its options by its unique name.
func (r *GormPropertyGroupRepository) FindByName(ctx context.Context, name string) (*catalog.PropertyGroup, error) {
	var model models.PropertyGroupModel
	if err := r.db.WithContext(ctx).
		Preload("Options").
		First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrPropertyGroupNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts a group and its option rows in one transaction. Options are
// only ever added, never removed, so existing rows are left untouched.
func (r *GormPropertyGroupRepository) Save(ctx context.Context, group *catalog.PropertyGroup) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.PropertyGroupModel{
			ID:        group.ID,
			Name:      group.Name,
			CreatedAt: group.CreatedAt,
			UpdatedAt: group.UpdatedAt,
		}
		if err := tx.Omit("Options").Save(&model).Error; err != nil {
			return err
		}
		for _, opt := range group.Options {
			optModel := models.PropertyOptionModel{
				ID:      opt.ID,
				GroupID: opt.GroupID,
				Name:    opt.Name,
			}
			if err := tx.Save(&optModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
