package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence/models"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Ensure interface compliance
var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// FindByID finds a product by its ID. Template rows are returned with
// their children attached.
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}

	product := model.ToDomain()
	if product.IsTemplate() {
		children, err := r.FindChildren(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		product.Children = children
	}
	return product, nil
}

// FindByForeignID looks a product up by its Odoo identifier, optionally
// narrowed to a specific local record. Returns (nil, nil) when no record
// matches so callers can branch into create-vs-update.
func (r *GormProductRepository) FindByForeignID(ctx context.Context, odooID int64, localID *uuid.UUID) (*catalog.Product, error) {
	query := r.db.WithContext(ctx).Where("odoo_id = ?", odooID)
	if localID != nil {
		query = query.Where("id = ?", *localID)
	}

	var model models.ProductModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindTemplateByForeignID looks up a template row by its Odoo identifier,
// ignoring variants whose own foreign ID happens to collide.
func (r *GormProductRepository) FindTemplateByForeignID(ctx context.Context, odooID int64) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("odoo_id = ? AND parent_id IS NULL", odooID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a product by its order number.
func (r *GormProductRepository) FindByNumber(ctx context.Context, number string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindChildren returns the variants of a template.
func (r *GormProductRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]*catalog.Product, error) {
	var childModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("number ASC").
		Find(&childModels).Error; err != nil {
		return nil, err
	}

	children := make([]*catalog.Product, len(childModels))
	for i := range childModels {
		children[i] = childModels[i].ToDomain()
	}
	return children, nil
}

// FindTemplates returns all template products (rows without a parent).
func (r *GormProductRepository) FindTemplates(ctx context.Context) ([]*catalog.Product, error) {
	var templateModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("number ASC").
		Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]*catalog.Product, len(templateModels))
	for i := range templateModels {
		templates[i] = templateModels[i].ToDomain()
	}
	return templates, nil
}

// Save upserts a single product row.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var model models.ProductModel
	model.FromDomain(product)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveTree writes a template together with its children in one transaction.
func (r *GormProductRepository) SaveTree(ctx context.Context, template *catalog.Product) error {
	if template.IsVariant() {
		return catalog.ErrVariantCannotNest
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ProductModel
		model.FromDomain(template)
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		for _, child := range template.Children {
			child.ParentID = &template.ID
			var childModel models.ProductModel
			childModel.FromDomain(child)
			if err := tx.Save(&childModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateStock writes only the stock column of a single product.
func (r *GormProductRepository) UpdateStock(ctx context.Context, id uuid.UUID, stock int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stock":      stock,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// Delete removes a product row.
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id).Error
}
