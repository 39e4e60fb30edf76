package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/odoo-connector/internal/domain/trade"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Ensure interface compliance
var _ trade.OrderRepository = (*GormOrderRepository)(nil)

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trade.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an order by its order number.
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trade.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByForeignID looks an order up by its Odoo identifier.
// Returns (nil, nil) when no order matches.
func (r *GormOrderRepository) FindByForeignID(ctx context.Context, odooID int64) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "odoo_id = ?", odooID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPendingSync returns orders not yet pushed to Odoo, oldest first.
func (r *GormOrderRepository) FindPendingSync(ctx context.Context, limit int) ([]*trade.Order, error) {
	return r.findPending(ctx, "synced = ?", limit)
}

// FindPendingCustomerSync returns orders whose customer contact has not
// yet been pushed to Odoo, oldest first.
func (r *GormOrderRepository) FindPendingCustomerSync(ctx context.Context, limit int) ([]*trade.Order, error) {
	return r.findPending(ctx, "customer_synced = ?", limit)
}

func (r *GormOrderRepository) findPending(ctx context.Context, condition string, limit int) ([]*trade.Order, error) {
	query := r.db.WithContext(ctx).
		Where(condition, false).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var orderModels []models.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*trade.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, nil
}

// Save upserts an order row.
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	var model models.OrderModel
	model.FromDomain(order)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes an order row.
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id).Error
}
