package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/odoo-connector/internal/domain/pricing"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence/models"
)

// GormRuleRepository implements pricing.RuleRepository using GORM
type GormRuleRepository struct {
	db *gorm.DB
}

// NewGormRuleRepository creates a new GormRuleRepository
func NewGormRuleRepository(db *gorm.DB) *GormRuleRepository {
	return &GormRuleRepository{db: db}
}

// Ensure interface compliance
var _ pricing.RuleRepository = (*GormRuleRepository)(nil)

// FindByID finds a rule by its ID
func (r *GormRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.Rule, error) {
	var model models.RuleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pricing.ErrRuleNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByForeignKey looks a rule up by its composite pricelist key.
// Returns (nil, nil) when no rule matches.
func (r *GormRuleRepository) FindByForeignKey(ctx context.Context, foreignKey string) (*pricing.Rule, error) {
	var model models.RuleModel
	if err := r.db.WithContext(ctx).First(&model, "foreign_key = ?", foreignKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts a rule row.
func (r *GormRuleRepository) Save(ctx context.Context, rule *pricing.Rule) error {
	var model models.RuleModel
	model.FromDomain(rule)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a rule and all its price rows.
func (r *GormRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PriceModel{}, "rule_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RuleModel{}, "id = ?", id).Error
	})
}

// FindPrices returns the price tiers for a rule+product pair, ordered by
// quantity start.
func (r *GormRuleRepository) FindPrices(ctx context.Context, ruleID, productID uuid.UUID) ([]pricing.Price, error) {
	var priceModels []models.PriceModel
	if err := r.db.WithContext(ctx).
		Where("rule_id = ? AND product_id = ?", ruleID, productID).
		Order("quantity_start ASC").
		Find(&priceModels).Error; err != nil {
		return nil, err
	}

	prices := make([]pricing.Price, len(priceModels))
	for i := range priceModels {
		prices[i] = priceModels[i].ToDomain()
	}
	return prices, nil
}

// SavePrices inserts a batch of tier rows.
func (r *GormRuleRepository) SavePrices(ctx context.Context, prices []pricing.Price) error {
	if len(prices) == 0 {
		return nil
	}
	priceModels := make([]models.PriceModel, len(prices))
	for i, price := range prices {
		priceModels[i].FromDomain(price)
	}
	return r.db.WithContext(ctx).Create(&priceModels).Error
}

// DeletePrices removes all price rows for the rule+product pair, the
// destructive half of a full tier replacement.
func (r *GormRuleRepository) DeletePrices(ctx context.Context, ruleID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.PriceModel{}, "rule_id = ? AND product_id = ?", ruleID, productID).Error
}
