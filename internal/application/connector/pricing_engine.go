package connector

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/domain/pricing"
	"github.com/erp/odoo-connector/internal/infrastructure/config"
)

// PricingEngine applies inbound Odoo pricelist items as quantity-tier
// price rows. A payload carrying a compute kind and a valid scope is an
// advanced rule; anything else is a basic per-product fixed price.
type PricingEngine struct {
	rules      pricing.RuleRepository
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	taxes      finance.TaxRepository
	cfg        *config.OdooConfig
	logger     *zap.Logger
}

// NewPricingEngine creates a pricing engine.
func NewPricingEngine(
	rules pricing.RuleRepository,
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	taxes finance.TaxRepository,
	cfg *config.OdooConfig,
	logger *zap.Logger,
) *PricingEngine {
	return &PricingEngine{
		rules:      rules,
		products:   products,
		categories: categories,
		taxes:      taxes,
		cfg:        cfg,
		logger:     logger,
	}
}

// Apply processes a batch of pricelist items, item-by-item. The report
// pairs each item's main_rule_id with the local rule it was written under.
func (e *PricingEngine) Apply(ctx context.Context, payloads []RulePayload) *BatchResult {
	result := &BatchResult{}
	for _, p := range payloads {
		rule, err := e.apply(ctx, p)
		if err != nil {
			e.logger.Warn("pricelist item rejected",
				zap.Int64("pricelist_id", p.PricelistID),
				zap.Int64("main_rule_id", p.MainRuleID),
				zap.Error(err))
			result.Fail(p.MainRuleID, err)
			continue
		}
		result.Report(p.MainRuleID, rule.ID)
	}
	return result
}

func (e *PricingEngine) apply(ctx context.Context, p RulePayload) (*pricing.Rule, error) {
	rule, err := e.ensureRule(ctx, p)
	if err != nil {
		return nil, err
	}
	if e.isAdvanced(p) {
		return rule, e.applyAdvanced(ctx, rule, p)
	}
	return rule, e.applyBasic(ctx, rule, p)
}

// isAdvanced reports whether the item carries the advanced-rule shape: a
// compute kind plus a scope discriminant.
func (e *PricingEngine) isAdvanced(p RulePayload) bool {
	_, hasKind := p.ComputePrice.Value()
	return hasKind && p.AppliedOn != ""
}

// ensureRule finds or creates the rule row for the pricelist item, keyed
// by the composite "{pricelistID}-{mainRuleID}" correlation key.
func (e *PricingEngine) ensureRule(ctx context.Context, p RulePayload) (*pricing.Rule, error) {
	foreignKey := pricing.RuleForeignKey(p.PricelistID, p.MainRuleID)
	rule, err := e.rules.FindByForeignKey(ctx, foreignKey)
	if err != nil {
		return nil, err
	}
	if rule != nil {
		return rule, nil
	}
	channelID, err := uuid.Parse(e.cfg.DefaultSalesChannelID)
	if err != nil {
		return nil, err
	}
	rule, err = pricing.NewRule(pricing.RuleName(p.PricelistName, p.MainRuleID), foreignKey, channelID)
	if err != nil {
		return nil, err
	}
	if err := e.rules.Save(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// applyBasic writes the fixed-price tier pair for a single product. Basic
// items always replace the pair's existing rows.
func (e *PricingEngine) applyBasic(ctx context.Context, rule *pricing.Rule, p RulePayload) error {
	product, err := e.targetProduct(ctx, p)
	if err != nil {
		return err
	}
	fixed, ok := p.FixedPrice.Value()
	if !ok {
		return ErrComputeInvalid
	}
	ruled, err := e.pricePair(ctx, product, decimal.NewFromFloat(fixed))
	if err != nil {
		return err
	}
	return e.writeTiers(ctx, rule, product, p, ruled, true)
}

// applyAdvanced resolves the scope to its target products and writes the
// computed tier rows for each. When from_write is signaled the existing
// rows of each rule+product pair are dropped first.
func (e *PricingEngine) applyAdvanced(ctx context.Context, rule *pricing.Rule, p RulePayload) error {
	targets, err := e.scopeTargets(ctx, p)
	if err != nil {
		return err
	}
	kind := pricing.ComputeKind(p.ComputePrice.Or(""))
	if !kind.IsValid() {
		return ErrComputeInvalid
	}
	for _, product := range targets {
		var ruledNet decimal.Decimal
		switch kind {
		case pricing.ComputeFixed:
			fixed, ok := p.FixedPrice.Value()
			if !ok {
				return ErrComputeInvalid
			}
			ruledNet = decimal.NewFromFloat(fixed)
		case pricing.ComputePercentage:
			pct := decimal.NewFromFloat(p.PercentPrice.Or(0))
			hundred := decimal.NewFromInt(100)
			ruledNet = product.PriceNet.Mul(hundred.Sub(pct)).Div(hundred).Round(4)
		}
		ruled, err := e.pricePair(ctx, product, ruledNet)
		if err != nil {
			return err
		}
		if err := e.writeTiers(ctx, rule, product, p, ruled, p.FromWrite); err != nil {
			return err
		}
	}
	return nil
}

// writeTiers persists the tier pair for one rule+product target. Basic
// items always replace existing rows; advanced items replace only when the
// pricelist edit flagged from_write, otherwise this is a first write.
func (e *PricingEngine) writeTiers(ctx context.Context, rule *pricing.Rule, product *catalog.Product, p RulePayload, ruled pricing.TierPrice, replace bool) error {
	if replace {
		if err := e.rules.DeletePrices(ctx, rule.ID, product.ID); err != nil {
			return err
		}
	}
	base := pricing.TierPrice{Net: product.PriceNet, Gross: product.PriceGross}
	minQty := decimal.NewFromFloat(p.MinQuantity.Or(0))
	tiers := pricing.BuildTiers(rule.ID, product.ID, minQty, base, ruled)
	return e.rules.SavePrices(ctx, tiers)
}

// pricePair derives the gross from the product's tax rate; gross is never
// taken from the payload.
func (e *PricingEngine) pricePair(ctx context.Context, product *catalog.Product, net decimal.Decimal) (pricing.TierPrice, error) {
	tax, err := e.taxes.FindByID(ctx, product.TaxID)
	if err != nil {
		return pricing.TierPrice{}, err
	}
	return pricing.TierPrice{Net: net, Gross: tax.GrossFromNet(net)}, nil
}

// targetProduct resolves the single product a basic or product-scoped item
// points at, trying the variant key before the template key.
func (e *PricingEngine) targetProduct(ctx context.Context, p RulePayload) (*catalog.Product, error) {
	if variantID, ok := p.VariantID.Value(); ok {
		product, err := e.products.FindByForeignID(ctx, variantID, nil)
		if err != nil {
			return nil, err
		}
		if product != nil {
			return product, nil
		}
	}
	if templateID, ok := p.TemplateID.Value(); ok {
		product, err := e.products.FindByForeignID(ctx, templateID, nil)
		if err != nil {
			return nil, err
		}
		if product != nil {
			return product, nil
		}
	}
	return nil, ErrProductUnresolved
}

// scopeTargets expands the applied_on discriminant into the product set
// the rule covers.
func (e *PricingEngine) scopeTargets(ctx context.Context, p RulePayload) ([]*catalog.Product, error) {
	switch p.AppliedOn {
	case pricing.AppliedProductVariant, pricing.AppliedProduct:
		product, err := e.targetProduct(ctx, p)
		if err != nil {
			return nil, err
		}
		return []*catalog.Product{product}, nil
	case pricing.AppliedProductCategory:
		categoryID, ok := p.CategoryID.Value()
		if !ok {
			return nil, ErrScopeInvalid
		}
		category, err := e.categories.FindByForeignID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, catalog.ErrCategoryNotFound
		}
		templates, err := e.products.FindTemplates(ctx)
		if err != nil {
			return nil, err
		}
		return filterByCategory(templates, category.ID), nil
	case pricing.AppliedGlobal:
		templates, err := e.products.FindTemplates(ctx)
		if err != nil {
			return nil, err
		}
		if categoryID, ok := p.CategoryID.Value(); ok {
			category, err := e.categories.FindByForeignID(ctx, categoryID)
			if err != nil {
				return nil, err
			}
			if category != nil {
				return filterByCategory(templates, category.ID), nil
			}
		}
		return templates, nil
	default:
		return nil, ErrScopeInvalid
	}
}

func filterByCategory(products []*catalog.Product, categoryID uuid.UUID) []*catalog.Product {
	var matched []*catalog.Product
	for _, product := range products {
		for _, id := range product.CategoryIDs {
			if id == categoryID {
				matched = append(matched, product)
				break
			}
		}
	}
	return matched
}
