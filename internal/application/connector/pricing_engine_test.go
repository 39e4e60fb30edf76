package connector

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/domain/pricing"
	"github.com/erp/odoo-connector/internal/domain/sync"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence"
)

type pricingFixture struct {
	env        *testEnv
	engine     *PricingEngine
	rules      *persistence.GormRuleRepository
	products   *persistence.GormProductRepository
	categories *persistence.GormCategoryRepository
	taxes      *persistence.GormTaxRepository
	tax        *finance.Tax
}

func newPricingFixture(t *testing.T) *pricingFixture {
	t.Helper()
	env := newTestEnv(t)
	rules := persistence.NewGormRuleRepository(env.db)
	products := persistence.NewGormProductRepository(env.db)
	categories := persistence.NewGormCategoryRepository(env.db)
	taxes := persistence.NewGormTaxRepository(env.db)
	engine := NewPricingEngine(rules, products, categories, taxes, env.cfg, testLogger())

	tax, err := finance.NewTax("VAT 19%", decimal.NewFromInt(19))
	require.NoError(t, err)
	require.NoError(t, taxes.Save(context.Background(), tax))

	return &pricingFixture{
		env: env, engine: engine, rules: rules, products: products,
		categories: categories, taxes: taxes, tax: tax,
	}
}

func (f *pricingFixture) addProduct(t *testing.T, number string, odooID int64, net int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(number, "Product "+number, f.tax.ID)
	require.NoError(t, err)
	product.SetPrice(decimal.NewFromInt(net), f.tax.Rate)
	product.Correlation.Link(odooID)
	require.NoError(t, f.products.Save(context.Background(), product))
	return product
}

func TestPricingEngine_BasicRuleWritesTierPair(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.addProduct(t, "SW-1", 500, 100)

	result := f.engine.Apply(ctx, []RulePayload{{
		PricelistID:   3,
		PricelistName: "B2B",
		MainRuleID:    7,
		FixedPrice:    sync.NewField(80.0),
		MinQuantity:   sync.NewField(10.0),
		TemplateID:    sync.NewField(int64(500)),
	}})
	require.True(t, result.OK(), "errors: %v", result.Errors)

	rule, err := f.rules.FindByForeignKey(ctx, "3-7")
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, "B2B - 7", rule.Name)

	prices, err := f.rules.FindPrices(ctx, rule.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	require.NoError(t, pricing.ValidatePartition(prices))

	assert.Equal(t, 1, prices[0].QuantityStart)
	require.NotNil(t, prices[0].QuantityEnd)
	assert.Equal(t, 9, *prices[0].QuantityEnd)
	assert.True(t, prices[0].Net.Equal(decimal.NewFromInt(100)))

	assert.Equal(t, 10, prices[1].QuantityStart)
	assert.Nil(t, prices[1].QuantityEnd)
	assert.True(t, prices[1].Net.Equal(decimal.NewFromInt(80)))
	// Gross derived from the product's tax, never copied.
	assert.True(t, prices[1].Gross.Equal(decimal.NewFromFloat(95.2)),
		"gross %s", prices[1].Gross)
}

func TestPricingEngine_DegenerateMinQuantityCollapses(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.addProduct(t, "SW-1", 500, 100)

	result := f.engine.Apply(ctx, []RulePayload{{
		PricelistID:   3,
		PricelistName: "B2B",
		MainRuleID:    8,
		FixedPrice:    sync.NewField(80.0),
		MinQuantity:   sync.NewField(1.0),
		TemplateID:    sync.NewField(int64(500)),
	}})
	require.True(t, result.OK(), "errors: %v", result.Errors)

	rule, err := f.rules.FindByForeignKey(ctx, "3-8")
	require.NoError(t, err)
	prices, err := f.rules.FindPrices(ctx, rule.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, 1, prices[0].QuantityStart)
	assert.Nil(t, prices[0].QuantityEnd)
	assert.True(t, prices[0].Net.Equal(decimal.NewFromInt(80)))
}

func TestPricingEngine_BasicReplacesExistingTiers(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.addProduct(t, "SW-1", 500, 100)

	payload := RulePayload{
		PricelistID:   3,
		PricelistName: "B2B",
		MainRuleID:    7,
		FixedPrice:    sync.NewField(80.0),
		MinQuantity:   sync.NewField(10.0),
		TemplateID:    sync.NewField(int64(500)),
	}
	require.True(t, f.engine.Apply(ctx, []RulePayload{payload}).OK())

	payload.FixedPrice = sync.NewField(70.0)
	payload.MinQuantity = sync.NewField(5.0)
	require.True(t, f.engine.Apply(ctx, []RulePayload{payload}).OK())

	rule, err := f.rules.FindByForeignKey(ctx, "3-7")
	require.NoError(t, err)
	prices, err := f.rules.FindPrices(ctx, rule.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	require.NoError(t, pricing.ValidatePartition(prices))
	assert.Equal(t, 5, prices[1].QuantityStart)
	assert.True(t, prices[1].Net.Equal(decimal.NewFromInt(70)))
}

func TestPricingEngine_AdvancedPercentageOnCategory(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	category, err := catalog.NewCategory("Sale", nil)
	require.NoError(t, err)
	category.Correlation.Link(40)
	require.NoError(t, f.categories.Save(ctx, category))

	inside := f.addProduct(t, "SW-IN", 500, 100)
	inside.ReplaceCategories([]uuid.UUID{category.ID})
	require.NoError(t, f.products.Save(ctx, inside))
	outside := f.addProduct(t, "SW-OUT", 501, 200)

	result := f.engine.Apply(ctx, []RulePayload{{
		PricelistID:   4,
		PricelistName: "Spring Sale",
		MainRuleID:    1,
		AppliedOn:     pricing.AppliedProductCategory,
		ComputePrice:  sync.NewField("percentage"),
		PercentPrice:  sync.NewField(10.0),
		CategoryID:    sync.NewField(int64(40)),
	}})
	require.True(t, result.OK(), "errors: %v", result.Errors)

	rule, err := f.rules.FindByForeignKey(ctx, "4-1")
	require.NoError(t, err)

	prices, err := f.rules.FindPrices(ctx, rule.ID, inside.ID)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	// 10% off a 100 net price.
	assert.True(t, prices[0].Net.Equal(decimal.NewFromInt(90)), "net %s", prices[0].Net)

	outsidePrices, err := f.rules.FindPrices(ctx, rule.ID, outside.ID)
	require.NoError(t, err)
	assert.Empty(t, outsidePrices)
}

func TestPricingEngine_AdvancedGlobalWithQuantityBreak(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	first := f.addProduct(t, "SW-1", 500, 100)
	second := f.addProduct(t, "SW-2", 501, 50)

	result := f.engine.Apply(ctx, []RulePayload{{
		PricelistID:   5,
		PricelistName: "Bulk",
		MainRuleID:    2,
		AppliedOn:     pricing.AppliedGlobal,
		ComputePrice:  sync.NewField("percentage"),
		PercentPrice:  sync.NewField(20.0),
		MinQuantity:   sync.NewField(5.0),
		FromWrite:     true,
	}})
	require.True(t, result.OK(), "errors: %v", result.Errors)

	rule, err := f.rules.FindByForeignKey(ctx, "5-2")
	require.NoError(t, err)

	for _, tc := range []struct {
		product  *catalog.Product
		baseNet  int64
		ruledNet int64
	}{
		{first, 100, 80},
		{second, 50, 40},
	} {
		prices, err := f.rules.FindPrices(ctx, rule.ID, tc.product.ID)
		require.NoError(t, err)
		require.Len(t, prices, 2)
		require.NoError(t, pricing.ValidatePartition(prices))
		assert.True(t, prices[0].Net.Equal(decimal.NewFromInt(tc.baseNet)))
		assert.Equal(t, 5, prices[1].QuantityStart)
		assert.True(t, prices[1].Net.Equal(decimal.NewFromInt(tc.ruledNet)))
	}
}

func TestPricingEngine_AdvancedFixedOnVariant(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()
	product := f.addProduct(t, "SW-1", 500, 100)

	result := f.engine.Apply(ctx, []RulePayload{{
		PricelistID:   6,
		PricelistName: "Variant Deal",
		MainRuleID:    3,
		AppliedOn:     pricing.AppliedProductVariant,
		ComputePrice:  sync.NewField("fixed"),
		FixedPrice:    sync.NewField(42.0),
		VariantID:     sync.NewField(int64(500)),
	}})
	require.True(t, result.OK(), "errors: %v", result.Errors)

	rule, err := f.rules.FindByForeignKey(ctx, "6-3")
	require.NoError(t, err)
	prices, err := f.rules.FindPrices(ctx, rule.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.True(t, prices[0].Net.Equal(decimal.NewFromInt(42)))
}

func TestPricingEngine_RejectsUnknownScopeAndMissingProduct(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	result := f.engine.Apply(ctx, []RulePayload{
		{
			PricelistID: 7, PricelistName: "X", MainRuleID: 1,
			AppliedOn:    "9_bogus",
			ComputePrice: sync.NewField("fixed"),
			FixedPrice:   sync.NewField(10.0),
		},
		{
			PricelistID: 7, PricelistName: "X", MainRuleID: 2,
			FixedPrice: sync.NewField(10.0),
			TemplateID: sync.NewField(int64(999)),
		},
	})
	require.Len(t, result.Errors, 2)
	assert.Empty(t, result.Reports)
}
