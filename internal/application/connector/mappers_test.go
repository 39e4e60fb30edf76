package connector

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/domain/sync"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence"
)

func TestTaxMapper_CreateAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	taxes := persistence.NewGormTaxRepository(env.db)
	mapper := NewTaxMapper(taxes, env.publisher, testLogger())
	ctx := context.Background()

	result := mapper.UpsertBatch(ctx, []TaxPayload{
		{OdooID: 11, Name: sync.NewField("VAT 19%"), Amount: sync.NewField(19.0)},
	})
	require.True(t, result.OK())
	require.Len(t, result.Reports, 1)
	assert.Equal(t, int64(11), result.Reports[0].OdooID)

	created, err := taxes.FindByForeignID(ctx, 11)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.Rate.Equal(decimal.NewFromInt(19)))

	// Second payload updates the same record instead of duplicating it.
	result = mapper.UpsertBatch(ctx, []TaxPayload{
		{OdooID: 11, Name: sync.NewField("VAT reduced"), Amount: sync.NewField(7.0)},
	})
	require.True(t, result.OK())
	updated, err := taxes.FindByForeignID(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "VAT reduced", updated.Name)
	assert.True(t, updated.Rate.Equal(decimal.NewFromInt(7)))
}

func TestTaxMapper_AbsentFieldsPreserved(t *testing.T) {
	env := newTestEnv(t)
	taxes := persistence.NewGormTaxRepository(env.db)
	mapper := NewTaxMapper(taxes, env.publisher, testLogger())
	ctx := context.Background()

	mapper.UpsertBatch(ctx, []TaxPayload{
		{OdooID: 5, Name: sync.NewField("VAT"), Amount: sync.NewField(19.0)},
	})
	// Amount key missing: the stored rate must survive.
	mapper.UpsertBatch(ctx, []TaxPayload{
		{OdooID: 5, Name: sync.NewField("VAT renamed")},
	})

	tax, err := taxes.FindByForeignID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "VAT renamed", tax.Name)
	assert.True(t, tax.Rate.Equal(decimal.NewFromInt(19)))
}

func TestTaxMapper_PartialFailure(t *testing.T) {
	env := newTestEnv(t)
	taxes := persistence.NewGormTaxRepository(env.db)
	mapper := NewTaxMapper(taxes, env.publisher, testLogger())

	result := mapper.UpsertBatch(context.Background(), []TaxPayload{
		{OdooID: 1}, // no name: must fail alone
		{OdooID: 2, Name: sync.NewField("VAT"), Amount: sync.NewField(19.0)},
	})
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, int64(1), result.Errors[0].OdooID)
	require.Len(t, result.Reports, 1)
	assert.Equal(t, int64(2), result.Reports[0].OdooID)
}

func TestTaxMapper_PublishesOdooActorEvent(t *testing.T) {
	env := newTestEnv(t)
	taxes := persistence.NewGormTaxRepository(env.db)
	mapper := NewTaxMapper(taxes, env.publisher, testLogger())

	mapper.UpsertBatch(context.Background(), []TaxPayload{
		{OdooID: 3, Name: sync.NewField("VAT"), Amount: sync.NewField(19.0)},
	})
	require.Len(t, env.publisher.events, 1)
	event := env.publisher.events[0]
	assert.Equal(t, sync.EntityTax, event.Entity)
	assert.True(t, event.FromOdoo())
}

func TestCurrencyMapper_CreateValidatesISOCode(t *testing.T) {
	env := newTestEnv(t)
	currencies := persistence.NewGormCurrencyRepository(env.db)
	mapper := NewCurrencyMapper(currencies, env.publisher, testLogger())
	ctx := context.Background()

	result := mapper.UpsertBatch(ctx, []CurrencyPayload{
		{OdooID: 1, Name: sync.NewField("EUR"), Symbol: sync.NewField("€"), Rate: sync.NewField(1.0)},
		{OdooID: 2, Name: sync.NewField("NOPE")},
	})
	require.Len(t, result.Reports, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, int64(2), result.Errors[0].OdooID)

	eur, err := currencies.FindByISOCode(ctx, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "€", eur.Symbol)
}

func TestCurrencyMapper_RelinksExistingISOCode(t *testing.T) {
	env := newTestEnv(t)
	currencies := persistence.NewGormCurrencyRepository(env.db)
	mapper := NewCurrencyMapper(currencies, env.publisher, testLogger())
	ctx := context.Background()

	mapper.UpsertBatch(ctx, []CurrencyPayload{
		{OdooID: 1, Name: sync.NewField("USD"), Rate: sync.NewField(1.08)},
	})
	// Same ISO code under a new Odoo ID relinks, never duplicates.
	mapper.UpsertBatch(ctx, []CurrencyPayload{
		{OdooID: 9, Name: sync.NewField("USD"), Rate: sync.NewField(1.10)},
	})

	usd, err := currencies.FindByISOCode(ctx, "USD")
	require.NoError(t, err)
	require.NotNil(t, usd.Correlation.OdooID)
	assert.Equal(t, int64(9), *usd.Correlation.OdooID)
}

func TestCurrencyMapper_SetDefault(t *testing.T) {
	env := newTestEnv(t)
	currencies := persistence.NewGormCurrencyRepository(env.db)
	mapper := NewCurrencyMapper(currencies, env.publisher, testLogger())
	ctx := context.Background()

	mapper.UpsertBatch(ctx, []CurrencyPayload{
		{OdooID: 1, Name: sync.NewField("EUR"), Rate: sync.NewField(1.0)},
		{OdooID: 2, Name: sync.NewField("USD"), Rate: sync.NewField(1.08)},
	})
	_, err := mapper.SetDefault(ctx, 1)
	require.NoError(t, err)

	def, err := currencies.FindDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EUR", def.ISOCode)

	// Switching the default clears the old flag.
	_, err = mapper.SetDefault(ctx, 2)
	require.NoError(t, err)
	def, err = currencies.FindDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", def.ISOCode)
}

func TestManufacturerMapper_MatchByNameBeforeCreate(t *testing.T) {
	env := newTestEnv(t)
	manufacturers := persistence.NewGormManufacturerRepository(env.db)
	mapper := NewManufacturerMapper(manufacturers, env.publisher, testLogger())
	ctx := context.Background()

	local, err := catalog.NewManufacturer("Acme")
	require.NoError(t, err)
	require.NoError(t, manufacturers.Save(ctx, local))

	result := mapper.UpsertBatch(ctx, []ManufacturerPayload{
		{OdooID: 44, Name: sync.NewField("Acme"), Website: sync.NewField("https://acme.example")},
	})
	require.True(t, result.OK())

	linked, err := manufacturers.FindByForeignID(ctx, 44)
	require.NoError(t, err)
	require.NotNil(t, linked)
	assert.Equal(t, local.ID, linked.ID)
	assert.Equal(t, "https://acme.example", linked.Link)
}

func TestCategoryMapper_CreatesAncestorChainTopDown(t *testing.T) {
	env := newTestEnv(t)
	categories := persistence.NewGormCategoryRepository(env.db)
	mapper := NewCategoryMapper(categories, env.cfg, env.publisher, testLogger())
	ctx := context.Background()

	root, err := catalog.NewCategory("Catalogue", nil)
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, root))

	leaf := CategoryPayload{
		OdooID: 30,
		Name:   sync.NewField("Chairs"),
		Parent: &CategoryPayload{
			OdooID: 20,
			Name:   sync.NewField("Furniture"),
			Parent: &CategoryPayload{OdooID: 10, Name: sync.NewField("Home")},
		},
	}
	result := mapper.UpsertBatch(ctx, []CategoryPayload{leaf})
	require.True(t, result.OK())
	// One report per node written on the way down.
	assert.Len(t, result.Reports, 3)

	home, err := categories.FindByForeignID(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, home)
	require.NotNil(t, home.ParentID)
	assert.Equal(t, root.ID, *home.ParentID)

	chairs, err := categories.FindByForeignID(ctx, 30)
	require.NoError(t, err)
	furniture, err := categories.FindByForeignID(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, furniture.ID, *chairs.ParentID)
	assert.Equal(t, home.ID, *furniture.ParentID)
}

func TestCategoryMapper_AnchorsOnKnownAncestor(t *testing.T) {
	env := newTestEnv(t)
	categories := persistence.NewGormCategoryRepository(env.db)
	mapper := NewCategoryMapper(categories, env.cfg, env.publisher, testLogger())
	ctx := context.Background()

	root, err := catalog.NewCategory("Catalogue", nil)
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, root))

	known, err := catalog.NewCategory("Known", &root.ID)
	require.NoError(t, err)
	known.Correlation.Link(100)
	require.NoError(t, categories.Save(ctx, known))

	result := mapper.UpsertBatch(ctx, []CategoryPayload{{
		OdooID: 101,
		Name:   sync.NewField("Child"),
		Parent: &CategoryPayload{OdooID: 100, Name: sync.NewField("Known")},
	}})
	require.True(t, result.OK())
	// Only the unknown node is written; the chain walk stops at 100.
	assert.Len(t, result.Reports, 1)

	child, err := categories.FindByForeignID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, known.ID, *child.ParentID)
}

func TestCategoryMapper_UpdateReparents(t *testing.T) {
	env := newTestEnv(t)
	categories := persistence.NewGormCategoryRepository(env.db)
	mapper := NewCategoryMapper(categories, env.cfg, env.publisher, testLogger())
	ctx := context.Background()

	root, err := catalog.NewCategory("Catalogue", nil)
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, root))

	mapper.UpsertBatch(ctx, []CategoryPayload{
		{OdooID: 1, Name: sync.NewField("A")},
		{OdooID: 2, Name: sync.NewField("B")},
	})

	// Move B under A and rename it.
	result := mapper.UpsertBatch(ctx, []CategoryPayload{{
		OdooID: 2,
		Name:   sync.NewField("B moved"),
		Parent: &CategoryPayload{OdooID: 1, Name: sync.NewField("A")},
	}})
	require.True(t, result.OK())

	a, err := categories.FindByForeignID(ctx, 1)
	require.NoError(t, err)
	b, err := categories.FindByForeignID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "B moved", b.Name)
	assert.Equal(t, a.ID, *b.ParentID)
}

func TestCategoryMapper_SetDefaultRoot(t *testing.T) {
	env := newTestEnv(t)
	categories := persistence.NewGormCategoryRepository(env.db)
	mapper := NewCategoryMapper(categories, env.cfg, env.publisher, testLogger())
	ctx := context.Background()

	root, err := catalog.NewCategory("Catalogue", nil)
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, root))
	mapper.UpsertBatch(ctx, []CategoryPayload{{OdooID: 1, Name: sync.NewField("Odoo Root")}})

	target, err := categories.FindByForeignID(ctx, 1)
	require.NoError(t, err)
	_, err = mapper.SetDefaultRoot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, target.ID.String(), env.cfg.DefaultCategoryID)

	// New Odoo roots now land under the chosen default.
	mapper.UpsertBatch(ctx, []CategoryPayload{{OdooID: 2, Name: sync.NewField("Another Root")}})
	another, err := categories.FindByForeignID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, target.ID, *another.ParentID)
}
