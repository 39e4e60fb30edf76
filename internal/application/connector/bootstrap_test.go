package connector

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/infrastructure/erp"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence"
)

type stubTreePusher struct {
	trees      []any
	currencies []any
}

func (p *stubTreePusher) PushCategoryTree(_ context.Context, payload any) (*erp.Response, error) {
	p.trees = append(p.trees, payload)
	return &erp.Response{Success: true}, nil
}

func (p *stubTreePusher) PushCurrency(_ context.Context, payload any) (*erp.Response, error) {
	p.currencies = append(p.currencies, payload)
	return &erp.Response{Success: true}, nil
}

func TestBootstrapper_PushesWholeCategoryTree(t *testing.T) {
	env := newTestEnv(t)
	categories := persistence.NewGormCategoryRepository(env.db)
	currencies := persistence.NewGormCurrencyRepository(env.db)
	pusher := &stubTreePusher{}
	boot := NewBootstrapper(categories, currencies, pusher, testLogger())
	ctx := context.Background()

	root, err := catalog.NewCategory("Catalogue", nil)
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, root))
	child, err := catalog.NewCategory("Furniture", &root.ID)
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, child))
	grandchild, err := catalog.NewCategory("Chairs", &child.ID)
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, grandchild))

	require.NoError(t, boot.PushCategoryTree(ctx))
	require.Len(t, pusher.trees, 1)
	tree := pusher.trees[0].(CategoryNode)
	assert.Equal(t, "Catalogue", tree.Name)
	require.Len(t, tree.Children, 1)
	require.Len(t, tree.Children[0].Children, 1)
	assert.Equal(t, "Chairs", tree.Children[0].Children[0].Name)
}

func TestBootstrapper_PushesDefaultCurrency(t *testing.T) {
	env := newTestEnv(t)
	categories := persistence.NewGormCategoryRepository(env.db)
	currencies := persistence.NewGormCurrencyRepository(env.db)
	pusher := &stubTreePusher{}
	boot := NewBootstrapper(categories, currencies, pusher, testLogger())
	ctx := context.Background()

	eur, err := finance.NewCurrency("EUR", "Euro", "€", decimal.NewFromInt(1))
	require.NoError(t, err)
	eur.IsSystemDefault = true
	require.NoError(t, currencies.Save(ctx, eur))

	require.NoError(t, boot.PushDefaultCurrency(ctx))
	require.Len(t, pusher.currencies, 1)
	payload := pusher.currencies[0].(map[string]any)
	assert.Equal(t, "EUR", payload["name"])
}
