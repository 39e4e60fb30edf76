package connector

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/domain/sync"
	"github.com/erp/odoo-connector/internal/infrastructure/erp"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence"
)

type pushCall struct {
	entity  sync.EntityType
	deleted bool
	payload any
}

type stubEntityPusher struct {
	calls  []pushCall
	odooID int64
	err    error
}

func (p *stubEntityPusher) Modify(_ context.Context, entity sync.EntityType, payload any) (*erp.Response, error) {
	p.calls = append(p.calls, pushCall{entity: entity, payload: payload})
	if p.err != nil {
		return nil, p.err
	}
	return &erp.Response{Success: true, OdooID: p.odooID}, nil
}

func (p *stubEntityPusher) Delete(_ context.Context, entity sync.EntityType, payload any) (*erp.Response, error) {
	p.calls = append(p.calls, pushCall{entity: entity, deleted: true, payload: payload})
	if p.err != nil {
		return nil, p.err
	}
	return &erp.Response{Success: true}, nil
}

type dispatcherFixture struct {
	env        *testEnv
	dispatcher *Dispatcher
	pusher     *stubEntityPusher
	products   *persistence.GormProductRepository
	taxes      *persistence.GormTaxRepository
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	t.Helper()
	env := newTestEnv(t)
	pusher := &stubEntityPusher{odooID: 321}
	products := persistence.NewGormProductRepository(env.db)
	taxes := persistence.NewGormTaxRepository(env.db)
	dispatcher := NewDispatcher(
		products,
		persistence.NewGormCategoryRepository(env.db),
		persistence.NewGormManufacturerRepository(env.db),
		taxes,
		persistence.NewGormCurrencyRepository(env.db),
		persistence.NewGormOrderRepository(env.db),
		pusher,
		testLogger(),
	)
	return &dispatcherFixture{env: env, dispatcher: dispatcher, pusher: pusher, products: products, taxes: taxes}
}

func (f *dispatcherFixture) addProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("SW-1", "Desk", uuid.New())
	require.NoError(t, err)
	product.SetPrice(decimal.NewFromInt(100), decimal.NewFromInt(19))
	require.NoError(t, f.products.Save(context.Background(), product))
	return product
}

func TestDispatcher_PushesWriteAndLinksCorrelation(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()
	product := f.addProduct(t)

	event := sync.NewChangeEvent(sync.EntityProduct, sync.ActionWritten, "storefront", product.ID)
	require.NoError(t, f.dispatcher.Handle(ctx, event))

	require.Len(t, f.pusher.calls, 1)
	assert.Equal(t, sync.EntityProduct, f.pusher.calls[0].entity)
	payload := f.pusher.calls[0].payload.(map[string]any)
	assert.Equal(t, "SW-1", payload["default_code"])
	assert.Equal(t, "storefront", payload["actor"])

	saved, err := f.products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.Correlation.OdooID)
	assert.Equal(t, int64(321), *saved.Correlation.OdooID)
	assert.Empty(t, saved.Correlation.SyncError)
}

func TestDispatcher_SkipsOdooOriginatedEvents(t *testing.T) {
	f := newDispatcherFixture(t)
	product := f.addProduct(t)

	event := sync.NewChangeEvent(sync.EntityProduct, sync.ActionWritten, sync.ActorOdoo, product.ID)
	require.NoError(t, f.dispatcher.Handle(context.Background(), event))
	assert.Empty(t, f.pusher.calls)
}

func TestDispatcher_GuardSuppressesReentrantDispatch(t *testing.T) {
	f := newDispatcherFixture(t)
	product := f.addProduct(t)

	ctx, guard := sync.WithGuard(context.Background())
	require.True(t, guard.Enter(sync.EntityProduct))

	event := sync.NewChangeEvent(sync.EntityProduct, sync.ActionWritten, "storefront", product.ID)
	require.NoError(t, f.dispatcher.Handle(ctx, event))
	assert.Empty(t, f.pusher.calls)

	// The guard only blocks its own entity type.
	tax, err := finance.NewTax("VAT", decimal.NewFromInt(19))
	require.NoError(t, err)
	require.NoError(t, f.taxes.Save(ctx, tax))
	taxEvent := sync.NewChangeEvent(sync.EntityTax, sync.ActionWritten, "storefront", tax.ID)
	require.NoError(t, f.dispatcher.Handle(ctx, taxEvent))
	assert.Len(t, f.pusher.calls, 1)
}

func TestDispatcher_WriteBackRecordsPushFailure(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()
	product := f.addProduct(t)
	f.pusher.err = errors.New("odoo unreachable")

	event := sync.NewChangeEvent(sync.EntityProduct, sync.ActionWritten, "storefront", product.ID)
	err := f.dispatcher.Handle(ctx, event)
	require.Error(t, err)

	saved, findErr := f.products.FindByID(ctx, product.ID)
	require.NoError(t, findErr)
	assert.Contains(t, saved.Correlation.SyncError, "odoo unreachable")
	assert.Nil(t, saved.Correlation.OdooID)
}

func TestDispatcher_DeleteUsesDeletePath(t *testing.T) {
	f := newDispatcherFixture(t)
	product := f.addProduct(t)

	event := sync.NewChangeEvent(sync.EntityProduct, sync.ActionDeleted, "storefront", product.ID)
	require.NoError(t, f.dispatcher.Handle(context.Background(), event))

	require.Len(t, f.pusher.calls, 1)
	assert.True(t, f.pusher.calls[0].deleted)
	payload := f.pusher.calls[0].payload.(map[string]any)
	assert.Equal(t, product.ID.String(), payload["shopware_id"])
}
