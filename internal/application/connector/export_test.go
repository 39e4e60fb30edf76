package connector

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/domain/trade"
	"github.com/erp/odoo-connector/internal/infrastructure/erp"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence"
)

type stubExportClient struct {
	contacts   []any
	saleOrders []any
	contactID  int64
	orderID    int64
	orderErr   error
}

func (c *stubExportClient) CreateContact(_ context.Context, payload any) (*erp.Response, error) {
	c.contacts = append(c.contacts, payload)
	return &erp.Response{Success: true, OdooID: c.contactID}, nil
}

func (c *stubExportClient) CreateSaleOrder(_ context.Context, payload any) (*erp.Response, error) {
	if c.orderErr != nil {
		return nil, c.orderErr
	}
	c.saleOrders = append(c.saleOrders, payload)
	return &erp.Response{Success: true, OdooID: c.orderID}, nil
}

type exportFixture struct {
	env      *testEnv
	exporter *Exporter
	orders   *persistence.GormOrderRepository
	client   *stubExportClient
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()
	env := newTestEnv(t)
	orders := persistence.NewGormOrderRepository(env.db)
	currencies := persistence.NewGormCurrencyRepository(env.db)
	client := &stubExportClient{contactID: 70, orderID: 80}
	exporter := NewExporter(orders, currencies, client, testLogger())
	return &exportFixture{env: env, exporter: exporter, orders: orders, client: client}
}

func (f *exportFixture) addOrder(t *testing.T, number string) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder(number, uuid.New())
	require.NoError(t, err)
	order.CurrencyID = uuid.New()
	order.Customer = trade.OrderCustomer{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.test",
	}
	order.AddLineItem(trade.LineItem{
		ID:        uuid.New(),
		Type:      trade.LineItemProduct,
		Label:     "Desk",
		Quantity:  2,
		UnitNet:   decimal.NewFromInt(50),
		UnitGross: decimal.NewFromFloat(59.5),
	})
	require.NoError(t, f.orders.Save(context.Background(), order))
	return order
}

func TestExporter_PendingOrderExportsContactFirst(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()
	order := f.addOrder(t, "20001")

	result := f.exporter.ExportPendingOrders(ctx, 10)
	require.True(t, result.OK(), "errors: %v", result.Errors)
	assert.Len(t, f.client.contacts, 1)
	assert.Len(t, f.client.saleOrders, 1)

	saved, err := f.orders.FindByNumber(ctx, order.Number)
	require.NoError(t, err)
	assert.True(t, saved.Synced)
	assert.True(t, saved.Customer.Synced)
	require.NotNil(t, saved.Correlation.OdooID)
	assert.Equal(t, int64(80), *saved.Correlation.OdooID)
	require.NotNil(t, saved.Customer.Correlation.OdooID)
	assert.Equal(t, int64(70), *saved.Customer.Correlation.OdooID)

	payload := f.client.saleOrders[0].(map[string]any)
	assert.Equal(t, "20001", payload["order_number"])
	assert.Equal(t, int64(70), payload["partner_id"])

	// A second run finds nothing pending.
	result = f.exporter.ExportPendingOrders(ctx, 10)
	require.True(t, result.OK())
	assert.Len(t, f.client.saleOrders, 1)
}

func TestExporter_PendingCustomerSyncOnly(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()
	order := f.addOrder(t, "20002")

	result := f.exporter.ExportPendingCustomers(ctx, 10)
	require.True(t, result.OK(), "errors: %v", result.Errors)
	require.Len(t, f.client.contacts, 1)

	saved, err := f.orders.FindByNumber(ctx, order.Number)
	require.NoError(t, err)
	assert.True(t, saved.Customer.Synced)
	// The order itself stays pending.
	assert.False(t, saved.Synced)
}

func TestExporter_OrderPushFailureRecordsError(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()
	order := f.addOrder(t, "20003")
	f.client.orderErr = errors.New("sale order rejected")

	result := f.exporter.ExportPendingOrders(ctx, 10)
	require.Len(t, result.Errors, 1)

	saved, err := f.orders.FindByNumber(ctx, order.Number)
	require.NoError(t, err)
	assert.False(t, saved.Synced)
	assert.Contains(t, saved.Correlation.SyncError, "sale order rejected")
	// The contact push succeeded and stays recorded.
	assert.True(t, saved.Customer.Synced)
}

func TestExporter_InvoiceData(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()
	order := f.addOrder(t, "20004")
	order.SetState(trade.MachineTransaction, trade.TransactionStatePaid)
	require.NoError(t, f.orders.Save(ctx, order))

	payloads, failures := f.exporter.Invoice(ctx, []string{"20004", "missing"})
	require.Len(t, failures, 1)
	require.Len(t, payloads, 1)

	inv := payloads[0]
	assert.Equal(t, "20004", inv.OrderNumber)
	assert.True(t, inv.Paid)
	assert.True(t, inv.AmountNet.Equal(decimal.NewFromInt(100)))
	assert.True(t, inv.AmountGross.Equal(decimal.NewFromInt(119)))
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, 2, inv.Lines[0].Quantity)
}

func TestExporter_CurrencyCodeIncludedWhenKnown(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()
	currencies := persistence.NewGormCurrencyRepository(f.env.db)

	eur, err := finance.NewCurrency("EUR", "EUR", "€", decimal.NewFromInt(1))
	require.NoError(t, err)
	require.NoError(t, currencies.Save(ctx, eur))

	order := f.addOrder(t, "20005")
	order.CurrencyID = eur.ID
	require.NoError(t, f.orders.Save(ctx, order))

	payloads, _ := f.exporter.Invoice(ctx, []string{"20005"})
	require.Len(t, payloads, 1)
	assert.Equal(t, "EUR", payloads[0].Currency)
}
