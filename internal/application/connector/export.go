package connector

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/domain/trade"
	"github.com/erp/odoo-connector/internal/infrastructure/erp"
)

// OrderExportClient is the slice of the ERP client the exporter needs.
type OrderExportClient interface {
	CreateContact(ctx context.Context, payload any) (*erp.Response, error)
	CreateSaleOrder(ctx context.Context, payload any) (*erp.Response, error)
}

// InvoiceLine is one order position in an invoice data response.
type InvoiceLine struct {
	Label      string          `json:"label"`
	Quantity   int             `json:"quantity"`
	UnitNet    decimal.Decimal `json:"unitNet"`
	TotalNet   decimal.Decimal `json:"totalNet"`
	TotalGross decimal.Decimal `json:"totalGross"`
}

// InvoicePayload is the per-order invoice data served to Odoo.
type InvoicePayload struct {
	OrderNumber string          `json:"orderNumber"`
	OrderID     string          `json:"orderId"`
	OdooID      *int64          `json:"odooId,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	AmountNet   decimal.Decimal `json:"amountNet"`
	AmountGross decimal.Decimal `json:"amountGross"`
	Paid        bool            `json:"paid"`
	Lines       []InvoiceLine   `json:"lines"`
}

// Exporter pushes orders and their customers to Odoo and answers invoice
// data requests. Orders and contacts are exported in creation order; the
// sync flags make every run resumable after a partial failure.
type Exporter struct {
	orders     trade.OrderRepository
	currencies finance.CurrencyRepository
	client     OrderExportClient
	logger     *zap.Logger
}

// NewExporter creates an exporter.
func NewExporter(orders trade.OrderRepository, currencies finance.CurrencyRepository, client OrderExportClient, logger *zap.Logger) *Exporter {
	return &Exporter{orders: orders, currencies: currencies, client: client, logger: logger}
}

// ExportPendingCustomers pushes the customer contact of every order not
// yet marked customer-synced. Failures are collected per order.
func (e *Exporter) ExportPendingCustomers(ctx context.Context, limit int) *BatchResult {
	result := &BatchResult{}
	orders, err := e.orders.FindPendingCustomerSync(ctx, limit)
	if err != nil {
		result.Fail(0, err)
		return result
	}
	for _, order := range orders {
		if err := e.exportCustomer(ctx, order); err != nil {
			e.logger.Warn("customer contact not exported",
				zap.String("order_number", order.Number), zap.Error(err))
			result.Fail(orderOdooID(order), err)
			continue
		}
		result.Report(orderOdooID(order), order.Customer.ID)
	}
	return result
}

// ExportPendingOrders pushes every order not yet marked synced. An order
// whose customer contact is still pending is exported contact-first.
func (e *Exporter) ExportPendingOrders(ctx context.Context, limit int) *BatchResult {
	result := &BatchResult{}
	orders, err := e.orders.FindPendingSync(ctx, limit)
	if err != nil {
		result.Fail(0, err)
		return result
	}
	for _, order := range orders {
		if err := e.exportOrder(ctx, order); err != nil {
			e.logger.Warn("order not exported",
				zap.String("order_number", order.Number), zap.Error(err))
			result.Fail(orderOdooID(order), err)
			continue
		}
		result.Report(orderOdooID(order), order.ID)
	}
	return result
}

// Invoice resolves invoice data for the given order numbers. Unknown
// numbers fail individually.
func (e *Exporter) Invoice(ctx context.Context, orderNumbers []string) ([]InvoicePayload, []ItemError) {
	var payloads []InvoicePayload
	var failures []ItemError
	for _, number := range orderNumbers {
		order, err := e.orders.FindByNumber(ctx, number)
		if err != nil {
			failures = append(failures, ItemError{Reason: number + ": " + err.Error()})
			continue
		}
		payloads = append(payloads, e.invoiceData(ctx, order))
	}
	return payloads, failures
}

func (e *Exporter) invoiceData(ctx context.Context, order *trade.Order) InvoicePayload {
	payload := InvoicePayload{
		OrderNumber: order.Number,
		OrderID:     order.ID.String(),
		OdooID:      order.Correlation.OdooID,
		AmountNet:   order.AmountNet,
		AmountGross: order.AmountGross,
		Paid:        order.Transaction.State == trade.TransactionStatePaid,
	}
	if cur, err := e.currencies.FindByID(ctx, order.CurrencyID); err == nil {
		payload.Currency = cur.ISOCode
	}
	for _, item := range order.LineItems {
		payload.Lines = append(payload.Lines, InvoiceLine{
			Label:      item.Label,
			Quantity:   item.Quantity,
			UnitNet:    item.UnitNet,
			TotalNet:   item.TotalNet,
			TotalGross: item.TotalGross,
		})
	}
	return payload
}

func (e *Exporter) exportCustomer(ctx context.Context, order *trade.Order) error {
	payload := map[string]any{
		"shopware_id": order.Customer.CustomerID.String(),
		"firstname":   order.Customer.FirstName,
		"lastname":    order.Customer.LastName,
		"email":       order.Customer.Email,
		"street":      order.Billing.Street,
		"zip":         order.Billing.Zip,
		"city":        order.Billing.City,
		"phone":       order.Billing.Phone,
	}
	resp, err := e.client.CreateContact(ctx, payload)
	if err != nil {
		order.Customer.Correlation.Fail(err.Error())
		if saveErr := e.orders.Save(ctx, order); saveErr != nil {
			return saveErr
		}
		return err
	}
	if resp.OdooID != 0 {
		order.Customer.Correlation.Link(resp.OdooID)
	}
	order.Customer.Synced = true
	return e.orders.Save(ctx, order)
}

func (e *Exporter) exportOrder(ctx context.Context, order *trade.Order) error {
	if !order.Customer.Synced {
		if err := e.exportCustomer(ctx, order); err != nil {
			return err
		}
	}

	lines := make([]map[string]any, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		line := map[string]any{
			"label":       item.Label,
			"type":        string(item.Type),
			"quantity":    item.Quantity,
			"unit_net":    item.UnitNet,
			"total_net":   item.TotalNet,
			"total_gross": item.TotalGross,
		}
		if item.ProductID != nil {
			line["product_shopware_id"] = item.ProductID.String()
		}
		lines = append(lines, line)
	}

	payload := map[string]any{
		"shopware_id":  order.ID.String(),
		"order_number": order.Number,
		"amount_net":   order.AmountNet,
		"amount_gross": order.AmountGross,
		"lines":        lines,
		"shipping": map[string]any{
			"street": order.Shipping.Street,
			"zip":    order.Shipping.Zip,
			"city":   order.Shipping.City,
		},
	}
	if order.Customer.Correlation.OdooID != nil {
		payload["partner_id"] = *order.Customer.Correlation.OdooID
	}
	if cur, err := e.currencies.FindByID(ctx, order.CurrencyID); err == nil {
		payload["currency"] = cur.ISOCode
	}

	resp, err := e.client.CreateSaleOrder(ctx, payload)
	if err != nil {
		order.Correlation.Fail(err.Error())
		if saveErr := e.orders.Save(ctx, order); saveErr != nil {
			return saveErr
		}
		return err
	}
	if resp.OdooID != 0 {
		order.Correlation.Link(resp.OdooID)
	}
	order.Synced = true
	return e.orders.Save(ctx, order)
}

func orderOdooID(order *trade.Order) int64 {
	if order.Correlation.OdooID != nil {
		return *order.Correlation.OdooID
	}
	return 0
}
