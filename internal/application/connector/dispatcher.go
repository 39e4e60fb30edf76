package connector

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/domain/sync"
	"github.com/erp/odoo-connector/internal/domain/trade"
	"github.com/erp/odoo-connector/internal/infrastructure/erp"
)

// EntityPusher is the slice of the ERP client the dispatcher needs.
type EntityPusher interface {
	Modify(ctx context.Context, entity sync.EntityType, payload any) (*erp.Response, error)
	Delete(ctx context.Context, entity sync.EntityType, payload any) (*erp.Response, error)
}

// Dispatcher pushes local entity writes and deletions to Odoo. It listens
// on the change-event bus, rehydrates each changed entity, posts it to the
// per-entity modify/delete endpoint and writes the returned correlation ID
// or error message back onto the entity.
//
// Events raised by inbound Odoo processing are skipped so an update never
// echoes back to its origin, and a context-carried guard suppresses
// re-entrant dispatch when the correlation write-back raises a nested
// event for the same entity type.
type Dispatcher struct {
	products      catalog.ProductRepository
	categories    catalog.CategoryRepository
	manufacturers catalog.ManufacturerRepository
	taxes         finance.TaxRepository
	currencies    finance.CurrencyRepository
	orders        trade.OrderRepository
	pusher        EntityPusher
	logger        *zap.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	manufacturers catalog.ManufacturerRepository,
	taxes finance.TaxRepository,
	currencies finance.CurrencyRepository,
	orders trade.OrderRepository,
	pusher EntityPusher,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		products:      products,
		categories:    categories,
		manufacturers: manufacturers,
		taxes:         taxes,
		currencies:    currencies,
		orders:        orders,
		pusher:        pusher,
		logger:        logger,
	}
}

// EventTypes lists the change events the dispatcher subscribes to.
func (d *Dispatcher) EventTypes() []string {
	types := []sync.EntityType{
		sync.EntityProduct,
		sync.EntityCategory,
		sync.EntityManufacturer,
		sync.EntityTax,
		sync.EntityCurrency,
	}
	var keys []string
	for _, t := range types {
		keys = append(keys,
			string(t)+"."+string(sync.ActionWritten),
			string(t)+"."+string(sync.ActionDeleted))
	}
	return keys
}

// Handle processes one change event.
func (d *Dispatcher) Handle(ctx context.Context, event sync.ChangeEvent) error {
	if event.FromOdoo() {
		return nil
	}
	guard := sync.GuardFrom(ctx)
	if guard == nil {
		ctx, guard = sync.WithGuard(ctx)
	}
	if !guard.Enter(event.Entity) {
		d.logger.Debug("re-entrant dispatch suppressed",
			zap.String("entity", event.Entity.String()))
		return nil
	}
	defer guard.Leave(event.Entity)

	var errs []error
	for _, id := range event.EntityIDs {
		if err := d.dispatchOne(ctx, event, id); err != nil {
			d.logger.Warn("entity not pushed to odoo",
				zap.String("entity", event.Entity.String()),
				zap.String("id", id.String()),
				zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) dispatchOne(ctx context.Context, event sync.ChangeEvent, id uuid.UUID) error {
	if event.Action == sync.ActionDeleted {
		return d.pushDelete(ctx, event.Entity, id, event.Actor)
	}
	switch event.Entity {
	case sync.EntityProduct:
		return d.pushProduct(ctx, id, event.Actor)
	case sync.EntityCategory:
		return d.pushCategory(ctx, id, event.Actor)
	case sync.EntityManufacturer:
		return d.pushManufacturer(ctx, id, event.Actor)
	case sync.EntityTax:
		return d.pushTax(ctx, id, event.Actor)
	case sync.EntityCurrency:
		return d.pushCurrency(ctx, id, event.Actor)
	default:
		return nil
	}
}

func (d *Dispatcher) pushDelete(ctx context.Context, entity sync.EntityType, id uuid.UUID, actor string) error {
	payload := map[string]any{
		"shopware_id": id.String(),
		"actor":       actorOrSystem(actor),
	}
	_, err := d.pusher.Delete(ctx, entity, payload)
	return err
}

func (d *Dispatcher) pushProduct(ctx context.Context, id uuid.UUID, actor string) error {
	product, err := d.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"shopware_id":  product.ID.String(),
		"name":         product.Name,
		"default_code": product.Number,
		"barcode":      product.EAN,
		"description":  product.Description,
		"sales_price":  product.PriceNet,
		"qty":          product.Stock,
		"active":       product.Active,
		"is_variant":   product.IsVariant(),
		"actor":        actorOrSystem(actor),
	}
	resp, err := d.pusher.Modify(ctx, sync.EntityProduct, payload)
	d.writeBack(&product.Correlation, resp, err)
	if saveErr := d.products.Save(ctx, product); saveErr != nil {
		return saveErr
	}
	return err
}

func (d *Dispatcher) pushCategory(ctx context.Context, id uuid.UUID, actor string) error {
	category, err := d.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"shopware_id": category.ID.String(),
		"name":        category.Name,
		"active":      category.Active,
		"actor":       actorOrSystem(actor),
	}
	if category.ParentID != nil {
		payload["parent_shopware_id"] = category.ParentID.String()
	}
	resp, err := d.pusher.Modify(ctx, sync.EntityCategory, payload)
	d.writeBack(&category.Correlation, resp, err)
	if saveErr := d.categories.Save(ctx, category); saveErr != nil {
		return saveErr
	}
	return err
}

func (d *Dispatcher) pushManufacturer(ctx context.Context, id uuid.UUID, actor string) error {
	manufacturer, err := d.manufacturers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"shopware_id": manufacturer.ID.String(),
		"name":        manufacturer.Name,
		"website":     manufacturer.Link,
		"description": manufacturer.Description,
		"actor":       actorOrSystem(actor),
	}
	resp, err := d.pusher.Modify(ctx, sync.EntityManufacturer, payload)
	d.writeBack(&manufacturer.Correlation, resp, err)
	if saveErr := d.manufacturers.Save(ctx, manufacturer); saveErr != nil {
		return saveErr
	}
	return err
}

func (d *Dispatcher) pushTax(ctx context.Context, id uuid.UUID, actor string) error {
	tax, err := d.taxes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"shopware_id": tax.ID.String(),
		"name":        tax.Name,
		"amount":      tax.Rate,
		"actor":       actorOrSystem(actor),
	}
	resp, err := d.pusher.Modify(ctx, sync.EntityTax, payload)
	d.writeBack(&tax.Correlation, resp, err)
	if saveErr := d.taxes.Save(ctx, tax); saveErr != nil {
		return saveErr
	}
	return err
}

func (d *Dispatcher) pushCurrency(ctx context.Context, id uuid.UUID, actor string) error {
	cur, err := d.currencies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"shopware_id":    cur.ID.String(),
		"name":           cur.ISOCode,
		"symbol":         cur.Symbol,
		"rate":           cur.Factor,
		"decimal_places": cur.DecimalPlaces,
		"actor":          actorOrSystem(actor),
	}
	resp, err := d.pusher.Modify(ctx, sync.EntityCurrency, payload)
	d.writeBack(&cur.Correlation, resp, err)
	if saveErr := d.currencies.Save(ctx, cur); saveErr != nil {
		return saveErr
	}
	return err
}

// writeBack records the push outcome on the entity's correlation fields:
// the returned Odoo ID on success, the error message on failure.
func (d *Dispatcher) writeBack(correlation *sync.Correlation, resp *erp.Response, err error) {
	switch {
	case err != nil:
		correlation.Fail(err.Error())
	case resp != nil && resp.OdooID != 0:
		correlation.Link(resp.OdooID)
	default:
		if correlation.OdooID != nil {
			correlation.Link(*correlation.OdooID)
		}
	}
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return "system"
	}
	return actor
}
