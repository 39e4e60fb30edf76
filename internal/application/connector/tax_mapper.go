package connector

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/domain/sync"
)

// TaxMapper applies inbound Odoo account.tax records to the local tax
// table.
type TaxMapper struct {
	taxes     finance.TaxRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewTaxMapper creates a tax mapper.
func NewTaxMapper(taxes finance.TaxRepository, publisher EventPublisher, logger *zap.Logger) *TaxMapper {
	return &TaxMapper{taxes: taxes, publisher: publisher, logger: logger}
}

// UpsertBatch applies each payload independently; a failing item never
// aborts the batch.
func (m *TaxMapper) UpsertBatch(ctx context.Context, payloads []TaxPayload) *BatchResult {
	result := &BatchResult{}
	for _, p := range payloads {
		tax, err := m.upsert(ctx, p)
		if err != nil {
			m.logger.Warn("tax upsert failed",
				zap.Int64("odoo_id", p.OdooID), zap.Error(err))
			result.Fail(p.OdooID, err)
			continue
		}
		result.Report(p.OdooID, tax.ID)
	}
	m.announce(ctx, result)
	return result
}

func (m *TaxMapper) upsert(ctx context.Context, p TaxPayload) (*finance.Tax, error) {
	existing, err := m.taxes.FindByForeignID(ctx, p.OdooID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		name, ok := p.Name.Value()
		if !ok {
			return nil, ErrNameRequired
		}
		rate, _ := p.Amount.Value()
		tax, err := finance.NewTax(name, decimal.NewFromFloat(rate))
		if err != nil {
			return nil, err
		}
		tax.Correlation.Link(p.OdooID)
		if err := m.taxes.Save(ctx, tax); err != nil {
			return nil, err
		}
		return tax, nil
	}

	existing.Name = p.Name.Or(existing.Name)
	if rate, ok := p.Amount.Value(); ok {
		existing.Rate = decimal.NewFromFloat(rate)
	}
	existing.Correlation.Link(p.OdooID)
	if err := m.taxes.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ResolveOrCreate returns the local tax for an Odoo tax reference,
// creating it from the embedded record when unknown. Product payloads use
// this so a product never fails over a tax Odoo sent along.
func (m *TaxMapper) ResolveOrCreate(ctx context.Context, odooID int64, embedded *TaxPayload) (*finance.Tax, error) {
	tax, err := m.taxes.FindByForeignID(ctx, odooID)
	if err != nil {
		return nil, err
	}
	if tax != nil {
		return tax, nil
	}
	if embedded == nil {
		return nil, ErrTaxUnresolved
	}
	return m.upsert(ctx, *embedded)
}

func (m *TaxMapper) announce(ctx context.Context, result *BatchResult) {
	if len(result.Reports) == 0 {
		return
	}
	ids := localIDs(result.Reports)
	if err := m.publisher.Publish(ctx,
		sync.NewChangeEvent(sync.EntityTax, sync.ActionWritten, sync.ActorOdoo, ids...)); err != nil {
		m.logger.Warn("tax change event not published", zap.Error(err))
	}
}
