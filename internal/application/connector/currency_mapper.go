package connector

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"

	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/domain/sync"
)

// CurrencyMapper applies inbound Odoo res.currency records. Odoo delivers
// the ISO code in the record name and the conversion rate against the
// company currency in rate.
type CurrencyMapper struct {
	currencies finance.CurrencyRepository
	publisher  EventPublisher
	logger     *zap.Logger
}

// NewCurrencyMapper creates a currency mapper.
func NewCurrencyMapper(currencies finance.CurrencyRepository, publisher EventPublisher, logger *zap.Logger) *CurrencyMapper {
	return &CurrencyMapper{currencies: currencies, publisher: publisher, logger: logger}
}

// UpsertBatch applies each payload independently.
func (m *CurrencyMapper) UpsertBatch(ctx context.Context, payloads []CurrencyPayload) *BatchResult {
	result := &BatchResult{}
	for _, p := range payloads {
		cur, err := m.upsert(ctx, p)
		if err != nil {
			m.logger.Warn("currency upsert failed",
				zap.Int64("odoo_id", p.OdooID), zap.Error(err))
			result.Fail(p.OdooID, err)
			continue
		}
		result.Report(p.OdooID, cur.ID)
	}
	if len(result.Reports) > 0 {
		if err := m.publisher.Publish(ctx, sync.NewChangeEvent(
			sync.EntityCurrency, sync.ActionWritten, sync.ActorOdoo, localIDs(result.Reports)...)); err != nil {
			m.logger.Warn("currency change event not published", zap.Error(err))
		}
	}
	return result
}

// SetDefault marks the currency with the given Odoo ID as the system
// default, clearing the flag from the previous default.
func (m *CurrencyMapper) SetDefault(ctx context.Context, odooID int64) (*finance.Currency, error) {
	target, err := m.currencies.FindByForeignID(ctx, odooID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, finance.ErrCurrencyNotFound
	}
	previous, err := m.currencies.FindDefault(ctx)
	if err != nil && !errors.Is(err, finance.ErrCurrencyNotFound) {
		return nil, err
	}
	if previous != nil && previous.ID != target.ID {
		previous.IsSystemDefault = false
		if err := m.currencies.Save(ctx, previous); err != nil {
			return nil, err
		}
	}
	target.IsSystemDefault = true
	// The default currency is the base of all factors.
	target.Factor = decimal.NewFromInt(1)
	if err := m.currencies.Save(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

func (m *CurrencyMapper) upsert(ctx context.Context, p CurrencyPayload) (*finance.Currency, error) {
	existing, err := m.currencies.FindByForeignID(ctx, p.OdooID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		code, ok := p.Name.Value()
		if !ok {
			return nil, ErrNameRequired
		}
		unit, err := currency.ParseISO(code)
		if err != nil {
			return nil, ErrCurrencyCodeInvalid
		}
		code = unit.String()
		// A currency already known by its ISO code is relinked rather
		// than duplicated.
		existing, err = m.currencies.FindByISOCode(ctx, code)
		if err != nil && !errors.Is(err, finance.ErrCurrencyNotFound) {
			return nil, err
		}
		if existing == nil {
			factor := decimal.NewFromFloat(p.Rate.Or(1))
			cur, err := finance.NewCurrency(code, code, p.Symbol.Or(code), factor)
			if err != nil {
				return nil, err
			}
			if places, ok := p.DecimalPlaces.Value(); ok {
				cur.DecimalPlaces = places
			}
			cur.Correlation.Link(p.OdooID)
			if err := m.currencies.Save(ctx, cur); err != nil {
				return nil, err
			}
			return cur, nil
		}
	}

	if rate, ok := p.Rate.Value(); ok {
		existing.Factor = decimal.NewFromFloat(rate)
	}
	existing.Symbol = p.Symbol.Or(existing.Symbol)
	if places, ok := p.DecimalPlaces.Value(); ok {
		existing.DecimalPlaces = places
	}
	existing.Correlation.Link(p.OdooID)
	if err := m.currencies.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
