package connector

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/domain/sync"
)

// ManufacturerMapper applies inbound Odoo brand records.
type ManufacturerMapper struct {
	manufacturers catalog.ManufacturerRepository
	publisher     EventPublisher
	logger        *zap.Logger
}

// NewManufacturerMapper creates a manufacturer mapper.
func NewManufacturerMapper(manufacturers catalog.ManufacturerRepository, publisher EventPublisher, logger *zap.Logger) *ManufacturerMapper {
	return &ManufacturerMapper{manufacturers: manufacturers, publisher: publisher, logger: logger}
}

// UpsertBatch applies each payload independently.
func (m *ManufacturerMapper) UpsertBatch(ctx context.Context, payloads []ManufacturerPayload) *BatchResult {
	result := &BatchResult{}
	for _, p := range payloads {
		mf, err := m.Upsert(ctx, p)
		if err != nil {
			m.logger.Warn("manufacturer upsert failed",
				zap.Int64("odoo_id", p.OdooID), zap.Error(err))
			result.Fail(p.OdooID, err)
			continue
		}
		result.Report(p.OdooID, mf.ID)
	}
	if len(result.Reports) > 0 {
		if err := m.publisher.Publish(ctx, sync.NewChangeEvent(
			sync.EntityManufacturer, sync.ActionWritten, sync.ActorOdoo, localIDs(result.Reports)...)); err != nil {
			m.logger.Warn("manufacturer change event not published", zap.Error(err))
		}
	}
	return result
}

// Upsert applies one brand record. Unknown brands are matched by name
// before a new record is created, so a brand created on the shop side is
// linked instead of duplicated.
func (m *ManufacturerMapper) Upsert(ctx context.Context, p ManufacturerPayload) (*catalog.Manufacturer, error) {
	existing, err := m.manufacturers.FindByForeignID(ctx, p.OdooID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		name, ok := p.Name.Value()
		if !ok {
			return nil, ErrNameRequired
		}
		existing, err = m.manufacturers.FindByName(ctx, name)
		if err != nil && !errors.Is(err, catalog.ErrManufacturerNotFound) {
			return nil, err
		}
		if existing == nil {
			mf, err := catalog.NewManufacturer(name)
			if err != nil {
				return nil, err
			}
			mf.Link = p.Website.Or("")
			mf.Description = p.Description.Or("")
			mf.Correlation.Link(p.OdooID)
			if err := m.manufacturers.Save(ctx, mf); err != nil {
				return nil, err
			}
			return mf, nil
		}
	}

	existing.Name = p.Name.Or(existing.Name)
	existing.Link = p.Website.Or(existing.Link)
	existing.Description = p.Description.Or(existing.Description)
	existing.Correlation.Link(p.OdooID)
	if err := m.manufacturers.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
