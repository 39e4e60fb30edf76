package connector

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/domain/sync"
	"github.com/erp/odoo-connector/internal/infrastructure/config"
)

// CategoryMapper applies inbound Odoo product.category records. Odoo sends
// a node with its ancestor chain nested in parent_data; the mapper walks
// the chain up until it finds a locally known ancestor, then creates the
// missing part of the chain top-down so every node has a persisted parent
// before it is written itself. Odoo roots are attached under the
// storefront's configured default root category.
type CategoryMapper struct {
	categories catalog.CategoryRepository
	cfg        *config.OdooConfig
	publisher  EventPublisher
	logger     *zap.Logger
}

// NewCategoryMapper creates a category mapper.
func NewCategoryMapper(categories catalog.CategoryRepository, cfg *config.OdooConfig, publisher EventPublisher, logger *zap.Logger) *CategoryMapper {
	return &CategoryMapper{categories: categories, cfg: cfg, publisher: publisher, logger: logger}
}

// UpsertBatch applies each payload independently. The batch report also
// contains the ancestors created on demand, so Odoo learns their pairings
// in the same response.
func (m *CategoryMapper) UpsertBatch(ctx context.Context, payloads []CategoryPayload) *BatchResult {
	result := &BatchResult{}
	for _, p := range payloads {
		if _, err := m.Upsert(ctx, p, result); err != nil {
			m.logger.Warn("category upsert failed",
				zap.Int64("odoo_id", p.OdooID), zap.Error(err))
			result.Fail(p.OdooID, err)
		}
	}
	if len(result.Reports) > 0 {
		if err := m.publisher.Publish(ctx, sync.NewChangeEvent(
			sync.EntityCategory, sync.ActionWritten, sync.ActorOdoo, localIDs(result.Reports)...)); err != nil {
			m.logger.Warn("category change event not published", zap.Error(err))
		}
	}
	return result
}

// Upsert applies one category record with its ancestor chain. Every node
// written on the way down is appended to the result so the caller reports
// all new pairings, not just the leaf's.
func (m *CategoryMapper) Upsert(ctx context.Context, p CategoryPayload, result *BatchResult) (*catalog.Category, error) {
	// Walk up parent_data until a known ancestor or the Odoo root.
	var pending []CategoryPayload
	node := &p
	var anchor *catalog.Category
	for node != nil {
		existing, err := m.categories.FindByForeignID(ctx, node.OdooID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			anchor = existing
			break
		}
		pending = append(pending, *node)
		node = node.Parent
	}

	parentID, err := m.anchorID(ctx, anchor)
	if err != nil {
		return nil, err
	}

	// Create the missing chain top-down; pending is ordered leaf-first.
	var leaf *catalog.Category
	for i := len(pending) - 1; i >= 0; i-- {
		item := pending[i]
		name, ok := item.Name.Value()
		if !ok {
			return nil, ErrNameRequired
		}
		cat, err := catalog.NewCategory(name, parentID)
		if err != nil {
			return nil, err
		}
		cat.Correlation.Link(item.OdooID)
		if err := m.categories.Save(ctx, cat); err != nil {
			return nil, err
		}
		result.Report(item.OdooID, cat.ID)
		parentID = &cat.ID
		leaf = cat
	}

	if leaf != nil {
		return leaf, nil
	}

	// The node itself already existed: update name and parent in place.
	anchor.Name = p.Name.Or(anchor.Name)
	newParent, err := m.resolveParent(ctx, p.Parent, result)
	if err != nil {
		return nil, err
	}
	anchor.Reparent(newParent)
	anchor.Correlation.Link(p.OdooID)
	if err := m.categories.Save(ctx, anchor); err != nil {
		return nil, err
	}
	result.Report(p.OdooID, anchor.ID)
	return anchor, nil
}

// SetDefaultRoot records which local category the connector re-parents
// Odoo root categories under, overriding the configured default for the
// rest of the process lifetime.
func (m *CategoryMapper) SetDefaultRoot(ctx context.Context, odooID int64) (*catalog.Category, error) {
	category, err := m.categories.FindByForeignID(ctx, odooID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, catalog.ErrCategoryNotFound
	}
	m.cfg.DefaultCategoryID = category.ID.String()
	return category, nil
}

// ResolveOrCreate returns the local category for an Odoo category record,
// creating its chain when unknown. Product payloads use this for their
// category assignments; reports for nodes created on the way are collected
// into result.
func (m *CategoryMapper) ResolveOrCreate(ctx context.Context, p CategoryPayload, result *BatchResult) (*catalog.Category, error) {
	existing, err := m.categories.FindByForeignID(ctx, p.OdooID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return m.Upsert(ctx, p, result)
}

// resolveParent returns the local parent for an updated node: the mapped
// ancestor when parent_data is present, else the default root.
func (m *CategoryMapper) resolveParent(ctx context.Context, parent *CategoryPayload, result *BatchResult) (*uuid.UUID, error) {
	if parent == nil {
		return m.anchorID(ctx, nil)
	}
	cat, err := m.ResolveOrCreate(ctx, *parent, result)
	if err != nil {
		return nil, err
	}
	return &cat.ID, nil
}

// anchorID resolves the parent for the top of a created chain: the known
// ancestor when one was found, otherwise the configured default root, and
// as a last resort the storefront's own root node.
func (m *CategoryMapper) anchorID(ctx context.Context, anchor *catalog.Category) (*uuid.UUID, error) {
	if anchor != nil {
		return &anchor.ID, nil
	}
	if m.cfg.DefaultCategoryID != "" {
		if id, err := uuid.Parse(m.cfg.DefaultCategoryID); err == nil {
			return &id, nil
		}
		m.logger.Warn("configured default category id is not a UUID",
			zap.String("value", m.cfg.DefaultCategoryID))
	}
	root, err := m.categories.FindRoot(ctx)
	if err != nil {
		return nil, err
	}
	return &root.ID, nil
}
