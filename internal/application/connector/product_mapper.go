package connector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/domain/sync"
)

// MediaFetcher downloads a product image from its source URL, returning
// the body and the content type.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, string, error)
}

// BlobStore is the slice of object storage the product mapper needs.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductMapper applies inbound Odoo product.template records with their
// nested tax, category, brand, image and variant data. Referenced records
// that are unknown locally are created on demand and reported back in the
// same batch response.
type ProductMapper struct {
	products    catalog.ProductRepository
	groups      catalog.PropertyGroupRepository
	media       catalog.MediaRepository
	taxMapper   *TaxMapper
	categoryMap *CategoryMapper
	brandMapper *ManufacturerMapper
	fetcher     MediaFetcher
	blobs       BlobStore
	publisher   EventPublisher
	logger      *zap.Logger
}

// NewProductMapper creates a product mapper.
func NewProductMapper(
	products catalog.ProductRepository,
	groups catalog.PropertyGroupRepository,
	media catalog.MediaRepository,
	taxMapper *TaxMapper,
	categoryMap *CategoryMapper,
	brandMapper *ManufacturerMapper,
	fetcher MediaFetcher,
	blobs BlobStore,
	publisher EventPublisher,
	logger *zap.Logger,
) *ProductMapper {
	return &ProductMapper{
		products:    products,
		groups:      groups,
		media:       media,
		taxMapper:   taxMapper,
		categoryMap: categoryMap,
		brandMapper: brandMapper,
		fetcher:     fetcher,
		blobs:       blobs,
		publisher:   publisher,
		logger:      logger,
	}
}

// UpsertBatch applies each template payload independently.
func (m *ProductMapper) UpsertBatch(ctx context.Context, payloads []ProductPayload) *BatchResult {
	result := &BatchResult{}
	for _, p := range payloads {
		product, err := m.upsert(ctx, p, result)
		if err != nil {
			m.logger.Warn("product upsert failed",
				zap.Int64("odoo_id", p.OdooID), zap.Error(err))
			result.Fail(p.OdooID, err)
			continue
		}
		result.Report(p.OdooID, product.ID)
		for _, child := range product.Children {
			if child.Correlation.OdooID != nil {
				result.Report(*child.Correlation.OdooID, child.ID)
			}
		}
	}
	if len(result.Reports) > 0 {
		if err := m.publisher.Publish(ctx, sync.NewChangeEvent(
			sync.EntityProduct, sync.ActionWritten, sync.ActorOdoo, localIDs(result.Reports)...)); err != nil {
			m.logger.Warn("product change event not published", zap.Error(err))
		}
	}
	return result
}

// UpdateStock applies a stock-only batch. Rows referencing unknown
// products fail individually.
func (m *ProductMapper) UpdateStock(ctx context.Context, payloads []StockPayload) *BatchResult {
	result := &BatchResult{}
	var changed []uuid.UUID
	for _, p := range payloads {
		product, err := m.products.FindByForeignID(ctx, p.OdooID, nil)
		if err != nil {
			result.Fail(p.OdooID, err)
			continue
		}
		if product == nil {
			result.Fail(p.OdooID, ErrProductUnresolved)
			continue
		}
		if err := m.products.UpdateStock(ctx, product.ID, int(p.Stock)); err != nil {
			result.Fail(p.OdooID, err)
			continue
		}
		result.Report(p.OdooID, product.ID)
		changed = append(changed, product.ID)
	}
	if len(changed) > 0 {
		if err := m.publisher.Publish(ctx, sync.NewChangeEvent(
			sync.EntityProduct, sync.ActionWritten, sync.ActorOdoo, changed...)); err != nil {
			m.logger.Warn("stock change event not published", zap.Error(err))
		}
	}
	return result
}

func (m *ProductMapper) upsert(ctx context.Context, p ProductPayload, result *BatchResult) (*catalog.Product, error) {
	taxID, taxRate, err := m.resolveTax(ctx, p)
	if err != nil {
		return nil, err
	}

	template, err := m.resolveTemplate(ctx, p)
	if err != nil {
		return nil, err
	}
	if template == nil {
		number := p.DefaultCode.Or(fmt.Sprintf("ODOO-%d", p.OdooID))
		name, ok := p.Name.Value()
		if !ok {
			return nil, ErrNameRequired
		}
		if template, err = catalog.NewProduct(number, name, taxID); err != nil {
			return nil, err
		}
	} else {
		template.Name = p.Name.Or(template.Name)
		template.Number = p.DefaultCode.Or(template.Number)
		template.TaxID = taxID
	}
	template.Description = p.Description.Or(template.Description)
	template.EAN = p.Barcode.Or(template.EAN)
	template.Active = p.Active.Or(template.Active)
	if stock, ok := p.Stock.Value(); ok {
		template.Stock = int(stock)
	}
	if net, ok := p.SalesPrice.Value(); ok {
		template.SetPrice(decimal.NewFromFloat(net), taxRate)
	} else {
		template.SetPrice(template.PriceNet, taxRate)
	}
	template.Correlation.Link(p.OdooID)

	if err := m.applyCategories(ctx, template, p.Categories, result); err != nil {
		return nil, err
	}
	if err := m.applyManufacturer(ctx, template, p.Manufacturer, result); err != nil {
		return nil, err
	}
	if err := m.applyVariants(ctx, template, p.Variants, taxRate); err != nil {
		return nil, err
	}

	if err := m.products.SaveTree(ctx, template); err != nil {
		return nil, err
	}

	// Media failures degrade to a warning: the product itself is already
	// persisted and a broken image URL must not fail the item.
	if len(p.Images) > 0 {
		if err := m.applyMedia(ctx, template, p.Images); err != nil {
			m.logger.Warn("product media not fully imported",
				zap.String("product", template.Number), zap.Error(err))
		}
	}
	return template, nil
}

// resolveTemplate locates the local template for an inbound payload. A
// shopware_id pins the exact row; without one the foreign ID is matched
// against template rows only, since a variant can carry the same Odoo ID
// from its own sequence.
func (m *ProductMapper) resolveTemplate(ctx context.Context, p ProductPayload) (*catalog.Product, error) {
	if raw, ok := p.ShopwareID.Value(); ok {
		if localID, err := uuid.Parse(raw); err == nil {
			template, err := m.products.FindByForeignID(ctx, p.OdooID, &localID)
			if err != nil {
				return nil, err
			}
			if template != nil {
				return template, nil
			}
		}
	}
	return m.products.FindTemplateByForeignID(ctx, p.OdooID)
}

func (m *ProductMapper) resolveTax(ctx context.Context, p ProductPayload) (uuid.UUID, decimal.Decimal, error) {
	odooTaxID, ok := p.TaxID.Value()
	if !ok && p.Tax != nil {
		odooTaxID = p.Tax.OdooID
		ok = true
	}
	if !ok {
		return uuid.Nil, decimal.Zero, ErrTaxUnresolved
	}
	tax, err := m.taxMapper.ResolveOrCreate(ctx, odooTaxID, p.Tax)
	if err != nil {
		return uuid.Nil, decimal.Zero, err
	}
	return tax.ID, tax.Rate, nil
}

func (m *ProductMapper) applyCategories(ctx context.Context, template *catalog.Product, payloads []CategoryPayload, result *BatchResult) error {
	if payloads == nil {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(payloads))
	for _, cp := range payloads {
		cat, err := m.categoryMap.ResolveOrCreate(ctx, cp, result)
		if err != nil {
			return err
		}
		ids = append(ids, cat.ID)
	}
	template.ReplaceCategories(ids)
	return nil
}

func (m *ProductMapper) applyManufacturer(ctx context.Context, template *catalog.Product, payload *ManufacturerPayload, result *BatchResult) error {
	if payload == nil {
		return nil
	}
	mf, err := m.brandMapper.Upsert(ctx, *payload)
	if err != nil {
		return err
	}
	result.Report(payload.OdooID, mf.ID)
	template.ManufacturerID = &mf.ID
	return nil
}

// applyVariants maps nested variant records onto the template's children.
// Property groups are deduplicated by attribute name and options by value
// name; only option values not yet attached to the template's configurator
// are added, since the storefront rejects duplicate configurator entries.
func (m *ProductMapper) applyVariants(ctx context.Context, template *catalog.Product, payloads []VariantPayload, taxRate decimal.Decimal) error {
	if len(payloads) == 0 {
		return nil
	}

	existing := template.Children
	if template.ID != uuid.Nil && len(existing) == 0 {
		children, err := m.products.FindChildren(ctx, template.ID)
		if err != nil {
			return err
		}
		existing = children
	}
	byForeignID := make(map[int64]*catalog.Product, len(existing))
	byNumber := make(map[string]*catalog.Product, len(existing))
	for _, child := range existing {
		if child.Correlation.OdooID != nil {
			byForeignID[*child.Correlation.OdooID] = child
		}
		byNumber[child.Number] = child
	}

	var allOptionIDs []uuid.UUID
	template.Children = nil
	for i, vp := range payloads {
		variant := byForeignID[vp.OdooID]
		if variant == nil {
			if code, ok := vp.DefaultCode.Value(); ok {
				variant = byNumber[code]
			}
		}
		if variant == nil {
			number := vp.DefaultCode.Or(fmt.Sprintf("%s-%d", template.Number, i+1))
			v, err := catalog.NewProduct(number, template.Name, template.TaxID)
			if err != nil {
				return err
			}
			variant = v
		} else {
			variant.Number = vp.DefaultCode.Or(variant.Number)
			variant.TaxID = template.TaxID
		}
		variant.EAN = vp.Barcode.Or(variant.EAN)
		variant.Description = vp.Description.Or(variant.Description)
		if stock, ok := vp.Stock.Value(); ok {
			variant.Stock = int(stock)
		}
		if net, ok := vp.SalesPrice.Value(); ok {
			variant.SetPrice(decimal.NewFromFloat(net), taxRate)
		} else if variant.PriceNet.IsZero() {
			variant.SetPrice(template.PriceNet, taxRate)
		} else {
			variant.SetPrice(variant.PriceNet, taxRate)
		}

		optionIDs, err := m.resolveOptions(ctx, vp.Attributes)
		if err != nil {
			return err
		}
		variant.OptionIDs = optionIDs
		allOptionIDs = append(allOptionIDs, optionIDs...)

		variant.Correlation.Link(vp.OdooID)
		variant.ParentID = nil
		if err := template.AddChild(variant); err != nil {
			return err
		}
	}

	missing := template.MissingConfiguratorOptions(allOptionIDs)
	template.ConfiguratorOptionIDs = append(template.ConfiguratorOptionIDs, missing...)
	return nil
}

// resolveOptions maps attribute name/value pairs to property option IDs,
// creating groups and options as needed. Groups are deduplicated by name.
func (m *ProductMapper) resolveOptions(ctx context.Context, attrs []AttributeValuePayload) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(attrs))
	for _, attr := range attrs {
		group, err := m.groups.FindByName(ctx, attr.AttributeName)
		if err != nil && !errors.Is(err, catalog.ErrPropertyGroupNotFound) {
			return nil, err
		}
		if group == nil {
			if group, err = catalog.NewPropertyGroup(attr.AttributeName); err != nil {
				return nil, err
			}
		}
		option := group.EnsureOption(attr.ValueName)
		if err := m.groups.Save(ctx, group); err != nil {
			return nil, err
		}
		ids = append(ids, option.ID)
	}
	return ids, nil
}

// applyMedia replaces the product's media set: download each image, store
// the blob and persist the record. A key collision or a failed upload is
// retried once under the uniquified key.
func (m *ProductMapper) applyMedia(ctx context.Context, template *catalog.Product, images []ImagePayload) error {
	if err := m.media.DeleteByProduct(ctx, template.ID); err != nil {
		return err
	}
	mediaIDs := make([]uuid.UUID, 0, len(images))
	for _, img := range images {
		fileName := img.FileName
		if fileName == "" {
			fileName = path.Base(strings.TrimRight(img.URL, "/"))
		}
		rec, err := catalog.NewMedia(template.ID, fileName, img.MimeType, img.URL)
		if err != nil {
			return err
		}
		body, contentType, err := m.fetcher.Fetch(ctx, img.URL)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", img.URL, err)
		}
		if rec.MimeType == "" {
			rec.MimeType = contentType
		}
		blob, err := io.ReadAll(body)
		body.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", img.URL, err)
		}
		key := rec.StorageKey()
		taken, err := m.blobs.Exists(ctx, key)
		if err != nil {
			return fmt.Errorf("check %s: %w", key, err)
		}
		if taken {
			key = rec.UniquifiedKey()
		}
		if err := m.blobs.Put(ctx, key, rec.MimeType, bytes.NewReader(blob)); err != nil {
			// One retry under the uniquified key before giving up.
			key = rec.UniquifiedKey()
			if err := m.blobs.Put(ctx, key, rec.MimeType, bytes.NewReader(blob)); err != nil {
				return fmt.Errorf("store %s: %w", key, err)
			}
		}
		if err := m.media.Save(ctx, rec); err != nil {
			return err
		}
		mediaIDs = append(mediaIDs, rec.ID)
	}
	template.MediaIDs = mediaIDs
	return m.products.Save(ctx, template)
}
