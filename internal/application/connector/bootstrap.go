package connector

import (
	"context"

	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/catalog"
	"github.com/erp/odoo-connector/internal/domain/finance"
	"github.com/erp/odoo-connector/internal/infrastructure/erp"
)

// TreePusher is the slice of the ERP client the bootstrapper needs.
type TreePusher interface {
	PushCategoryTree(ctx context.Context, payload any) (*erp.Response, error)
	PushCurrency(ctx context.Context, payload any) (*erp.Response, error)
}

// CategoryNode is one node of the exported category tree.
type CategoryNode struct {
	ShopwareID string         `json:"shopware_id"`
	OdooID     *int64         `json:"odoo_id,omitempty"`
	Name       string         `json:"name"`
	Children   []CategoryNode `json:"children,omitempty"`
}

// Bootstrapper seeds Odoo with the storefront's existing master data when
// a shop is first connected: the full category tree and the configured
// currencies.
type Bootstrapper struct {
	categories catalog.CategoryRepository
	currencies finance.CurrencyRepository
	pusher     TreePusher
	logger     *zap.Logger
}

// NewBootstrapper creates a bootstrapper.
func NewBootstrapper(categories catalog.CategoryRepository, currencies finance.CurrencyRepository, pusher TreePusher, logger *zap.Logger) *Bootstrapper {
	return &Bootstrapper{categories: categories, currencies: currencies, pusher: pusher, logger: logger}
}

// PushCategoryTree exports the whole category tree rooted at the
// storefront's root node.
func (b *Bootstrapper) PushCategoryTree(ctx context.Context) error {
	root, err := b.categories.FindRoot(ctx)
	if err != nil {
		return err
	}
	tree, err := b.buildNode(ctx, root)
	if err != nil {
		return err
	}
	_, err = b.pusher.PushCategoryTree(ctx, tree)
	return err
}

// PushDefaultCurrency exports the shop's system default currency.
func (b *Bootstrapper) PushDefaultCurrency(ctx context.Context) error {
	cur, err := b.currencies.FindDefault(ctx)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"shopware_id":    cur.ID.String(),
		"name":           cur.ISOCode,
		"symbol":         cur.Symbol,
		"rate":           cur.Factor,
		"decimal_places": cur.DecimalPlaces,
	}
	_, err = b.pusher.PushCurrency(ctx, payload)
	return err
}

func (b *Bootstrapper) buildNode(ctx context.Context, category *catalog.Category) (CategoryNode, error) {
	node := CategoryNode{
		ShopwareID: category.ID.String(),
		OdooID:     category.Correlation.OdooID,
		Name:       category.Name,
	}
	children, err := b.categories.FindChildren(ctx, category.ID)
	if err != nil {
		return node, err
	}
	for _, child := range children {
		childNode, err := b.buildNode(ctx, child)
		if err != nil {
			return node, err
		}
		node.Children = append(node.Children, childNode)
	}
	return node, nil
}
