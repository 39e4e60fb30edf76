package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	// FindByForeignID returns (nil, nil) when no order matches.
	FindByForeignID(ctx context.Context, odooID int64) (*Order, error)
	// FindPendingSync returns orders not yet pushed to Odoo.
	FindPendingSync(ctx context.Context, limit int) ([]*Order, error)
	// FindPendingCustomerSync returns orders whose customer contact was
	// not yet pushed to Odoo.
	FindPendingCustomerSync(ctx context.Context, limit int) ([]*Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}
