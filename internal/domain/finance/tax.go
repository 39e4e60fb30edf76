package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/odoo-connector/internal/domain/sync"
)

// Tax mirrors a Shopware tax rate synchronized with an Odoo account.tax
// record.
type Tax struct {
	ID          uuid.UUID
	Name        string
	Rate        decimal.Decimal
	Correlation sync.Correlation
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTax creates a new tax entity.
func NewTax(name string, rate decimal.Decimal) (*Tax, error) {
	if name == "" {
		return nil, ErrTaxNameRequired
	}
	if rate.IsNegative() {
		return nil, ErrTaxRateInvalid
	}
	now := time.Now()
	return &Tax{
		ID:        uuid.New(),
		Name:      name,
		Rate:      rate,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GrossFromNet applies the tax rate to a net amount:
// gross = net × (1 + rate/100), rounded to 2 decimal places.
func (t *Tax) GrossFromNet(net decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return net.Mul(hundred.Add(t.Rate)).Div(hundred).Round(2)
}

// TaxRepository persists tax entities.
type TaxRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tax, error)
	// FindByForeignID looks a tax up by its Odoo identifier. Returns
	// (nil, nil) when no record matches.
	FindByForeignID(ctx context.Context, odooID int64) (*Tax, error)
	FindByRate(ctx context.Context, rate decimal.Decimal) (*Tax, error)
	Save(ctx context.Context, tax *Tax) error
	Delete(ctx context.Context, id uuid.UUID) error
}
