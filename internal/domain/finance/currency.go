package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/odoo-connector/internal/domain/sync"
)

// Currency mirrors a Shopware currency synchronized with an Odoo
// res.currency record.
type Currency struct {
	ID       uuid.UUID
	ISOCode  string
	Name     string
	Symbol   string
	// Factor is the conversion rate against the system default currency.
	Factor          decimal.Decimal
	DecimalPlaces   int
	IsSystemDefault bool
	Correlation     sync.Correlation
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewCurrency creates a new currency entity.
func NewCurrency(isoCode, name, symbol string, factor decimal.Decimal) (*Currency, error) {
	if isoCode == "" {
		return nil, ErrCurrencyISORequired
	}
	if factor.LessThanOrEqual(decimal.Zero) {
		return nil, ErrCurrencyFactorInvalid
	}
	now := time.Now()
	return &Currency{
		ID:            uuid.New(),
		ISOCode:       isoCode,
		Name:          name,
		Symbol:        symbol,
		Factor:        factor,
		DecimalPlaces: 2,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// CurrencyRepository persists currency entities.
type CurrencyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Currency, error)
	// FindByForeignID looks a currency up by its Odoo identifier. Returns
	// (nil, nil) when no record matches.
	FindByForeignID(ctx context.Context, odooID int64) (*Currency, error)
	FindByISOCode(ctx context.Context, isoCode string) (*Currency, error)
	FindDefault(ctx context.Context) (*Currency, error)
	Save(ctx context.Context, currency *Currency) error
	Delete(ctx context.Context, id uuid.UUID) error
}
