package connector

import "errors"

var (
	// ErrNameRequired is returned when a create payload carries no name.
	ErrNameRequired = errors.New("connector: name is required")
	// ErrTaxUnresolved is returned when a product payload references a tax
	// that is neither known locally nor embedded in the payload.
	ErrTaxUnresolved = errors.New("connector: tax could not be resolved")
	// ErrProductUnresolved is returned when a pricing or stock payload
	// references a product with no local counterpart.
	ErrProductUnresolved = errors.New("connector: product could not be resolved")
	// ErrOrderUnresolved is returned when a status notification references
	// an order with no local counterpart.
	ErrOrderUnresolved = errors.New("connector: order could not be resolved")
	// ErrScopeInvalid is returned for a pricelist item with an unknown
	// applied_on discriminant.
	ErrScopeInvalid = errors.New("connector: invalid pricelist scope")
	// ErrComputeInvalid is returned for a pricelist item with an unknown
	// compute_price kind.
	ErrComputeInvalid = errors.New("connector: invalid price computation kind")
	// ErrStatusUnmapped is returned when an inbound Odoo status key has no
	// entry in the configured translation table.
	ErrStatusUnmapped = errors.New("connector: status has no mapping")
	// ErrCurrencyCodeInvalid is returned for a currency payload whose name
	// is not a well-formed ISO 4217 code.
	ErrCurrencyCodeInvalid = errors.New("connector: invalid ISO currency code")
)
