package finance

import "errors"

var (
	ErrTaxNotFound     = errors.New("finance: tax not found")
	ErrTaxNameRequired = errors.New("finance: tax name is required")
	ErrTaxRateInvalid  = errors.New("finance: tax rate must not be negative")

	ErrCurrencyNotFound      = errors.New("finance: currency not found")
	ErrCurrencyISORequired   = errors.New("finance: currency ISO code is required")
	ErrCurrencyFactorInvalid = errors.New("finance: currency factor must be positive")
)
