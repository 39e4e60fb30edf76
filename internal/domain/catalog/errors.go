package catalog

import "errors"

var (
	ErrProductNotFound       = errors.New("catalog: product not found")
	ErrProductNumberRequired = errors.New("catalog: product number is required")
	ErrProductNameRequired   = errors.New("catalog: product name is required")
	ErrProductTaxRequired    = errors.New("catalog: product tax is required")
	ErrVariantCannotNest     = errors.New("catalog: a variant cannot own children")
	// ErrTemplateMissing signals a variant payload arriving before its
	// template was synchronized. Template existence must precede variant
	// creation.
	ErrTemplateMissing = errors.New("catalog: variant references a template that does not exist")

	ErrCategoryNotFound     = errors.New("catalog: category not found")
	ErrCategoryNameRequired = errors.New("catalog: category name is required")

	ErrManufacturerNotFound     = errors.New("catalog: manufacturer not found")
	ErrManufacturerNameRequired = errors.New("catalog: manufacturer name is required")

	ErrPropertyGroupNotFound     = errors.New("catalog: property group not found")
	ErrPropertyGroupNameRequired = errors.New("catalog: property group name is required")
	// ErrUnknownPropertyOption signals a variant option set referencing a
	// group/option pair that was never registered.
	ErrUnknownPropertyOption = errors.New("catalog: variant references an unknown property option")

	ErrMediaProductRequired  = errors.New("catalog: media requires an owning product")
	ErrMediaFileNameRequired = errors.New("catalog: media file name is required")
)
