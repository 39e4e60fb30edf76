package sync

import "fmt"

// EntityType is the closed set of entity types the connector synchronizes.
// Outbound endpoint paths are resolved through this enum rather than a
// runtime string lookup.
type EntityType string

const (
	EntityProduct        EntityType = "product"
	EntityCategory       EntityType = "category"
	EntityCurrency       EntityType = "currency"
	EntityTax            EntityType = "tax"
	EntityCustomer       EntityType = "customer"
	EntityCountry        EntityType = "country"
	EntitySalesChannel   EntityType = "sales_channel"
	EntityShippingMethod EntityType = "shipping_method"
	EntityManufacturer   EntityType = "manufacturer"
	EntityOrder          EntityType = "order"
)

// odooModels maps each entity type to the Odoo model name used in the
// /modify and /delete endpoint paths.
var odooModels = map[EntityType]string{
	EntityProduct:        "product.template",
	EntityCategory:       "product.category",
	EntityCurrency:       "res.currency",
	EntityTax:            "account.tax",
	EntityCustomer:       "res.partner",
	EntityCountry:        "res.country",
	EntitySalesChannel:   "sale.channel",
	EntityShippingMethod: "delivery.carrier",
	EntityManufacturer:   "product.manufacturer",
	EntityOrder:          "sale.order",
}

// IsValid checks if the entity type is one of the synchronized types.
func (t EntityType) IsValid() bool {
	_, ok := odooModels[t]
	return ok
}

// String returns the string representation of the entity type.
func (t EntityType) String() string { return string(t) }

// OdooModel returns the Odoo model name for this entity type.
func (t EntityType) OdooModel() (string, error) {
	model, ok := odooModels[t]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEntityType, t)
	}
	return model, nil
}

// ModifyPath returns the outbound push path for entity writes.
func (t EntityType) ModifyPath() (string, error) {
	model, err := t.OdooModel()
	if err != nil {
		return "", err
	}
	return "/modify/" + model, nil
}

// DeletePath returns the outbound push path for entity deletions.
func (t EntityType) DeletePath() (string, error) {
	model, err := t.OdooModel()
	if err != nil {
		return "", err
	}
	return "/delete/" + model, nil
}

// ParseEntityType converts a string into an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownEntityType, s)
	}
	return t, nil
}
