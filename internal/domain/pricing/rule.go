package pricing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/odoo-connector/internal/domain/sync"
)

// Rule is a Shopware rule row scoping a set of price entries to a sales
// channel. One rule exists per (pricelist, scope), keyed across systems by
// ForeignKey = "{pricelistID}-{mainRuleID}".
type Rule struct {
	ID   uuid.UUID
	Name string
	// ForeignKey is the composite correlation key of the Odoo pricelist rule.
	ForeignKey     string
	SalesChannelID uuid.UUID
	Correlation    sync.Correlation
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RuleForeignKey builds the composite correlation key for a pricelist rule.
func RuleForeignKey(pricelistID, mainRuleID int64) string {
	return fmt.Sprintf("%d-%d", pricelistID, mainRuleID)
}

// RuleName builds the display name "{pricelistName} - {mainRuleId}".
func RuleName(pricelistName string, mainRuleID int64) string {
	return fmt.Sprintf("%s - %d", pricelistName, mainRuleID)
}

// NewRule creates a rule with its sales-channel-equality condition.
func NewRule(name, foreignKey string, salesChannelID uuid.UUID) (*Rule, error) {
	if name == "" {
		return nil, ErrRuleNameRequired
	}
	if salesChannelID == uuid.Nil {
		return nil, ErrRuleChannelRequired
	}
	now := time.Now()
	return &Rule{
		ID:             uuid.New(),
		Name:           name,
		ForeignKey:     foreignKey,
		SalesChannelID: salesChannelID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Price is one quantity-tier price row for a rule+product pair. Ranges are
// half-open except the top tier, whose QuantityEnd is nil (open-ended).
type Price struct {
	ID            uuid.UUID
	RuleID        uuid.UUID
	ProductID     uuid.UUID
	QuantityStart int
	QuantityEnd   *int
	Net           decimal.Decimal
	Gross         decimal.Decimal
	CreatedAt     time.Time
}

// AppliedOn is the Odoo pricelist-item scope discriminant.
type AppliedOn string

const (
	AppliedGlobal          AppliedOn = "3_global"
	AppliedProductCategory AppliedOn = "2_product_category"
	AppliedProduct         AppliedOn = "1_product"
	AppliedProductVariant  AppliedOn = "0_product_variant"
)

// IsValid checks if the scope is one of the four known discriminants.
func (a AppliedOn) IsValid() bool {
	switch a {
	case AppliedGlobal, AppliedProductCategory, AppliedProduct, AppliedProductVariant:
		return true
	}
	return false
}

// ComputeKind is how an advanced rule derives the new price.
type ComputeKind string

const (
	ComputeFixed      ComputeKind = "fixed"
	ComputePercentage ComputeKind = "percentage"
)

// IsValid checks if the compute kind is known.
func (k ComputeKind) IsValid() bool {
	return k == ComputeFixed || k == ComputePercentage
}
