package pricing

import (
	"context"

	"github.com/google/uuid"
)

// RuleRepository persists rules and their price tiers.
type RuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Rule, error)
	// FindByForeignKey returns (nil, nil) when no rule matches the
	// composite pricelist key.
	FindByForeignKey(ctx context.Context, foreignKey string) (*Rule, error)
	Save(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindPrices(ctx context.Context, ruleID, productID uuid.UUID) ([]Price, error)
	SavePrices(ctx context.Context, prices []Price) error
	// DeletePrices removes all price rows for the rule+product pair, the
	// destructive half of a full tier replacement.
	DeletePrices(ctx context.Context, ruleID, productID uuid.UUID) error
}
