package pricing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NormalizeMinQuantity collapses all degenerate minimum-quantity encodings
// into the "no lower tier" case. Odoo payloads deliver the break as an
// empty string, 1.0 or a missing key interchangeably; every value below 2
// means the discounted price applies from quantity 1.
func NormalizeMinQuantity(minQty decimal.Decimal) (int, bool) {
	two := decimal.NewFromInt(2)
	if minQty.LessThan(two) {
		return 1, false
	}
	return int(minQty.IntPart()), true
}

// TierPrice is the price pair of one tier: net plus derived gross.
type TierPrice struct {
	Net   decimal.Decimal
	Gross decimal.Decimal
}

// BuildTiers writes the quantity-tier rows for one rule+product pair.
// With a real quantity break: [1, minQty-1] at the base price and
// [minQty, ∞) at the rule price. With a degenerate break the rule price
// applies unconditionally as a single [1, ∞) row.
func BuildTiers(ruleID, productID uuid.UUID, minQty decimal.Decimal, base, ruled TierPrice) []Price {
	breakAt, hasBreak := NormalizeMinQuantity(minQty)
	if !hasBreak {
		return []Price{{
			ID:            uuid.New(),
			RuleID:        ruleID,
			ProductID:     productID,
			QuantityStart: 1,
			Net:           ruled.Net,
			Gross:         ruled.Gross,
		}}
	}

	lowerEnd := breakAt - 1
	return []Price{
		{
			ID:            uuid.New(),
			RuleID:        ruleID,
			ProductID:     productID,
			QuantityStart: 1,
			QuantityEnd:   &lowerEnd,
			Net:           base.Net,
			Gross:         base.Gross,
		},
		{
			ID:            uuid.New(),
			RuleID:        ruleID,
			ProductID:     productID,
			QuantityStart: breakAt,
			Net:           ruled.Net,
			Gross:         ruled.Gross,
		},
	}
}

// ValidatePartition checks that the tier rows for one rule+product pair
// partition [1, ∞) with no gap and no overlap, and that only the final
// tier is open-ended.
func ValidatePartition(prices []Price) error {
	if len(prices) == 0 {
		return ErrEmptyTierSet
	}

	sorted := make([]Price, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].QuantityStart < sorted[j].QuantityStart
	})

	if sorted[0].QuantityStart != 1 {
		return ErrTierGap
	}
	for i, p := range sorted {
		last := i == len(sorted)-1
		if last {
			if p.QuantityEnd != nil {
				return ErrTierNotOpenEnded
			}
			break
		}
		if p.QuantityEnd == nil {
			return ErrTierNotOpenEnded
		}
		if *p.QuantityEnd < p.QuantityStart {
			return ErrTierRangeInvalid
		}
		next := sorted[i+1]
		switch {
		case next.QuantityStart <= *p.QuantityEnd:
			return ErrTierOverlap
		case next.QuantityStart != *p.QuantityEnd+1:
			return ErrTierGap
		}
	}
	return nil
}
