package pricing

import "errors"

var (
	ErrRuleNotFound        = errors.New("pricing: rule not found")
	ErrRuleNameRequired    = errors.New("pricing: rule name is required")
	ErrRuleChannelRequired = errors.New("pricing: rule requires a sales channel")
	ErrUnknownAppliedOn    = errors.New("pricing: unknown applied_on scope")
	ErrUnknownComputeKind  = errors.New("pricing: unknown compute kind")

	ErrEmptyTierSet     = errors.New("pricing: tier set is empty")
	ErrTierGap          = errors.New("pricing: tier ranges leave a gap")
	ErrTierOverlap      = errors.New("pricing: tier ranges overlap")
	ErrTierRangeInvalid = errors.New("pricing: tier range end precedes start")
	ErrTierNotOpenEnded = errors.New("pricing: final tier must be open-ended")
)
