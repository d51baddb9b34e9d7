package auction

import (
	"math"
	"sort"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/models"
)

// Percentage increments are bounded to this inclusive range
const (
	MinPercentIncrement = 0.1
	MaxPercentIncrement = 100.0
)

// IncrementPolicy is the normalized bid increment configuration stored on an auction
type IncrementPolicy struct {
	Type             string
	Rules            []models.IncrementRule
	MinimumIncrement float64
	Percent          *float64
}

// IncrementEvaluator validates and normalizes submitted bid increment settings
type IncrementEvaluator struct {
	// StrictRanges rejects range-based tables with gaps or overlaps
	StrictRanges bool
}

// Evaluate validates the submitted increment type and rules for an auction sub-type.
// Yankee auctions always come back as a zero fixed increment with no rules.
func (e IncrementEvaluator) Evaluate(subType, incrementType string, rules []models.IncrementRule) (IncrementPolicy, error) {
	if subType == models.SubTypeYankee {
		return IncrementPolicy{
			Type:             models.IncrementFixed,
			Rules:            []models.IncrementRule{},
			MinimumIncrement: 0,
		}, nil
	}

	switch incrementType {
	case models.IncrementFixed:
		if len(rules) != 1 {
			return IncrementPolicy{}, auctionerrors.Invalid("bidIncrementRules", "Fixed increment requires exactly one rule")
		}
		value := rules[0].IncrementValue
		if !(value > 0) || math.IsInf(value, 0) {
			return IncrementPolicy{}, auctionerrors.Invalid("bidIncrementRules", "Minimum increment must be a positive number for fixed type")
		}
		rule := rules[0]
		rule.IncrementType = models.IncrementFixed
		return IncrementPolicy{
			Type:             models.IncrementFixed,
			Rules:            []models.IncrementRule{rule},
			MinimumIncrement: value,
		}, nil

	case models.IncrementPercentage:
		if len(rules) != 1 {
			return IncrementPolicy{}, auctionerrors.Invalid("bidIncrementRules", "Percentage increment requires exactly one rule")
		}
		value := rules[0].IncrementValue
		if !(value >= MinPercentIncrement && value <= MaxPercentIncrement) {
			return IncrementPolicy{}, auctionerrors.Invalid("bidIncrementRules", "Percentage increment must be between 0.1 and 100")
		}
		rule := rules[0]
		rule.IncrementType = models.IncrementPercentage
		return IncrementPolicy{
			Type:    models.IncrementPercentage,
			Rules:   []models.IncrementRule{rule},
			Percent: &value,
		}, nil

	case models.IncrementRangeBased:
		sorted, err := e.normalizeRanges(rules)
		if err != nil {
			return IncrementPolicy{}, err
		}
		return IncrementPolicy{
			Type:  models.IncrementRangeBased,
			Rules: sorted,
		}, nil

	default:
		return IncrementPolicy{}, auctionerrors.Invalid("bidIncrementType", "Invalid bid increment type")
	}
}

func (e IncrementEvaluator) normalizeRanges(rules []models.IncrementRule) ([]models.IncrementRule, error) {
	if len(rules) == 0 {
		return nil, auctionerrors.Invalid("bidIncrementRules", "At least one increment rule is required for range-based type")
	}

	sorted := make([]models.IncrementRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinBidAmount < sorted[j].MinBidAmount
	})

	for i, rule := range sorted {
		if rule.MinBidAmount < 0 {
			return nil, auctionerrors.Invalid("bidIncrementRules", "Rule %d: minimum bid amount cannot be negative", i+1)
		}
		if rule.MaxBidAmount != nil && *rule.MaxBidAmount <= rule.MinBidAmount {
			return nil, auctionerrors.Invalid("bidIncrementRules", "Rule %d: maximum bid amount must be greater than minimum bid amount", i+1)
		}
		if !(rule.IncrementValue > 0) {
			return nil, auctionerrors.Invalid("bidIncrementRules", "Rule %d: increment value must be a positive number", i+1)
		}
		switch rule.IncrementType {
		case "":
			sorted[i].IncrementType = models.IncrementFixed
		case models.IncrementFixed:
		case models.IncrementPercentage:
			if rule.IncrementValue > MaxPercentIncrement {
				return nil, auctionerrors.Invalid("bidIncrementRules", "Rule %d: percentage increment must be between 0.1 and 100", i+1)
			}
		default:
			return nil, auctionerrors.Invalid("bidIncrementRules", "Rule %d: invalid increment type %q", i+1, rule.IncrementType)
		}
	}

	if e.StrictRanges {
		for i := 1; i < len(sorted); i++ {
			prev := sorted[i-1]
			if prev.MaxBidAmount == nil {
				return nil, auctionerrors.Invalid("bidIncrementRules", "Rule %d: only the last range may be open ended", i)
			}
			if *prev.MaxBidAmount != sorted[i].MinBidAmount {
				return nil, auctionerrors.Invalid("bidIncrementRules", "Rule %d: ranges must be contiguous without gaps or overlaps", i+1)
			}
		}
	}
	return sorted, nil
}

// RequiredIncrement returns the increment that applies when the standing bid is current
func RequiredIncrement(auction models.Auction, current float64) float64 {
	switch auction.BidIncrementType {
	case models.IncrementFixed:
		return auction.MinimumIncrement
	case models.IncrementPercentage:
		if auction.Percent == nil {
			return 0
		}
		return current * *auction.Percent / 100
	case models.IncrementRangeBased:
		for _, rule := range auction.BidIncrementRules {
			if !rule.Covers(current) {
				continue
			}
			if rule.IncrementType == models.IncrementPercentage {
				return current * rule.IncrementValue / 100
			}
			return rule.IncrementValue
		}
	}
	return 0
}
