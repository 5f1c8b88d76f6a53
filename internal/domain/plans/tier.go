package plans

import "strings"

// Tier constants (single source of truth)
const (
	TierFree       = "FREE"
	TierPro        = "PRO"
	TierEnterprise = "ENTERPRISE"
)

// TierRank orders tiers for comparisons. Unknown values rank below FREE so a
// corrupted column can never unlock anything.
func TierRank(tier string) int {
	switch tier {
	case TierFree:
		return 1
	case TierPro:
		return 2
	case TierEnterprise:
		return 3
	default:
		return 0
	}
}

// TierAtLeast reports whether have satisfies want.
func TierAtLeast(have, want string) bool {
	return TierRank(have) >= TierRank(want)
}

// PlanTier returns the tier of a plan, defaulting to FREE.
func PlanTier(p *Plan) string {
	if p == nil {
		return TierFree
	}
	switch strings.ToUpper(strings.TrimSpace(p.Tier)) {
	case TierPro:
		return TierPro
	case TierEnterprise:
		return TierEnterprise
	}
	return TierFree
}

// InferTierFromPriceID is the fallback for webhook events whose price id is
// not in the catalog yet (e.g. a price created in Stripe before the plan rows
// were synced). Enterprise prices carry "enterprise" in their lookup ids.
func InferTierFromPriceID(priceID string) string {
	if strings.Contains(strings.ToLower(priceID), "enterprise") {
		return TierEnterprise
	}
	return TierPro
}
