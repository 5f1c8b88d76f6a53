package access

import (
	"time"

	"skillytics-api/internal/domain/plans"
	"skillytics-api/internal/domain/users"
)

// Free-tier content allowance.
const (
	FreeModuleLimit  = 3
	FreeMissionLimit = 40
)

// EffectiveTier derives the tier that actually applies right now. The stored
// tier only counts while the paid period lasts; past the end date the user is
// FREE regardless of what the column says. Pure read-derivation — any write
// to the stored tier goes through the webhook handlers.
func EffectiveTier(now time.Time, u *users.User) string {
	tier := u.SubscriptionTier
	if plans.TierRank(tier) == 0 {
		return plans.TierFree
	}
	if tier == plans.TierFree {
		return plans.TierFree
	}
	if u.SubscriptionEnd != nil && now.After(*u.SubscriptionEnd) {
		return plans.TierFree
	}
	return tier
}

// Entitlements is what a tier unlocks.
type Entitlements struct {
	Tier string `json:"tier"`

	// MaxModules / MaxMissions of 0 mean unlimited.
	MaxModules  int `json:"max_modules"`
	MaxMissions int `json:"max_missions"`

	Analytics      bool `json:"analytics"`
	Certifications bool `json:"certifications"`
	Marketplace    bool `json:"marketplace"`
	Enterprise     bool `json:"enterprise"`
}

// EntitlementsFor maps a tier to its access rights. Enterprise unlocks
// everything Pro does plus the team features.
func EntitlementsFor(tier string) Entitlements {
	switch tier {
	case plans.TierEnterprise:
		return Entitlements{
			Tier:           tier,
			Analytics:      true,
			Certifications: true,
			Marketplace:    true,
			Enterprise:     true,
		}
	case plans.TierPro:
		return Entitlements{
			Tier:           tier,
			Analytics:      true,
			Certifications: true,
			Marketplace:    true,
		}
	default:
		return Entitlements{
			Tier:        plans.TierFree,
			MaxModules:  FreeModuleLimit,
			MaxMissions: FreeMissionLimit,
		}
	}
}

// CanAccessMission checks a mission's global number against the tier's
// allowance.
func (e Entitlements) CanAccessMission(missionNumber int) bool {
	return e.MaxMissions == 0 || missionNumber <= e.MaxMissions
}

// CanAccessModule checks a module's order against the tier's allowance.
func (e Entitlements) CanAccessModule(moduleOrder int) bool {
	return e.MaxModules == 0 || moduleOrder <= e.MaxModules
}
