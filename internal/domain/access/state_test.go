package access

import (
	"testing"
	"time"

	"skillytics-api/internal/domain/plans"
	"skillytics-api/internal/domain/users"
)

func timeRef(t time.Time) *time.Time { return &t }

func TestEffectiveTier(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		user     users.User
		expected string
	}{
		{
			name:     "free user stays free",
			user:     users.User{SubscriptionTier: plans.TierFree},
			expected: plans.TierFree,
		},
		{
			name: "pro with future end stays pro",
			user: users.User{
				SubscriptionTier: plans.TierPro,
				SubscriptionEnd:  timeRef(now.AddDate(0, 1, 0)),
			},
			expected: plans.TierPro,
		},
		{
			name: "pro past subscription end demotes to free",
			user: users.User{
				SubscriptionTier: plans.TierPro,
				SubscriptionEnd:  timeRef(now.AddDate(0, 0, -1)),
			},
			expected: plans.TierFree,
		},
		{
			name: "enterprise past end demotes to free",
			user: users.User{
				SubscriptionTier: plans.TierEnterprise,
				SubscriptionEnd:  timeRef(now.Add(-time.Minute)),
			},
			expected: plans.TierFree,
		},
		{
			name: "enterprise seat with no end date keeps enterprise",
			user: users.User{
				SubscriptionTier: plans.TierEnterprise,
			},
			expected: plans.TierEnterprise,
		},
		{
			name:     "corrupted tier value reads as free",
			user:     users.User{SubscriptionTier: "GOLD"},
			expected: plans.TierFree,
		},
		{
			name:     "empty tier reads as free",
			user:     users.User{},
			expected: plans.TierFree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveTier(now, &tt.user)
			if got != tt.expected {
				t.Errorf("EffectiveTier() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEntitlementsFor(t *testing.T) {
	free := EntitlementsFor(plans.TierFree)
	if free.MaxModules != FreeModuleLimit || free.MaxMissions != FreeMissionLimit {
		t.Errorf("free entitlements = %d modules / %d missions, want %d / %d",
			free.MaxModules, free.MaxMissions, FreeModuleLimit, FreeMissionLimit)
	}
	if free.Analytics || free.Certifications || free.Marketplace || free.Enterprise {
		t.Error("free tier should unlock no paid features")
	}

	pro := EntitlementsFor(plans.TierPro)
	if pro.MaxModules != 0 || pro.MaxMissions != 0 {
		t.Error("pro tier should have unlimited content")
	}
	if !pro.Analytics || !pro.Certifications || !pro.Marketplace {
		t.Error("pro tier should unlock analytics, certifications, and marketplace")
	}
	if pro.Enterprise {
		t.Error("pro tier should not unlock enterprise features")
	}

	ent := EntitlementsFor(plans.TierEnterprise)
	if !ent.Enterprise || !ent.Analytics {
		t.Error("enterprise tier should unlock everything")
	}

	if unknown := EntitlementsFor("whatever"); unknown.Tier != plans.TierFree {
		t.Errorf("unknown tier maps to %q, want FREE", unknown.Tier)
	}
}

func TestContentLimits(t *testing.T) {
	free := EntitlementsFor(plans.TierFree)

	if !free.CanAccessMission(40) {
		t.Error("mission 40 should be inside the free allowance")
	}
	if free.CanAccessMission(41) {
		t.Error("mission 41 should be outside the free allowance")
	}
	if !free.CanAccessModule(3) {
		t.Error("module 3 should be inside the free allowance")
	}
	if free.CanAccessModule(4) {
		t.Error("module 4 should be outside the free allowance")
	}

	pro := EntitlementsFor(plans.TierPro)
	if !pro.CanAccessMission(9999) || !pro.CanAccessModule(9999) {
		t.Error("pro tier should have no content ceiling")
	}
}
