package billing

import (
	"testing"
	"time"

	"skillytics-api/internal/domain/access"
	"skillytics-api/internal/domain/plans"
	"skillytics-api/internal/domain/users"
)

func TestAlreadySubscribed(t *testing.T) {
	tests := []struct {
		name      string
		effective string
		target    string
		want      bool
	}{
		{"pro buying pro conflicts", plans.TierPro, plans.TierPro, true},
		{"enterprise buying enterprise conflicts", plans.TierEnterprise, plans.TierEnterprise, true},
		{"free buying pro is fine", plans.TierFree, plans.TierPro, false},
		{"pro upgrading to enterprise is fine", plans.TierPro, plans.TierEnterprise, false},
		{"enterprise downgrading to pro is fine", plans.TierEnterprise, plans.TierPro, false},
		{"free target never conflicts", plans.TierFree, plans.TierFree, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alreadySubscribed(tt.effective, tt.target); got != tt.want {
				t.Errorf("alreadySubscribed(%q, %q) = %v, want %v", tt.effective, tt.target, got, tt.want)
			}
		})
	}
}

// An expired PRO subscription must not block a fresh PRO checkout: the guard
// compares the derived tier, not the stored column.
func TestAlreadySubscribedUsesEffectiveTier(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	past := now.Add(-24 * time.Hour)
	expired := users.User{SubscriptionTier: plans.TierPro, SubscriptionEnd: &past}
	if alreadySubscribed(access.EffectiveTier(now, &expired), plans.TierPro) {
		t.Error("expired PRO subscription should not block a new PRO checkout")
	}

	future := now.Add(24 * time.Hour)
	active := users.User{SubscriptionTier: plans.TierPro, SubscriptionEnd: &future}
	if !alreadySubscribed(access.EffectiveTier(now, &active), plans.TierPro) {
		t.Error("active PRO subscription should block a second PRO checkout")
	}
}
