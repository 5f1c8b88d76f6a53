package plans

import "testing"

func TestTierRankOrdering(t *testing.T) {
	if !(TierRank(TierFree) < TierRank(TierPro) && TierRank(TierPro) < TierRank(TierEnterprise)) {
		t.Error("tier ranks must be strictly ordered FREE < PRO < ENTERPRISE")
	}
	if TierRank("GOLD") >= TierRank(TierFree) {
		t.Error("unknown tiers must rank below FREE")
	}
}

func TestTierAtLeast(t *testing.T) {
	tests := []struct {
		have, want string
		expected   bool
	}{
		{TierEnterprise, TierPro, true},
		{TierEnterprise, TierEnterprise, true},
		{TierPro, TierPro, true},
		{TierPro, TierEnterprise, false},
		{TierFree, TierPro, false},
		{"", TierFree, false},
	}
	for _, tt := range tests {
		if got := TierAtLeast(tt.have, tt.want); got != tt.expected {
			t.Errorf("TierAtLeast(%q, %q) = %v, want %v", tt.have, tt.want, got, tt.expected)
		}
	}
}

func TestPlanTier(t *testing.T) {
	if got := PlanTier(&Plan{Tier: "pro"}); got != TierPro {
		t.Errorf("PlanTier(pro) = %q", got)
	}
	if got := PlanTier(&Plan{Tier: " ENTERPRISE "}); got != TierEnterprise {
		t.Errorf("PlanTier(enterprise) = %q", got)
	}
	if got := PlanTier(&Plan{Tier: "bogus"}); got != TierFree {
		t.Errorf("PlanTier(bogus) = %q, want FREE", got)
	}
	if got := PlanTier(nil); got != TierFree {
		t.Errorf("PlanTier(nil) = %q, want FREE", got)
	}
}

func TestInferTierFromPriceID(t *testing.T) {
	if got := InferTierFromPriceID("price_enterprise_monthly"); got != TierEnterprise {
		t.Errorf("enterprise price inferred as %q", got)
	}
	if got := InferTierFromPriceID("price_Enterprise_Annual"); got != TierEnterprise {
		t.Errorf("case-insensitive match failed: %q", got)
	}
	if got := InferTierFromPriceID("price_1AbCdE"); got != TierPro {
		t.Errorf("unknown paid price inferred as %q, want PRO", got)
	}
}
