package access

import (
	"testing"

	"skillytics-api/internal/domain/plans"
)

func TestRequiredTier(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		// Enterprise surface
		{"/enterprise", plans.TierEnterprise},
		{"/enterprise/settings", plans.TierEnterprise},
		{"/team", plans.TierEnterprise},
		{"/team/members", plans.TierEnterprise},
		{"/admin/analytics", plans.TierEnterprise},

		// Pro surface
		{"/analytics", plans.TierPro},
		{"/certifications", plans.TierPro},
		{"/certifications/cert-mlops", plans.TierPro},
		{"/marketplace", plans.TierPro},
		{"/mission-map", plans.TierPro},
		{"/mission-map/", plans.TierPro},
		{"/dashboard", plans.TierPro},

		// Numeric content thresholds
		{"/mission/1", plans.TierFree},
		{"/mission/40", plans.TierFree},
		{"/mission/41", plans.TierPro},
		{"/module/3", plans.TierFree},
		{"/module/4", plans.TierPro},

		// Public
		{"/", plans.TierFree},
		{"/pricing", plans.TierFree},
		{"/login", plans.TierFree},
		{"/certificationsfoo", plans.TierFree},
		{"/analytics/sub", plans.TierFree},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := RequiredTier(tt.path); got != tt.expected {
				t.Errorf("RequiredTier(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestUpgradeTarget(t *testing.T) {
	if got := UpgradeTarget(plans.TierPro); got != "/pricing?upgrade=pro" {
		t.Errorf("UpgradeTarget(PRO) = %q", got)
	}
	if got := UpgradeTarget(plans.TierEnterprise); got != "/pricing?upgrade=enterprise" {
		t.Errorf("UpgradeTarget(ENTERPRISE) = %q", got)
	}
	if got := UpgradeTarget(plans.TierFree); got != "/pricing" {
		t.Errorf("UpgradeTarget(FREE) = %q", got)
	}
}
