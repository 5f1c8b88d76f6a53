package access

import (
	"regexp"
	"strconv"

	"skillytics-api/internal/domain/plans"
)

// The route-to-tier policy lives in one declarative table consumed by both
// the gating middleware and any handler that wants to re-check. Patterns are
// matched in order; the first hit wins.

type routeRule struct {
	pattern *regexp.Regexp
	tier    string
}

var routeRules = []routeRule{
	// Enterprise surface
	{regexp.MustCompile(`^/enterprise`), plans.TierEnterprise},
	{regexp.MustCompile(`^/team`), plans.TierEnterprise},
	{regexp.MustCompile(`^/admin/analytics`), plans.TierEnterprise},

	// Pro surface
	{regexp.MustCompile(`^/analytics$`), plans.TierPro},
	{regexp.MustCompile(`^/certifications(/|$)`), plans.TierPro},
	{regexp.MustCompile(`^/marketplace$`), plans.TierPro},
	{regexp.MustCompile(`^/mission-map/?$`), plans.TierPro},
	{regexp.MustCompile(`^/dashboard/?$`), plans.TierPro},
}

var (
	missionPath = regexp.MustCompile(`^/mission/(\d+)`)
	modulePath  = regexp.MustCompile(`^/module/(\d+)`)
)

// RequiredTier classifies a path. Numeric mission/module paths are gated by
// the free-tier content thresholds; everything not in the table is public
// (FREE).
func RequiredTier(path string) string {
	for _, r := range routeRules {
		if r.pattern.MatchString(path) {
			return r.tier
		}
	}

	if m := missionPath.FindStringSubmatch(path); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > FreeMissionLimit {
			return plans.TierPro
		}
	}
	if m := modulePath.FindStringSubmatch(path); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > FreeModuleLimit {
			return plans.TierPro
		}
	}

	return plans.TierFree
}

// UpgradeTarget is where an under-tiered request should be redirected.
func UpgradeTarget(requiredTier string) string {
	switch requiredTier {
	case plans.TierEnterprise:
		return "/pricing?upgrade=enterprise"
	case plans.TierPro:
		return "/pricing?upgrade=pro"
	default:
		return "/pricing"
	}
}
