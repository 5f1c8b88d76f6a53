package stripe

import "strings"

// NormalizeStatus collapses Stripe's subscription status values into the
// handful the entitlement code cares about.
func NormalizeStatus(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "none"
	}
	switch strings.TrimSpace(*s) {
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(*s)
	}
}

// IsEntitled reports whether a subscription status keeps paid access on.
// past_due stays entitled: dunning is delegated to Stripe and the local tier
// only drops on subscription.updated/deleted.
func IsEntitled(status string) bool {
	switch status {
	case "active", "trialing", "past_due":
		return true
	default:
		return false
	}
}
