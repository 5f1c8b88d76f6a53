package stripewebhooks

import (
	"fmt"

	"skillytics-api/internal/domain/plans"
	"skillytics-api/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleSubscriptionDeleted downgrades the user to FREE. The Stripe customer
// id is kept so a later re-subscribe reuses the same customer.
func handleSubscriptionDeleted(tx *gorm.DB, sub *stripe.Subscription) error {
	user, err := findSubscriptionUser(tx, sub)
	if err != nil {
		// The customer may have been deleted locally already; nothing to do.
		fmt.Printf("⚠️ subscription.deleted for unknown subscription %s\n", sub.ID)
		return nil
	}

	updates := map[string]interface{}{
		"subscription_tier":          plans.TierFree,
		"stripe_subscription_id":     nil,
		"stripe_subscription_status": "canceled",
		"subscription_end":           nil,
	}

	if err := tx.Model(&users.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to downgrade user %d: %w", user.ID, err)
	}

	fmt.Printf("⬇️ Subscription %s deleted; user %d downgraded to FREE\n", sub.ID, user.ID)
	return nil
}
