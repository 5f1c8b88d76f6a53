package stripewebhooks

import (
	"fmt"
	"time"

	"skillytics-api/internal/domain/plans"
	"skillytics-api/internal/domain/users"
	infrastripe "skillytics-api/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// subscriptionPriceID pulls the first line item's price id, the key for the
// tier lookup.
func subscriptionPriceID(sub *stripe.Subscription) string {
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		return sub.Items.Data[0].Price.ID
	}
	return ""
}

// subscriptionStateFor maps a Stripe subscription and its resolved tier onto
// the user columns. A status that no longer entitles drops the tier to FREE
// immediately.
func subscriptionStateFor(sub *stripe.Subscription, tier string) map[string]interface{} {
	rawStatus := string(sub.Status)
	status := infrastripe.NormalizeStatus(&rawStatus)
	if !infrastripe.IsEntitled(status) {
		tier = plans.TierFree
	}

	return map[string]interface{}{
		"subscription_tier":          tier,
		"stripe_subscription_id":     sub.ID,
		"stripe_subscription_status": status,
		"subscription_start":         time.Unix(sub.CurrentPeriodStart, 0),
		"subscription_end":           time.Unix(sub.CurrentPeriodEnd, 0),
	}
}

// subscriptionStateUpdates resolves the tier from the plan catalog when the
// price id is known (falling back to the price id itself) and maps the
// subscription onto the user columns.
func subscriptionStateUpdates(tx *gorm.DB, sub *stripe.Subscription) map[string]interface{} {
	tier := plans.TierFree
	if priceID := subscriptionPriceID(sub); priceID != "" {
		var plan plans.Plan
		err := tx.Where("stripe_monthly_price_id = ? OR stripe_annual_price_id = ?", priceID, priceID).
			First(&plan).Error
		if err == nil {
			tier = plans.PlanTier(&plan)
		} else {
			tier = plans.InferTierFromPriceID(priceID)
		}
	}
	return subscriptionStateFor(sub, tier)
}

func handleSubscriptionUpdated(tx *gorm.DB, sub *stripe.Subscription) error {
	user, err := findSubscriptionUser(tx, sub)
	if err != nil {
		return err
	}

	updates := subscriptionStateUpdates(tx, sub)
	if err := tx.Model(&users.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to apply subscription update: %w", err)
	}

	fmt.Printf("🔄 Subscription %s updated for user %d (tier=%v, status=%v)\n",
		sub.ID, user.ID, updates["subscription_tier"], updates["stripe_subscription_status"])
	return nil
}

// findSubscriptionUser resolves the local user for a subscription event:
// metadata first, then the stored subscription id, then the customer id.
func findSubscriptionUser(tx *gorm.DB, sub *stripe.Subscription) (*users.User, error) {
	var user users.User

	if userID, err := userIDFromMetadata(sub.Metadata, ""); err == nil {
		if err := tx.Where("id = ?", userID).First(&user).Error; err == nil {
			return &user, nil
		}
	}

	if err := tx.Where("stripe_subscription_id = ?", sub.ID).First(&user).Error; err == nil {
		return &user, nil
	}

	if sub.Customer != nil && sub.Customer.ID != "" {
		if err := tx.Where("stripe_customer_id = ?", sub.Customer.ID).First(&user).Error; err == nil {
			return &user, nil
		}
	}

	return nil, fmt.Errorf("no user for subscription %s", sub.ID)
}
