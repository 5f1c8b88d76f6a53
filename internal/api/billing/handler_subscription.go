package billing

import (
	"net/http"
	"time"

	"skillytics-api/config"
	"skillytics-api/database"
	"skillytics-api/internal/domain/access"
	"skillytics-api/internal/domain/plans"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	subscription "github.com/stripe/stripe-go/v75/subscription"
)

// GetSubscription returns the caller's billing state alongside the plan
// catalog so the pricing page renders from a single request.
func GetSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var catalog []plans.Plan
	database.DB.Where("is_active = ?", true).Order("\"order\" ASC").Find(&catalog)

	c.JSON(http.StatusOK, gin.H{
		"tier":                access.EffectiveTier(time.Now(), &user),
		"subscription_status": user.StripeSubscriptionStatus,
		"subscription_start":  user.SubscriptionStart,
		"subscription_end":    user.SubscriptionEnd,
		"credits":             user.Credits,
		"plans":               catalog,
	})
}

// ManageSubscription is the action dispatcher behind POST /api/subscriptions.
func ManageSubscription(c *gin.Context) {
	var body struct {
		Action       string `json:"action" binding:"required"`
		PlanID       string `json:"plan_id"`
		BillingCycle string `json:"billing_cycle"`
		Credits      int    `json:"credits"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid action"})
		return
	}

	userID := c.GetUint("user_id")
	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	switch body.Action {
	case "create_checkout":
		cycle := body.BillingCycle
		if cycle != "annual" {
			cycle = "monthly"
		}
		createCheckout(c, &user, body.PlanID, cycle)
	case "cancel":
		cancelSubscription(c, &user)
	case "resume":
		resumeSubscription(c, &user)
	case "billing_portal":
		createBillingPortal(c, &user)
	case "add_credits":
		addCredits(c, &user, body.Credits)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
	}
}

// cancelSubscription flags the Stripe subscription to lapse at period end.
// Access continues until then; the deleted webhook does the downgrade.
func cancelSubscription(c *gin.Context, user *users.User) {
	stripe.Key = config.STRIPE_SECRET_KEY

	if user.StripeSubscriptionID == nil || *user.StripeSubscriptionID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No active subscription"})
		return
	}

	sub, err := subscription.Update(*user.StripeSubscriptionID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Subscription will end at the close of the current billing period",
		"active_til": time.Unix(sub.CurrentPeriodEnd, 0),
	})
}

func resumeSubscription(c *gin.Context, user *users.User) {
	stripe.Key = config.STRIPE_SECRET_KEY

	if user.StripeSubscriptionID == nil || *user.StripeSubscriptionID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No subscription to resume"})
		return
	}

	sub, err := subscription.Get(*user.StripeSubscriptionID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}
	if !sub.CancelAtPeriodEnd {
		c.JSON(http.StatusOK, gin.H{"message": "Subscription is not scheduled for cancellation"})
		return
	}

	if _, err := subscription.Update(sub.ID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(false),
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resume subscription", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription resumed"})
}
