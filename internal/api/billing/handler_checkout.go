package billing

import (
	"fmt"
	"net/http"
	"time"

	"skillytics-api/config"
	"skillytics-api/database"
	"skillytics-api/internal/domain/access"
	"skillytics-api/internal/domain/plans"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	portalSession "github.com/stripe/stripe-go/v75/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	customer "github.com/stripe/stripe-go/v75/customer"
)

// ensureStripeCustomer returns the user's Stripe customer id, creating the
// customer on first use and persisting the id.
func ensureStripeCustomer(user *users.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	cus, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.Name),
		Metadata: map[string]string{
			"user_id": fmt.Sprint(user.ID),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Stripe customer: %w", err)
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Update("stripe_customer_id", cus.ID).Error; err != nil {
		return "", fmt.Errorf("failed to store Stripe customer: %w", err)
	}

	user.StripeCustomerID = stripe.String(cus.ID)
	return cus.ID, nil
}

// alreadySubscribed reports whether a checkout for targetTier would buy a
// subscription the user effectively already holds. FREE never conflicts.
func alreadySubscribed(effectiveTier, targetTier string) bool {
	return targetTier != plans.TierFree && effectiveTier == targetTier
}

func createCheckout(c *gin.Context, user *users.User, planID, billingCycle string) {
	stripe.Key = config.STRIPE_SECRET_KEY

	// allow-list plan id; the client never sends a raw price id
	var plan plans.Plan
	if err := database.DB.Where("id = ? AND is_active = ?", planID, true).First(&plan).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		return
	}

	priceID := plan.StripeMonthlyPriceID
	if billingCycle == "annual" {
		priceID = plan.StripeAnnualPriceID
	}
	if priceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plan has no price for that billing cycle"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email first"})
		return
	}

	if alreadySubscribed(access.EffectiveTier(time.Now(), user), plans.PlanTier(&plan)) {
		c.JSON(http.StatusConflict, gin.H{"error": "You are already subscribed to this plan"})
		return
	}

	customerID, err := ensureStripeCustomer(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/dashboard?checkout=success"),
		CancelURL:  stripe.String(config.APP_URL + "/pricing?checkout=canceled"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(customerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(user.ID)),

		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"user_id": fmt.Sprint(user.ID),
				"plan_id": plan.ID,
				"tier":    plans.PlanTier(&plan),
			},
		},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL, "session_id": s.ID})
}

func createBillingPortal(c *gin.Context, user *users.User) {
	stripe.Key = config.STRIPE_SECRET_KEY

	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe customer yet (subscribe first)"})
		return
	}

	portal, err := portalSession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*user.StripeCustomerID),
		ReturnURL: stripe.String(config.APP_URL + "/dashboard"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
