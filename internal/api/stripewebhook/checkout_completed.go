package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"

	"skillytics-api/internal/domain/billing"
	"skillytics-api/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	paymentintent "github.com/stripe/stripe-go/v75/paymentintent"
	"github.com/stripe/stripe-go/v75/subscription"
	"gorm.io/gorm"
)

func handleCheckoutSessionCompleted(tx *gorm.DB, session *stripe.CheckoutSession) error {
	switch session.Mode {
	case stripe.CheckoutSessionModeSubscription:
		return handleSubscriptionCheckout(tx, session)
	case stripe.CheckoutSessionModePayment:
		return handlePaymentCheckout(tx, session)
	default:
		return nil
	}
}

func handleSubscriptionCheckout(tx *gorm.DB, session *stripe.CheckoutSession) error {
	// Fetch full session with expansions
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}

	subData, err := subscription.Get(fullSession.Subscription.ID, nil)
	if err != nil || subData == nil || subData.Items == nil || len(subData.Items.Data) == 0 || subData.Items.Data[0].Price == nil {
		return fmt.Errorf("failed to fetch subscription items: %w", err)
	}

	userID, err := userIDFromMetadata(subData.Metadata, fullSession.ClientReferenceID)
	if err != nil {
		return err
	}

	var user users.User
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	// A fresh checkout while an older subscription is live replaces it.
	if user.StripeSubscriptionID != nil && *user.StripeSubscriptionID != "" && *user.StripeSubscriptionID != subData.ID {
		_, _ = subscription.Cancel(*user.StripeSubscriptionID, nil)
	}

	updates := subscriptionStateUpdates(tx, subData)
	if fullSession.Customer != nil && fullSession.Customer.ID != "" {
		updates["stripe_customer_id"] = fullSession.Customer.ID
	}

	if err := tx.Model(&users.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update user after checkout: %w", err)
	}

	// Audit row for the first payment. invoice.paid for the same invoice
	// arrives too; the unique invoice id makes the second insert a no-op.
	invoiceID := ""
	if subData.LatestInvoice != nil {
		invoiceID = subData.LatestInvoice.ID
	}
	if err := recordSubscriptionTransaction(tx, user.ID, invoiceID,
		float64(fullSession.AmountTotal)/100.0, string(fullSession.Currency),
		billing.TransactionStatusSucceeded, "Subscription started"); err != nil {
		return err
	}

	fmt.Printf("✅ Subscription checkout completed for user %d (tier=%v)\n", user.ID, updates["subscription_tier"])
	return nil
}

// handlePaymentCheckout handles one-time purchases (credit top-ups and
// marketplace sales). Fulfillment keys off the payment intent's metadata and
// is shared with payment_intent.succeeded, so whichever event lands first
// does the work and the other is a no-op.
func handlePaymentCheckout(tx *gorm.DB, session *stripe.CheckoutSession) error {
	if session.PaymentIntent == nil || session.PaymentIntent.ID == "" {
		return nil
	}

	intent, err := paymentintent.Get(session.PaymentIntent.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch payment intent: %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil
	}

	return handlePaymentIntentSucceeded(tx, intent)
}

func userIDFromMetadata(metadata map[string]string, clientRef string) (uint, error) {
	userIDStr := ""
	if metadata != nil {
		userIDStr = metadata["user_id"]
	}
	if userIDStr == "" {
		userIDStr = clientRef
	}
	if userIDStr == "" {
		return 0, errors.New("missing user_id (metadata.user_id or client_reference_id)")
	}

	uid64, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user_id %q: %w", userIDStr, err)
	}
	return uint(uid64), nil
}
