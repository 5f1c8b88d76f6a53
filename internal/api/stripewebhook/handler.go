package stripewebhooks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"skillytics-api/config"
	"skillytics-api/database"
	"skillytics-api/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"gorm.io/gorm"
)

// StripeWebhook verifies the event signature, dedupes by event id, and
// dispatches. Every handler runs inside one DB transaction together with the
// WebhookEvent ledger insert: a failed handler leaves no marker, so Stripe's
// retry reruns the full event; a replayed event hits the ledger and gets an
// immediate 200.
func StripeWebhook(c *gin.Context) {
	// Stripe key is required for follow-up API calls (checkout session and
	// subscription fetches).
	stripe.Key = config.STRIPE_SECRET_KEY

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		config.STRIPE_WEBHOOK_SECRET,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		fmt.Println("❌ Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	if alreadyProcessed(event.ID) {
		c.JSON(http.StatusOK, gin.H{"status": "already processed"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&billing.WebhookEvent{
			StripeEventID: event.ID,
			Type:          string(event.Type),
			ProcessedAt:   time.Now(),
		}).Error; err != nil {
			return fmt.Errorf("ledger insert: %w", err)
		}
		return dispatch(tx, &event)
	})
	if err != nil {
		// A ledger conflict means a concurrent delivery already won.
		if alreadyProcessed(event.ID) {
			c.JSON(http.StatusOK, gin.H{"status": "already processed"})
			return
		}
		fmt.Printf("❌ Webhook %s (%s) failed: %v\n", event.ID, event.Type, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func alreadyProcessed(eventID string) bool {
	var count int64
	database.DB.Model(&billing.WebhookEvent{}).
		Where("stripe_event_id = ?", eventID).
		Count(&count)
	return count > 0
}

func dispatch(tx *gorm.DB, event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("failed to parse session: %w", err)
		}
		return handleCheckoutSessionCompleted(tx, &session)

	case "invoice.paid":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return fmt.Errorf("failed to parse invoice: %w", err)
		}
		return handleInvoicePaid(tx, &invoice)

	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return fmt.Errorf("failed to parse invoice: %w", err)
		}
		return handleInvoicePaymentFailed(tx, &invoice)

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("failed to parse subscription: %w", err)
		}
		return handleSubscriptionUpdated(tx, &sub)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("failed to parse subscription: %w", err)
		}
		return handleSubscriptionDeleted(tx, &sub)

	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return fmt.Errorf("failed to parse payment intent: %w", err)
		}
		return handlePaymentIntentSucceeded(tx, &intent)

	default:
		// Acknowledge unknown events to avoid retries
		return nil
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
