package stripewebhooks

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skillytics-api/config"
	"skillytics-api/internal/domain/billing"
	"skillytics-api/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

func TestStripeWebhookRejectsInvalidSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.STRIPE_WEBHOOK_SECRET = "whsec_test"

	r := gin.New()
	r.POST("/webhook", StripeWebhook)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"garbage header", "not-a-signature"},
		{"stale forged signature", "t=1,v1=deadbeef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/webhook",
				strings.NewReader(`{"id":"evt_test","type":"invoice.paid"}`))
			if tt.header != "" {
				req.Header.Set("Stripe-Signature", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

// Unknown event types are acknowledged without touching the database, so
// Stripe never retries them.
func TestDispatchIgnoresUnknownEvents(t *testing.T) {
	event := stripe.Event{
		Type: "customer.created",
		Data: &stripe.EventData{Raw: []byte(`{"id":"cus_123"}`)},
	}
	if err := dispatch(nil, &event); err != nil {
		t.Errorf("unknown event type should be a no-op, got %v", err)
	}
}

// A payload that does not parse must error so the webhook returns 500 and
// Stripe redelivers.
func TestDispatchRejectsMalformedPayload(t *testing.T) {
	events := []stripe.Event{
		{Type: "checkout.session.completed", Data: &stripe.EventData{Raw: []byte(`{not json`)}},
		{Type: "customer.subscription.updated", Data: &stripe.EventData{Raw: []byte(`{not json`)}},
		{Type: "payment_intent.succeeded", Data: &stripe.EventData{Raw: []byte(`{not json`)}},
	}
	for i := range events {
		if err := dispatch(nil, &events[i]); err == nil {
			t.Errorf("%s with malformed payload should error", events[i].Type)
		}
	}
}

func TestSubscriptionStateFor(t *testing.T) {
	sub := func(status stripe.SubscriptionStatus) *stripe.Subscription {
		return &stripe.Subscription{
			ID:                 "sub_123",
			Status:             status,
			CurrentPeriodStart: 1754006400,
			CurrentPeriodEnd:   1756684800,
		}
	}

	tests := []struct {
		name       string
		status     stripe.SubscriptionStatus
		tier       string
		wantTier   string
		wantStatus string
	}{
		{"active keeps the tier", stripe.SubscriptionStatusActive, plans.TierPro, plans.TierPro, "active"},
		{"trialing keeps the tier", stripe.SubscriptionStatusTrialing, plans.TierEnterprise, plans.TierEnterprise, "trialing"},
		{"past_due keeps the tier", stripe.SubscriptionStatusPastDue, plans.TierPro, plans.TierPro, "past_due"},
		{"unpaid normalizes to past_due and keeps the tier", stripe.SubscriptionStatusUnpaid, plans.TierPro, plans.TierPro, "past_due"},
		{"canceled drops to FREE", stripe.SubscriptionStatusCanceled, plans.TierPro, plans.TierFree, "canceled"},
		{"incomplete_expired drops to FREE", stripe.SubscriptionStatusIncompleteExpired, plans.TierEnterprise, plans.TierFree, "canceled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates := subscriptionStateFor(sub(tt.status), tt.tier)

			if got := updates["subscription_tier"]; got != tt.wantTier {
				t.Errorf("tier = %v, want %v", got, tt.wantTier)
			}
			if got := updates["stripe_subscription_status"]; got != tt.wantStatus {
				t.Errorf("status = %v, want %v", got, tt.wantStatus)
			}
			if got := updates["stripe_subscription_id"]; got != "sub_123" {
				t.Errorf("subscription id = %v", got)
			}
			if got := updates["subscription_end"].(time.Time); !got.Equal(time.Unix(1756684800, 0)) {
				t.Errorf("subscription_end = %v", got)
			}
		})
	}
}

func TestSubscriptionPriceID(t *testing.T) {
	if got := subscriptionPriceID(&stripe.Subscription{}); got != "" {
		t.Errorf("empty subscription should have no price id, got %q", got)
	}

	sub := &stripe.Subscription{
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{{Price: &stripe.Price{ID: "price_pro_monthly"}}},
		},
	}
	if got := subscriptionPriceID(sub); got != "price_pro_monthly" {
		t.Errorf("price id = %q, want price_pro_monthly", got)
	}
}

// Checkout sessions without a latest invoice produce no ledger row instead of
// a row with an empty invoice id that would collide with the next one.
func TestRecordSubscriptionTransactionSkipsEmptyInvoice(t *testing.T) {
	if err := recordSubscriptionTransaction(nil, 1, "", 29.0, "usd", billing.TransactionStatusSucceeded, "Subscription started"); err != nil {
		t.Errorf("empty invoice id should be a no-op, got %v", err)
	}
}
