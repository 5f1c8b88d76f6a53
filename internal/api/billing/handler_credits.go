package billing

import (
	"encoding/json"
	"fmt"
	"net/http"

	"skillytics-api/config"
	"skillytics-api/database"
	"skillytics-api/internal/domain/billing"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

const (
	minCreditPurchase = 5
	maxCreditPurchase = 500
)

// addCredits opens a one-time payment checkout for marketplace credits
// (1 credit = 1 USD). The credits are NOT granted here: a pending ledger row
// is written and the payment_intent.succeeded webhook flips it to SUCCEEDED
// and increments the balance.
func addCredits(c *gin.Context, user *users.User, credits int) {
	stripe.Key = config.STRIPE_SECRET_KEY

	if credits < minCreditPurchase || credits > maxCreditPurchase {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Credits must be between %d and %d", minCreditPurchase, maxCreditPurchase),
		})
		return
	}

	customerID, err := ensureStripeCustomer(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	meta, _ := json.Marshal(map[string]int{"credits": credits})
	metaStr := string(meta)

	txn := billing.Transaction{
		UserID:      user.ID,
		Amount:      float64(credits),
		Currency:    "usd",
		Type:        billing.TransactionTypeOneTime,
		Status:      billing.TransactionStatusPending,
		Description: fmt.Sprintf("%d platform credits", credits),
		Metadata:    &metaStr,
	}
	if err := database.DB.Create(&txn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record pending purchase"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/dashboard?credits=purchased"),
		CancelURL:  stripe.String(config.APP_URL + "/dashboard?credits=canceled"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		Customer:   stripe.String(customerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(int64(credits) * 100),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%d Skillytics credits", credits)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(user.ID)),

		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				"kind":           "credits",
				"user_id":        fmt.Sprint(user.ID),
				"credits":        fmt.Sprint(credits),
				"transaction_id": fmt.Sprint(txn.ID),
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
