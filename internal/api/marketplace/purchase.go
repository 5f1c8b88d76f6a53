package marketplace

import (
	"fmt"
	"net/http"
	"time"

	"skillytics-api/config"
	"skillytics-api/database"
	"skillytics-api/internal/domain/billing"
	"skillytics-api/internal/domain/market"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"gorm.io/gorm"
)

// purchaseItem handles the three purchase paths. Free items and credit
// purchases settle immediately; card purchases go through Stripe Checkout and
// are fulfilled by the payment webhook.
func purchaseItem(c *gin.Context, itemID, paymentMethod string) {
	userID := c.GetUint("user_id")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}

	var item market.Item
	if err := database.DB.Where("id = ? AND status = ?", itemID, market.ItemStatusApproved).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var existing market.Purchase
	if database.DB.Where("user_id = ? AND item_id = ?", userID, item.ID).First(&existing).Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already purchased"})
		return
	}

	var creator market.Creator
	if database.DB.Where("user_id = ?", userID).First(&creator).Error == nil && creator.ID == item.CreatorID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot buy your own item"})
		return
	}

	// Free items never touch a payment rail.
	if item.IsFree || item.Price == 0 {
		grantFreeItem(c, userID, &item)
		return
	}

	switch paymentMethod {
	case market.PaymentMethodCredits:
		purchaseWithCredits(c, userID, &item)
	case market.PaymentMethodStripe, "":
		purchaseWithStripe(c, userID, &item)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_method must be stripe or credits"})
	}
}

func grantFreeItem(c *gin.Context, userID uint, item *market.Item) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		purchase := market.Purchase{
			UserID:        userID,
			ItemID:        item.ID,
			Amount:        0,
			Currency:      item.Currency,
			PaymentMethod: market.PaymentMethodFree,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}
		return tx.Model(&market.Item{}).Where("id = ?", item.ID).
			Update("total_sales", gorm.Expr("total_sales + 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to record purchase"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item added to your library", "payment_method": market.PaymentMethodFree})
}

// purchaseWithCredits settles the sale inside one transaction: balance
// check, debit, purchase grant, ledger entry, sales counter, and creator
// accrual stand or fall together.
func purchaseWithCredits(c *gin.Context, userID uint, item *market.Item) {
	cost := market.CreditCost(item.Price)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user users.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if user.Credits < cost {
			return errInsufficientCredits
		}

		if err := tx.Model(&users.User{}).Where("id = ?", userID).
			Update("credits", gorm.Expr("credits - ?", cost)).Error; err != nil {
			return err
		}

		purchase := market.Purchase{
			UserID:        userID,
			ItemID:        item.ID,
			Amount:        float64(cost),
			Currency:      item.Currency,
			PaymentMethod: market.PaymentMethodCredits,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		now := time.Now()
		txn := billing.Transaction{
			UserID:      userID,
			Amount:      float64(cost),
			Currency:    item.Currency,
			Type:        billing.TransactionTypeOneTime,
			Status:      billing.TransactionStatusSucceeded,
			Description: fmt.Sprintf("Marketplace (credits): %s", item.Title),
			ProcessedAt: &now,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		if err := tx.Model(&market.Item{}).Where("id = ?", item.ID).
			Update("total_sales", gorm.Expr("total_sales + 1")).Error; err != nil {
			return err
		}

		earnings := market.CreatorEarnings(float64(cost), item.RevenueShare)
		return tx.Model(&market.Creator{}).Where("id = ?", item.CreatorID).Updates(map[string]interface{}{
			"pending_payout": gorm.Expr("pending_payout + ?", earnings),
			"total_earnings": gorm.Expr("total_earnings + ?", earnings),
		}).Error
	})
	if err == errInsufficientCredits {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":       "Not enough credits",
			"credit_cost": cost,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete purchase"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Item purchased with credits",
		"payment_method": market.PaymentMethodCredits,
		"credits_spent":  cost,
	})
}

var errInsufficientCredits = fmt.Errorf("insufficient credits")

func purchaseWithStripe(c *gin.Context, userID uint, item *market.Item) {
	stripe.Key = config.STRIPE_SECRET_KEY

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/marketplace?purchase=success"),
		CancelURL:  stripe.String(config.APP_URL + "/marketplace?purchase=canceled"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(int64(item.Price * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(item.Title),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(userID)),

		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				"kind":    "marketplace",
				"user_id": fmt.Sprint(userID),
				"item_id": item.ID,
			},
		},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL, "session_id": s.ID, "payment_method": market.PaymentMethodStripe})
}
