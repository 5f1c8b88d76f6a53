package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"skillytics-api/internal/domain/billing"
	"skillytics-api/internal/domain/market"
	"skillytics-api/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handlePaymentIntentSucceeded fulfils one-time purchases. The metadata
// "kind" set when the checkout session was created decides what is being
// bought. Reached from both payment_intent.succeeded and the payment-mode
// checkout.session.completed, so every path re-checks state before granting.
func handlePaymentIntentSucceeded(tx *gorm.DB, intent *stripe.PaymentIntent) error {
	switch intent.Metadata["kind"] {
	case "credits":
		return fulfillCredits(tx, intent)
	case "marketplace":
		return fulfillMarketplacePurchase(tx, intent)
	default:
		// Not one of ours (e.g. an intent created by the billing portal).
		return nil
	}
}

func fulfillCredits(tx *gorm.DB, intent *stripe.PaymentIntent) error {
	txnID, err := strconv.ParseUint(intent.Metadata["transaction_id"], 10, 64)
	if err != nil {
		return fmt.Errorf("credits intent %s missing transaction_id", intent.ID)
	}
	credits, err := strconv.Atoi(intent.Metadata["credits"])
	if err != nil || credits <= 0 {
		return fmt.Errorf("credits intent %s has invalid credits metadata", intent.ID)
	}

	var txn billing.Transaction
	if err := tx.Where("id = ?", uint(txnID)).First(&txn).Error; err != nil {
		return fmt.Errorf("pending credits transaction %d not found: %w", txnID, err)
	}
	if txn.Status == billing.TransactionStatusSucceeded {
		return nil
	}

	intentID := intent.ID
	now := time.Now()
	if err := tx.Model(&billing.Transaction{}).Where("id = ?", txn.ID).Updates(map[string]interface{}{
		"status":                   billing.TransactionStatusSucceeded,
		"stripe_payment_intent_id": intentID,
		"processed_at":             now,
	}).Error; err != nil {
		return fmt.Errorf("failed to settle credits transaction: %w", err)
	}

	if err := tx.Model(&users.User{}).Where("id = ?", txn.UserID).
		Update("credits", gorm.Expr("credits + ?", credits)).Error; err != nil {
		return fmt.Errorf("failed to grant credits: %w", err)
	}

	fmt.Printf("💳 Granted %d credits to user %d\n", credits, txn.UserID)
	return nil
}

// fulfillMarketplacePurchase writes all rows of a sale as one unit: the
// purchase grant, the ledger entry, the item's sales counter, and the
// creator's payout accrual. The unique (user, item) purchase index makes a
// second delivery a clean no-op.
func fulfillMarketplacePurchase(tx *gorm.DB, intent *stripe.PaymentIntent) error {
	userID, err := userIDFromMetadata(intent.Metadata, "")
	if err != nil {
		return err
	}
	itemID := intent.Metadata["item_id"]
	if itemID == "" {
		return errors.New("marketplace intent missing item_id")
	}

	var existing market.Purchase
	if tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&existing).Error == nil {
		return nil
	}

	var item market.Item
	if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
		return fmt.Errorf("marketplace item %s not found: %w", itemID, err)
	}

	amount := float64(intent.Amount) / 100.0
	intentID := intent.ID

	purchase := market.Purchase{
		UserID:          userID,
		ItemID:          item.ID,
		Amount:          amount,
		Currency:        item.Currency,
		PaymentMethod:   market.PaymentMethodStripe,
		StripePaymentID: &intentID,
	}
	if err := tx.Create(&purchase).Error; err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}

	now := time.Now()
	txn := billing.Transaction{
		UserID:                userID,
		Amount:                amount,
		Currency:              item.Currency,
		Type:                  billing.TransactionTypeOneTime,
		Status:                billing.TransactionStatusSucceeded,
		StripePaymentIntentID: &intentID,
		Description:           "Marketplace: " + item.Title,
		ProcessedAt:           &now,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return fmt.Errorf("failed to record marketplace transaction: %w", err)
	}

	if err := tx.Model(&market.Item{}).Where("id = ?", item.ID).
		Update("total_sales", gorm.Expr("total_sales + 1")).Error; err != nil {
		return fmt.Errorf("failed to bump sales counter: %w", err)
	}

	earnings := market.CreatorEarnings(amount, item.RevenueShare)
	if err := tx.Model(&market.Creator{}).Where("id = ?", item.CreatorID).Updates(map[string]interface{}{
		"pending_payout": gorm.Expr("pending_payout + ?", earnings),
		"total_earnings": gorm.Expr("total_earnings + ?", earnings),
	}).Error; err != nil {
		return fmt.Errorf("failed to accrue creator earnings: %w", err)
	}

	fmt.Printf("🛒 Marketplace item %s sold to user %d (%.2f %s)\n", item.ID, userID, amount, item.Currency)
	return nil
}
