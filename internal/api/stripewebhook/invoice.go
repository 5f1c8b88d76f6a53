package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"skillytics-api/internal/domain/billing"
	"skillytics-api/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/subscription"
	"gorm.io/gorm"
)

// recordSubscriptionTransaction writes one SUBSCRIPTION ledger row per
// invoice. The unique invoice-id index makes a replayed insert a conflict,
// which is treated as already recorded. Checkout completion and invoice.paid
// both arrive for the first invoice; whichever lands first wins.
func recordSubscriptionTransaction(tx *gorm.DB, userID uint, invoiceID string, amount float64, currency, status, description string) error {
	if invoiceID == "" {
		return nil
	}

	txn := billing.Transaction{
		UserID:          userID,
		Amount:          amount,
		Currency:        currency,
		Type:            billing.TransactionTypeSubscription,
		Status:          status,
		StripeInvoiceID: &invoiceID,
		Description:     description,
		ProcessedAt:     timePtr(time.Now()),
	}
	if err := tx.Create(&txn).Error; err != nil {
		var existing billing.Transaction
		if tx.Where("stripe_invoice_id = ?", invoiceID).First(&existing).Error == nil {
			return nil
		}
		return fmt.Errorf("failed to record subscription transaction: %w", err)
	}
	return nil
}

// handleInvoicePaid records the renewal payment and extends the local paid
// period.
func handleInvoicePaid(tx *gorm.DB, invoice *stripe.Invoice) error {
	user, err := findInvoiceUser(tx, invoice)
	if err != nil {
		fmt.Printf("⚠️ invoice.paid for unknown customer on invoice %s\n", invoice.ID)
		return nil
	}

	if err := recordSubscriptionTransaction(tx, user.ID, invoice.ID,
		float64(invoice.AmountPaid)/100.0, string(invoice.Currency),
		billing.TransactionStatusSucceeded, "Subscription renewal"); err != nil {
		return err
	}

	// Extend the paid window from the live subscription state.
	if invoice.Subscription != nil && invoice.Subscription.ID != "" {
		if subData, err := subscription.Get(invoice.Subscription.ID, nil); err == nil {
			updates := subscriptionStateUpdates(tx, subData)
			if err := tx.Model(&users.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to extend subscription period: %w", err)
			}
		}
	}

	fmt.Printf("💰 Invoice %s paid by user %d\n", invoice.ID, user.ID)
	return nil
}

// handleInvoicePaymentFailed records the failure and marks the subscription
// past_due. The tier is NOT dropped here: dunning and the final cancellation
// are Stripe's call and arrive as subscription events.
func handleInvoicePaymentFailed(tx *gorm.DB, invoice *stripe.Invoice) error {
	user, err := findInvoiceUser(tx, invoice)
	if err != nil {
		return nil
	}

	if err := recordSubscriptionTransaction(tx, user.ID, invoice.ID,
		float64(invoice.AmountDue)/100.0, string(invoice.Currency),
		billing.TransactionStatusFailed, "Subscription renewal failed"); err != nil {
		return err
	}

	if err := tx.Model(&users.User{}).Where("id = ?", user.ID).
		Update("stripe_subscription_status", "past_due").Error; err != nil {
		return fmt.Errorf("failed to mark past_due: %w", err)
	}

	fmt.Printf("⚠️ Invoice %s payment failed for user %d\n", invoice.ID, user.ID)
	return nil
}

func findInvoiceUser(tx *gorm.DB, invoice *stripe.Invoice) (*users.User, error) {
	var user users.User

	if invoice.Customer != nil && invoice.Customer.ID != "" {
		if err := tx.Where("stripe_customer_id = ?", invoice.Customer.ID).First(&user).Error; err == nil {
			return &user, nil
		}
	}
	if invoice.Subscription != nil && invoice.Subscription.ID != "" {
		if err := tx.Where("stripe_subscription_id = ?", invoice.Subscription.ID).First(&user).Error; err == nil {
			return &user, nil
		}
	}

	return nil, errors.New("no user for invoice")
}

func timePtr(t time.Time) *time.Time { return &t }
