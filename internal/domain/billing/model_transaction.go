package billing

import (
	"time"
)

const (
	TransactionTypeOneTime      = "ONE_TIME"
	TransactionTypeSubscription = "SUBSCRIPTION"

	TransactionStatusPending   = "PENDING"
	TransactionStatusSucceeded = "SUCCEEDED"
	TransactionStatusFailed    = "FAILED"
)

// Transaction is an append-only ledger entry. The unique indexes on the
// Stripe payment-intent and invoice ids turn a replayed webhook insert into a
// constraint conflict instead of a duplicate row.
type Transaction struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Amount   float64 `json:"amount"`
	Currency string  `gorm:"type:varchar(10);not null;default:'usd'" json:"currency"`
	Type     string  `gorm:"type:varchar(20);not null" json:"type"`
	Status   string  `gorm:"type:varchar(20);not null" json:"status"`

	StripePaymentIntentID *string `gorm:"column:stripe_payment_intent_id;uniqueIndex:idx_transactions_payment_intent" json:"-"`
	StripeInvoiceID       *string `gorm:"column:stripe_invoice_id;uniqueIndex:idx_transactions_invoice" json:"-"`

	Description string  `json:"description"`
	Metadata    *string `json:"-"` // JSON blob, e.g. {"credits":50}

	ProcessedAt *time.Time `json:"processed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
