package market

import (
	"math"
	"time"
)

const (
	ItemStatusDraft         = "DRAFT"
	ItemStatusPendingReview = "PENDING_REVIEW"
	ItemStatusApproved      = "APPROVED"
	ItemStatusRejected      = "REJECTED"
	ItemStatusArchived      = "ARCHIVED"

	PaymentMethodStripe  = "stripe"
	PaymentMethodCredits = "credits"
	PaymentMethodFree    = "free"

	// DefaultRevenueShare is the creator's cut of each sale; the platform
	// keeps the rest.
	DefaultRevenueShare = 0.6
)

type Creator struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex:idx_creators_user;not null" json:"user_id"`

	// Payout accrual. PendingPayout is owed but not yet disbursed;
	// TotalEarnings only ever grows.
	PendingPayout float64 `json:"pending_payout"`
	TotalEarnings float64 `json:"total_earnings"`

	StripeAccountID *string `gorm:"column:stripe_account_id" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

type Item struct {
	ID        string `gorm:"primaryKey" json:"id"` // uuid
	CreatorID uint   `gorm:"index;not null" json:"creator_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Type        string `gorm:"type:varchar(32)" json:"type"`
	Category    string `gorm:"index;type:varchar(64)" json:"category"`
	Tags        string `json:"tags"` // JSON list

	Price    float64 `json:"price"`
	Currency string  `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	IsFree   bool    `json:"is_free"`

	Content        string  `json:"-"` // JSON, gated behind purchase
	PreviewContent *string `json:"preview_content,omitempty"`
	FileURLs       string  `json:"file_urls"` // JSON list

	Status       string  `gorm:"index;type:varchar(20);default:'DRAFT'" json:"status"`
	RevenueShare float64 `gorm:"default:0.6" json:"revenue_share"`

	TotalSales    int     `json:"total_sales"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Purchase is unique per (user, item): buying twice is a conflict, not a
// second grant.
type Purchase struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex:idx_purchases_user_item;not null" json:"user_id"`
	ItemID string `gorm:"uniqueIndex:idx_purchases_user_item;not null" json:"item_id"`

	Amount        float64 `json:"amount"`
	Currency      string  `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	PaymentMethod string  `gorm:"type:varchar(20)" json:"payment_method"`
	StripePaymentID *string `gorm:"column:stripe_payment_id" json:"-"`

	AccessExpires *time.Time `json:"access_expires,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreditCost converts a USD price into whole credits (1 credit = 1 USD,
// fractional prices round up).
func CreditCost(price float64) int {
	return int(math.Ceil(price))
}

// CreatorEarnings returns the creator's share of a sale amount.
func CreatorEarnings(amount, revenueShare float64) float64 {
	return amount * revenueShare
}
