package users

import (
	"time"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"not null"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Avatar       *string
	Role         string `gorm:"not null;default:'user'"`
	IsVerified   bool

	// Gamification
	TotalPoints int `gorm:"not null;default:0"`
	Level       int `gorm:"not null;default:1"`
	Streak      int `gorm:"not null;default:0"`

	// Credits are whole-dollar units spendable in the marketplace. Mutated
	// only by webhook-confirmed top-ups and by credit purchases.
	Credits int `gorm:"not null;default:0"`

	// Billing state. SubscriptionTier is written only by the Stripe webhook
	// handlers and by team seat changes; client requests never set it
	// directly.
	SubscriptionTier         string  `gorm:"type:varchar(20);not null;default:'FREE'"`
	StripeCustomerID         *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`
	StripeSubscriptionID     *string `gorm:"column:stripe_subscription_id;uniqueIndex:idx_users_stripe_subscription_id"`
	StripeSubscriptionStatus *string `gorm:"column:stripe_subscription_status"`
	SubscriptionStart        *time.Time
	SubscriptionEnd          *time.Time

	// Enterprise membership
	OrganizationID   *uint
	OrganizationRole *string `gorm:"type:varchar(20)"`

	LastActiveAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
