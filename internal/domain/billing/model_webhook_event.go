package billing

import "time"

// WebhookEvent records every Stripe event id that has been applied. Stripe
// delivers at least once; the unique index makes reprocessing a replayed
// event a no-op. Rows are written in the same transaction as the state
// mutation they guard, so a failed handler leaves no marker and the retry
// runs the full event again.
type WebhookEvent struct {
	ID            uint   `gorm:"primaryKey"`
	StripeEventID string `gorm:"column:stripe_event_id;uniqueIndex:idx_webhook_events_stripe_event_id;not null"`
	Type          string `gorm:"type:varchar(64)"`
	ProcessedAt   time.Time
}
