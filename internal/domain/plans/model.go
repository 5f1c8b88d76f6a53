package plans

// Plan is immutable catalog data. Rows are written only by the admin seed
// endpoint; everything at runtime reads them.
type Plan struct {
	ID   string `gorm:"primaryKey" json:"id"` // e.g. "pro", "enterprise"
	Name string `json:"name"`
	Tier string `gorm:"column:tier;not null" json:"tier"`

	PriceMonthly float64 `json:"price_monthly"`
	PriceAnnual  float64 `json:"price_annual"`

	StripeMonthlyPriceID string `gorm:"column:stripe_monthly_price_id;uniqueIndex:idx_plans_stripe_monthly_price_id" json:"-"`
	StripeAnnualPriceID  string `gorm:"column:stripe_annual_price_id;uniqueIndex:idx_plans_stripe_annual_price_id" json:"-"`

	// Features is a JSON-encoded list of display strings.
	Features    string `json:"features"`
	MaxMissions int    `json:"max_missions"`

	HasAnalytics      bool `json:"has_analytics"`
	HasCertifications bool `json:"has_certifications"`
	HasMarketplace    bool `json:"has_marketplace"`
	HasTeamFeatures   bool `json:"has_team_features"`

	IsActive bool `json:"is_active"`
	Order    int  `json:"order"`
}
