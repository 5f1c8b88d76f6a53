package admin

import (
	"net/http"

	"skillytics-api/config"
	"skillytics-api/database"
	"skillytics-api/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// SeedPlans upserts the plan catalog from the configured Stripe price ids.
// Safe to call repeatedly; it is how a fresh deployment gets its catalog.
func SeedPlans(c *gin.Context) {
	catalog := []plans.Plan{
		{
			ID:                   "pro",
			Name:                 "Pro",
			Tier:                 plans.TierPro,
			PriceMonthly:         29,
			PriceAnnual:          290,
			StripeMonthlyPriceID: config.STRIPE_PRO_MONTHLY_PRICE_ID,
			StripeAnnualPriceID:  config.STRIPE_PRO_ANNUAL_PRICE_ID,
			Features:             `["All modules and missions","Advanced analytics","Certifications","Marketplace access"]`,
			HasAnalytics:         true,
			HasCertifications:    true,
			HasMarketplace:       true,
			IsActive:             true,
			Order:                1,
		},
		{
			ID:                   "enterprise",
			Name:                 "Enterprise",
			Tier:                 plans.TierEnterprise,
			PriceMonthly:         99,
			PriceAnnual:          990,
			StripeMonthlyPriceID: config.STRIPE_ENTERPRISE_MONTHLY_PRICE_ID,
			StripeAnnualPriceID:  config.STRIPE_ENTERPRISE_ANNUAL_PRICE_ID,
			Features:             `["Everything in Pro","Team management","SSO","Team analytics","Custom learning paths"]`,
			HasAnalytics:         true,
			HasCertifications:    true,
			HasMarketplace:       true,
			HasTeamFeatures:      true,
			IsActive:             true,
			Order:                2,
		},
	}

	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&catalog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed plans", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan catalog seeded", "plans": catalog})
}
