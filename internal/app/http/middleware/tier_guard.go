package middleware

import (
	"net/http"
	"time"

	"skillytics-api/database"
	"skillytics-api/internal/domain/access"
	"skillytics-api/internal/domain/plans"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireTier gates a route group behind a minimum subscription tier. The
// tier is re-derived from the user row on every request, so an expired
// subscription is FREE here no matter what the stored column says.
//
// This is defense in depth: handlers doing tier-sensitive work re-check
// entitlements themselves against the same policy table.
func RequireTier(wantTier string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		var user users.User
		if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		tier := access.EffectiveTier(time.Now(), &user)
		if !plans.TierAtLeast(tier, wantTier) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "Subscription upgrade required",
				"required": wantTier,
				"tier":     tier,
				"redirect": access.UpgradeTarget(wantTier),
			})
			return
		}

		c.Set("tier", tier)
		c.Next()
	}
}

// GateContentPath applies the declarative route-pattern policy to an
// arbitrary content path (e.g. /mission/41) on behalf of the UI. Used by the
// /api/gate endpoint so the frontend middleware and the server agree on one
// rule table.
func GateContentPath(c *gin.Context, user *users.User, path string) (allowed bool, redirect string) {
	required := access.RequiredTier(path)
	if required == plans.TierFree {
		return true, ""
	}
	tier := access.EffectiveTier(time.Now(), user)
	if plans.TierAtLeast(tier, required) {
		return true, ""
	}
	return false, access.UpgradeTarget(required)
}
