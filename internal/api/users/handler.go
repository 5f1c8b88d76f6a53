package users

import (
	"net/http"
	"time"

	"skillytics-api/database"
	"skillytics-api/internal/domain/access"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var verif users.VerificationToken
	if err := database.DB.Where("token = ? AND type = ?", token, "email_verify").First(&verif).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}
	if !verif.ExpiresAt.IsZero() && time.Now().After(verif.ExpiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", verif.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	database.DB.Delete(&verif)

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// Me returns the authenticated user's profile with the effective
// subscription tier and the feature entitlements it grants.
func Me(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	tier := access.EffectiveTier(time.Now(), &user)
	ent := access.EntitlementsFor(tier)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":                 user.ID,
			"name":               user.Name,
			"email":              user.Email,
			"avatar":             user.Avatar,
			"role":               user.Role,
			"auth_provider":      user.AuthProvider,
			"total_points":       user.TotalPoints,
			"level":              user.Level,
			"streak":             user.Streak,
			"credits":            user.Credits,
			"organization_id":    user.OrganizationID,
			"organization_role":  user.OrganizationRole,
			"subscription_tier":  tier,
			"subscription_status": user.StripeSubscriptionStatus,
			"subscription_end":   user.SubscriptionEnd,
		},
		"entitlements": ent,
	})
}

func UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		Name   *string `json:"name"`
		Avatar *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil && *input.Name != "" {
		updates["name"] = *input.Name
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
