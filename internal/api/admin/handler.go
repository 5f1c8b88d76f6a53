package admin

import (
	"net/http"
	"strconv"
	"time"

	"skillytics-api/database"
	"skillytics-api/internal/domain/billing"
	"skillytics-api/internal/domain/certs"
	"skillytics-api/internal/domain/learning"
	"skillytics-api/internal/domain/market"
	"skillytics-api/internal/domain/plans"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats aggregates the numbers the admin dashboard shows.
func GetDashboardStats(c *gin.Context) {
	var totalUsers, proUsers, enterpriseUsers int64
	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&users.User{}).Where("subscription_tier = ?", plans.TierPro).Count(&proUsers)
	database.DB.Model(&users.User{}).Where("subscription_tier = ?", plans.TierEnterprise).Count(&enterpriseUsers)

	var activeToday int64
	since := time.Now().Add(-24 * time.Hour)
	database.DB.Model(&users.User{}).Where("last_active_at > ?", since).Count(&activeToday)

	var revenue struct{ Total float64 }
	database.DB.Model(&billing.Transaction{}).
		Where("status = ?", billing.TransactionStatusSucceeded).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&revenue)

	var missionsCompleted int64
	database.DB.Model(&learning.MissionProgress{}).
		Where("status IN ?", []string{learning.StatusCompleted, learning.StatusMastered}).
		Count(&missionsCompleted)

	var certsIssued int64
	database.DB.Model(&certs.UserCertification{}).Count(&certsIssued)

	var pendingReview int64
	database.DB.Model(&market.Item{}).Where("status = ?", market.ItemStatusPendingReview).Count(&pendingReview)

	c.JSON(http.StatusOK, gin.H{
		"users": gin.H{
			"total":        totalUsers,
			"pro":          proUsers,
			"enterprise":   enterpriseUsers,
			"active_today": activeToday,
		},
		"revenue":              revenue.Total,
		"missions_completed":   missionsCompleted,
		"certificates_issued":  certsIssued,
		"items_pending_review": pendingReview,
	})
}

func ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	const perPage = 50

	q := database.DB.Model(&users.User{})
	if tier := c.Query("tier"); tier != "" {
		q = q.Where("subscription_tier = ?", tier)
	}
	if search := c.Query("q"); search != "" {
		q = q.Where("email ILIKE ? OR name ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	q.Count(&total)

	var rows []users.User
	if err := q.Order("created_at DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, u := range rows {
		out = append(out, gin.H{
			"id":                  u.ID,
			"name":                u.Name,
			"email":               u.Email,
			"role":                u.Role,
			"is_verified":         u.IsVerified,
			"subscription_tier":   u.SubscriptionTier,
			"subscription_status": u.StripeSubscriptionStatus,
			"total_points":        u.TotalPoints,
			"organization_id":     u.OrganizationID,
			"created_at":          u.CreatedAt,
			"last_active_at":      u.LastActiveAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"users": out, "total": total, "page": page, "per_page": perPage})
}

func ListPayments(c *gin.Context) {
	var rows []billing.Transaction
	if err := database.DB.Order("created_at DESC").Limit(200).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ReviewItem approves or rejects a marketplace submission.
func ReviewItem(c *gin.Context) {
	var body struct {
		ItemID   string `json:"item_id" binding:"required"`
		Decision string `json:"decision" binding:"required"` // approve | reject
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id and decision are required"})
		return
	}

	var item market.Item
	if err := database.DB.Where("id = ?", body.ItemID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if item.Status != market.ItemStatusPendingReview {
		c.JSON(http.StatusConflict, gin.H{"error": "Item is not pending review"})
		return
	}

	updates := map[string]interface{}{}
	switch body.Decision {
	case "approve":
		now := time.Now()
		updates["status"] = market.ItemStatusApproved
		updates["published_at"] = now
	case "reject":
		updates["status"] = market.ItemStatusRejected
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be approve or reject"})
		return
	}

	if err := database.DB.Model(&market.Item{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item " + body.Decision + "d"})
}
