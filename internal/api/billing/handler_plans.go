package billing

import (
	"net/http"

	"skillytics-api/database"
	"skillytics-api/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// ListPlans is the public pricing catalog. Sits behind the response cache.
func ListPlans(c *gin.Context) {
	var catalog []plans.Plan
	if err := database.DB.Where("is_active = ?", true).Order("\"order\" ASC").Find(&catalog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}
	c.JSON(http.StatusOK, catalog)
}
