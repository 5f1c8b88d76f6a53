package learning

import (
	"net/http"
	"time"

	"skillytics-api/database"
	"skillytics-api/internal/domain/learning"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GetProgress returns the caller's per-mission progress plus aggregate
// counters for the dashboard.
func GetProgress(c *gin.Context) {
	userID := c.GetUint("user_id")

	var rows []learning.MissionProgress
	if err := database.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}

	completed := 0
	attempts := 0
	timeSpent := 0
	for _, r := range rows {
		if learning.IsComplete(r.Status) {
			completed++
		}
		attempts += r.Attempts
		timeSpent += r.TimeSpent
	}

	var user users.User
	database.DB.First(&user, userID)

	c.JSON(http.StatusOK, gin.H{
		"progress": rows,
		"summary": gin.H{
			"missions_completed": completed,
			"total_attempts":     attempts,
			"time_spent":         timeSpent,
			"total_points":       user.TotalPoints,
			"level":              user.Level,
			"streak":             user.Streak,
		},
	})
}

// GetAnalytics returns the daily activity series for the requested window
// (default 30 days). The route sits behind the Pro tier guard.
func GetAnalytics(c *gin.Context) {
	userID := c.GetUint("user_id")

	days := 30
	if c.Query("days") == "7" {
		days = 7
	} else if c.Query("days") == "90" {
		days = 90
	}
	since := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)

	var rows []learning.DailyAnalytics
	if err := database.DB.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "analytics": rows})
}
