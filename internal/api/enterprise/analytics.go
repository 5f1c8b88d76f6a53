package enterprise

import (
	"net/http"
	"time"

	"skillytics-api/database"
	"skillytics-api/internal/domain/learning"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GetTeamAnalytics aggregates 30 days of activity across the organization.
func GetTeamAnalytics(c *gin.Context) {
	user, ok := currentMember(c)
	if !ok {
		return
	}
	if user.OrganizationID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "You are not part of an organization"})
		return
	}

	var members []users.User
	database.DB.Where("organization_id = ?", *user.OrganizationID).Find(&members)
	memberIDs := make([]uint, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}

	since := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -30)
	var rows []learning.DailyAnalytics
	database.DB.Where("user_id IN ? AND date >= ?", memberIDs, since).Find(&rows)

	missionsCompleted := 0
	totalAttempts := 0
	activity := map[uint]int{}
	for _, r := range rows {
		missionsCompleted += r.MissionsCompleted
		totalAttempts += r.TotalAttempts
		activity[r.UserID] += r.MissionsCompleted
	}

	leaderboard := make([]gin.H, 0, len(members))
	for _, m := range members {
		leaderboard = append(leaderboard, gin.H{
			"id":                 m.ID,
			"name":               m.Name,
			"total_points":       m.TotalPoints,
			"level":              m.Level,
			"missions_completed": activity[m.ID],
			"last_active_at":     m.LastActiveAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"window_days":        30,
		"members":            len(members),
		"missions_completed": missionsCompleted,
		"total_attempts":     totalAttempts,
		"leaderboard":        leaderboard,
	})
}
