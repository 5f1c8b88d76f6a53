package learning

import (
	"net/http"

	"skillytics-api/database"
	"skillytics-api/internal/domain/access"
	"skillytics-api/internal/domain/learning"

	"github.com/gin-gonic/gin"
)

// ListMissions returns published missions, optionally filtered by module.
// Locked missions stay listed (title and difficulty only) so the map shows
// what an upgrade unlocks.
func ListMissions(c *gin.Context) {
	ent := callerEntitlements(c)

	q := database.DB.Where("is_published = ?", true).Order("number ASC")
	if moduleID := c.Query("module_id"); moduleID != "" {
		q = q.Where("module_id = ?", moduleID)
	}

	var missions []learning.Mission
	if err := q.Find(&missions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load missions"})
		return
	}

	out := make([]gin.H, 0, len(missions))
	for _, m := range missions {
		locked := !ent.CanAccessMission(m.Number)
		entry := gin.H{
			"id":         m.ID,
			"module_id":  m.ModuleID,
			"title":      m.Title,
			"type":       m.Type,
			"number":     m.Number,
			"difficulty": m.Difficulty,
			"points":     m.Points,
			"is_locked":  locked,
		}
		if !locked {
			entry["objectives"] = m.Objectives
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{"missions": out, "tier": ent.Tier})
}

func GetMission(c *gin.Context) {
	ent := callerEntitlements(c)

	var mission learning.Mission
	if err := database.DB.
		Where("id = ? AND is_published = ?", c.Param("id"), true).
		First(&mission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mission not found"})
		return
	}

	if !ent.CanAccessMission(mission.Number) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":    "This mission requires a Pro subscription",
			"redirect": access.UpgradeTarget("PRO"),
		})
		return
	}

	c.JSON(http.StatusOK, mission)
}
