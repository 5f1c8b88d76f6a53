package learning

import (
	"net/http"
	"time"

	"skillytics-api/database"
	"skillytics-api/internal/domain/access"
	"skillytics-api/internal/domain/learning"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// callerEntitlements derives the caller's entitlements. Anonymous requests
// (the public catalog) get the FREE allowance.
func callerEntitlements(c *gin.Context) access.Entitlements {
	userID := c.GetUint("user_id")
	if userID == 0 {
		return access.EntitlementsFor("FREE")
	}
	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return access.EntitlementsFor("FREE")
	}
	return access.EntitlementsFor(access.EffectiveTier(time.Now(), &user))
}

// ListModules returns the module catalog. Modules beyond the caller's tier
// are listed but flagged locked, so the mission map can render upsells.
func ListModules(c *gin.Context) {
	ent := callerEntitlements(c)

	var modules []learning.SkillModule
	if err := database.DB.Order("\"order\" ASC").Find(&modules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load modules"})
		return
	}

	out := make([]gin.H, 0, len(modules))
	for _, m := range modules {
		out = append(out, gin.H{
			"id":          m.ID,
			"title":       m.Title,
			"description": m.Description,
			"order":       m.Order,
			"icon":        m.Icon,
			"color":       m.Color,
			"is_locked":   !ent.CanAccessModule(m.Order),
		})
	}

	c.JSON(http.StatusOK, gin.H{"modules": out, "tier": ent.Tier})
}

func GetModule(c *gin.Context) {
	ent := callerEntitlements(c)

	var module learning.SkillModule
	if err := database.DB.
		Preload("Missions", "is_published = ?", true).
		Where("id = ?", c.Param("id")).
		First(&module).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}

	if !ent.CanAccessModule(module.Order) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":    "This module requires a Pro subscription",
			"redirect": access.UpgradeTarget("PRO"),
		})
		return
	}

	c.JSON(http.StatusOK, module)
}
