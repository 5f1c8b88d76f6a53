package users

import (
	"net/http"

	"skillytics-api/database"
	"skillytics-api/internal/app/http/middleware"
	"skillytics-api/internal/domain/access"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GateContent answers "may I open this page?" for the frontend router. The
// answer comes from the same rule table the API guards use, so the client
// and the server can never disagree about what a tier unlocks.
func GateContent(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path query parameter is required"})
		return
	}

	userID := c.GetUint("user_id")
	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	allowed, redirect := middleware.GateContentPath(c, &user, path)
	resp := gin.H{
		"allowed":  allowed,
		"required": access.RequiredTier(path),
	}
	if !allowed {
		resp["redirect"] = redirect
	}
	c.JSON(http.StatusOK, resp)
}
