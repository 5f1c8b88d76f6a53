package enterprise

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"skillytics-api/config"
	"skillytics-api/database"
	"skillytics-api/internal/domain/orgs"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const invitationTTL = 7 * 24 * time.Hour

func currentMember(c *gin.Context) (*users.User, bool) {
	userID := c.GetUint("user_id")
	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}
	return &user, true
}

// GetOrganization returns the caller's team overview: members, seat usage,
// pending invitations, and learning paths.
func GetOrganization(c *gin.Context) {
	user, ok := currentMember(c)
	if !ok {
		return
	}
	if user.OrganizationID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "You are not part of an organization"})
		return
	}

	var org orgs.Organization
	if err := database.DB.First(&org, *user.OrganizationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}

	var members []users.User
	database.DB.Where("organization_id = ?", org.ID).Find(&members)

	memberList := make([]gin.H, 0, len(members))
	for _, m := range members {
		memberList = append(memberList, gin.H{
			"id":             m.ID,
			"name":           m.Name,
			"email":          m.Email,
			"role":           m.OrganizationRole,
			"total_points":   m.TotalPoints,
			"level":          m.Level,
			"last_active_at": m.LastActiveAt,
		})
	}

	var invites []orgs.Invitation
	database.DB.Where("organization_id = ? AND accepted_at IS NULL AND expires_at > ?", org.ID, time.Now()).Find(&invites)

	var paths []orgs.LearningPath
	database.DB.Where("organization_id = ? AND is_active = ?", org.ID, true).Find(&paths)

	c.JSON(http.StatusOK, gin.H{
		"organization":   org,
		"members":        memberList,
		"seats_used":     len(members),
		"seat_limit":     org.SeatLimit,
		"invitations":    invites,
		"learning_paths": paths,
		"my_role":        user.OrganizationRole,
	})
}

// ManageOrganization dispatches POST /api/enterprise actions.
func ManageOrganization(c *gin.Context) {
	var body struct {
		Action string `json:"action" binding:"required"`

		Name   string `json:"name"`
		Domain string `json:"domain"`

		Email    string `json:"email"`
		Role     string `json:"role"`
		MemberID uint   `json:"member_id"`

		Title          string     `json:"title"`
		Description    string     `json:"description"`
		ModuleIDs      string     `json:"module_ids"`
		TargetDeadline *time.Time `json:"target_deadline"`

		SSOProvider string `json:"sso_provider"`
		SSOConfig   string `json:"sso_config"`
		SSOEnabled  *bool  `json:"sso_enabled"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid action"})
		return
	}
	if !orgActions[body.Action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
		return
	}

	user, ok := currentMember(c)
	if !ok {
		return
	}

	if body.Action == "create_organization" {
		createOrganization(c, user, body.Name, body.Domain)
		return
	}

	// Everything below requires a managing role in an existing org.
	if user.OrganizationID == nil || user.OrganizationRole == nil || !orgs.CanManage(*user.OrganizationRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Requires an organization admin role"})
		return
	}
	switch body.Action {
	case "invite_member":
		inviteMember(c, *user.OrganizationID, body.Email, body.Role)
	case "remove_member":
		removeMember(c, user, body.MemberID)
	case "update_role":
		updateMemberRole(c, user, body.MemberID, body.Role)
	case "create_learning_path":
		createLearningPath(c, *user.OrganizationID, body.Title, body.Description, body.ModuleIDs, body.TargetDeadline)
	case "update_sso":
		configureSSO(c, *user.OrganizationID, body.SSOProvider, body.SSOConfig, body.SSOEnabled)
	}
}

// Accepting an invitation is not listed here: it happens on
// POST /api/enterprise/join, outside the enterprise tier guard.
var orgActions = map[string]bool{
	"create_organization":  true,
	"invite_member":        true,
	"remove_member":        true,
	"update_role":          true,
	"create_learning_path": true,
	"update_sso":           true,
}

func createOrganization(c *gin.Context, user *users.User, name, domain string) {
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Organization name is required"})
		return
	}
	if user.OrganizationID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already belong to an organization"})
		return
	}

	org := orgs.Organization{Name: name, SeatLimit: 50}
	if domain != "" {
		org.Domain = &domain
	}

	owner := orgs.RoleOwner
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		return tx.Model(&users.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"organization_id":   org.ID,
			"organization_role": owner,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create organization (domain may be taken)"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"organization": org, "my_role": owner})
}

func inviteMember(c *gin.Context, orgID uint, email, role string) {
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}
	if role != orgs.RoleAdmin {
		role = orgs.RoleMember
	}

	var org orgs.Organization
	if err := database.DB.First(&org, orgID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}

	var seats int64
	database.DB.Model(&users.User{}).Where("organization_id = ?", orgID).Count(&seats)
	if int(seats) >= org.SeatLimit {
		c.JSON(http.StatusForbidden, gin.H{"error": "Seat limit reached"})
		return
	}

	var existingMember users.User
	if err := database.DB.Where("organization_id = ? AND email = ?", orgID, email).First(&existingMember).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "That user is already a member"})
		return
	}

	var invites []orgs.Invitation
	database.DB.Where("organization_id = ? AND email = ?", orgID, email).Find(&invites)
	for i := range invites {
		if orgs.InvitationPending(&invites[i], time.Now()) {
			c.JSON(http.StatusConflict, gin.H{"error": "An invitation for that email is already pending"})
			return
		}
	}

	tokenBytes := make([]byte, 24)
	if _, err := rand.Read(tokenBytes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}
	invite := orgs.Invitation{
		OrganizationID: orgID,
		Email:          email,
		Role:           role,
		Token:          hex.EncodeToString(tokenBytes),
		ExpiresAt:      time.Now().Add(invitationTTL),
	}
	if err := database.DB.Create(&invite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	link := fmt.Sprintf("%s/join-team?token=%s", config.APP_URL, invite.Token)
	fmt.Println("📨 Team invitation link:", link)

	c.JSON(http.StatusCreated, gin.H{"message": "Invitation sent", "expires_at": invite.ExpiresAt})
}

// JoinTeam consumes an invitation token. It sits outside the enterprise tier
// guard: joining a team is exactly how a user without their own subscription
// gets enterprise access, via the organization's seats.
func JoinTeam(c *gin.Context) {
	var body struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	user, ok := currentMember(c)
	if !ok {
		return
	}
	acceptInvitation(c, user, body.Token)
}

func acceptInvitation(c *gin.Context, user *users.User, token string) {
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}
	if user.OrganizationID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already belong to an organization"})
		return
	}

	var invite orgs.Invitation
	if err := database.DB.Where("token = ?", token).First(&invite).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return
	}
	if invite.AcceptedAt != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Invitation already used"})
		return
	}
	if time.Now().After(invite.ExpiresAt) {
		c.JSON(http.StatusGone, gin.H{"error": "Invitation expired"})
		return
	}
	if invite.Email != user.Email {
		c.JSON(http.StatusForbidden, gin.H{"error": "This invitation was issued for a different email"})
		return
	}

	var org orgs.Organization
	if err := database.DB.First(&org, invite.OrganizationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}
	var seats int64
	database.DB.Model(&users.User{}).Where("organization_id = ?", org.ID).Count(&seats)
	if int(seats) >= org.SeatLimit {
		c.JSON(http.StatusForbidden, gin.H{"error": "Seat limit reached"})
		return
	}

	now := time.Now()
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&orgs.Invitation{}).Where("id = ?", invite.ID).Update("accepted_at", now).Error; err != nil {
			return err
		}
		// A seat grants the enterprise tier for as long as the membership
		// lasts.
		return tx.Model(&users.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"organization_id":   invite.OrganizationID,
			"organization_role": invite.Role,
			"subscription_tier": "ENTERPRISE",
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join organization"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the team", "organization": org, "my_role": invite.Role})
}

func removeMember(c *gin.Context, actor *users.User, memberID uint) {
	var member users.User
	if err := database.DB.First(&member, memberID).Error; err != nil ||
		member.OrganizationID == nil || *member.OrganizationID != *actor.OrganizationID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	if member.OrganizationRole != nil && *member.OrganizationRole == orgs.RoleOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "The owner cannot be removed"})
		return
	}
	if member.ID == actor.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Use leave, not remove, for yourself"})
		return
	}

	updates := map[string]interface{}{
		"organization_id":   nil,
		"organization_role": nil,
	}
	// The seat's tier goes with the seat; members paying for their own
	// subscription keep whatever Stripe says.
	if member.StripeSubscriptionID == nil {
		updates["subscription_tier"] = "FREE"
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", member.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

func updateMemberRole(c *gin.Context, actor *users.User, memberID uint, role string) {
	if role != orgs.RoleAdmin && role != orgs.RoleMember {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be ADMIN or MEMBER"})
		return
	}
	// Only the owner may change roles.
	if actor.OrganizationRole == nil || *actor.OrganizationRole != orgs.RoleOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can change roles"})
		return
	}

	var member users.User
	if err := database.DB.First(&member, memberID).Error; err != nil ||
		member.OrganizationID == nil || *member.OrganizationID != *actor.OrganizationID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	if member.ID == actor.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The owner role cannot be reassigned here"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", member.ID).
		Update("organization_role", role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

func createLearningPath(c *gin.Context, orgID uint, title, description, moduleIDs string, deadline *time.Time) {
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	path := orgs.LearningPath{
		OrganizationID: orgID,
		Title:          title,
		Description:    description,
		ModuleIDs:      moduleIDs,
		TargetDeadline: deadline,
		IsActive:       true,
	}
	if err := database.DB.Create(&path).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create learning path"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"learning_path": path})
}

// configureSSO stores the identity-provider config encrypted at rest.
func configureSSO(c *gin.Context, orgID uint, provider, configJSON string, enabled *bool) {
	updates := map[string]interface{}{}

	if provider != "" {
		updates["sso_provider"] = provider
	}
	if configJSON != "" {
		encrypted, err := orgs.EncryptSSOConfig(configJSON, config.SSO_ENCRYPTION_KEY)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encrypt SSO configuration"})
			return
		}
		updates["sso_config"] = encrypted
	}
	if enabled != nil {
		updates["sso_enabled"] = *enabled
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to configure"})
		return
	}

	if err := database.DB.Model(&orgs.Organization{}).Where("id = ?", orgID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save SSO configuration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "SSO configuration saved"})
}
