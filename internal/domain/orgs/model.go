package orgs

import "time"

const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

type Organization struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Name   string  `gorm:"not null" json:"name"`
	Domain *string `gorm:"uniqueIndex:idx_organizations_domain" json:"domain,omitempty"`

	SSOProvider *string `gorm:"column:sso_provider" json:"sso_provider,omitempty"`
	SSOConfig   *string `gorm:"column:sso_config" json:"-"` // encrypted, see ssoconfig.go
	SSOEnabled  bool    `gorm:"column:sso_enabled" json:"sso_enabled"`

	SeatLimit int `gorm:"not null;default:50" json:"seat_limit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Invitation is consumed exactly once: accepting sets AcceptedAt and any
// further accept attempt is rejected.
type Invitation struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OrganizationID uint   `gorm:"index;not null" json:"organization_id"`
	Email          string `gorm:"index;not null" json:"email"`
	Role           string `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`
	Token          string `gorm:"uniqueIndex:idx_invitations_token;not null" json:"-"`

	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// InvitationPending reports whether an invitation still blocks a re-invite:
// not yet accepted and not yet expired.
func InvitationPending(inv *Invitation, now time.Time) bool {
	return inv.AcceptedAt == nil && now.Before(inv.ExpiresAt)
}

type LearningPath struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OrganizationID uint   `gorm:"index;not null" json:"organization_id"`
	Title          string `gorm:"not null" json:"title"`
	Description    string `json:"description"`

	// ModuleIDs is a JSON-encoded list of skill module ids.
	ModuleIDs      string     `json:"module_ids"`
	TargetDeadline *time.Time `json:"target_deadline,omitempty"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}

// CanManage reports whether an organization role may invite members and
// create learning paths.
func CanManage(role string) bool {
	return role == RoleOwner || role == RoleAdmin
}
