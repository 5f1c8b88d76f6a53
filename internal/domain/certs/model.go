package certs

import "time"

const (
	TypeCourse       = "COURSE"
	TypeSkillTrack   = "SKILL_TRACK"
	TypeProfessional = "PROFESSIONAL"
)

type Certification struct {
	ID          string `gorm:"primaryKey" json:"id"` // e.g. "cert-mlops"
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Type        string `gorm:"type:varchar(20);not null" json:"type"`
	Image       *string `json:"image,omitempty"`

	// RequiredMissions / RequiredModules are JSON-encoded id lists.
	RequiredMissions string  `json:"required_missions"`
	RequiredModules  string  `json:"required_modules"`
	MinimumScore     float64 `json:"minimum_score"`

	IsActive bool `json:"is_active"`
	Order    int  `json:"order"`

	CreatedAt time.Time `json:"created_at"`
}

// UserCertification is the issued credential. The composite unique index
// makes a double claim a constraint conflict, never a second credential.
type UserCertification struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	UserID          uint   `gorm:"uniqueIndex:idx_user_certs_user_cert;not null" json:"user_id"`
	CertificationID string `gorm:"uniqueIndex:idx_user_certs_user_cert;not null" json:"certification_id"`

	CertificateHash string `gorm:"uniqueIndex:idx_user_certs_hash;not null" json:"certificate_hash"`
	VerificationURL string `json:"verification_url"`

	Score      float64    `json:"score"`
	IssueDate  time.Time  `gorm:"autoCreateTime" json:"issue_date"`
	ExpiryDate *time.Time `json:"expiry_date"`

	// PDFPath is set by the background renderer once the certificate PDF
	// has been written to disk.
	PDFPath *string `gorm:"column:pdf_path" json:"pdf_path,omitempty"`
}
