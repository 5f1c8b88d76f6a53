package certifications

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"skillytics-api/config"
	"skillytics-api/database"
	"skillytics-api/internal/domain/certs"
	"skillytics-api/internal/domain/learning"
	"skillytics-api/internal/domain/users"
	"skillytics-api/internal/queue"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	claimBonusPoints = 500
	validityYears    = 2
)

// ListCertifications returns the active certification catalog with the
// caller's progress and claim eligibility per certification.
func ListCertifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	var catalog []certs.Certification
	if err := database.DB.Where("is_active = ?", true).Order("\"order\" ASC").Find(&catalog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load certifications"})
		return
	}

	completedMissions, completedModules, bestByMission := completionState(userID)

	var earned []certs.UserCertification
	database.DB.Where("user_id = ?", userID).Find(&earned)
	earnedByCert := make(map[string]*certs.UserCertification, len(earned))
	for i := range earned {
		earnedByCert[earned[i].CertificationID] = &earned[i]
	}

	out := make([]gin.H, 0, len(catalog))
	for i := range catalog {
		cert := &catalog[i]
		progress := certs.ComputeProgress(cert, completedMissions, completedModules)
		avg, scoreOK := certs.MeetsScore(cert, requiredBestScores(cert, bestByMission))

		entry := gin.H{
			"certification": cert,
			"progress":      progress,
			"average_score": avg,
			"can_claim":     progress.Percentage == 100 && scoreOK && earnedByCert[cert.ID] == nil,
		}
		if uc := earnedByCert[cert.ID]; uc != nil {
			entry["earned"] = uc
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{"certifications": out})
}

// ClaimCertification issues the credential once every requirement is met.
// The PDF is rendered by the queue consumer, not on the request path.
func ClaimCertification(c *gin.Context) {
	userID := c.GetUint("user_id")
	certID := c.Param("id")

	var cert certs.Certification
	if err := database.DB.Where("id = ? AND is_active = ?", certID, true).First(&cert).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Certification not found"})
		return
	}

	var existing certs.UserCertification
	if database.DB.Where("user_id = ? AND certification_id = ?", userID, certID).First(&existing).Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Certification already claimed", "certificate": existing})
		return
	}

	completedMissions, completedModules, bestByMission := completionState(userID)
	progress := certs.ComputeProgress(&cert, completedMissions, completedModules)
	if progress.Percentage != 100 {
		c.JSON(http.StatusForbidden, gin.H{
			"error":    "Requirements not met",
			"progress": progress,
		})
		return
	}

	avg, scoreOK := certs.MeetsScore(&cert, requiredBestScores(&cert, bestByMission))
	if !scoreOK {
		c.JSON(http.StatusForbidden, gin.H{
			"error":         fmt.Sprintf("Average score %.1f is below the required %.1f", avg, cert.MinimumScore),
			"average_score": avg,
		})
		return
	}

	hash := uuid.NewString()
	expiry := time.Now().AddDate(validityYears, 0, 0)
	issued := certs.UserCertification{
		UserID:          userID,
		CertificationID: cert.ID,
		CertificateHash: hash,
		VerificationURL: fmt.Sprintf("%s/verify-certificate/%s", config.APP_URL, hash),
		Score:           avg,
		ExpiryDate:      &expiry,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&issued).Error; err != nil {
			return err
		}
		var user users.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		total := user.TotalPoints + claimBonusPoints
		return tx.Model(&users.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"total_points": total,
			"level":        total/500 + 1,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue certification"})
		return
	}

	if err := queue.PublishCertificateIssued(context.Background(), queue.CertificateIssuedEvent{
		UserID:          userID,
		CertificationID: cert.ID,
		CertificateHash: hash,
		IssuedAt:        time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		// The claim stands; the PDF can be regenerated on demand.
		fmt.Println("⚠️ Failed to enqueue certificate render:", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Certification issued",
		"certificate": issued,
		"points":      claimBonusPoints,
	})
}

// VerifyCertificate is the public endpoint behind the QR code on the PDF.
func VerifyCertificate(c *gin.Context) {
	hash := c.Param("hash")

	var issued certs.UserCertification
	if err := database.DB.Where("certificate_hash = ?", hash).First(&issued).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "Certificate not found"})
		return
	}

	expired := issued.ExpiryDate != nil && time.Now().After(*issued.ExpiryDate)

	var cert certs.Certification
	database.DB.Where("id = ?", issued.CertificationID).First(&cert)
	var holder users.User
	database.DB.First(&holder, issued.UserID)

	c.JSON(http.StatusOK, gin.H{
		"valid":         !expired,
		"expired":       expired,
		"holder":        holder.Name,
		"certification": cert.Name,
		"score":         issued.Score,
		"issue_date":    issued.IssueDate,
		"expiry_date":   issued.ExpiryDate,
	})
}

// DownloadCertificate serves the rendered PDF, rendering inline if the
// consumer has not gotten to it yet.
func DownloadCertificate(c *gin.Context, certificatesDir string) {
	userID := c.GetUint("user_id")
	certID := c.Param("id")

	var issued certs.UserCertification
	if err := database.DB.Where("user_id = ? AND certification_id = ?", userID, certID).First(&issued).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Certificate not found"})
		return
	}

	if issued.PDFPath == nil || *issued.PDFPath == "" {
		if err := queue.RenderCertificate(issued.CertificateHash, certificatesDir); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Certificate PDF is not ready yet"})
			return
		}
		database.DB.Where("id = ?", issued.ID).First(&issued)
	}

	if issued.PDFPath == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Certificate PDF is not ready yet"})
		return
	}

	file := filepath.Join(certificatesDir, filepath.Base(*issued.PDFPath))
	c.FileAttachment(file, fmt.Sprintf("certificate-%s.pdf", issued.CertificateHash))
}

// completionState loads the caller's completed mission/module id sets and
// best scores in one pass.
func completionState(userID uint) (completedMissions, completedModules map[string]bool, bestByMission map[string]float64) {
	completedMissions = map[string]bool{}
	completedModules = map[string]bool{}
	bestByMission = map[string]float64{}

	var rows []learning.MissionProgress
	database.DB.Where("user_id = ?", userID).Find(&rows)
	for _, r := range rows {
		if learning.IsComplete(r.Status) {
			completedMissions[r.MissionID] = true
		}
		if r.BestScore != nil {
			bestByMission[r.MissionID] = *r.BestScore
		}
	}

	// A module is complete when all of its published missions are.
	var missions []learning.Mission
	database.DB.Where("is_published = ?", true).Find(&missions)
	missionsByModule := map[string][]string{}
	for _, m := range missions {
		missionsByModule[m.ModuleID] = append(missionsByModule[m.ModuleID], m.ID)
	}
	for moduleID, ids := range missionsByModule {
		done := true
		for _, id := range ids {
			if !completedMissions[id] {
				done = false
				break
			}
		}
		if done && len(ids) > 0 {
			completedModules[moduleID] = true
		}
	}
	return completedMissions, completedModules, bestByMission
}

func requiredBestScores(cert *certs.Certification, bestByMission map[string]float64) []float64 {
	missionIDs, _ := certs.RequirementIDs(cert)
	scores := make([]float64, 0, len(missionIDs))
	for _, id := range missionIDs {
		if s, ok := bestByMission[id]; ok {
			scores = append(scores, s)
		}
	}
	return scores
}
