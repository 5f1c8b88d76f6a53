package learning

import (
	"encoding/json"
	"net/http"
	"time"

	"skillytics-api/database"
	"skillytics-api/internal/domain/learning"
	"skillytics-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const pointsPerLevel = 500

// SubmitCode grades a code submission against the mission's validation rules
// and folds the verdict into the user's progress, points, streak, and daily
// analytics in one transaction.
func SubmitCode(c *gin.Context) {
	userID := c.GetUint("user_id")

	var body struct {
		MissionID string `json:"mission_id" binding:"required"`
		Code      string `json:"code" binding:"required"`
		Language  string `json:"language"`
		TimeSpent int    `json:"time_spent"` // seconds
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mission_id and code are required"})
		return
	}
	if body.Language == "" {
		body.Language = "python"
	}

	ent := callerEntitlements(c)

	var mission learning.Mission
	if err := database.DB.Where("id = ? AND is_published = ?", body.MissionID, true).First(&mission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mission not found"})
		return
	}
	if !ent.CanAccessMission(mission.Number) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This mission requires a Pro subscription"})
		return
	}

	verdict := learning.ValidateCode(body.Code, mission.ValidationRules, mission.Type)
	now := time.Now()

	var progress learning.MissionProgress
	var firstCompletion bool

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND mission_id = ?", userID, mission.ID).
			First(&progress).Error; err != nil {
			progress = learning.MissionProgress{
				UserID:    userID,
				MissionID: mission.ID,
				Status:    learning.StatusInProgress,
			}
		}

		wasComplete := learning.IsComplete(progress.Status)
		learning.ApplySubmission(&progress, verdict.Score, verdict.IsCorrect, now)
		progress.TimeSpent += body.TimeSpent
		firstCompletion = !wasComplete && learning.IsComplete(progress.Status)

		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		resultsJSON, _ := json.Marshal(verdict.TestResults)
		submission := learning.Submission{
			UserID:        userID,
			MissionID:     mission.ID,
			ProgressID:    progress.ID,
			Code:          body.Code,
			Language:      body.Language,
			TestResults:   string(resultsJSON),
			Score:         verdict.Score,
			Feedback:      verdict.Feedback,
			IsCorrect:     verdict.IsCorrect,
			ExecutionTime: verdict.ExecutionTime,
		}
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}

		if err := updateGamification(tx, userID, mission.Points, firstCompletion, now); err != nil {
			return err
		}

		return bumpDailyAnalytics(tx, userID, mission.Type, firstCompletion, now)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_correct":     verdict.IsCorrect,
		"score":          verdict.Score,
		"feedback":       verdict.Feedback,
		"test_results":   verdict.TestResults,
		"issues":         verdict.Issues,
		"achievements":   verdict.Achievements,
		"execution_time": verdict.ExecutionTime,
		"progress": gin.H{
			"status":     progress.Status,
			"attempts":   progress.Attempts,
			"best_score": progress.BestScore,
		},
		"points_awarded": pointsAwarded(mission.Points, firstCompletion),
	})
}

func pointsAwarded(missionPoints int, firstCompletion bool) int {
	if firstCompletion {
		return missionPoints
	}
	return 0
}

// updateGamification awards mission points on the first completion and keeps
// the streak counter honest: consecutive active days extend it, a gap resets
// it to 1.
func updateGamification(tx *gorm.DB, userID uint, missionPoints int, firstCompletion bool, now time.Time) error {
	var user users.User
	if err := tx.First(&user, userID).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{"last_active_at": now}

	if firstCompletion {
		total := user.TotalPoints + missionPoints
		updates["total_points"] = total
		updates["level"] = total/pointsPerLevel + 1
	}

	today := now.Truncate(24 * time.Hour)
	switch {
	case user.LastActiveAt == nil:
		updates["streak"] = 1
	case user.LastActiveAt.Truncate(24 * time.Hour).Equal(today):
		// already counted today
	case user.LastActiveAt.Truncate(24 * time.Hour).Equal(today.AddDate(0, 0, -1)):
		updates["streak"] = user.Streak + 1
	default:
		updates["streak"] = 1
	}

	return tx.Model(&users.User{}).Where("id = ?", userID).Updates(updates).Error
}

// bumpDailyAnalytics upserts the per-day activity row.
func bumpDailyAnalytics(tx *gorm.DB, userID uint, missionType string, firstCompletion bool, now time.Time) error {
	day := now.UTC().Truncate(24 * time.Hour)

	var row learning.DailyAnalytics
	if err := tx.Where("user_id = ? AND date = ?", userID, day).First(&row).Error; err != nil {
		row = learning.DailyAnalytics{UserID: userID, Date: day}
	}

	row.TotalAttempts++
	if firstCompletion {
		row.MissionsCompleted++
	}

	switch missionType {
	case learning.MissionTypeModelDebug:
		row.BugFixes++
	case learning.MissionTypeDataQuality:
		row.DataCleaned++
	case learning.MissionTypeAlgorithmSelection:
		row.AlgorithmsChosen++
	case learning.MissionTypeEvaluationMetrics:
		row.ModelsImproved++
	}
	row.PreferredMissionType = preferredType(&row)

	return tx.Save(&row).Error
}

func preferredType(row *learning.DailyAnalytics) string {
	best, bestCount := "", 0
	for t, n := range map[string]int{
		learning.MissionTypeModelDebug:         row.BugFixes,
		learning.MissionTypeDataQuality:        row.DataCleaned,
		learning.MissionTypeAlgorithmSelection: row.AlgorithmsChosen,
		learning.MissionTypeEvaluationMetrics:  row.ModelsImproved,
	} {
		if n > bestCount || (n == bestCount && best != "" && t < best) {
			best, bestCount = t, n
		}
	}
	if bestCount == 0 {
		return ""
	}
	return best
}
