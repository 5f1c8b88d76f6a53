package learning

import (
	"time"
)

const (
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusMastered   = "MASTERED"
)

// Mission types mirror the curriculum taxonomy.
const (
	MissionTypeModelDebug         = "MODEL_DEBUG"
	MissionTypeDataQuality        = "DATA_QUALITY"
	MissionTypeAlgorithmSelection = "ALGORITHM_SELECTION"
	MissionTypeEvaluationMetrics  = "EVALUATION_METRICS"
)

type SkillModule struct {
	ID          string `gorm:"primaryKey" json:"id"` // e.g. "module-12"
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Order       int    `gorm:"index" json:"order"`
	Icon        *string `json:"icon,omitempty"`
	Color       string  `gorm:"default:'#6366f1'" json:"color"`
	IsLocked    bool    `json:"is_locked"`

	Missions []Mission `gorm:"foreignKey:ModuleID" json:"missions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Mission struct {
	ID       string `gorm:"primaryKey" json:"id"` // e.g. "mission-41"
	ModuleID string `gorm:"index;not null" json:"module_id"`
	Title    string `gorm:"not null" json:"title"`
	Type     string `gorm:"type:varchar(32);not null" json:"type"`

	// Number is the mission's position in the global sequence; the free tier
	// unlocks numbers 1..40.
	Number     int    `gorm:"index" json:"number"`
	Order      int    `json:"order"`
	Difficulty string `gorm:"type:varchar(16)" json:"difficulty"`
	Points     int    `json:"points"`

	Objectives      string `json:"objectives"`       // JSON list
	ValidationRules string `json:"validation_rules"` // JSON list of Rule
	IsPublished     bool   `gorm:"index" json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MissionProgress struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"uniqueIndex:idx_progress_user_mission;not null" json:"user_id"`
	MissionID string `gorm:"uniqueIndex:idx_progress_user_mission;not null" json:"mission_id"`

	Status   string `gorm:"type:varchar(16);not null;default:'IN_PROGRESS'" json:"status"`
	Attempts int    `gorm:"not null;default:0" json:"attempts"`

	BestScore    *float64 `json:"best_score"`
	CurrentScore *float64 `json:"current_score"`
	TimeSpent    int      `gorm:"not null;default:0" json:"time_spent"` // seconds

	LastAttemptAt *time.Time `json:"last_attempt_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Submission struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"index;not null" json:"user_id"`
	MissionID  string `gorm:"index;not null" json:"mission_id"`
	ProgressID uint   `json:"progress_id"`

	Code     string `gorm:"type:text" json:"code"`
	Language string `gorm:"type:varchar(20);default:'python'" json:"language"`

	TestResults   string  `json:"test_results"` // JSON blob from the validator
	Score         float64 `json:"score"`
	Feedback      string  `gorm:"type:text" json:"feedback"`
	IsCorrect     bool    `json:"is_correct"`
	ExecutionTime int64   `json:"execution_time"` // milliseconds

	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}

// DailyAnalytics aggregates a user's activity per calendar day.
type DailyAnalytics struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"uniqueIndex:idx_analytics_user_date;not null" json:"user_id"`
	Date   time.Time `gorm:"uniqueIndex:idx_analytics_user_date;not null" json:"date"`

	MissionsCompleted int `json:"missions_completed"`
	TotalAttempts     int `json:"total_attempts"`

	BugFixes         int `json:"bug_fixes"`
	ModelsImproved   int `json:"models_improved"`
	DataCleaned      int `json:"data_cleaned"`
	AlgorithmsChosen int `json:"algorithms_chosen"`

	PreferredMissionType string `gorm:"type:varchar(32)" json:"preferred_mission_type"`
}
