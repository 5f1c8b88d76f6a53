package learning

import "time"

// ApplySubmission folds a graded submission into a progress record.
// BestScore never decreases; a correct submission marks the mission
// COMPLETED (MASTERED is never demoted).
func ApplySubmission(p *MissionProgress, score float64, isCorrect bool, now time.Time) {
	p.Attempts++
	p.CurrentScore = &score
	p.LastAttemptAt = &now

	if p.BestScore == nil || score > *p.BestScore {
		best := score
		p.BestScore = &best
	}

	if isCorrect && p.Status != StatusMastered {
		p.Status = StatusCompleted
		if p.CompletedAt == nil {
			p.CompletedAt = &now
		}
	}
}

// IsComplete reports whether a progress status counts toward certification
// requirements.
func IsComplete(status string) bool {
	return status == StatusCompleted || status == StatusMastered
}
