package learning

import (
	"testing"
	"time"
)

func TestApplySubmissionBestScoreMonotone(t *testing.T) {
	now := time.Now()
	p := MissionProgress{Status: StatusInProgress}

	ApplySubmission(&p, 80, true, now)
	if p.BestScore == nil || *p.BestScore != 80 {
		t.Fatalf("BestScore = %v, want 80", p.BestScore)
	}
	if p.Status != StatusCompleted {
		t.Errorf("Status = %q, want COMPLETED", p.Status)
	}
	if p.CompletedAt == nil {
		t.Error("CompletedAt should be set on first completion")
	}

	// A worse retry bumps attempts and current score but never best score.
	later := now.Add(time.Hour)
	ApplySubmission(&p, 55, false, later)
	if *p.BestScore != 80 {
		t.Errorf("BestScore dropped to %v after a worse attempt", *p.BestScore)
	}
	if *p.CurrentScore != 55 {
		t.Errorf("CurrentScore = %v, want 55", *p.CurrentScore)
	}
	if p.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", p.Attempts)
	}
	if p.Status != StatusCompleted {
		t.Errorf("a failed retry must not demote a completed mission, got %q", p.Status)
	}

	ApplySubmission(&p, 95, true, later)
	if *p.BestScore != 95 {
		t.Errorf("BestScore = %v, want 95", *p.BestScore)
	}
}

func TestApplySubmissionMasteredNeverDemoted(t *testing.T) {
	now := time.Now()
	p := MissionProgress{Status: StatusMastered}

	ApplySubmission(&p, 100, true, now)
	if p.Status != StatusMastered {
		t.Errorf("Status = %q, want MASTERED preserved", p.Status)
	}
}

func TestApplySubmissionCompletedAtSetOnce(t *testing.T) {
	first := time.Now()
	p := MissionProgress{Status: StatusInProgress}
	ApplySubmission(&p, 75, true, first)

	second := first.Add(time.Hour)
	ApplySubmission(&p, 90, true, second)
	if !p.CompletedAt.Equal(first) {
		t.Errorf("CompletedAt = %v, want the first completion time %v", p.CompletedAt, first)
	}
}

func TestIsComplete(t *testing.T) {
	if IsComplete(StatusInProgress) {
		t.Error("IN_PROGRESS must not count as complete")
	}
	if !IsComplete(StatusCompleted) || !IsComplete(StatusMastered) {
		t.Error("COMPLETED and MASTERED must count as complete")
	}
}
