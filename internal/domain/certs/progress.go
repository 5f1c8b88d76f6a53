package certs

import (
	"encoding/json"
	"math"
)

// Progress summarizes how far a user is toward a certification.
type Progress struct {
	Percentage int `json:"percentage"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
}

// RequirementIDs decodes the JSON id lists stored on a certification.
func RequirementIDs(c *Certification) (missions []string, modules []string) {
	if c.RequiredMissions != "" {
		_ = json.Unmarshal([]byte(c.RequiredMissions), &missions)
	}
	if c.RequiredModules != "" {
		_ = json.Unmarshal([]byte(c.RequiredModules), &modules)
	}
	return missions, modules
}

// ComputeProgress counts satisfied requirements against the user's completed
// mission and module id sets. Percentage is rounded to the nearest integer,
// so 2 of 3 modules reports 67.
func ComputeProgress(c *Certification, completedMissions, completedModules map[string]bool) Progress {
	missions, modules := RequirementIDs(c)

	total := len(missions) + len(modules)
	done := 0
	for _, id := range missions {
		if completedMissions[id] {
			done++
		}
	}
	for _, id := range modules {
		if completedModules[id] {
			done++
		}
	}

	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(done) / float64(total) * 100))
	}
	return Progress{Percentage: pct, Completed: done, Total: total}
}

// MeetsScore checks the average best score over the required missions
// against the certification's minimum. Certifications with no mission
// requirements have no score gate.
func MeetsScore(c *Certification, bestScores []float64) (avg float64, ok bool) {
	if len(bestScores) == 0 {
		return 0, true
	}
	sum := 0.0
	for _, s := range bestScores {
		sum += s
	}
	avg = sum / float64(len(bestScores))
	return avg, avg >= c.MinimumScore
}
