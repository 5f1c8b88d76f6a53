package learning

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Rule is one entry of a mission's validation_rules JSON.
type Rule struct {
	Type     string  `json:"type"`
	Expected float64 `json:"expected,omitempty"`
}

// TestResults is the simulated metric set attached to a verdict.
type TestResults struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
	ConfusionMatrix struct {
		TN int `json:"tn"`
		FP int `json:"fp"`
		FN int `json:"fn"`
		TP int `json:"tp"`
	} `json:"confusion_matrix"`
}

// Verdict is the outcome of validating a code submission.
type Verdict struct {
	IsCorrect     bool
	Score         float64
	Feedback      string
	TestResults   TestResults
	ExecutionTime int64 // milliseconds
	Issues        []string
	Achievements  []string
}

const (
	issueDataLeakage  = "Potential data leakage detected"
	issueWrongMetrics = "Using accuracy for imbalanced dataset"

	achievementImbalance = "Properly handled class imbalance"
	achievementMetrics   = "Used appropriate evaluation metrics"
)

// ValidateCode grades a submission without executing it. This is a
// substring-heuristic simulation: fixed base score, fixed per-issue
// deductions and per-achievement bonuses, plus rule bonuses. It stands in
// for a sandboxed execution pipeline.
func ValidateCode(code string, rulesJSON string, missionType string) Verdict {
	start := time.Now()

	var rules []Rule
	if rulesJSON != "" {
		_ = json.Unmarshal([]byte(rulesJSON), &rules)
	}

	hasDataLeakage := strings.Contains(code, "data.drop") || strings.Contains(code, "X_test")
	usesCorrectMetrics := strings.Contains(code, "recall") ||
		strings.Contains(code, "precision") || strings.Contains(code, "f1")
	handlesImbalance := strings.Contains(code, "class_weight") ||
		strings.Contains(code, "SMOTE") || strings.Contains(code, "resample")

	var issues, achievements []string
	if hasDataLeakage {
		issues = append(issues, issueDataLeakage)
	}
	if !usesCorrectMetrics && missionType == MissionTypeEvaluationMetrics {
		issues = append(issues, issueWrongMetrics)
	}
	if handlesImbalance {
		achievements = append(achievements, achievementImbalance)
	}
	if usesCorrectMetrics {
		achievements = append(achievements, achievementMetrics)
	}

	base := 50 - len(issues)*15 + len(achievements)*10
	passed := clampScore(float64(base)) >= 70 && len(issues) == 0

	results := simulatedResults(passed)
	score := scoreVerdict(passed, issues, achievements, results, rules)

	return Verdict{
		IsCorrect:     passed,
		Score:         score,
		Feedback:      buildFeedback(passed, issues, achievements, missionType),
		TestResults:   results,
		ExecutionTime: time.Since(start).Milliseconds(),
		Issues:        issues,
		Achievements:  achievements,
	}
}

func simulatedResults(passed bool) TestResults {
	r := TestResults{Accuracy: 0.99}
	r.ConfusionMatrix.TN = 9872
	if passed {
		r.Precision, r.Recall, r.F1Score = 0.85, 0.87, 0.86
		r.ConfusionMatrix.FP = 15
		r.ConfusionMatrix.FN = 16
		r.ConfusionMatrix.TP = 97
	} else {
		r.ConfusionMatrix.FN = 128
	}
	return r
}

func scoreVerdict(passed bool, issues, achievements []string, results TestResults, rules []Rule) float64 {
	score := 0.0
	if passed {
		score += 70
	}
	score += float64(len(achievements)) * 10
	score -= float64(len(issues)) * 15

	for _, rule := range rules {
		switch rule.Type {
		case "min_recall":
			if results.Recall >= rule.Expected {
				score += 10
			}
		case "min_precision":
			if results.Precision >= rule.Expected {
				score += 10
			}
		case "no_data_leakage":
			if !contains(issues, issueDataLeakage) {
				score += 15
			}
		case "correct_metrics":
			if contains(achievements, achievementMetrics) {
				score += 10
			}
		}
	}

	return clampScore(score)
}

func buildFeedback(passed bool, issues, achievements []string, missionType string) string {
	var b strings.Builder

	if passed {
		b.WriteString("Excellent work! Your solution correctly addresses the problem.\n\n")
		if len(achievements) > 0 {
			b.WriteString("Strengths:\n")
			for _, a := range achievements {
				fmt.Fprintf(&b, "- %s\n", a)
			}
		}
		return b.String()
	}

	b.WriteString("Your solution needs some improvements. Here's what to work on:\n\n")
	if len(issues) > 0 {
		b.WriteString("Issues found:\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}

	switch missionType {
	case MissionTypeModelDebug:
		b.WriteString("\nTip: Check for data leakage and ensure you're using the right evaluation metrics for imbalanced datasets.")
	case MissionTypeDataQuality:
		b.WriteString("\nTip: Make sure to handle missing values and outliers appropriately.")
	case MissionTypeEvaluationMetrics:
		b.WriteString("\nTip: For imbalanced datasets, focus on recall, precision, and F1-score rather than accuracy.")
	default:
		b.WriteString("\nTip: Review the problem statement and try again.")
	}
	return b.String()
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
