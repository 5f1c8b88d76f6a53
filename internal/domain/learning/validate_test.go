package learning

import (
	"strings"
	"testing"
)

func TestValidateCodePassing(t *testing.T) {
	code := "model.fit(X_train, y_train, class_weight='balanced')\nprint(recall_score(y, p), precision_score(y, p))"
	v := ValidateCode(code, "", MissionTypeModelDebug)

	if !v.IsCorrect {
		t.Fatalf("expected pass, got issues=%v", v.Issues)
	}
	// 70 for passing + two achievements at 10 each
	if v.Score != 90 {
		t.Errorf("Score = %v, want 90", v.Score)
	}
	if len(v.Achievements) != 2 {
		t.Errorf("Achievements = %v, want class-imbalance and metrics", v.Achievements)
	}
	if v.TestResults.Recall != 0.87 || v.TestResults.Precision != 0.85 {
		t.Errorf("passing submissions should get the healthy simulated metrics, got %+v", v.TestResults)
	}
	if !strings.HasPrefix(v.Feedback, "Excellent work!") {
		t.Errorf("unexpected feedback: %q", v.Feedback)
	}
}

func TestValidateCodeDataLeakageFails(t *testing.T) {
	code := "data.drop(columns=['label'])\nrecall_score(y, p)\nclass_weight='balanced'"
	v := ValidateCode(code, "", MissionTypeModelDebug)

	if v.IsCorrect {
		t.Fatal("data leakage must fail regardless of achievements")
	}
	// two achievements (+20) minus one issue (-15), no passing bonus
	if v.Score != 5 {
		t.Errorf("Score = %v, want 5", v.Score)
	}
	if len(v.Issues) != 1 || !strings.Contains(v.Issues[0], "leakage") {
		t.Errorf("Issues = %v, want the leakage issue", v.Issues)
	}
	if v.TestResults.ConfusionMatrix.FN != 128 {
		t.Errorf("failing submissions should get the degraded confusion matrix, got %+v", v.TestResults.ConfusionMatrix)
	}
}

func TestValidateCodeWrongMetricsForEvaluationMission(t *testing.T) {
	v := ValidateCode("accuracy_score(y, p)", "", MissionTypeEvaluationMetrics)

	if v.IsCorrect {
		t.Fatal("accuracy-only code on an evaluation mission must fail")
	}
	if v.Score != 0 {
		t.Errorf("Score = %v, want 0 (negative scores clamp)", v.Score)
	}
	if !strings.Contains(v.Feedback, "recall, precision, and F1-score") {
		t.Errorf("feedback should carry the evaluation-metrics tip: %q", v.Feedback)
	}
}

func TestValidateCodeNeutralCodeFailsQuietly(t *testing.T) {
	v := ValidateCode("print('hello')", "", MissionTypeModelDebug)

	if v.IsCorrect {
		t.Fatal("code with no achievements cannot reach the passing threshold")
	}
	if len(v.Issues) != 0 {
		t.Errorf("Issues = %v, want none", v.Issues)
	}
	if v.Score != 0 {
		t.Errorf("Score = %v, want 0", v.Score)
	}
}

func TestValidateCodeRuleBonuses(t *testing.T) {
	rules := `[{"type":"min_recall","expected":0.8},{"type":"min_precision","expected":0.8},{"type":"no_data_leakage"},{"type":"correct_metrics"}]`
	code := "recall precision f1 class_weight"

	v := ValidateCode(code, rules, MissionTypeModelDebug)
	if !v.IsCorrect {
		t.Fatal("expected pass")
	}
	// 70 + 20 achievements + 10 + 10 + 15 + 10 bonuses, clamped to 100
	if v.Score != 100 {
		t.Errorf("Score = %v, want 100", v.Score)
	}

	// A recall bar above the simulated 0.87 withholds that bonus.
	strict := `[{"type":"min_recall","expected":0.9}]`
	v = ValidateCode(code, strict, MissionTypeModelDebug)
	if v.Score != 90 {
		t.Errorf("Score with unmet recall rule = %v, want 90", v.Score)
	}
}

func TestValidateCodeMalformedRulesIgnored(t *testing.T) {
	v := ValidateCode("recall precision class_weight", "{not json", MissionTypeModelDebug)
	if !v.IsCorrect || v.Score != 90 {
		t.Errorf("malformed rules should be ignored, got correct=%v score=%v", v.IsCorrect, v.Score)
	}
}
