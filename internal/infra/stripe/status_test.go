package stripe

import "testing"

func strRef(s string) *string { return &s }

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		in       *string
		expected string
	}{
		{"nil", nil, "none"},
		{"empty", strRef(""), "none"},
		{"whitespace", strRef("  "), "none"},
		{"active", strRef("active"), "active"},
		{"trialing", strRef("trialing"), "trialing"},
		{"past_due", strRef("past_due"), "past_due"},
		{"unpaid collapses to past_due", strRef("unpaid"), "past_due"},
		{"canceled", strRef("canceled"), "canceled"},
		{"incomplete_expired collapses to canceled", strRef("incomplete_expired"), "canceled"},
		{"unknown passes through", strRef("paused"), "paused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeStatus(tt.in); got != tt.expected {
				t.Errorf("NormalizeStatus = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsEntitled(t *testing.T) {
	for _, s := range []string{"active", "trialing", "past_due"} {
		if !IsEntitled(s) {
			t.Errorf("IsEntitled(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"canceled", "none", "incomplete", ""} {
		if IsEntitled(s) {
			t.Errorf("IsEntitled(%q) = true, want false", s)
		}
	}
}
