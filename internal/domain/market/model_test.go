package market

import "testing"

func TestCreditCost(t *testing.T) {
	tests := []struct {
		price    float64
		expected int
	}{
		{0, 0},
		{1, 1},
		{9.99, 10},
		{10.01, 11},
		{25, 25},
	}
	for _, tt := range tests {
		if got := CreditCost(tt.price); got != tt.expected {
			t.Errorf("CreditCost(%v) = %d, want %d", tt.price, got, tt.expected)
		}
	}
}

func TestCreatorEarnings(t *testing.T) {
	// Default split: creator keeps 60%.
	if got := CreatorEarnings(50, DefaultRevenueShare); got != 30 {
		t.Errorf("CreatorEarnings(50, 0.6) = %v, want 30", got)
	}
	if got := CreatorEarnings(0, DefaultRevenueShare); got != 0 {
		t.Errorf("CreatorEarnings(0, 0.6) = %v, want 0", got)
	}
	if got := CreatorEarnings(100, 0.75); got != 75 {
		t.Errorf("CreatorEarnings(100, 0.75) = %v, want 75", got)
	}
}
