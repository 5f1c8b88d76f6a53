package orgs

import (
	"testing"
	"time"
)

func TestInvitationPending(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	accepted := now.Add(-time.Hour)

	tests := []struct {
		name string
		inv  Invitation
		want bool
	}{
		{
			"open invitation blocks a re-invite",
			Invitation{ExpiresAt: now.Add(24 * time.Hour)},
			true,
		},
		{
			"accepted invitation does not block",
			Invitation{ExpiresAt: now.Add(24 * time.Hour), AcceptedAt: &accepted},
			false,
		},
		{
			"expired invitation does not block",
			Invitation{ExpiresAt: now.Add(-time.Minute)},
			false,
		},
		{
			"accepted and expired does not block",
			Invitation{ExpiresAt: now.Add(-time.Minute), AcceptedAt: &accepted},
			false,
		},
		{
			"expiring exactly now no longer blocks",
			Invitation{ExpiresAt: now},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InvitationPending(&tt.inv, now); got != tt.want {
				t.Errorf("InvitationPending() = %v, want %v", got, tt.want)
			}
		})
	}
}
