package claim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossyoak/campsite-availability-backend/internal/interval"
)

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusActive.Terminal())
	for _, s := range []Status{StatusCancelled, StatusReleased, StatusExpired, StatusCaptured} {
		assert.True(t, s.Terminal(), "status %s should be terminal", s)
	}
}

func TestIsBlockingAt(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	rng, err := interval.Parse("2026-06-15", "2026-06-18")
	require.NoError(t, err)

	past := now.Add(-time.Minute)
	future := now.Add(30 * time.Minute)

	tests := []struct {
		name  string
		claim Claim
		want  bool
	}{
		{
			name:  "active reservation blocks",
			claim: Claim{Kind: KindReservation, Status: StatusActive, Range: rng},
			want:  true,
		},
		{
			name:  "cancelled reservation does not block",
			claim: Claim{Kind: KindReservation, Status: StatusCancelled, Range: rng},
			want:  false,
		},
		{
			name:  "active unexpired hold blocks",
			claim: Claim{Kind: KindHold, Status: StatusActive, Range: rng, ExpiresAt: &future},
			want:  true,
		},
		{
			name:  "hold past expiry does not block even while still active",
			claim: Claim{Kind: KindHold, Status: StatusActive, Range: rng, ExpiresAt: &past},
			want:  false,
		},
		{
			name:  "hold expiring exactly now does not block",
			claim: Claim{Kind: KindHold, Status: StatusActive, Range: rng, ExpiresAt: &now},
			want:  false,
		},
		{
			name:  "released hold does not block",
			claim: Claim{Kind: KindHold, Status: StatusReleased, Range: rng, ExpiresAt: &future},
			want:  false,
		},
		{
			name:  "active blackout blocks",
			claim: Claim{Kind: KindBlackout, Status: StatusActive, Range: rng},
			want:  true,
		},
		{
			name:  "active closure blocks",
			claim: Claim{Kind: KindClosure, Status: StatusActive, Range: rng},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.claim.IsBlockingAt(now))
		})
	}
}

func TestConflictErrorMessage(t *testing.T) {
	one := &ConflictError{Blocking: []Claim{{ID: "abc", Kind: KindReservation}}}
	assert.Contains(t, one.Error(), "reservation abc")

	two := &ConflictError{Blocking: []Claim{{ID: "a"}, {ID: "b"}}}
	assert.Contains(t, two.Error(), "2 existing claims")
}
