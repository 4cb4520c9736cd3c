package session

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDailyReset(t *testing.T) {
	today := models.Date{Year: 2024, Month: time.January, Day: 2}
	day := func(y int, m time.Month, d int) *models.Date { return &models.Date{Year: y, Month: m, Day: d} }

	tests := []struct {
		name  string
		reset *models.Date
		want  int64
	}{
		{"yesterday", day(2024, time.January, 1), 0},
		{"last year", day(2023, time.December, 31), 0},
		{"today", day(2024, time.January, 2), 37},
		{"clock skew ahead", day(2024, time.January, 3), 37},
		{"never reset", nil, 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Profile{ID: "a", AdsWatchedToday: 37, LastAdResetDate: tt.reset}

			got := ApplyDailyReset(p, today)

			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.AdsWatchedToday)
			assert.Equal(t, int64(37), p.AdsWatchedToday, "input must not be modified")
		})
	}
}

func TestApplyDailyReset_Nil(t *testing.T) {
	assert.Nil(t, ApplyDailyReset(nil, models.Date{Year: 2024, Month: time.January, Day: 2}))
}

func TestKeepMonotonic(t *testing.T) {
	prev := &models.Profile{ID: "a", VIPLevel: 2, MiningUnlocked: true}

	t.Run("same subject keeps tier and unlock", func(t *testing.T) {
		next := keepMonotonic(prev, &models.Profile{ID: "a", VIPLevel: 1})
		assert.Equal(t, 2, next.VIPLevel)
		assert.True(t, next.MiningUnlocked)
	})

	t.Run("upgrades pass through", func(t *testing.T) {
		next := keepMonotonic(prev, &models.Profile{ID: "a", VIPLevel: 3})
		assert.Equal(t, 3, next.VIPLevel)
	})

	t.Run("other subject is untouched", func(t *testing.T) {
		next := keepMonotonic(prev, &models.Profile{ID: "b"})
		assert.Zero(t, next.VIPLevel)
		assert.False(t, next.MiningUnlocked)
	})

	t.Run("no previous", func(t *testing.T) {
		next := &models.Profile{ID: "a", VIPLevel: 1}
		assert.Same(t, next, keepMonotonic(nil, next))
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "initializing", Initializing.String())
	assert.Equal(t, "authenticated_profile_error", AuthenticatedProfileError.String())
	assert.Equal(t, "unknown", State(42).String())
}
