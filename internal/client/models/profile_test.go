package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileRow = `{
  "id": "7f1c2a4e-1b1d-4c55-9f1e-3f3f8e2a9b10",
  "email": "user@example.com",
  "balance": 12.5,
  "ads_watched": 15020,
  "ads_watched_today": 50,
  "last_ad_reset_date": "2024-01-01",
  "vip_level": 1,
  "mining_unlocked": true,
  "mining_deposit": "2.00",
  "last_mining_spin": "2024-01-01T10:00:00Z",
  "deposit_date": null,
  "referral_code": "AB12CD",
  "referral_earnings": 0.0125,
  "referred_by": null,
  "created_at": "2023-12-01T08:00:00Z"
}`

func TestDecodeProfile(t *testing.T) {
	p, err := DecodeProfile([]byte(profileRow))
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.True(t, decimal.RequireFromString("12.5").Equal(p.Balance))
	assert.True(t, decimal.RequireFromString("2").Equal(p.MiningDeposit))
	assert.Equal(t, int64(50), p.AdsWatchedToday)
	require.NotNil(t, p.LastAdResetDate)
	assert.Equal(t, Date{Year: 2024, Month: time.January, Day: 1}, *p.LastAdResetDate)
	require.NotNil(t, p.LastMiningSpin)
	assert.Nil(t, p.DepositDate)
	assert.Nil(t, p.ReferredBy)
}

func TestDecodeProfile_EmptyAndNull(t *testing.T) {
	for _, in := range []string{"", "  ", "null"} {
		p, err := DecodeProfile([]byte(in))
		require.NoError(t, err)
		assert.Nil(t, p)
	}

	_, err := DecodeProfile([]byte(`{"balance": "abc"}`))
	require.Error(t, err)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-01-02T23:59:59+03:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", d.String())

	assert.True(t, Date{2024, time.January, 1}.Before(d))
	assert.False(t, d.Before(d))
	assert.True(t, Date{2023, time.December, 31}.Before(Date{2024, time.January, 1}))
	assert.False(t, Date{2024, time.February, 1}.Before(Date{2024, time.January, 31}))

	_, err = ParseDate("yesterday")
	require.Error(t, err)
}

func TestProfileClone_DoesNotAlias(t *testing.T) {
	p, err := DecodeProfile([]byte(profileRow))
	require.NoError(t, err)
	ref := "friend"
	p.ReferredBy = &ref

	c := p.Clone()
	c.LastAdResetDate.Day = 9
	*c.ReferredBy = "other"
	c.AdsWatchedToday = 0

	assert.Equal(t, 1, p.LastAdResetDate.Day)
	assert.Equal(t, "friend", *p.ReferredBy)
	assert.Equal(t, int64(50), p.AdsWatchedToday)
	assert.Nil(t, (*Profile)(nil).Clone())
}

func TestSessionSame(t *testing.T) {
	a := &Session{UserID: "u1"}
	b := &Session{UserID: "u1", Email: "x"}
	c := &Session{UserID: "u2"}

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(c))
	assert.False(t, a.Same(nil))
	assert.True(t, (*Session)(nil).Same(nil))
}
