// Package rewards holds the display-side rules derived from a profile:
// reward per ad, VIP ladder, daily cap, mining gates and withdrawal limits.
// The backend enforces all of them; these only drive what the client shows
// and which requests it bothers to send.
package rewards

import (
	"time"

	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/shopspring/decimal"
)

const (
	DailyAdLimit    int64 = 5000
	MiningUnlockAds int64 = 10000
	MaxVIPLevel           = 3

	CooldownWindow = 24 * time.Hour
)

var rewardPerAd = map[int]decimal.Decimal{
	0: decimal.RequireFromString("0.00025"),
	1: decimal.RequireFromString("0.0005"),
	2: decimal.RequireFromString("0.0008"),
	3: decimal.RequireFromString("0.001"),
}

// RewardPerAd returns the per-ad reward of a VIP tier. Tiers above the top
// pay the top rate; negative tiers pay the base rate.
func RewardPerAd(vip int) decimal.Decimal {
	switch {
	case vip < 0:
		vip = 0
	case vip > MaxVIPLevel:
		vip = MaxVIPLevel
	}
	return rewardPerAd[vip]
}

// VIPLevel is one rung of the VIP ladder.
type VIPLevel struct {
	Level       int
	RequiredAds int64
	Reward      decimal.Decimal
}

// VIPLevels lists the paid tiers in ascending order.
func VIPLevels() []VIPLevel {
	return []VIPLevel{
		{Level: 1, RequiredAds: 15000, Reward: RewardPerAd(1)},
		{Level: 2, RequiredAds: 30000, Reward: RewardPerAd(2)},
		{Level: 3, RequiredAds: 50000, Reward: RewardPerAd(3)},
	}
}

// NextVIPLevel returns the tier after current, or false at the top.
func NextVIPLevel(current int) (VIPLevel, bool) {
	for _, l := range VIPLevels() {
		if l.Level > current {
			return l, true
		}
	}
	return VIPLevel{}, false
}

// VIPProgress is adsWatched / next.RequiredAds clamped to [0, 1].
func VIPProgress(adsWatched int64, next VIPLevel) float64 {
	return ratio(adsWatched, next.RequiredAds)
}

func AdsToNextVIP(adsWatched int64, next VIPLevel) int64 {
	if adsWatched >= next.RequiredAds {
		return 0
	}
	return next.RequiredAds - adsWatched
}

func DailyLimitReached(p *models.Profile) bool {
	return p.AdsWatchedToday >= DailyAdLimit
}

func MiningUnlocked(p *models.Profile) bool {
	return p.MiningUnlocked || p.AdsWatched >= MiningUnlockAds
}

func MiningUnlockProgress(p *models.Profile) float64 {
	return ratio(p.AdsWatched, MiningUnlockAds)
}

// CanSpin reports whether the 24h spin cooldown has passed.
func CanSpin(lastSpin *time.Time, now time.Time) bool {
	return lastSpin == nil || now.Sub(*lastSpin) > CooldownWindow
}

func SpinCooldownRemaining(lastSpin *time.Time, now time.Time) time.Duration {
	return remaining(lastSpin, now)
}

// DepositLocked reports whether a deposit made at depositDate is still in
// its 24h lock.
func DepositLocked(depositDate *time.Time, now time.Time) bool {
	return depositDate != nil && now.Sub(*depositDate) < CooldownWindow
}

func DepositLockRemaining(depositDate *time.Time, now time.Time) time.Duration {
	return remaining(depositDate, now)
}

func remaining(since *time.Time, now time.Time) time.Duration {
	if since == nil {
		return 0
	}
	left := CooldownWindow - now.Sub(*since)
	if left < 0 {
		return 0
	}
	return left
}

func ratio(n, of int64) float64 {
	if of <= 0 || n >= of {
		return 1
	}
	if n <= 0 {
		return 0
	}
	return float64(n) / float64(of)
}
