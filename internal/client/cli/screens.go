package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/dmitrijs2005/adearn/internal/client/rewards"
	"github.com/dmitrijs2005/adearn/internal/client/session"
	"github.com/shopspring/decimal"
)

type translateFn func(key string) string

func money(d decimal.Decimal, places int32) string {
	return "$" + d.StringFixed(places)
}

// renderGate returns the screen shown instead of the app while there is no
// usable profile. blocked is false when the profile screens can be shown.
func renderGate(s session.Snapshot, slow bool, tr translateFn) (screen string, blocked bool) {
	switch {
	case s.Loading:
		if slow {
			return fmt.Sprintf("%s\n%s: retry | reset", tr("loading_slow"), tr("try_again")), true
		}
		return tr("loading"), true
	case s.State == session.Unauthenticated || s.State == session.Initializing:
		return fmt.Sprintf("%s: login | register", tr("login")), true
	case s.State == session.AuthenticatedProfileError || s.Profile == nil:
		var b strings.Builder
		b.WriteString(tr("profile_error"))
		if s.LastError != "" {
			fmt.Fprintf(&b, "\n%s", s.LastError)
		}
		fmt.Fprintf(&b, "\n%s: retry | %s: logout", tr("retry"), tr("logout"))
		return b.String(), true
	}
	return "", false
}

func renderHome(p *models.Profile, tr translateFn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", tr("balance"), money(p.Balance, 5))
	fmt.Fprintf(&b, "%s: %d / %d\n", tr("ads_today"), p.AdsWatchedToday, rewards.DailyAdLimit)
	fmt.Fprintf(&b, "%s: %s (VIP %d)\n", tr("ad_reward"), money(rewards.RewardPerAd(p.VIPLevel), 5), p.VIPLevel)
	if rewards.DailyLimitReached(p) {
		b.WriteString(tr("daily_limit"))
	} else {
		fmt.Fprintf(&b, "%s: watch", tr("watch_ad"))
	}
	return b.String()
}

func renderMining(p *models.Profile, now time.Time, tr translateFn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", tr("mining_wheel"))

	if !rewards.MiningUnlocked(p) {
		fmt.Fprintf(&b, "%s\n%s\n", tr("mining_locked"), tr("mining_unlock_hint"))
		fmt.Fprintf(&b, "%d / %d (%.0f%%)", p.AdsWatched, rewards.MiningUnlockAds, rewards.MiningUnlockProgress(p)*100)
		return b.String()
	}

	fmt.Fprintf(&b, "%s: %s\n", tr("deposit"), money(p.MiningDeposit, 2))
	fmt.Fprintf(&b, "%s\n", tr("deposit_range"))

	if rewards.CanSpin(p.LastMiningSpin, now) {
		fmt.Fprintf(&b, "%s: spin\n", tr("spin"))
	} else {
		fmt.Fprintf(&b, "%s (%s)\n", tr("spin_cooldown"), rewards.SpinCooldownRemaining(p.LastMiningSpin, now).Round(time.Minute))
	}

	if rewards.DepositLocked(p.DepositDate, now) {
		fmt.Fprintf(&b, "%s (%s)", tr("deposit_locked"), rewards.DepositLockRemaining(p.DepositDate, now).Round(time.Minute))
	} else {
		fmt.Fprintf(&b, "%s: withdraw-deposit", tr("withdraw_deposit"))
	}
	return b.String()
}

func renderVIP(p *models.Profile, tr translateFn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", tr("vip_levels"))
	for _, l := range rewards.VIPLevels() {
		mark := " "
		if l.Level <= p.VIPLevel {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s VIP %d  %d %s  %s\n", mark, l.Level, l.RequiredAds, tr("ads_count"), money(l.Reward, 5))
	}

	next, ok := rewards.NextVIPLevel(p.VIPLevel)
	if !ok {
		b.WriteString(tr("vip_max"))
		return b.String()
	}
	fmt.Fprintf(&b, "%d %s %s (%.0f%%)",
		rewards.AdsToNextVIP(p.AdsWatched, next), tr("ads_count"), tr("next_vip"), rewards.VIPProgress(p.AdsWatched, next)*100)
	return b.String()
}

func renderReferral(p *models.Profile, bot string, friends []models.ReferralUser, friendsErr error, tr translateFn) string {
	code := p.ReferralCode
	if code == "" {
		code = "---"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", tr("referral_hint"))
	fmt.Fprintf(&b, "%s: %s\n", tr("referral_code"), code)
	fmt.Fprintf(&b, "%s: %s\n", tr("referral_earnings"), money(p.ReferralEarnings, 4))
	if p.ReferralCode != "" {
		fmt.Fprintf(&b, "%s: %s\n", tr("invite_link"), rewards.InviteLink(bot, p.ReferralCode))
	}

	fmt.Fprintf(&b, "%s (%d)", tr("friends"), len(friends))
	switch {
	case friendsErr != nil:
		fmt.Fprintf(&b, "\n%s", tr("friends_load_failed"))
	case len(friends) == 0:
		fmt.Fprintf(&b, "\n%s", tr("no_friends"))
	default:
		for _, f := range friends {
			fmt.Fprintf(&b, "\n  %s  %s  +%d", f.MaskedEmail, f.JoinedAt.Format("2006-01-02"), f.FriendsInvited)
		}
	}
	return b.String()
}

func renderWithdraw(p *models.Profile, tr translateFn) string {
	networks := make([]string, 0, len(rewards.Networks()))
	for _, n := range rewards.Networks() {
		networks = append(networks, string(n))
	}
	return fmt.Sprintf("%s\n%s: %s\n%s / %s (%s)\n%s: %s",
		tr("withdraw_title"),
		tr("balance"), money(p.Balance, 5),
		tr("min_withdraw"), tr("max_withdraw"), money(rewards.MaxWithdrawable(p.Balance), 2),
		tr("network"), strings.Join(networks, ", "))
}
