package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adearn/internal/client/i18n"
	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/dmitrijs2005/adearn/internal/client/rewards"
	"github.com/dmitrijs2005/adearn/internal/client/services"
	"github.com/shopspring/decimal"
)

// profile returns the loaded profile, or prints the gate screen and returns
// false when there is none to show.
func (a *App) profile() (*models.Profile, bool) {
	s := a.ctrl.Snapshot()
	if screen, blocked := renderGate(s, a.watchdog.Fired(), a.tr); blocked {
		a.println(screen)
		return nil, false
	}
	return s.Profile, true
}

// report prints the outcome of an action.
func (a *App) report(err error, successKey string) error {
	if err != nil {
		a.println(services.Describe(err, a.tr))
		return err
	}
	a.println(a.tr(successKey))
	return nil
}

// argOrPrompt returns args[i] or asks for it.
func (a *App) argOrPrompt(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) Status(ctx context.Context) error {
	p, ok := a.profile()
	if !ok {
		return nil
	}
	a.println(renderHome(p, a.tr))
	return nil
}

func (a *App) WatchAd(ctx context.Context) error {
	if _, ok := a.profile(); !ok {
		return nil
	}
	a.println(a.tr("watch_ad") + "...")
	err := a.actions.WatchAd(ctx, a.progressBar())
	a.println("")
	if err := a.report(err, "success"); err != nil {
		return err
	}
	return a.Status(ctx)
}

// progressBar redraws a single line as progress goes from 0 to 1.
func (a *App) progressBar() func(float64) {
	const width = 20
	last := -1
	return func(f float64) {
		n := int(f * width)
		switch {
		case n < 0:
			n = 0
		case n > width:
			n = width
		}
		if n == last {
			return
		}
		last = n
		a.outMu.Lock()
		fmt.Fprintf(a.out, "\r[%s%s] %3.0f%%", strings.Repeat("#", n), strings.Repeat(" ", width-n), f*100)
		a.outMu.Unlock()
	}
}

func (a *App) Mining(ctx context.Context) error {
	p, ok := a.profile()
	if !ok {
		return nil
	}
	a.println(renderMining(p, a.now(), a.tr))
	return nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return decimal.Zero, rewards.ErrAmountOutOfRange
	}
	return d, nil
}

func (a *App) Deposit(ctx context.Context, args []string) error {
	if _, ok := a.profile(); !ok {
		return nil
	}
	raw, err := a.argOrPrompt(args, 0, a.tr("amount")+" ("+a.tr("deposit_range")+")")
	if err != nil {
		return err
	}
	amount, err := parseAmount(raw)
	if err != nil {
		return a.report(err, "")
	}
	return a.report(a.actions.Deposit(ctx, amount), "success")
}

func (a *App) Spin(ctx context.Context) error {
	if _, ok := a.profile(); !ok {
		return nil
	}
	a.println(a.tr("spin") + "...")
	if err := a.report(a.actions.Spin(ctx), "success"); err != nil {
		return err
	}
	return a.Mining(ctx)
}

func (a *App) WithdrawDeposit(ctx context.Context) error {
	if _, ok := a.profile(); !ok {
		return nil
	}
	return a.report(a.actions.WithdrawDeposit(ctx), "success")
}

func (a *App) VIP(ctx context.Context) error {
	p, ok := a.profile()
	if !ok {
		return nil
	}
	a.println(renderVIP(p, a.tr))
	return nil
}

func (a *App) Referral(ctx context.Context) error {
	p, ok := a.profile()
	if !ok {
		return nil
	}
	friends, err := a.actions.Referrals(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not load referrals", "error", err)
	}
	a.println(renderReferral(p, a.config.BotUsername, friends, err, a.tr))
	return nil
}

func (a *App) Invite(ctx context.Context) error {
	p, ok := a.profile()
	if !ok {
		return nil
	}
	if p.ReferralCode == "" {
		a.println(a.tr("referral_code") + ": ---")
		return nil
	}
	a.println(rewards.InviteLink(a.config.BotUsername, p.ReferralCode))
	return nil
}

// Share opens the host's share dialog with the invite link and prints the
// share URL for terminals without a host.
func (a *App) Share(ctx context.Context) error {
	p, ok := a.profile()
	if !ok || p.ReferralCode == "" {
		return nil
	}
	url := rewards.ShareURL(a.config.BotUsername, p.ReferralCode)
	a.bridge.OpenLink(url)
	a.println(url)
	return nil
}

func (a *App) Redeem(ctx context.Context, args []string) error {
	if _, ok := a.profile(); !ok {
		return nil
	}
	code, err := a.argOrPrompt(args, 0, a.tr("redeem_code"))
	if err != nil {
		return err
	}
	return a.report(a.actions.RedeemInviteCode(ctx, code), "success")
}

// Withdraw takes amount, address and network from args, prompting for any
// that are missing. "max" withdraws the largest amount the balance allows.
func (a *App) Withdraw(ctx context.Context, args []string) error {
	p, ok := a.profile()
	if !ok {
		return nil
	}
	if len(args) == 0 {
		a.println(renderWithdraw(p, a.tr))
	}

	raw, err := a.argOrPrompt(args, 0, a.tr("amount"))
	if err != nil {
		return err
	}
	var amount decimal.Decimal
	if strings.EqualFold(raw, "max") {
		amount = rewards.MaxWithdrawable(p.Balance)
	} else if amount, err = parseAmount(raw); err != nil {
		return a.report(err, "")
	}

	address, err := a.argOrPrompt(args, 1, a.tr("wallet_address"))
	if err != nil {
		return err
	}

	var rawNetwork string
	if len(args) > 2 {
		rawNetwork = args[2]
	} else {
		names := make([]string, 0, len(rewards.Networks()))
		for _, n := range rewards.Networks() {
			names = append(names, string(n))
		}
		if rawNetwork, err = GetChoice(a.reader, a.tr("network"), names, a.out); err != nil {
			return a.report(rewards.ErrUnknownNetwork, "")
		}
	}
	network, err := rewards.ParseNetwork(rawNetwork)
	if err != nil {
		return a.report(err, "")
	}

	return a.report(a.actions.RequestWithdrawal(ctx, amount, address, network), "withdraw_success")
}

// Language shows the locales or switches to the one given.
func (a *App) Language(ctx context.Context, args []string) error {
	if len(args) == 0 {
		names := make([]string, 0, len(i18n.Locales()))
		for _, l := range i18n.Locales() {
			names = append(names, string(l))
		}
		a.println(fmt.Sprintf("%s: %s (%s)", a.tr("language"), a.ctrl.Snapshot().Locale, strings.Join(names, ", ")))
		return nil
	}

	l, ok := i18n.ParseLocale(args[0])
	if !ok {
		a.println("Unknown language: " + args[0])
		return nil
	}
	if err := a.ctrl.SetLocale(ctx, l); err != nil {
		return err
	}
	a.println(a.tr("language") + ": " + string(l))
	return nil
}

// Retry re-runs the profile fetch. When loading has stalled the controller
// is rebuilt instead.
func (a *App) Retry(ctx context.Context) error {
	if a.watchdog.Fired() {
		a.reload(ctx, true)
		return a.Status(ctx)
	}
	if !a.isLoggedIn() {
		return a.Status(ctx)
	}
	a.println(a.tr("loading"))
	a.ctrl.RefreshProfile(ctx)
	return a.Status(ctx)
}
