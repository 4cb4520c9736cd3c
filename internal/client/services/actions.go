package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/adearn/internal/client/bridge"
	"github.com/dmitrijs2005/adearn/internal/client/gateway"
	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/dmitrijs2005/adearn/internal/client/rewards"
	"github.com/dmitrijs2005/adearn/internal/client/session"
	"github.com/dmitrijs2005/adearn/internal/logging"
	"github.com/shopspring/decimal"
)

// Client-side rejections. They mirror the codes the backend would answer
// with, so the view can describe both the same way.
var (
	ErrActionInProgress  = errors.New("action already in progress")
	ErrNoProfile         = errors.New("profile not loaded")
	ErrDailyLimitReached = errors.New("daily ad limit reached")
	ErrMiningLocked      = errors.New("mining is locked")
	ErrDepositLocked     = errors.New("mining deposit is locked")
	ErrCooldownActive    = errors.New("cooldown active")
	ErrDepositRequired   = errors.New("mining deposit required")
	ErrInvalidCode       = errors.New("invalid invite code")
	ErrSelfReferral      = errors.New("cannot redeem own invite code")
	ErrAlreadyReferred   = errors.New("invite code already redeemed")
)

// Invoker runs backend procedures.
type Invoker interface {
	Invoke(ctx context.Context, name gateway.RPC, args map[string]any) (*models.RPCResult, error)
}

// ProfileSource is the controller as seen by actions.
type ProfileSource interface {
	Snapshot() session.Snapshot
	MarkStale()
	RefreshProfile(ctx context.Context) session.Snapshot
}

type ActionOptions struct {
	// AdDuration is how long an ad plays before it is credited.
	AdDuration time.Duration
	// SpinDuration is how long the wheel turns before the spin is submitted.
	SpinDuration time.Duration
	Now          func() time.Time
}

func DefaultActionOptions() ActionOptions {
	return ActionOptions{AdDuration: 5 * time.Second, SpinDuration: 4 * time.Second}
}

// spin ticks fire every spinTick, at most maxSpinTicks times.
const (
	spinTick     = 150 * time.Millisecond
	maxSpinTicks = 20
	adTick       = 50 * time.Millisecond
)

// ActionService performs the reward actions. Each kind of action runs at
// most once at a time; a duplicate submission fails with
// ErrActionInProgress. Errors go back to the caller and never into the
// controller's state.
type ActionService struct {
	gw       Invoker
	profiles ProfileSource
	bridge   bridge.Bridge
	log      logging.Logger
	opts     ActionOptions

	mu       sync.Mutex
	inFlight map[gateway.RPC]struct{}
}

func NewActionService(gw Invoker, profiles ProfileSource, b bridge.Bridge, log logging.Logger, opts ActionOptions) *ActionService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if b == nil {
		b = bridge.Noop{}
	}
	return &ActionService{
		gw:       gw,
		profiles: profiles,
		bridge:   b,
		log:      log,
		opts:     opts,
		inFlight: make(map[gateway.RPC]struct{}),
	}
}

// InFlight reports whether an action of the given kind is running.
func (s *ActionService) InFlight(name gateway.RPC) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[name]
	return ok
}

func (s *ActionService) begin(name gateway.RPC) (done func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[name]; busy {
		return nil, ErrActionInProgress
	}
	s.inFlight[name] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.inFlight, name)
		s.mu.Unlock()
	}, nil
}

// action describes one submission.
type action struct {
	rpc   gateway.RPC
	args  map[string]any
	check func(p *models.Profile) error
	// before runs after validation, before the procedure is invoked.
	before func(ctx context.Context) error
}

func (s *ActionService) run(ctx context.Context, a action) (*models.RPCResult, error) {
	done, err := s.begin(a.rpc)
	if err != nil {
		return nil, err
	}
	defer done()

	p := s.profiles.Snapshot().Profile
	if p == nil {
		return nil, ErrNoProfile
	}
	if a.check != nil {
		if err := a.check(p); err != nil {
			s.bridge.HapticNotification(bridge.NotifyError)
			return nil, err
		}
	}
	if a.before != nil {
		if err := a.before(ctx); err != nil {
			return nil, err
		}
	}

	res, err := s.gw.Invoke(ctx, a.rpc, a.args)
	if err != nil {
		s.log.Warn(ctx, "action failed", "rpc", string(a.rpc), "error", err)
		s.bridge.HapticNotification(bridge.NotifyError)
		return nil, fmt.Errorf("%s: %w", a.rpc, err)
	}

	s.bridge.HapticNotification(bridge.NotifySuccess)
	s.profiles.MarkStale()
	s.profiles.RefreshProfile(ctx)
	return res, nil
}

// WatchAd plays an ad for AdDuration, reporting progress in [0,1] when
// progress is non-nil, then credits it.
func (s *ActionService) WatchAd(ctx context.Context, progress func(float64)) error {
	_, err := s.run(ctx, action{
		rpc: gateway.RPCWatchAd,
		check: func(p *models.Profile) error {
			if rewards.DailyLimitReached(p) {
				return ErrDailyLimitReached
			}
			return nil
		},
		before: func(ctx context.Context) error {
			s.bridge.HapticImpact(bridge.ImpactLight)
			return play(ctx, s.opts.AdDuration, adTick, func(elapsed time.Duration) {
				switch {
				case progress == nil:
				case s.opts.AdDuration <= 0:
					progress(1)
				default:
					progress(float64(elapsed) / float64(s.opts.AdDuration))
				}
			})
		},
	})
	return err
}

func (s *ActionService) Deposit(ctx context.Context, amount decimal.Decimal) error {
	_, err := s.run(ctx, action{
		rpc:  gateway.RPCDepositForMining,
		args: map[string]any{"amount": money(amount)},
		check: func(p *models.Profile) error {
			if !rewards.MiningUnlocked(p) {
				return ErrMiningLocked
			}
			if err := rewards.ValidateDeposit(amount); err != nil {
				return err
			}
			if p.Balance.LessThan(amount) {
				return rewards.ErrInsufficientBalance
			}
			return nil
		},
	})
	return err
}

func (s *ActionService) WithdrawDeposit(ctx context.Context) error {
	_, err := s.run(ctx, action{
		rpc: gateway.RPCWithdrawMiningDeposit,
		check: func(p *models.Profile) error {
			if !p.MiningDeposit.IsPositive() {
				return ErrDepositRequired
			}
			if rewards.DepositLocked(p.DepositDate, s.opts.Now()) {
				return ErrDepositLocked
			}
			return nil
		},
	})
	return err
}

// Spin turns the wheel for SpinDuration with selection haptics, then
// submits the spin.
func (s *ActionService) Spin(ctx context.Context) error {
	_, err := s.run(ctx, action{
		rpc: gateway.RPCSpinMiningWheel,
		check: func(p *models.Profile) error {
			switch {
			case !rewards.MiningUnlocked(p):
				return ErrMiningLocked
			case p.MiningDeposit.LessThan(rewards.MinSpinDeposit):
				return ErrDepositRequired
			case !rewards.CanSpin(p.LastMiningSpin, s.opts.Now()):
				return ErrCooldownActive
			}
			return nil
		},
		before: func(ctx context.Context) error {
			s.bridge.HapticImpact(bridge.ImpactMedium)
			ticks := 0
			return play(ctx, s.opts.SpinDuration, spinTick, func(time.Duration) {
				if ticks < maxSpinTicks {
					ticks++
					s.bridge.HapticSelection()
				}
			})
		},
	})
	return err
}

func (s *ActionService) RequestWithdrawal(ctx context.Context, amount decimal.Decimal, address string, network rewards.Network) error {
	address = strings.TrimSpace(address)
	_, err := s.run(ctx, action{
		rpc: gateway.RPCRequestWithdrawal,
		args: map[string]any{
			"amount":       money(amount),
			"wallet_addr":  address,
			"network_type": string(network),
		},
		check: func(p *models.Profile) error {
			return rewards.ValidateWithdrawal(amount, p.Balance, address, network)
		},
	})
	return err
}

func (s *ActionService) RedeemInviteCode(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	_, err := s.run(ctx, action{
		rpc:  gateway.RPCRedeemInviteCode,
		args: map[string]any{"code": code},
		check: func(p *models.Profile) error {
			switch {
			case code == "":
				return ErrInvalidCode
			case strings.EqualFold(code, p.ReferralCode):
				return ErrSelfReferral
			case p.ReferredBy != nil && *p.ReferredBy != "":
				return ErrAlreadyReferred
			}
			return nil
		},
	})
	return err
}

// Referrals lists the users who joined with the caller's code.
func (s *ActionService) Referrals(ctx context.Context) ([]models.ReferralUser, error) {
	res, err := s.gw.Invoke(ctx, gateway.RPCGetMyReferrals, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", gateway.RPCGetMyReferrals, err)
	}

	var users []models.ReferralUser
	if len(res.Data) > 0 && string(res.Data) != "null" {
		if err := json.Unmarshal(res.Data, &users); err != nil {
			return nil, fmt.Errorf("decode referrals: %w", err)
		}
	}
	for i := range users {
		if strings.Contains(users[i].MaskedEmail, "@") && !strings.Contains(users[i].MaskedEmail, "*") {
			users[i].MaskedEmail = rewards.MaskEmail(users[i].MaskedEmail)
		}
	}
	return users, nil
}

// play waits for d, calling tick every interval with the elapsed time.
func play(ctx context.Context, d, interval time.Duration, tick func(elapsed time.Duration)) error {
	if d <= 0 {
		tick(d)
		return ctx.Err()
	}

	start := time.Now()
	t := time.NewTicker(interval)
	defer t.Stop()
	deadline := time.NewTimer(d)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			tick(d)
			return nil
		case now := <-t.C:
			if elapsed := now.Sub(start); elapsed < d {
				tick(elapsed)
			}
		}
	}
}

// money keeps the decimal digits exact on the wire.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
