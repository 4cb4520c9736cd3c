package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/adearn/internal/client/gateway"
	"github.com/dmitrijs2005/adearn/internal/client/i18n"
	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/dmitrijs2005/adearn/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Messages stored in Snapshot.LastError.
const (
	MsgRecoverFailed   = "Failed to recover profile"
	MsgSetupFailed     = "Account setup failed. Please try resetting."
	MsgConnectionError = "Connection Error"
)

var ErrUnsupportedLocale = errors.New("unsupported locale")

// Gateway is what the controller needs from the backend transport.
type Gateway interface {
	GetSession(ctx context.Context) (*models.Session, error)
	OnSessionChange(fn func(*models.Session)) (unsubscribe func())
	SignOut(ctx context.Context) error
	FetchProfile(ctx context.Context, subjectID string) (*models.Profile, error)
	Invoke(ctx context.Context, name gateway.RPC, args map[string]any) (*models.RPCResult, error)
}

// LocaleStore persists the user's locale choice. ok is false when nothing
// usable is stored.
type LocaleStore interface {
	LoadLocale(ctx context.Context) (l i18n.Locale, ok bool, err error)
	SaveLocale(ctx context.Context, l i18n.Locale) error
}

// DocumentHook applies the active language and text direction to the
// rendering environment.
type DocumentHook func(lang i18n.Locale, dir i18n.Direction)

type Options struct {
	// SelfHealRetry bounds the profile re-fetch after a successful self-heal.
	SelfHealRetry RetryPolicy
	// LanguageHint is the host-reported language, used when no choice is
	// stored.
	LanguageHint string
	Document     DocumentHook
	Now          func() time.Time
}

type outcomeKind int

const (
	outcomeFound outcomeKind = iota
	outcomeTerminal
	outcomeTransport
)

type outcome struct {
	kind    outcomeKind
	profile *models.Profile
	message string
}

type Controller struct {
	gw      Gateway
	locales LocaleStore
	log     logging.Logger
	opts    Options

	lifetime context.Context
	cancel   context.CancelFunc
	sf       singleflight.Group
	wg       sync.WaitGroup

	mu         sync.Mutex
	started    bool
	closed     bool
	terminated bool
	gen        uint64
	epoch      uint64
	applied    uint64
	events     uint64
	version    uint64
	state      State
	session    *models.Session
	profile    *models.Profile
	loading    bool
	lastError  string
	locale     i18n.Locale
	subs       map[uint64]func(Snapshot)
	nextSub    uint64
	unsubGW    func()
}

func New(gw Gateway, locales LocaleStore, log logging.Logger, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SelfHealRetry == (RetryPolicy{}) {
		opts.SelfHealRetry = DefaultRetryPolicy()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		gw:       gw,
		locales:  locales,
		log:      log,
		opts:     opts,
		lifetime: ctx,
		cancel:   cancel,
		state:    Initializing,
		loading:  true,
		locale:   i18n.Default,
		subs:     make(map[uint64]func(Snapshot)),
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	var s *models.Session
	if c.session != nil {
		cp := *c.session
		s = &cp
	}
	return Snapshot{
		Session:    s,
		Profile:    c.profile.Clone(),
		Loading:    c.loading,
		LastError:  c.lastError,
		Locale:     c.locale,
		Direction:  c.locale.Direction(),
		State:      c.state,
		Terminated: c.terminated,
		Version:    c.version,
	}
}

// Subscribe registers fn for every published change. fn runs on the
// goroutine that made the change and must not block.
func (c *Controller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// publishLocked bumps the version and returns the notification to run once
// the lock is released.
func (c *Controller) publishLocked() func() {
	c.version++
	snap := c.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(snap)
		}
	}
}

// Start resolves the locale, subscribes to session changes and performs the
// initial session check. When a session exists it returns after the first
// profile fetch attempt.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.initLocale(ctx)

	unsub := c.gw.OnSessionChange(c.onSessionChange)
	c.mu.Lock()
	c.unsubGW = unsub
	seen := c.events
	c.mu.Unlock()

	s, err := c.gw.GetSession(ctx)
	if err != nil {
		c.log.Warn(ctx, "session check failed", "error", err)
		s = nil
	}

	c.mu.Lock()
	stale := c.events != seen
	c.mu.Unlock()
	if stale {
		// a change notification already delivered a newer session and its
		// load runs in the background
		c.wg.Wait()
		return
	}

	if load := c.applySession(s); load != nil {
		load(ctx)
	}
}

func (c *Controller) onSessionChange(s *models.Session) {
	c.mu.Lock()
	c.events++
	c.mu.Unlock()

	load := c.applySession(s)
	if load == nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		load(c.lifetime)
	}()
}

// applySession moves the state machine for a new session value. It returns
// the profile load to run, if any.
func (c *Controller) applySession(s *models.Session) func(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.terminated {
		c.mu.Unlock()
		return nil
	}

	if s == nil {
		c.gen++
		c.session, c.profile = nil, nil
		c.state = Unauthenticated
		c.loading = false
		c.lastError = ""
		notify := c.publishLocked()
		c.mu.Unlock()
		notify()
		return nil
	}

	same := c.session.Same(s)
	c.session = s
	if same && c.profile != nil {
		notify := c.publishLocked()
		c.mu.Unlock()
		notify()
		return nil
	}

	if !same {
		c.gen++
		c.profile = nil
		c.lastError = ""
	}
	c.state = AuthenticatedNoProfile
	c.loading = true
	gen, userID := c.gen, s.UserID
	notify := c.publishLocked()
	c.mu.Unlock()
	notify()

	return func(ctx context.Context) { c.load(ctx, gen, userID) }
}

// MarkStale records that backend data changed. Later refreshes start a new
// fetch instead of joining one that began before the change.
func (c *Controller) MarkStale() {
	c.mu.Lock()
	c.epoch++
	c.mu.Unlock()
}

// RefreshProfile re-runs the fetch protocol for the current session and
// returns the resulting snapshot. Concurrent calls share one fetch.
func (c *Controller) RefreshProfile(ctx context.Context) Snapshot {
	c.mu.Lock()
	if c.closed || c.terminated || c.session == nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	gen, userID := c.gen, c.session.UserID
	c.mu.Unlock()

	c.load(ctx, gen, userID)
	return c.Snapshot()
}

// load joins or starts the fetch for userID in the current epoch and
// applies its outcome. A caller that gives up still gets the outcome
// applied in the background.
func (c *Controller) load(ctx context.Context, gen uint64, userID string) {
	c.mu.Lock()
	epoch := c.epoch
	c.mu.Unlock()

	key := userID + "#" + strconv.FormatUint(epoch, 10)
	ch := c.sf.DoChan(key, func() (any, error) {
		return c.fetchProtocol(c.lifetime, userID), nil
	})

	select {
	case r := <-ch:
		c.apply(ctx, gen, epoch, userID, r.Val.(outcome))
	case <-ctx.Done():
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.wg.Add(1)
		c.mu.Unlock()
		go func() {
			defer c.wg.Done()
			r := <-ch
			c.apply(c.lifetime, gen, epoch, userID, r.Val.(outcome))
		}()
	}
}

func (c *Controller) fetchProtocol(ctx context.Context, userID string) outcome {
	p, err := c.gw.FetchProfile(ctx, userID)
	if err == nil {
		return outcome{kind: outcomeFound, profile: p}
	}
	if !errors.Is(err, gateway.ErrNotFound) {
		return outcome{kind: outcomeTransport, message: describeTransport(err)}
	}

	c.log.Info(ctx, "profile missing, attempting self-heal", "user_id", userID)
	if _, err := c.gw.Invoke(ctx, gateway.RPCSelfHealProfile, nil); err != nil {
		c.log.Error(ctx, "self-heal failed", "user_id", userID, "error", err)
		return outcome{kind: outcomeTerminal, message: MsgSetupFailed}
	}

	var healed *models.Profile
	err = c.opts.SelfHealRetry.Do(ctx, func(ctx context.Context) error {
		p, err := c.gw.FetchProfile(ctx, userID)
		if errors.Is(err, gateway.ErrNotFound) {
			return Retryable(err)
		}
		if err != nil {
			return err
		}
		healed = p
		return nil
	})
	if err != nil || healed == nil {
		c.log.Error(ctx, "profile still missing after self-heal", "user_id", userID, "error", err)
		return outcome{kind: outcomeTerminal, message: MsgRecoverFailed}
	}
	return outcome{kind: outcomeFound, profile: healed}
}

func describeTransport(err error) string {
	if errors.Is(err, gateway.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return MsgConnectionError
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgConnectionError
}

func (c *Controller) apply(ctx context.Context, gen, epoch uint64, userID string, out outcome) {
	c.mu.Lock()
	if c.closed || c.terminated || gen != c.gen || c.session == nil || c.session.UserID != userID {
		c.mu.Unlock()
		return
	}
	if epoch < c.applied {
		// a fetch started after a later MarkStale already landed
		c.mu.Unlock()
		return
	}
	c.applied = epoch

	switch out.kind {
	case outcomeFound:
		today := models.DateOf(c.opts.Now())
		c.profile = keepMonotonic(c.profile, ApplyDailyReset(out.profile, today))
		c.lastError = ""
		c.state = AuthenticatedWithProfile
	case outcomeTerminal:
		c.profile = nil
		c.lastError = out.message
		c.state = AuthenticatedProfileError
	case outcomeTransport:
		if c.profile != nil {
			c.log.Warn(ctx, "profile refresh failed, keeping cached profile", "user_id", userID, "error", out.message)
		} else {
			c.lastError = out.message
			c.state = AuthenticatedProfileError
		}
	}
	c.loading = false

	notify := c.publishLocked()
	c.mu.Unlock()
	notify()
}

// Logout signs out, clears the session and profile and terminates the
// controller. Failures are logged; local state is cleared regardless.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	if c.terminated {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if err := c.gw.SignOut(ctx); err != nil {
		c.log.Warn(ctx, "sign out failed", "error", err)
	}

	c.mu.Lock()
	c.gen++
	c.terminated = true
	c.session, c.profile = nil, nil
	c.state = Unauthenticated
	c.loading = false
	c.lastError = ""
	notify := c.publishLocked()
	c.mu.Unlock()
	notify()
}

func (c *Controller) initLocale(ctx context.Context) {
	l := i18n.Default
	stored, ok, err := c.locales.LoadLocale(ctx)
	switch {
	case err != nil:
		c.log.Warn(ctx, "could not read locale preference", "error", err)
		if c.opts.LanguageHint != "" {
			l = i18n.FromLanguageCode(c.opts.LanguageHint)
		}
	case ok:
		l = stored
	case c.opts.LanguageHint != "":
		l = i18n.FromLanguageCode(c.opts.LanguageHint)
	}

	c.mu.Lock()
	c.locale = l
	c.mu.Unlock()
	c.applyDocument(l)
}

// SetLocale switches the display locale and persists the choice. A failed
// write is logged; the switch still happens.
func (c *Controller) SetLocale(ctx context.Context, l i18n.Locale) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedLocale, l)
	}
	if err := c.locales.SaveLocale(ctx, l); err != nil {
		c.log.Warn(ctx, "could not persist locale preference", "error", err)
	}

	c.mu.Lock()
	c.locale = l
	notify := c.publishLocked()
	c.mu.Unlock()

	c.applyDocument(l)
	notify()
	return nil
}

func (c *Controller) applyDocument(l i18n.Locale) {
	if c.opts.Document != nil {
		c.opts.Document(l, l.Direction())
	}
}

func (c *Controller) Translate(key string) string {
	c.mu.Lock()
	l := c.locale
	c.mu.Unlock()
	return i18n.Translate(l, key)
}

// Wait blocks until profile loads started by session notifications finish.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close detaches the controller. Later results and notifications are
// dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	unsub := c.unsubGW
	c.subs = make(map[uint64]func(Snapshot))
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	c.cancel()
	c.wg.Wait()
}
