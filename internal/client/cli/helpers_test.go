package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/adearn/internal/client/bridge"
	"github.com/dmitrijs2005/adearn/internal/client/config"
	"github.com/dmitrijs2005/adearn/internal/client/gateway"
	"github.com/dmitrijs2005/adearn/internal/client/i18n"
	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/dmitrijs2005/adearn/internal/logging"
	"github.com/shopspring/decimal"
)

// fakeGateway keeps one session and notifies subscribers synchronously, the
// way the real gateways do.
type fakeGateway struct {
	mu sync.Mutex

	session  *models.Session
	profiles map[string]*models.Profile
	subs     map[int]func(*models.Session)
	nextSub  int

	signIns         []string
	tgSignInErr     error
	signUpErr       error
	signUpReferrals []string
	invokes         []gateway.RPC
	invokeArgs      []map[string]any
	invokeErr       error
	referrals       []models.ReferralUser
	signOuts        int
	closed          bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{profiles: map[string]*models.Profile{}, subs: map[int]func(*models.Session){}}
}

func (f *fakeGateway) setSession(s *models.Session) {
	f.mu.Lock()
	f.session = s
	subs := make([]func(*models.Session), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()
	for _, fn := range subs {
		fn(s)
	}
}

func (f *fakeGateway) GetSession(context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, nil
}

func (f *fakeGateway) OnSessionChange(fn func(*models.Session)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *fakeGateway) SignIn(_ context.Context, email, password string) (*models.Session, error) {
	f.mu.Lock()
	f.signIns = append(f.signIns, email+":"+password)
	f.mu.Unlock()
	if password != "secret" {
		return nil, gateway.ErrUnauthorized
	}
	s := &models.Session{UserID: "u-" + email, Email: email}
	f.setSession(s)
	return s, nil
}

func (f *fakeGateway) SignUp(_ context.Context, email, _, referral string) (*models.Session, error) {
	f.mu.Lock()
	f.signUpReferrals = append(f.signUpReferrals, referral)
	f.mu.Unlock()
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	s := &models.Session{UserID: "u-" + email, Email: email}
	f.setSession(s)
	return s, nil
}

func (f *fakeGateway) SignInWithTelegram(_ context.Context, _ string) (*models.Session, error) {
	f.mu.Lock()
	f.signIns = append(f.signIns, "telegram")
	err := f.tgSignInErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s := &models.Session{UserID: "u-tg", Email: "tg@example.org"}
	f.setSession(s)
	return s, nil
}

func (f *fakeGateway) SignUpWithTelegram(ctx context.Context, initData, _ string) (*models.Session, error) {
	f.mu.Lock()
	f.tgSignInErr = nil
	f.mu.Unlock()
	return f.SignInWithTelegram(ctx, initData)
}

func (f *fakeGateway) SignOut(context.Context) error {
	f.mu.Lock()
	f.signOuts++
	f.mu.Unlock()
	f.setSession(nil)
	return nil
}

func (f *fakeGateway) FetchProfile(_ context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return p.Clone(), nil
}

func (f *fakeGateway) Invoke(_ context.Context, name gateway.RPC, args map[string]any) (*models.RPCResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invokes = append(f.invokes, name)
	f.invokeArgs = append(f.invokeArgs, args)
	if f.invokeErr != nil {
		return nil, f.invokeErr
	}
	res := &models.RPCResult{Success: true}
	if name == gateway.RPCGetMyReferrals {
		res.Data, _ = json.Marshal(f.referrals)
	}
	return res, nil
}

func (f *fakeGateway) Close() error {
	f.closed = true
	return nil
}

func (f *fakeGateway) invoked() []gateway.RPC {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gateway.RPC(nil), f.invokes...)
}

// memState is an in-memory local store.
type memState struct {
	mu     sync.Mutex
	locale i18n.Locale
	resets int
	closed bool
}

func (m *memState) LoadLocale(context.Context) (i18n.Locale, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locale, m.locale != "", nil
}

func (m *memState) SaveLocale(_ context.Context, l i18n.Locale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locale = l
	return nil
}

func (m *memState) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locale = ""
	m.resets++
	return nil
}

func (m *memState) Close() error {
	m.closed = true
	return nil
}

var testNow = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

func testProfile(id, email string) *models.Profile {
	today := models.DateOf(testNow)
	return &models.Profile{
		ID:              id,
		Email:           email,
		Balance:         decimal.RequireFromString("12.5"),
		AdsWatched:      120,
		AdsWatchedToday: 3,
		LastAdResetDate: &today,
		VIPLevel:        1,
		ReferralCode:    "REF1",
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AdDuration = 0
	cfg.SpinDuration = 0
	cfg.SignUpDelay = 0
	cfg.LoadingTimeout = time.Minute
	return cfg
}

type testApp struct {
	*App
	gw    *fakeGateway
	state *memState
	out   *bytes.Buffer
}

func (t *testApp) output() string { return t.out.String() }

// newTestApp builds an App over fakes. input feeds the interactive prompts.
func newTestApp(t *testing.T, gw *fakeGateway, br bridge.Bridge, input string) *testApp {
	t.Helper()
	if br == nil {
		br = bridge.Noop{}
	}
	st := &memState{locale: i18n.English}
	out := &bytes.Buffer{}
	a := newApp(testConfig(), logging.Discard(), st, gw, br, bufio.NewReader(strings.NewReader(input)), out)
	a.now = func() time.Time { return testNow }
	// controller was built with time.Now; rebuild with the fixed clock
	a.teardown()
	a.buildController()
	t.Cleanup(a.teardown)
	return &testApp{App: a, gw: gw, state: st, out: out}
}
