package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/adearn/internal/client/bridge"
	"github.com/dmitrijs2005/adearn/internal/client/gateway"
	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/dmitrijs2005/adearn/internal/client/session"
)

// ---- fake authenticator ----

type authCall struct {
	method   string
	email    string
	initData string
	referral string
}

type fakeAuth struct {
	calls []authCall

	signInErr error
	signUpErr error
	// tgSignInErrs is consumed one per SignInWithTelegram call; the last
	// entry repeats.
	tgSignInErrs []error
	tgSignUpErr  error
}

func (f *fakeAuth) SignIn(_ context.Context, email, _ string) (*models.Session, error) {
	f.calls = append(f.calls, authCall{method: "SignIn", email: email})
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &models.Session{UserID: "u-" + email, Email: email}, nil
}

func (f *fakeAuth) SignUp(_ context.Context, email, _, referral string) (*models.Session, error) {
	f.calls = append(f.calls, authCall{method: "SignUp", email: email, referral: referral})
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &models.Session{UserID: "u-" + email, Email: email}, nil
}

func (f *fakeAuth) SignInWithTelegram(_ context.Context, initData string) (*models.Session, error) {
	n := 0
	for _, c := range f.calls {
		if c.method == "SignInWithTelegram" {
			n++
		}
	}
	f.calls = append(f.calls, authCall{method: "SignInWithTelegram", initData: initData})
	if len(f.tgSignInErrs) > 0 {
		i := n
		if i >= len(f.tgSignInErrs) {
			i = len(f.tgSignInErrs) - 1
		}
		if err := f.tgSignInErrs[i]; err != nil {
			return nil, err
		}
	}
	return &models.Session{UserID: "tg-user"}, nil
}

func (f *fakeAuth) SignUpWithTelegram(_ context.Context, initData, referral string) (*models.Session, error) {
	f.calls = append(f.calls, authCall{method: "SignUpWithTelegram", initData: initData, referral: referral})
	if f.tgSignUpErr != nil {
		return nil, f.tgSignUpErr
	}
	return &models.Session{UserID: "tg-user"}, nil
}

func (f *fakeAuth) methods() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.method)
	}
	return out
}

// ---- fake bridge ----

type fakeBridge struct {
	bridge.Noop
	available  bool
	initData   string
	startParam string

	mu            sync.Mutex
	impacts       []bridge.ImpactStyle
	notifications []bridge.NotificationType
	selections    int
}

func (b *fakeBridge) Available() bool    { return b.available }
func (b *fakeBridge) InitData() string   { return b.initData }
func (b *fakeBridge) StartParam() string { return b.startParam }

func (b *fakeBridge) HapticImpact(s bridge.ImpactStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.impacts = append(b.impacts, s)
}

func (b *fakeBridge) HapticNotification(n bridge.NotificationType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifications = append(b.notifications, n)
}

func (b *fakeBridge) HapticSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selections++
}

// ---- fake invoker ----

type invokeCall struct {
	name gateway.RPC
	args map[string]any
}

type fakeInvoker struct {
	mu    sync.Mutex
	calls []invokeCall
	err   error
	res   *models.RPCResult
	// block, when set, holds Invoke until closed.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeInvoker) Invoke(_ context.Context, name gateway.RPC, args map[string]any) (*models.RPCResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, invokeCall{name: name, args: args})
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.res != nil {
		return f.res, nil
	}
	return &models.RPCResult{Success: true}, nil
}

// ---- fake profile source ----

type fakeProfiles struct {
	mu        sync.Mutex
	profile   *models.Profile
	refreshes int
	calls     []string
}

func (f *fakeProfiles) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return session.Snapshot{Profile: f.profile.Clone()}
}

func (f *fakeProfiles) MarkStale() {
	f.mu.Lock()
	f.calls = append(f.calls, "mark_stale")
	f.mu.Unlock()
}

func (f *fakeProfiles) RefreshProfile(context.Context) session.Snapshot {
	f.mu.Lock()
	f.refreshes++
	f.calls = append(f.calls, "refresh")
	f.mu.Unlock()
	return f.Snapshot()
}
