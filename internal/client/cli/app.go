package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/adearn/internal/client/bridge"
	"github.com/dmitrijs2005/adearn/internal/client/config"
	"github.com/dmitrijs2005/adearn/internal/client/gateway"
	"github.com/dmitrijs2005/adearn/internal/client/i18n"
	"github.com/dmitrijs2005/adearn/internal/client/services"
	"github.com/dmitrijs2005/adearn/internal/client/session"
	"github.com/dmitrijs2005/adearn/internal/client/storage"
	"github.com/dmitrijs2005/adearn/internal/logging"
)

const headerColor = "#000000"

// localState is the part of the local store the app drives directly.
type localState interface {
	session.LocaleStore
	Reset(ctx context.Context) error
	Close() error
}

type App struct {
	config *config.Config
	log    logging.Logger
	state  localState
	gw     gateway.Gateway
	bridge bridge.Bridge
	auth   *services.AuthService
	now    func() time.Time

	// rebuilt on every reload
	ctrl     *session.Controller
	actions  *services.ActionService
	watchdog *session.Watchdog
	unwatch  func()

	reader *bufio.Reader
	outMu  sync.Mutex
	out    io.Writer
}

// NewApp opens local storage, connects the configured transport and detects
// the host bridge.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := openState(ctx, cfg.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	gw, err := newGateway(cfg, st, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	br := detectBridge(ctx, cfg, log)
	return newApp(cfg, log, st, gw, br, bufio.NewReader(os.Stdin), os.Stdout), nil
}

// persistentState is the local store both the app and the gateway use.
type persistentState interface {
	localState
	gateway.SessionStore
}

// openState opens the sqlite store in dataDir. Without a data directory
// everything is kept in memory.
func openState(ctx context.Context, dataDir string, log logging.Logger) (persistentState, error) {
	if dataDir == "" {
		log.Warn(ctx, "no data directory configured, nothing will be persisted")
		return storage.NewMemory(), nil
	}
	st, err := storage.Open(ctx, dataDir)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func newGateway(cfg *config.Config, store gateway.SessionStore, log logging.Logger) (gateway.Gateway, error) {
	switch cfg.Transport {
	case config.TransportGRPC:
		g, err := gateway.NewGRPCGateway(cfg.GRPCAddr, cfg.APIKey, store, log)
		if err != nil {
			return nil, fmt.Errorf("grpc gateway: %w", err)
		}
		return g, nil
	default:
		g, err := gateway.NewRESTGateway(gateway.RESTOptions{
			BaseURL: cfg.BackendURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.RequestTimeout,
		}, store, log)
		if err != nil {
			return nil, fmt.Errorf("rest gateway: %w", err)
		}
		return g, nil
	}
}

// detectBridge returns the Telegram bridge when launch data was given and,
// if a bot token is configured, its signature checks out.
func detectBridge(ctx context.Context, cfg *config.Config, log logging.Logger) bridge.Bridge {
	sink := func(ev bridge.Event) {
		log.Debug(context.Background(), "bridge effect", "kind", ev.Kind, "value", ev.Value)
	}
	b := bridge.Detect(cfg.InitData, sink, log)

	tg, ok := b.(*bridge.Telegram)
	if !ok || cfg.BotToken == "" {
		return b
	}
	if err := tg.Data().Verify(cfg.BotToken); err != nil {
		log.Warn(ctx, "launch data failed verification, running without host", "error", err)
		return bridge.Noop{}
	}
	return b
}

func newApp(cfg *config.Config, log logging.Logger, st localState, gw gateway.Gateway, br bridge.Bridge, in *bufio.Reader, out io.Writer) *App {
	a := &App{
		config: cfg,
		log:    log,
		state:  st,
		gw:     gw,
		bridge: br,
		auth: services.NewAuthService(gw, log, session.RetryPolicy{
			Attempts: cfg.SignUpRetries,
			Delay:    cfg.SignUpDelay,
		}),
		now:    time.Now,
		reader: in,
		out:    out,
	}
	a.buildController()
	return a
}

func (a *App) buildController() {
	a.ctrl = session.New(a.gw, a.state, a.log, session.Options{
		SelfHealRetry: session.RetryPolicy{Attempts: a.config.SelfHealRetries, Delay: a.config.SelfHealDelay},
		LanguageHint:  a.bridge.LanguageHint(),
		Document:      a.applyDocument,
		Now:           a.now,
	})
	a.watchdog = session.NewWatchdog(a.config.LoadingTimeout, a.onLoadingSlow)
	a.unwatch = a.ctrl.Subscribe(a.watchdog.Observe)
	a.actions = services.NewActionService(a.gw, a.ctrl, a.bridge, a.log, services.ActionOptions{
		AdDuration:   a.config.AdDuration,
		SpinDuration: a.config.SpinDuration,
		Now:          a.now,
	})
}

// start runs the controller's first session check. With autoLogin set and a
// host present, a missing session triggers Telegram sign-in.
func (a *App) start(ctx context.Context, autoLogin bool) {
	a.watchdog.Observe(a.ctrl.Snapshot())
	a.ctrl.Start(ctx)

	if autoLogin && a.bridge.Available() && a.ctrl.Snapshot().Session == nil {
		if _, err := a.auth.AutoLogin(ctx, a.bridge); err != nil {
			a.log.Warn(ctx, "auto-login failed", "error", err)
			a.println(services.Describe(err, a.tr))
		}
		a.ctrl.Wait()
	}
}

func (a *App) teardown() {
	if a.unwatch != nil {
		a.unwatch()
	}
	a.watchdog.Stop()
	a.ctrl.Close()
}

// reload discards the controller and starts a fresh one, the terminal
// equivalent of reloading the page.
func (a *App) reload(ctx context.Context, autoLogin bool) {
	a.teardown()
	a.buildController()
	a.start(ctx, autoLogin)
}

// Run starts the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	a.bridge.Ready()
	a.bridge.Expand()
	a.bridge.SetHeaderColor(headerColor)

	a.start(ctx, true)
	a.println(a.tr("app_title") + " (type 'help' for commands)")
	_ = a.Status(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	a.teardown()
	if err := a.gw.Close(); err != nil {
		a.log.Warn(context.Background(), "closing gateway", "error", err)
	}
	if err := a.state.Close(); err != nil {
		a.log.Warn(context.Background(), "closing local storage", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.ctrl.Snapshot().Session != nil
}

func (a *App) getStatus() string {
	s := a.ctrl.Snapshot()
	label := s.State.String()
	switch {
	case s.Loading:
		label = "loading"
	case s.Profile != nil:
		label = s.Profile.Email
	case s.Session != nil && s.Session.Email != "":
		label = s.Session.Email
	}
	return fmt.Sprintf("(%s %s)", label, s.Locale)
}

func (a *App) tr(key string) string {
	return a.ctrl.Translate(key)
}

func (a *App) applyDocument(lang i18n.Locale, dir i18n.Direction) {
	a.log.Debug(context.Background(), "document language applied", "lang", string(lang), "dir", string(dir))
}

func (a *App) onLoadingSlow() {
	a.println("\n" + a.tr("loading_slow") + "\n" + a.tr("try_again") + ": retry | reset")
}

func (a *App) println(s string) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, s)
}
