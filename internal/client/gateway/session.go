package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/dmitrijs2005/adearn/internal/common"
	"github.com/dmitrijs2005/adearn/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// tokens this close to expiry are refreshed before use
const expirySkew = 30 * time.Second

type refreshFunc func(ctx context.Context, refreshToken string) (*Credentials, error)

// sessionFromToken reads identity from the access token. The signature is
// the backend's business; the client only needs the claims.
func sessionFromToken(token string) (*models.Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, common.ErrInvalidToken
	}

	s := &models.Session{UserID: sub}
	if email, ok := claims["email"].(string); ok {
		s.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
	return s, nil
}

// sessionHub is the single session slot shared by a transport.
type sessionHub struct {
	store SessionStore
	log   logging.Logger
	now   func() time.Time

	mu      sync.Mutex
	loaded  bool
	creds   *Credentials
	session *models.Session
	subs    map[uint64]func(*models.Session)
	nextSub uint64

	refreshMu sync.Mutex
}

func newSessionHub(store SessionStore, log logging.Logger) *sessionHub {
	if store == nil {
		store = &MemoryStore{}
	}
	return &sessionHub{
		store: store,
		log:   log,
		now:   time.Now,
		subs:  make(map[uint64]func(*models.Session)),
	}
}

func (h *sessionHub) subscribe(fn func(*models.Session)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// current returns the slot contents, reading the store on first use.
func (h *sessionHub) current(ctx context.Context) (*Credentials, *models.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.loaded {
		h.loaded = true
		creds, err := h.store.LoadCredentials(ctx)
		if err != nil {
			h.log.Warn(ctx, "could not load stored session", "error", err)
		}
		if creds != nil {
			if s, err := sessionFromToken(creds.AccessToken); err == nil {
				h.creds, h.session = creds, s
			} else {
				h.log.Warn(ctx, "discarding stored session", "error", err)
			}
		}
	}

	if h.session == nil {
		return nil, nil
	}
	c, s := *h.creds, *h.session
	return &c, &s
}

func (h *sessionHub) accessToken(ctx context.Context) string {
	c, _ := h.current(ctx)
	if c == nil {
		return ""
	}
	return c.AccessToken
}

// set stores new credentials and notifies subscribers.
func (h *sessionHub) set(ctx context.Context, creds *Credentials) (*models.Session, error) {
	s, err := sessionFromToken(creds.AccessToken)
	if err != nil {
		return nil, err
	}
	if err := h.store.SaveCredentials(ctx, creds); err != nil {
		h.log.Warn(ctx, "could not persist session", "error", err)
	}

	h.mu.Lock()
	c := *creds
	h.loaded = true
	h.creds, h.session = &c, s
	h.mu.Unlock()

	h.notify(s)
	cp := *s
	return &cp, nil
}

func (h *sessionHub) clear(ctx context.Context) {
	if err := h.store.ClearCredentials(ctx); err != nil {
		h.log.Warn(ctx, "could not clear stored session", "error", err)
	}

	h.mu.Lock()
	had := h.session != nil
	h.loaded = true
	h.creds, h.session = nil, nil
	h.mu.Unlock()

	if had {
		h.notify(nil)
	}
}

func (h *sessionHub) notify(s *models.Session) {
	h.mu.Lock()
	fns := make([]func(*models.Session), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		if s == nil {
			fn(nil)
			continue
		}
		cp := *s
		fn(&cp)
	}
}

func (h *sessionHub) expired(s *models.Session) bool {
	return !s.ExpiresAt.IsZero() && !h.now().Add(expirySkew).Before(s.ExpiresAt)
}

// fresh returns the current session, refreshing an expired access token
// first. A rejected refresh ends the session; an unreachable backend does
// not.
func (h *sessionHub) fresh(ctx context.Context, refresh refreshFunc) (*models.Session, error) {
	_, s := h.current(ctx)
	if s == nil || !h.expired(s) {
		return s, nil
	}
	if err := h.refresh(ctx, refresh); err != nil {
		if errors.Is(err, ErrUnavailable) {
			return nil, err
		}
		return nil, nil
	}
	_, s = h.current(ctx)
	return s, nil
}

// refresh exchanges the refresh token once. Concurrent callers wait for the
// first exchange and reuse its outcome if the token already changed.
func (h *sessionHub) refresh(ctx context.Context, refresh refreshFunc) error {
	before, _ := h.current(ctx)
	if before == nil {
		return ErrUnauthorized
	}

	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()

	now, _ := h.current(ctx)
	if now == nil {
		return ErrUnauthorized
	}
	if now.AccessToken != before.AccessToken {
		return nil
	}
	if now.RefreshToken == "" {
		h.clear(ctx)
		return ErrUnauthorized
	}

	creds, err := refresh(ctx, now.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return err
		}
		h.log.Info(ctx, "session refresh rejected", "error", err)
		h.clear(ctx)
		return ErrUnauthorized
	}
	if creds.RefreshToken == "" {
		creds.RefreshToken = now.RefreshToken
	}
	if _, err := h.set(ctx, creds); err != nil {
		h.clear(ctx)
		return ErrUnauthorized
	}
	return nil
}
