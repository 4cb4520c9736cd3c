package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/dmitrijs2005/adearn/internal/common"
	"github.com/dmitrijs2005/adearn/internal/logging"
	"github.com/google/uuid"
)

const (
	pgrstObject   = "application/vnd.pgrst.object+json"
	pgrstNotFound = "PGRST116"
)

type RESTOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// Client overrides the HTTP client, mostly for tests.
	Client *http.Client
}

// RESTGateway talks to the hosted backend over its HTTP API.
type RESTGateway struct {
	baseURL string
	apiKey  string
	http    *http.Client
	hub     *sessionHub
	log     logging.Logger
}

var _ Gateway = (*RESTGateway)(nil)

func NewRESTGateway(opts RESTOptions, store SessionStore, log logging.Logger) (*RESTGateway, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", opts.BaseURL)
	}
	if opts.APIKey == "" {
		return nil, errors.New("backend api key is empty")
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &RESTGateway{
		baseURL: strings.TrimRight(base.String(), "/"),
		apiKey:  opts.APIKey,
		http:    client,
		hub:     newSessionHub(store, log),
		log:     log,
	}, nil
}

type restRequest struct {
	method  string
	path    string
	query   url.Values
	body    any
	token   string
	headers map[string]string
}

// errorBody covers the error shapes of the auth service and the row API.
type errorBody struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (b errorBody) code() string {
	if b.ErrorCode != "" {
		return b.ErrorCode
	}
	if s, ok := b.Code.(string); ok && s != "" {
		return s
	}
	return b.Error
}

func (b errorBody) message() string {
	for _, m := range []string{b.Msg, b.Message, b.ErrorDescription} {
		if m != "" {
			return m
		}
	}
	return ""
}

func (g *RESTGateway) do(ctx context.Context, r restRequest) ([]byte, error) {
	u := g.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.APIKeyHeaderName, g.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := r.token
	if token == "" {
		token = g.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, mapHTTPError(resp.StatusCode, data)
}

func mapHTTPError(status int, data []byte) error {
	var eb errorBody
	_ = json.Unmarshal(data, &eb)
	code, msg := eb.code(), eb.message()
	lower := strings.ToLower(code + " " + msg)

	switch {
	case code == pgrstNotFound || status == http.StatusNotFound:
		return ErrNotFound
	case strings.Contains(lower, "signup_disabled") || strings.Contains(lower, "signups not allowed"):
		return ErrSignupsDisabled
	case strings.Contains(lower, "email_not_confirmed"):
		return ErrConfirmationRequired
	case code == "user_already_exists" || strings.Contains(lower, "already registered") || status == http.StatusConflict:
		return ErrConflict
	case status == http.StatusUnauthorized || status == http.StatusForbidden ||
		code == "invalid_grant" || code == "invalid_credentials":
		return ErrUnauthorized
	case status >= 500 || status == http.StatusTooManyRequests || status == http.StatusRequestTimeout:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}

	if msg == "" {
		msg = http.StatusText(status)
	}
	return &RemoteError{Status: status, Code: code, Message: msg}
}

// authorized runs r with the session's access token and retries once after
// a refresh when the backend rejects the token.
func (g *RESTGateway) authorized(ctx context.Context, r restRequest) ([]byte, error) {
	s, err := g.hub.fresh(ctx, g.refresh)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrUnauthorized
	}

	r.token = g.hub.accessToken(ctx)
	data, err := g.do(ctx, r)
	if !errors.Is(err, ErrUnauthorized) {
		return data, err
	}

	if rerr := g.hub.refresh(ctx, g.refresh); rerr != nil {
		if errors.Is(rerr, ErrUnavailable) {
			return nil, rerr
		}
		return nil, err
	}
	r.token = g.hub.accessToken(ctx)
	return g.do(ctx, r)
}

type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (g *RESTGateway) exchange(ctx context.Context, r restRequest) (*models.Session, error) {
	data, err := g.do(ctx, r)
	if err != nil {
		return nil, err
	}

	var ar authResponse
	if err := json.Unmarshal(data, &ar); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if ar.AccessToken == "" {
		return nil, ErrConfirmationRequired
	}
	return g.hub.set(ctx, &Credentials{AccessToken: ar.AccessToken, RefreshToken: ar.RefreshToken})
}

func (g *RESTGateway) refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	data, err := g.do(ctx, restRequest{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"refresh_token"}},
		body:   map[string]string{"refresh_token": refreshToken},
	})
	if err != nil {
		return nil, err
	}
	var ar authResponse
	if err := json.Unmarshal(data, &ar); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if ar.AccessToken == "" {
		return nil, ErrUnauthorized
	}
	return &Credentials{AccessToken: ar.AccessToken, RefreshToken: ar.RefreshToken}, nil
}

func (g *RESTGateway) GetSession(ctx context.Context) (*models.Session, error) {
	return g.hub.fresh(ctx, g.refresh)
}

func (g *RESTGateway) OnSessionChange(fn func(*models.Session)) func() {
	return g.hub.subscribe(fn)
}

func (g *RESTGateway) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	return g.exchange(ctx, restRequest{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"password"}},
		body:   map[string]string{"email": email, "password": password},
	})
}

func (g *RESTGateway) SignUp(ctx context.Context, email, password, referralCode string) (*models.Session, error) {
	body := map[string]any{"email": email, "password": password}
	if referralCode != "" {
		body["data"] = map[string]string{"referral_code": referralCode}
	}
	return g.exchange(ctx, restRequest{method: http.MethodPost, path: "/auth/v1/signup", body: body})
}

func (g *RESTGateway) SignInWithTelegram(ctx context.Context, initData string) (*models.Session, error) {
	return g.exchange(ctx, restRequest{
		method: http.MethodPost,
		path:   "/functions/v1/telegram-auth",
		body:   map[string]string{"init_data": initData, "mode": "signin"},
	})
}

func (g *RESTGateway) SignUpWithTelegram(ctx context.Context, initData, referralCode string) (*models.Session, error) {
	return g.exchange(ctx, restRequest{
		method: http.MethodPost,
		path:   "/functions/v1/telegram-auth",
		body:   map[string]string{"init_data": initData, "mode": "signup", "referral_code": referralCode},
	})
}

// SignOut revokes the session server-side when possible and always drops it
// locally.
func (g *RESTGateway) SignOut(ctx context.Context) error {
	token := g.hub.accessToken(ctx)
	defer g.hub.clear(ctx)

	if token == "" {
		return nil
	}
	_, err := g.do(ctx, restRequest{method: http.MethodPost, path: "/auth/v1/logout", token: token})
	if err != nil && !errors.Is(err, ErrUnauthorized) {
		return err
	}
	return nil
}

func (g *RESTGateway) FetchProfile(ctx context.Context, subjectID string) (*models.Profile, error) {
	data, err := g.authorized(ctx, restRequest{
		method:  http.MethodGet,
		path:    "/rest/v1/profiles",
		query:   url.Values{"id": {"eq." + subjectID}, "select": {"*"}},
		headers: map[string]string{"Accept": pgrstObject},
	})
	if err != nil {
		return nil, err
	}

	p, err := models.DecodeProfile(data)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (g *RESTGateway) Invoke(ctx context.Context, name RPC, args map[string]any) (*models.RPCResult, error) {
	if args == nil {
		args = map[string]any{}
	}
	data, err := g.authorized(ctx, restRequest{
		method:  http.MethodPost,
		path:    "/rest/v1/rpc/" + string(name),
		body:    args,
		headers: map[string]string{common.IdempotencyKeyHeaderName: uuid.NewString()},
	})
	if err != nil {
		return nil, err
	}
	return decodeRPCResult(name, data)
}

func (g *RESTGateway) Close() error {
	g.http.CloseIdleConnections()
	return nil
}
