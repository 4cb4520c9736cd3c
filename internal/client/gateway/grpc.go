package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/dmitrijs2005/adearn/internal/common"
	"github.com/dmitrijs2005/adearn/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	methodSignIn             = "/miniapp.v1.Backend/SignIn"
	methodSignUp             = "/miniapp.v1.Backend/SignUp"
	methodSignInWithTelegram = "/miniapp.v1.Backend/SignInWithTelegram"
	methodSignUpWithTelegram = "/miniapp.v1.Backend/SignUpWithTelegram"
	methodRefreshToken       = "/miniapp.v1.Backend/RefreshToken"
	methodSignOut            = "/miniapp.v1.Backend/SignOut"
	methodGetProfile         = "/miniapp.v1.Backend/GetProfile"
	methodInvoke             = "/miniapp.v1.Backend/Invoke"
)

// methods that never carry an access token
var publicMethods = map[string]bool{
	methodSignIn:             true,
	methodSignUp:             true,
	methodSignInWithTelegram: true,
	methodSignUpWithTelegram: true,
	methodRefreshToken:       true,
}

// GRPCGateway calls the miniapp.v1.Backend service.
type GRPCGateway struct {
	endpoint string
	apiKey   string
	conn     grpc.ClientConnInterface
	closer   func() error
	hub      *sessionHub
	log      logging.Logger
}

var _ Gateway = (*GRPCGateway)(nil)

func NewGRPCGateway(endpoint, apiKey string, store SessionStore, log logging.Logger) (*GRPCGateway, error) {
	g := &GRPCGateway{
		endpoint: endpoint,
		apiKey:   apiKey,
		hub:      newSessionHub(store, log),
		log:      log,
	}
	if err := g.initConn(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GRPCGateway) initConn() error {
	conn, err := grpc.NewClient(g.endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(g.accessTokenInterceptor))
	if err != nil {
		return err
	}
	g.conn = conn
	g.closer = conn.Close
	return nil
}

func withAccessToken(ctx context.Context, apiKey, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	if apiKey != "" {
		md.Set(common.APIKeyHeaderName, apiKey)
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (g *GRPCGateway) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if publicMethods[method] {
		return invoker(withAccessToken(ctx, g.apiKey, ""), method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, g.apiKey, g.hub.accessToken(ctx)), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}

	if rerr := g.hub.refresh(ctx, g.refresh); rerr != nil {
		if errors.Is(rerr, ErrUnavailable) {
			return rerr
		}
		return err
	}
	return invoker(withAccessToken(ctx, g.apiKey, g.hub.accessToken(ctx)), method, req, reply, cc, opts...)
}

func (g *GRPCGateway) call(ctx context.Context, method string, in map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", method, err)
	}
	reply := &structpb.Struct{}
	if err := g.conn.Invoke(ctx, method, req, reply); err != nil {
		return nil, g.mapError(err)
	}
	return reply, nil
}

func (g *GRPCGateway) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrConflict
	case codes.FailedPrecondition:
		msg := strings.ToLower(st.Message())
		if strings.Contains(msg, "signups") || strings.Contains(msg, "sign-ups") {
			return ErrSignupsDisabled
		}
		if strings.Contains(msg, "confirm") {
			return ErrConfirmationRequired
		}
	}
	return fmt.Errorf("rpc error: %w", err)
}

func credentialsOf(reply *structpb.Struct) *Credentials {
	f := reply.GetFields()
	return &Credentials{
		AccessToken:  f["access_token"].GetStringValue(),
		RefreshToken: f["refresh_token"].GetStringValue(),
	}
}

func (g *GRPCGateway) exchange(ctx context.Context, method string, in map[string]any) (*models.Session, error) {
	reply, err := g.call(ctx, method, in)
	if err != nil {
		return nil, err
	}
	creds := credentialsOf(reply)
	if creds.AccessToken == "" {
		return nil, ErrConfirmationRequired
	}
	return g.hub.set(ctx, creds)
}

func (g *GRPCGateway) refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	reply, err := g.call(ctx, methodRefreshToken, map[string]any{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}
	creds := credentialsOf(reply)
	if creds.AccessToken == "" {
		return nil, ErrUnauthorized
	}
	return creds, nil
}

func (g *GRPCGateway) GetSession(ctx context.Context) (*models.Session, error) {
	return g.hub.fresh(ctx, g.refresh)
}

func (g *GRPCGateway) OnSessionChange(fn func(*models.Session)) func() {
	return g.hub.subscribe(fn)
}

func (g *GRPCGateway) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	return g.exchange(ctx, methodSignIn, map[string]any{"email": email, "password": password})
}

func (g *GRPCGateway) SignUp(ctx context.Context, email, password, referralCode string) (*models.Session, error) {
	return g.exchange(ctx, methodSignUp, map[string]any{
		"email": email, "password": password, "referral_code": referralCode,
	})
}

func (g *GRPCGateway) SignInWithTelegram(ctx context.Context, initData string) (*models.Session, error) {
	return g.exchange(ctx, methodSignInWithTelegram, map[string]any{"init_data": initData})
}

func (g *GRPCGateway) SignUpWithTelegram(ctx context.Context, initData, referralCode string) (*models.Session, error) {
	return g.exchange(ctx, methodSignUpWithTelegram, map[string]any{
		"init_data": initData, "referral_code": referralCode,
	})
}

func (g *GRPCGateway) SignOut(ctx context.Context) error {
	defer g.hub.clear(ctx)

	if g.hub.accessToken(ctx) == "" {
		return nil
	}
	if _, err := g.call(ctx, methodSignOut, map[string]any{}); err != nil && !errors.Is(err, ErrUnauthorized) {
		return err
	}
	return nil
}

func (g *GRPCGateway) FetchProfile(ctx context.Context, subjectID string) (*models.Profile, error) {
	if s, err := g.hub.fresh(ctx, g.refresh); err != nil {
		return nil, err
	} else if s == nil {
		return nil, ErrUnauthorized
	}

	reply, err := g.call(ctx, methodGetProfile, map[string]any{"id": subjectID})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(reply.AsMap())
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	p, err := models.DecodeProfile(data)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ID == "" {
		return nil, ErrNotFound
	}
	return p, nil
}

func (g *GRPCGateway) Invoke(ctx context.Context, name RPC, args map[string]any) (*models.RPCResult, error) {
	if s, err := g.hub.fresh(ctx, g.refresh); err != nil {
		return nil, err
	} else if s == nil {
		return nil, ErrUnauthorized
	}
	if args == nil {
		args = map[string]any{}
	}

	reply, err := g.call(ctx, methodInvoke, map[string]any{"name": string(name), "args": args})
	if err != nil {
		return nil, err
	}

	var raw []byte
	if v, ok := reply.GetFields()["result"]; ok {
		raw, err = json.Marshal(v.AsInterface())
		if err != nil {
			return nil, fmt.Errorf("encode %s result: %w", name, err)
		}
	}
	return decodeRPCResult(name, raw)
}

func (g *GRPCGateway) Close() error {
	if g.closer == nil {
		return nil
	}
	return g.closer()
}
