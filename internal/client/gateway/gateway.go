package gateway

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/adearn/internal/client/models"
)

// RPC names a backend remote procedure.
type RPC string

const (
	RPCSelfHealProfile       RPC = "self_heal_profile"
	RPCWatchAd               RPC = "watch_ad"
	RPCDepositForMining      RPC = "deposit_for_mining"
	RPCWithdrawMiningDeposit RPC = "withdraw_mining_deposit"
	RPCSpinMiningWheel       RPC = "spin_mining_wheel"
	RPCRequestWithdrawal     RPC = "request_withdrawal"
	RPCRedeemInviteCode      RPC = "redeem_invite_code"
	RPCGetMyReferrals        RPC = "get_my_referrals"
)

type Gateway interface {
	// GetSession returns the current session, or nil when signed out.
	GetSession(ctx context.Context) (*models.Session, error)
	// OnSessionChange registers fn for every session change; nil means the
	// session was lost. The returned func unsubscribes.
	OnSessionChange(fn func(*models.Session)) (unsubscribe func())

	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignUp(ctx context.Context, email, password, referralCode string) (*models.Session, error)
	SignInWithTelegram(ctx context.Context, initData string) (*models.Session, error)
	SignUpWithTelegram(ctx context.Context, initData, referralCode string) (*models.Session, error)
	SignOut(ctx context.Context) error

	// FetchProfile returns ErrNotFound when the profile row does not exist.
	FetchProfile(ctx context.Context, subjectID string) (*models.Profile, error)
	Invoke(ctx context.Context, name RPC, args map[string]any) (*models.RPCResult, error)

	Close() error
}

// Credentials is the token pair issued by the backend.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionStore persists credentials across restarts. Load returns nil, nil
// when nothing is stored.
type SessionStore interface {
	LoadCredentials(ctx context.Context) (*Credentials, error)
	SaveCredentials(ctx context.Context, c *Credentials) error
	ClearCredentials(ctx context.Context) error
}

// MemoryStore keeps credentials for the life of the process only.
type MemoryStore struct {
	mu sync.Mutex
	c  *Credentials
}

func (m *MemoryStore) LoadCredentials(context.Context) (*Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.c == nil {
		return nil, nil
	}
	c := *m.c
	return &c, nil
}

func (m *MemoryStore) SaveCredentials(_ context.Context, c *Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.c = &cp
	return nil
}

func (m *MemoryStore) ClearCredentials(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c = nil
	return nil
}
