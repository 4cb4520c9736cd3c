// Package services contains the application workflows behind the client
// screens. This file defines the authentication service: Telegram
// auto-login with referral attribution and manual email sign-in/sign-up.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/adearn/internal/client/bridge"
	"github.com/dmitrijs2005/adearn/internal/client/gateway"
	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/dmitrijs2005/adearn/internal/client/session"
	"github.com/dmitrijs2005/adearn/internal/logging"
)

var (
	ErrNoInitData       = errors.New("no telegram launch data")
	ErrEmptyCredentials = errors.New("email and password are required")
)

// Authenticator is the part of the gateway used to establish a session.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignUp(ctx context.Context, email, password, referralCode string) (*models.Session, error)
	SignInWithTelegram(ctx context.Context, initData string) (*models.Session, error)
	SignUpWithTelegram(ctx context.Context, initData, referralCode string) (*models.Session, error)
}

// DefaultSignUpRetry covers the race where a parallel launch registers the
// same Telegram user between our sign-in and sign-up.
func DefaultSignUpRetry() session.RetryPolicy {
	return session.RetryPolicy{Attempts: 2}
}

type AuthService struct {
	gw    Authenticator
	log   logging.Logger
	retry session.RetryPolicy
}

func NewAuthService(gw Authenticator, log logging.Logger, signUpRetry session.RetryPolicy) *AuthService {
	if signUpRetry == (session.RetryPolicy{}) {
		signUpRetry = DefaultSignUpRetry()
	}
	return &AuthService{gw: gw, log: log, retry: signUpRetry}
}

// AutoLogin signs in with the host's launch data. An unknown Telegram user is
// registered with the start parameter as referral code. The resulting
// session reaches the controller through the gateway's change notifications.
func (a *AuthService) AutoLogin(ctx context.Context, b bridge.Bridge) (*models.Session, error) {
	initData := b.InitData()
	if !b.Available() || initData == "" {
		return nil, ErrNoInitData
	}

	s, err := a.gw.SignInWithTelegram(ctx, initData)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, gateway.ErrNotFound) {
		return nil, fmt.Errorf("telegram sign-in: %w", err)
	}

	referral := strings.TrimSpace(b.StartParam())
	a.log.Info(ctx, "telegram user not registered, signing up", "referral", referral != "")

	s, err = a.gw.SignUpWithTelegram(ctx, initData, referral)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, gateway.ErrConflict) {
		return nil, fmt.Errorf("telegram sign-up: %w", err)
	}

	a.log.Warn(ctx, "telegram user registered concurrently, retrying sign-in")
	err = a.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		s, err = a.gw.SignInWithTelegram(ctx, initData)
		if errors.Is(err, gateway.ErrNotFound) {
			return session.Retryable(err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("telegram sign-in after sign-up race: %w", err)
	}
	return s, nil
}

func (a *AuthService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	s, err := a.gw.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign-in: %w", err)
	}
	return s, nil
}

// SignUp registers a new account. A backend that requires email confirmation
// answers with gateway.ErrConfirmationRequired.
func (a *AuthService) SignUp(ctx context.Context, email, password, referralCode string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	s, err := a.gw.SignUp(ctx, email, password, strings.TrimSpace(referralCode))
	if err != nil {
		return nil, fmt.Errorf("sign-up: %w", err)
	}
	return s, nil
}
