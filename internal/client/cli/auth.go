package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/adearn/internal/client/gateway"
	"github.com/dmitrijs2005/adearn/internal/client/services"
	"github.com/dmitrijs2005/adearn/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) promptCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, a.tr("email"), a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Login prompts for email and password and signs in. The new session
// reaches the controller through the gateway, so Login waits for the
// profile load before showing the home screen.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.SignIn(ctx, email, string(password)); err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		a.println(services.Describe(err, a.tr))
		return err
	}

	a.log.Info(ctx, "login successful")
	a.ctrl.Wait()
	return a.Status(ctx)
}

// Register creates an account. The referral code defaults to the host's
// start parameter. When the backend requires email confirmation there is no
// session yet and the user is told to confirm first.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	referral, err := getSimpleText(a.reader, a.tr("referral_code")+" ("+a.bridge.StartParam()+")", a.out)
	if err != nil {
		return err
	}
	if referral == "" {
		referral = a.bridge.StartParam()
	}

	if _, err := a.auth.SignUp(ctx, email, string(password), referral); err != nil {
		a.println(services.Describe(err, a.tr))
		if errors.Is(err, gateway.ErrConfirmationRequired) {
			return nil
		}
		a.log.Info(ctx, "registration unsuccessful", "error", err)
		return err
	}

	a.println(a.tr("success"))
	a.ctrl.Wait()
	return a.Status(ctx)
}

// Logout signs out and starts over with a fresh controller. Auto-login is
// not attempted so the user stays signed out.
func (a *App) Logout(ctx context.Context) error {
	a.ctrl.Logout(ctx)
	a.println(a.tr("logout"))
	a.reload(ctx, false)
	return nil
}

// Reset signs out, wipes local state and starts over, signing in again with
// the host's launch data when there is any.
func (a *App) Reset(ctx context.Context) error {
	a.ctrl.Logout(ctx)
	if err := a.state.Reset(ctx); err != nil {
		a.log.Error(ctx, "local reset failed", "error", err)
		a.println(a.tr("error"))
		return err
	}
	a.reload(ctx, true)
	return a.Status(ctx)
}
