package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/adearn/internal/client/services"
	"github.com/dmitrijs2005/adearn/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInputs replaces both prompts: answers are returned in order by
// getSimpleText, password by getPassword.
func stubInputs(t *testing.T, password []byte, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func TestLogin_WipesPassword(t *testing.T) {
	gw := newFakeGateway()
	gw.profiles["u-a@b.c"] = testProfile("u-a@b.c", "a@b.c")
	a := newTestApp(t, gw, nil, "")
	a.start(context.Background(), false)

	pw := []byte("secret")
	stubInputs(t, pw, "a@b.c")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, []string{"a@b.c:secret"}, gw.signIns)
	assert.Equal(t, make([]byte, len("secret")), pw)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	gw := newFakeGateway()
	a := newTestApp(t, gw, nil, "")
	a.start(context.Background(), false)
	stubInputs(t, []byte("secret"), "   ")

	err := a.Login(context.Background())
	require.ErrorIs(t, err, services.ErrEmptyCredentials)
	assert.Empty(t, gw.signIns)
	assert.Contains(t, a.output(), "Email and password are required")
}

func TestLogin_PromptError(t *testing.T) {
	a := newTestApp(t, newFakeGateway(), nil, "")
	a.start(context.Background(), false)
	stubInputs(t, nil)

	require.ErrorIs(t, a.Login(context.Background()), io.EOF)
}

func TestRegister_Success(t *testing.T) {
	gw := newFakeGateway()
	gw.profiles["u-new@b.c"] = testProfile("u-new@b.c", "new@b.c")
	a := newTestApp(t, gw, nil, "")
	a.start(context.Background(), false)
	stubInputs(t, []byte("secret"), "new@b.c", " ref7 ")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, []string{"ref7"}, gw.signUpReferrals)
	assert.Equal(t, session.AuthenticatedWithProfile, a.ctrl.Snapshot().State)
}

func TestRegister_ReferralDefaultsToStartParam(t *testing.T) {
	gw := newFakeGateway()
	gw.profiles["u-new@b.c"] = testProfile("u-new@b.c", "new@b.c")
	a := newTestApp(t, gw, telegramBridge(t, "FROMHOST"), "")
	stubInputs(t, []byte("secret"), "new@b.c", "")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, []string{"FROMHOST"}, gw.signUpReferrals)
}

func TestRegister_Failure(t *testing.T) {
	gw := newFakeGateway()
	gw.signUpErr = errors.New("boom")
	a := newTestApp(t, gw, nil, "")
	a.start(context.Background(), false)
	stubInputs(t, []byte("secret"), "new@b.c", "")

	require.Error(t, a.Register(context.Background()))
	assert.False(t, a.isLoggedIn())
}
