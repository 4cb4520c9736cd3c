package gateway

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func makeToken(t *testing.T, sub, email string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": sub, "email": email, "exp": exp.Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func liveToken(t *testing.T, sub string) string {
	return makeToken(t, sub, sub+"@example.com", time.Now().Add(time.Hour))
}

func expiredToken(t *testing.T, sub string) string {
	return makeToken(t, sub, sub+"@example.com", time.Now().Add(-time.Minute))
}
