package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/sridip-de/mern-auth/internal/model"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testIssuer() *TokenIssuer {
	i := NewTokenIssuer("access-secret", "refresh-secret", 15, 7)
	i.Now = func() time.Time { return fixedNow }
	return i
}

func parseClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	// Validate against the same fixed clock the issuer uses so the
	// test does not depend on the real date.
	tok, err := jwt.Parse(token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	require.True(t, tok.Valid)
	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestAccessToken_Claims(t *testing.T) {
	t.Parallel()

	i := testIssuer()
	u := model.User{ID: 42, Email: "a@x.com"}

	tok, err := i.AccessToken(u)
	require.NoError(t, err)

	claims := parseClaims(t, tok, "access-secret")
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "a@x.com", claims["email"])
	require.Equal(t, float64(i.Now().Add(15*time.Minute).Unix()), claims["exp"])
}

func TestRefreshToken_CarriesIDOnly(t *testing.T) {
	t.Parallel()

	i := testIssuer()
	tok, err := i.RefreshToken(model.User{ID: 42, Email: "a@x.com"})
	require.NoError(t, err)

	claims := parseClaims(t, tok, "refresh-secret")
	require.Equal(t, float64(42), claims["sub"])
	require.NotContains(t, claims, "email")
	require.Equal(t, float64(i.Now().Add(7*24*time.Hour).Unix()), claims["exp"])
}

func TestTokens_SecretsAreSeparate(t *testing.T) {
	t.Parallel()

	i := testIssuer()
	u := model.User{ID: 1, Email: "a@x.com"}

	access, err := i.AccessToken(u)
	require.NoError(t, err)
	refresh, err := i.RefreshToken(u)
	require.NoError(t, err)

	// Each token only verifies under its own secret.
	_, err = jwt.Parse(access, func(tk *jwt.Token) (interface{}, error) {
		return []byte("refresh-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixedNow }))
	require.Error(t, err)
	_, err = jwt.Parse(refresh, func(tk *jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixedNow }))
	require.Error(t, err)
}

func TestAccessToken_ExpiryHonored(t *testing.T) {
	t.Parallel()

	i := testIssuer()
	// Issue in the past so the token is already expired when parsed.
	i.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := i.AccessToken(model.User{ID: 7, Email: "b@x.com"})
	require.NoError(t, err)

	_, err = jwt.Parse(tok, func(tk *jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestIssue_ReturnsCompletePair(t *testing.T) {
	t.Parallel()

	pair, err := testIssuer().Issue(model.User{ID: 3, Email: "c@x.com"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}
