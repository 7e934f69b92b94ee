package utils // package utils provides helpers for hashing, tokens, cookies and envelopes

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sridip-de/mern-auth/internal/model"
)

// TokenPair carries one freshly issued access/refresh token pair.
// Only the refresh token is durable enough to be stored server-side;
// the access token lives solely in the response cookie.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuer signs HS256 session tokens. The two token types use
// distinct secrets and lifetimes so a leaked short-lived access token
// cannot be parlayed into a refresh, and vice versa. Secrets, TTLs
// and the clock are injected at construction so tests can supply
// deterministic values.
type TokenIssuer struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

// NewTokenIssuer builds an issuer with the reference lifetimes:
// accessTTLMin minutes for access tokens, refreshTTLDays days for
// refresh tokens.
func NewTokenIssuer(accessSecret, refreshSecret string, accessTTLMin, refreshTTLDays int) *TokenIssuer {
	return &TokenIssuer{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     time.Duration(accessTTLMin) * time.Minute,
		RefreshTTL:    time.Duration(refreshTTLDays) * 24 * time.Hour,
		Now:           time.Now,
	}
}

// AccessToken signs a short-lived token carrying the user's id and
// email. Claims: sub, email, iat, exp.
func (i *TokenIssuer) AccessToken(u model.User) (string, error) {
	now := i.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(i.AccessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.AccessSecret)
}

// RefreshToken signs a long-lived token carrying the user's id only.
// Claims: sub, iat, exp.
func (i *TokenIssuer) RefreshToken(u model.User) (string, error) {
	now := i.Now().UTC()
	claims := jwt.MapClaims{
		"sub": u.ID,
		"iat": now.Unix(),
		"exp": now.Add(i.RefreshTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.RefreshSecret)
}

// Issue signs both tokens for a user. It either returns a complete
// pair or an error; callers persist the refresh token afterwards so
// the stored record only ever reflects a fully issued session.
func (i *TokenIssuer) Issue(u model.User) (TokenPair, error) {
	access, err := i.AccessToken(u)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.RefreshToken(u)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
