package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trattoria-labs/restaurant-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret")
	identity := domain.Identity{UserID: "123", Username: "u", Role: domain.RoleEmployee}

	token, exp, err := tm.GenerateToken(identity)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity())
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
}

func TestTokenPayloadFieldNames(t *testing.T) {
	tm := NewTokenManager("secret")
	token, _, err := tm.GenerateToken(domain.Identity{UserID: "123", Username: "u", Role: domain.RoleClient})
	require.NoError(t, err)

	payload := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, payload)
	require.NoError(t, err)

	assert.Equal(t, "123", payload["userId"])
	assert.Equal(t, "u", payload["username"])
	assert.Equal(t, "client", payload["role"])
	assert.Contains(t, payload, "exp")
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenManager("other-secret").GenerateToken(domain.Identity{UserID: "1", Role: domain.RoleEmployee})
	require.NoError(t, err)

	_, err = NewTokenManager("secret").ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret")
	tm.now = func() time.Time { return time.Now().Add(-9 * time.Hour) }
	token, _, err := tm.GenerateToken(domain.Identity{UserID: "1", Role: domain.RoleEmployee})
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenExpiryBoundary(t *testing.T) {
	issued := time.Unix(1_700_000_000, 0)
	tm := NewTokenManager("secret")
	tm.now = func() time.Time { return issued }
	token, exp, err := tm.GenerateToken(domain.Identity{UserID: "1"})
	require.NoError(t, err)

	tm.now = func() time.Time { return exp }
	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired, "exp equal to now counts as expired")

	tm.now = func() time.Time { return exp.Add(-time.Second) }
	_, err = tm.ParseToken(token)
	assert.NoError(t, err)
}

func TestParseTokenExpiredForgeryIsInvalid(t *testing.T) {
	forger := NewTokenManager("other-secret")
	forger.now = func() time.Time { return time.Now().Add(-24 * time.Hour) }
	token, _, err := forger.GenerateToken(domain.Identity{UserID: "1", Role: domain.RoleEmployee})
	require.NoError(t, err)

	_, err = NewTokenManager("secret").ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenRejectsMissingExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "1", Role: domain.RoleEmployee}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret").ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenRejectsOtherAlgorithm(t *testing.T) {
	claims := &Claims{
		UserID:           "1",
		Role:             domain.RoleEmployee,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret").ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret").ParseToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
