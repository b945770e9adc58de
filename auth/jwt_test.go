package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyTokenRoundTrips(t *testing.T) {
	userID := uuid.New()
	tok, err := IssueToken("secret", userID)
	require.NoError(t, err)

	got, err := VerifyToken("secret", tok)
	require.NoError(t, err)
	require.Equal(t, userID, got)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	tok, err := IssueToken("secret", uuid.New())
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", tok)
	require.Error(t, err)
}

func TestIssueTokenRequiresSecret(t *testing.T) {
	_, err := IssueToken("", uuid.New())
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestVerifyTokenRejectsExpiredToken(t *testing.T) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * TokenExpiry)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = VerifyToken("secret", signed)
	require.Error(t, err)
}

func TestVerifyTokenRejectsNonUUIDSubject(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = VerifyToken("secret", signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}
