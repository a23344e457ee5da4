package utils

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash, "plaintext is never stored")
	assert.True(t, hasher.Matches("s3cret!", hash))
	assert.False(t, hasher.Matches("wrong", hash))
	assert.False(t, hasher.Matches("s3cret!", "not-a-hash"))
}

func TestJWTRoundTrip(t *testing.T) {
	user := domain.User{ID: "u1", Email: "ada@example.com"}

	token, err := GenerateJWT(user, "secret", time.Minute, "finance-dashboard")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret", "finance-dashboard")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)

	_, err = ParseAndValidateJWT(token, "other-secret", "finance-dashboard")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateJWT(token, "secret", "someone-else")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	expired, err := GenerateJWT(user, "secret", -time.Minute, "finance-dashboard")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret", "finance-dashboard")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"1234.56", "$1,234.56"},
		{"25340.25", "$25,340.25"},
		{"15.985", "$15.99"},
		{"0", "$0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestPosthogWrapperWithoutKeyIsNoop(t *testing.T) {
	var nilWrapper *PosthogClientWrapper
	assert.False(t, nilWrapper.IsInitialized())

	w := &PosthogClientWrapper{}
	assert.NotPanics(t, func() {
		w.Enqueue("u1", "ledger_action", nil)
		w.Close()
	})
}
