package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCost(t *testing.T) {
	first, err := HashPasswordCost("vendor123!", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPasswordCost("vendor123!", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "vendor123!", first)
	assert.NotEqual(t, first, second, "each hash is salted")
	assert.True(t, CompareHashAndPassword(first, "vendor123!"))
	assert.False(t, CompareHashAndPassword(first, "vendor124!"))
}

func TestHashPasswordCostOutOfRange(t *testing.T) {
	h, err := HashPasswordCost("vendor123!", 1)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	access, exp, err := m.GenerateAccessToken("u-1", "s-1", []string{"vendor"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "s-1", claims.SessionID)
	assert.Equal(t, []string{"vendor"}, claims.Roles)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err, "access token must not verify with the refresh secret")

	refresh, _, err := m.GenerateRefreshToken("u-1", "s-1")
	require.NoError(t, err)
	rc, err := m.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Empty(t, rc.Roles)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)

	access, _, err := m.GenerateAccessToken("u-1", "s-1", nil)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(access)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)
	_, err := m.ParseAccessToken("BAD")
	assert.Error(t, err)
}
