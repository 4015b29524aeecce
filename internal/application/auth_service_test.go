package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/vendor-vault/internal/application"
	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/internal/infrastructure/memory"
	"github.com/oksasatya/vendor-vault/pkg/apperror"
	"github.com/oksasatya/vendor-vault/pkg/helpers"
)

func newAuthFixture(t *testing.T) (*application.AuthService, *entity.Account) {
	t.Helper()
	logger := helpers.NewDiscardLogger()
	accounts := application.NewAccountService(memory.NewAccountStore(), nil, nil, logger, bcrypt.MinCost)
	a, err := accounts.CreateAccount(context.Background(), application.NewAccountInput{
		Email:    "v@x.com",
		Password: "vendor123!",
		Roles:    []string{"vendor"},
	})
	require.NoError(t, err)

	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	return application.NewAuthService(accounts, jwt, memory.NewSessionStore(), time.Hour, logger), a
}

func TestLoginAndResolvePrincipal(t *testing.T) {
	auth, a := newAuthFixture(t)
	ctx := context.Background()

	resp, pair, err := auth.Login(ctx, "V@X.COM", "vendor123!")
	require.NoError(t, err)
	assert.Equal(t, a.ID, resp.UserID)
	assert.Equal(t, []string{"vendor"}, resp.Roles)
	assert.NotEmpty(t, pair.RefreshToken)

	p, err := auth.ResolvePrincipal(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, a.ID, p.ID)
	assert.Equal(t, []entity.Role{entity.RoleVendor}, p.Roles)
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := newAuthFixture(t)
	_, _, err := auth.Login(context.Background(), "v@x.com", "nope")
	assert.True(t, apperror.Is(err, apperror.Unauthenticated))
}

func TestResolvePrincipalRejectsBadTokens(t *testing.T) {
	auth, a := newAuthFixture(t)
	ctx := context.Background()
	other := helpers.NewJWTManager("other-secret", "other-refresh", time.Minute, time.Hour)
	forged, _, err := other.GenerateAccessToken(a.ID, "sid", []string{"admin"})
	require.NoError(t, err)
	_, pair, err := auth.Login(ctx, "v@x.com", "vendor123!")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":         "",
		"garbage":       "abc.def.ghi",
		"forged":        forged,
		"refresh token": pair.RefreshToken,
	} {
		_, err := auth.ResolvePrincipal(ctx, token)
		assert.True(t, apperror.Is(err, apperror.Unauthenticated), "%s: %v", name, err)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	auth, a := newAuthFixture(t)
	ctx := context.Background()
	_, pair, err := auth.Login(ctx, "v@x.com", "vendor123!")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, a.ID))

	_, err = auth.ResolvePrincipal(ctx, pair.AccessToken)
	assert.True(t, apperror.Is(err, apperror.Unauthenticated))
	_, _, err = auth.Refresh(ctx, pair.RefreshToken)
	assert.True(t, apperror.Is(err, apperror.Unauthenticated))
}

func TestRefreshRotatesSession(t *testing.T) {
	auth, a := newAuthFixture(t)
	ctx := context.Background()
	_, first, err := auth.Login(ctx, "v@x.com", "vendor123!")
	require.NoError(t, err)

	second, userID, err := auth.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, a.ID, userID)

	_, err = auth.ResolvePrincipal(ctx, first.AccessToken)
	assert.True(t, apperror.Is(err, apperror.Unauthenticated), "old session id is gone")
	_, err = auth.ResolvePrincipal(ctx, second.AccessToken)
	assert.NoError(t, err)

	_, _, err = auth.Refresh(ctx, first.RefreshToken)
	assert.True(t, apperror.Is(err, apperror.Unauthenticated), "refresh tokens are single use")
}
