package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/testutil"
	"github.com/volunhub/backend/pkg/xcontext"
)

func Test_authDomain_RegisterAndLogin(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewRefreshTokenRepository(),
	)

	registered, err := d.Register(ctx, &model.RegisterRequest{
		Name:     "newcomer",
		Email:    "newcomer@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.ID)

	// Duplicate email.
	_, err = d.Register(ctx, &model.RegisterRequest{
		Name:     "newcomer again",
		Email:    "newcomer@example.com",
		Password: "long enough password",
	})
	require.Error(t, err)
	require.Equal(t, "This email is already registered", err.Error())

	// Only volunteer and promoter are self-assignable.
	_, err = d.Register(ctx, &model.RegisterRequest{
		Name:     "wannabe admin",
		Email:    "wannabe@example.com",
		Password: "long enough password",
		Role:     "admin",
	})
	require.Error(t, err)
	require.Equal(t, "Cannot register as admin", err.Error())

	_, err = d.Register(ctx, &model.RegisterRequest{
		Name:     "short password",
		Email:    "short@example.com",
		Password: "short",
	})
	require.Error(t, err)
	require.Equal(t, "Password must be at least 8 characters", err.Error())

	login, err := d.Login(ctx, &model.LoginRequest{
		Email:    "newcomer@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)

	accessToken, err := xcontext.TokenEngine(ctx).Verify(login.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, accessToken.ID)
	require.Equal(t, "volunteer", accessToken.Role)

	_, err = d.Login(ctx, &model.LoginRequest{
		Email:    "newcomer@example.com",
		Password: "wrong password",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid email or password", err.Error())

	_, err = d.Login(ctx, &model.LoginRequest{
		Email:    "stranger@example.com",
		Password: "long enough password",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid email or password", err.Error())
}

func Test_authDomain_Refresh(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewRefreshTokenRepository(),
	)

	_, err := d.Register(ctx, &model.RegisterRequest{
		Name:     "refresher",
		Email:    "refresher@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)

	login, err := d.Login(ctx, &model.LoginRequest{
		Email:    "refresher@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)

	refreshed, err := d.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The presented token was rotated out.
	_, err = d.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	require.Equal(t, "Invalid refresh token", err.Error())

	_, err = d.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: "forged"})
	require.Error(t, err)
	require.Equal(t, "Invalid refresh token", err.Error())
}
