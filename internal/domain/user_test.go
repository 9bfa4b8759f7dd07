package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/testutil"
)

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewUserDomain(repository.NewUserRepository())

	volunteerCtx := testutil.NewMockContextWithUserID(ctx, testutil.Volunteer1.ID)
	me, err := d.GetMe(volunteerCtx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.Volunteer1.ID, me.ID)
	require.Equal(t, "volunteer", me.Role)
	require.Equal(t, uint64(100), me.Points)

	// Another user's balance is hidden.
	other, err := d.GetUser(volunteerCtx, &model.GetUserRequest{ID: testutil.Volunteer2.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Volunteer2.Name, other.Name)
	require.Equal(t, uint64(0), other.Points)

	_, err = d.GetUser(volunteerCtx, &model.GetUserRequest{ID: "unknown"})
	require.Error(t, err)
	require.Equal(t, "Not found user", err.Error())
}
