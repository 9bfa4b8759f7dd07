package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/testutil"
)

func Test_skillDomain_Create(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewSkillDomain(
		repository.NewSkillRepository(),
		repository.NewUserRepository(),
	)

	adminCtx := testutil.NewMockContextWithUserID(ctx, testutil.Admin.ID)
	resp, err := d.Create(adminCtx, &model.CreateSkillRequest{
		Name:        "cooking",
		Description: "Preparing meals for groups",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	// Skill names are unique.
	_, err = d.Create(adminCtx, &model.CreateSkillRequest{Name: "cooking"})
	require.Error(t, err)
	require.Equal(t, "This skill already exists", err.Error())

	_, err = d.Create(adminCtx, &model.CreateSkillRequest{})
	require.Error(t, err)
	require.Equal(t, "Name is required", err.Error())

	// The catalog is admin-managed.
	promoterCtx := testutil.NewMockContextWithUserID(ctx, testutil.Promoter1.ID)
	_, err = d.Create(promoterCtx, &model.CreateSkillRequest{Name: "driving"})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	list, err := d.GetList(ctx, &model.GetListSkillRequest{})
	require.NoError(t, err)
	require.Len(t, list.Skills, 4)
	require.Equal(t, "cooking", list.Skills[0].Name)
}
