package domain

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/testutil"
)

func Test_rewardDomain_Create(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewRewardDomain(
		repository.NewRewardRepository(),
		repository.NewRedemptionRepository(),
		repository.NewUserRepository(),
	)

	adminCtx := testutil.NewMockContextWithUserID(ctx, testutil.Admin.ID)
	quantity := int64(2)
	resp, err := d.Create(adminCtx, &model.CreateRewardRequest{
		Title:     "Cinema ticket",
		Points:    40,
		Type:      "voucher",
		PartnerID: testutil.Partner1.ID,
		Quantity:  &quantity,
	})
	require.NoError(t, err)
	require.True(t, resp.IsActive)
	require.Equal(t, testutil.Partner1.Name, resp.PartnerName)
	require.NotNil(t, resp.RemainingQuantity)
	require.Equal(t, int64(2), *resp.RemainingQuantity)

	_, err = d.Create(adminCtx, &model.CreateRewardRequest{
		Title: "Free reward",
		Type:  "voucher",
	})
	require.Error(t, err)
	require.Equal(t, "Points cost must be at least 1", err.Error())

	_, err = d.Create(adminCtx, &model.CreateRewardRequest{
		Title:  "Odd reward",
		Points: 10,
		Type:   "food",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid reward type food", err.Error())

	_, err = d.Create(adminCtx, &model.CreateRewardRequest{
		Title:     "Orphan reward",
		Points:    10,
		Type:      "voucher",
		PartnerID: "unknown",
	})
	require.Error(t, err)
	require.Equal(t, "Not found partner", err.Error())

	// Only admins manage the catalog.
	promoterCtx := testutil.NewMockContextWithUserID(ctx, testutil.Promoter1.ID)
	_, err = d.Create(promoterCtx, &model.CreateRewardRequest{
		Title:  "Rogue reward",
		Points: 10,
		Type:   "voucher",
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}

func Test_rewardDomain_Deactivate(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	rewardRepo := repository.NewRewardRepository()
	d := NewRewardDomain(
		rewardRepo,
		repository.NewRedemptionRepository(),
		repository.NewUserRepository(),
	)

	reward := &entity.Reward{
		Base:      entity.Base{ID: "retiring reward"},
		Title:     "Retiring reward",
		Points:    10,
		Type:      entity.RewardMerchandise,
		IsActive:  true,
		CreatedBy: testutil.Admin.ID,
	}
	require.NoError(t, rewardRepo.Create(ctx, reward))

	adminCtx := testutil.NewMockContextWithUserID(ctx, testutil.Admin.ID)
	resp, err := d.Deactivate(adminCtx, &model.DeactivateRewardRequest{ID: reward.ID})
	require.NoError(t, err)
	require.False(t, resp.IsActive)

	// Deactivation is irreversible and one-shot.
	_, err = d.Deactivate(adminCtx, &model.DeactivateRewardRequest{ID: reward.ID})
	require.Error(t, err)
	require.Equal(t, "This reward is already inactive", err.Error())

	_, err = d.Deactivate(adminCtx, &model.DeactivateRewardRequest{ID: "unknown"})
	require.Error(t, err)
	require.Equal(t, "Not found reward", err.Error())
}

func Test_rewardDomain_GetList(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	rewardRepo := repository.NewRewardRepository()
	d := NewRewardDomain(
		rewardRepo,
		repository.NewRedemptionRepository(),
		repository.NewUserRepository(),
	)

	active := &entity.Reward{
		Base:      entity.Base{ID: "active reward"},
		Title:     "Active reward",
		Points:    10,
		Type:      entity.RewardVoucher,
		Quantity:  sql.NullInt64{Valid: true, Int64: 5},
		IsActive:  true,
		CreatedBy: testutil.Admin.ID,
	}
	require.NoError(t, rewardRepo.Create(ctx, active))

	inactive := &entity.Reward{
		Base:      entity.Base{ID: "inactive reward"},
		Title:     "Inactive reward",
		Points:    10,
		Type:      entity.RewardVoucher,
		CreatedBy: testutil.Admin.ID,
	}
	require.NoError(t, rewardRepo.Create(ctx, inactive))

	resp, err := d.GetList(ctx, &model.GetListRewardRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Rewards, 2)

	resp, err = d.GetList(ctx, &model.GetListRewardRequest{OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, resp.Rewards, 1)
	require.Equal(t, active.ID, resp.Rewards[0].ID)
	require.NotNil(t, resp.Rewards[0].RemainingQuantity)
	require.Equal(t, int64(5), *resp.Rewards[0].RemainingQuantity)
}

func Test_rewardDomain_Update(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	rewardRepo := repository.NewRewardRepository()
	d := NewRewardDomain(
		rewardRepo,
		repository.NewRedemptionRepository(),
		repository.NewUserRepository(),
	)

	reward := &entity.Reward{
		Base:      entity.Base{ID: "mutable reward"},
		Title:     "Mutable reward",
		Points:    10,
		Type:      entity.RewardVoucher,
		IsActive:  true,
		CreatedBy: testutil.Admin.ID,
	}
	require.NoError(t, rewardRepo.Create(ctx, reward))

	adminCtx := testutil.NewMockContextWithUserID(ctx, testutil.Admin.ID)
	newTitle := "Mutable reward v2"
	newPoints := uint64(20)
	resp, err := d.Update(adminCtx, &model.UpdateRewardRequest{
		ID:     reward.ID,
		Title:  &newTitle,
		Points: &newPoints,
	})
	require.NoError(t, err)
	require.Equal(t, newTitle, resp.Title)
	require.Equal(t, uint64(20), resp.Points)

	badPoints := uint64(0)
	_, err = d.Update(adminCtx, &model.UpdateRewardRequest{ID: reward.ID, Points: &badPoints})
	require.Error(t, err)
	require.Equal(t, "Points cost must be at least 1", err.Error())

	_, err = d.Update(adminCtx, &model.UpdateRewardRequest{ID: "unknown", Title: &newTitle})
	require.Error(t, err)
	require.Equal(t, "Not found reward", err.Error())
}
