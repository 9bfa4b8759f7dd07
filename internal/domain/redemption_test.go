package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/testutil"
)

func Test_redemptionDomain_Redeem_LastUnit(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	rewardRepo := repository.NewRewardRepository()
	userRepo := repository.NewUserRepository()
	d := NewRedemptionDomain(
		repository.NewRedemptionRepository(),
		rewardRepo,
		userRepo,
	)

	reward := &entity.Reward{
		Base:      entity.Base{ID: "coffee voucher"},
		Title:     "Coffee voucher",
		Points:    50,
		Type:      entity.RewardVoucher,
		Quantity:  sql.NullInt64{Valid: true, Int64: 1},
		IsActive:  true,
		CreatedBy: testutil.Admin.ID,
	}
	require.NoError(t, rewardRepo.Create(ctx, reward))

	volunteerCtx := testutil.NewMockContextWithUserID(ctx, testutil.Volunteer1.ID)
	resp, err := d.Redeem(volunteerCtx, &model.RedeemRewardRequest{RewardID: reward.ID})
	require.NoError(t, err)
	require.Len(t, resp.Code, 10)
	require.Equal(t, uint64(50), resp.PointsSpent)
	require.Equal(t, reward.Title, resp.Reward.Title)
	require.NotEmpty(t, resp.RedeemedAt)

	// The debit landed.
	volunteer, err := userRepo.GetByID(ctx, testutil.Volunteer1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(50), volunteer.Points)

	// The single unit is gone.
	otherCtx := testutil.NewMockContextWithUserID(ctx, testutil.Volunteer2.ID)
	_, err = d.Redeem(otherCtx, &model.RedeemRewardRequest{RewardID: reward.ID})
	require.Error(t, err)
	require.Equal(t, "This reward is out of stock", err.Error())

	// A failed redemption does not touch the balance.
	volunteer, err = userRepo.GetByID(ctx, testutil.Volunteer2.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(30), volunteer.Points)
}

func Test_redemptionDomain_Redeem_InsufficientPoints(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	rewardRepo := repository.NewRewardRepository()
	d := NewRedemptionDomain(
		repository.NewRedemptionRepository(),
		rewardRepo,
		repository.NewUserRepository(),
	)

	reward := &entity.Reward{
		Base:      entity.Base{ID: "museum ticket"},
		Title:     "Museum ticket",
		Points:    50,
		Type:      entity.RewardExperience,
		IsActive:  true,
		CreatedBy: testutil.Admin.ID,
	}
	require.NoError(t, rewardRepo.Create(ctx, reward))

	volunteerCtx := testutil.NewMockContextWithUserID(ctx, testutil.Volunteer2.ID)
	_, err := d.Redeem(volunteerCtx, &model.RedeemRewardRequest{RewardID: reward.ID})
	require.Error(t, err)
	require.Equal(t, "Need 50 points but only have 30", err.Error())
}

func Test_redemptionDomain_Redeem_Unlimited(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	rewardRepo := repository.NewRewardRepository()
	userRepo := repository.NewUserRepository()
	d := NewRedemptionDomain(
		repository.NewRedemptionRepository(),
		rewardRepo,
		userRepo,
	)

	reward := &entity.Reward{
		Base:      entity.Base{ID: "tree donation"},
		Title:     "Tree donation",
		Points:    10,
		Type:      entity.RewardDonation,
		IsActive:  true,
		CreatedBy: testutil.Admin.ID,
	}
	require.NoError(t, rewardRepo.Create(ctx, reward))

	volunteerCtx := testutil.NewMockContextWithUserID(ctx, testutil.Volunteer1.ID)
	codes := map[string]bool{}
	for i := 0; i < 3; i++ {
		resp, err := d.Redeem(volunteerCtx, &model.RedeemRewardRequest{RewardID: reward.ID})
		require.NoError(t, err)
		codes[resp.Code] = true
	}
	require.Len(t, codes, 3)

	volunteer, err := userRepo.GetByID(ctx, testutil.Volunteer1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(70), volunteer.Points)

	mine, err := d.GetMyRedemptions(volunteerCtx, &model.GetMyRedemptionsRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Redemptions, 3)
	require.Equal(t, uint64(30), mine.TotalPointsSpent)
	require.Equal(t, reward.Title, mine.Redemptions[0].Reward.Title)
}

func Test_redemptionDomain_Redeem_Gates(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	rewardRepo := repository.NewRewardRepository()
	d := NewRedemptionDomain(
		repository.NewRedemptionRepository(),
		rewardRepo,
		repository.NewUserRepository(),
	)

	volunteerCtx := testutil.NewMockContextWithUserID(ctx, testutil.Volunteer1.ID)

	_, err := d.Redeem(volunteerCtx, &model.RedeemRewardRequest{RewardID: "unknown"})
	require.Error(t, err)
	require.Equal(t, "Not found reward", err.Error())

	inactive := &entity.Reward{
		Base:      entity.Base{ID: "inactive reward"},
		Title:     "Inactive reward",
		Points:    10,
		Type:      entity.RewardVoucher,
		CreatedBy: testutil.Admin.ID,
	}
	require.NoError(t, rewardRepo.Create(ctx, inactive))

	_, err = d.Redeem(volunteerCtx, &model.RedeemRewardRequest{RewardID: inactive.ID})
	require.Error(t, err)
	require.Equal(t, "This reward is no longer active", err.Error())

	notYet := &entity.Reward{
		Base:          entity.Base{ID: "future reward"},
		Title:         "Future reward",
		Points:        10,
		Type:          entity.RewardVoucher,
		IsActive:      true,
		AvailableFrom: sql.NullTime{Valid: true, Time: time.Now().AddDate(0, 0, 1)},
		CreatedBy:     testutil.Admin.ID,
	}
	require.NoError(t, rewardRepo.Create(ctx, notYet))

	_, err = d.Redeem(volunteerCtx, &model.RedeemRewardRequest{RewardID: notYet.ID})
	require.Error(t, err)
	require.Equal(t, "This reward is not yet available", err.Error())

	expired := &entity.Reward{
		Base:           entity.Base{ID: "expired reward"},
		Title:          "Expired reward",
		Points:         10,
		Type:           entity.RewardVoucher,
		IsActive:       true,
		AvailableUntil: sql.NullTime{Valid: true, Time: time.Now().AddDate(0, 0, -1)},
		CreatedBy:      testutil.Admin.ID,
	}
	require.NoError(t, rewardRepo.Create(ctx, expired))

	_, err = d.Redeem(volunteerCtx, &model.RedeemRewardRequest{RewardID: expired.ID})
	require.Error(t, err)
	require.Equal(t, "This reward is no longer available", err.Error())
}

func Test_redemptionDomain_GetMyRedemptions_Empty(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewRedemptionDomain(
		repository.NewRedemptionRepository(),
		repository.NewRewardRepository(),
		repository.NewUserRepository(),
	)

	volunteerCtx := testutil.NewMockContextWithUserID(ctx, testutil.Volunteer3.ID)
	resp, err := d.GetMyRedemptions(volunteerCtx, &model.GetMyRedemptionsRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Redemptions)
	require.Equal(t, uint64(0), resp.TotalPointsSpent)
}
