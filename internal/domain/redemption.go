package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/crypto"
	"github.com/volunhub/backend/pkg/errorx"
	"github.com/volunhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RedemptionDomain interface {
	Redeem(context.Context, *model.RedeemRewardRequest) (*model.RedeemRewardResponse, error)
	GetMyRedemptions(context.Context, *model.GetMyRedemptionsRequest) (*model.GetMyRedemptionsResponse, error)
}

type redemptionDomain struct {
	redemptionRepo repository.RedemptionRepository
	rewardRepo     repository.RewardRepository
	userRepo       repository.UserRepository
}

func NewRedemptionDomain(
	redemptionRepo repository.RedemptionRepository,
	rewardRepo repository.RewardRepository,
	userRepo repository.UserRepository,
) *redemptionDomain {
	return &redemptionDomain{
		redemptionRepo: redemptionRepo,
		rewardRepo:     rewardRepo,
		userRepo:       userRepo,
	}
}

// Redeem exchanges points for a reward. All checks and the debit run in one
// transaction with the reward row locked, so concurrent redemptions of the
// same reward serialize and the stock counter stays trustworthy.
func (d *redemptionDomain) Redeem(
	ctx context.Context, req *model.RedeemRewardRequest,
) (*model.RedeemRewardResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	reward, err := d.rewardRepo.GetByIDForUpdate(ctx, req.RewardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reward: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if !reward.IsActive {
		return nil, errorx.New(errorx.StatusConflict, "This reward is no longer active")
	}

	now := time.Now()
	if reward.AvailableFrom.Valid && now.Before(reward.AvailableFrom.Time) {
		return nil, errorx.New(errorx.Unavailable, "This reward is not yet available")
	}

	if reward.AvailableUntil.Valid && now.After(reward.AvailableUntil.Time) {
		return nil, errorx.New(errorx.Unavailable, "This reward is no longer available")
	}

	if limit, ok := reward.StockLimit(); ok {
		redeemedCount, err := d.redemptionRepo.CountByRewardID(ctx, reward.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count redemptions: %v", err)
			return nil, errorx.Unknown
		}

		if redeemedCount >= limit {
			return nil, errorx.New(errorx.CapacityExceeded, "This reward is out of stock")
		}
	}

	if user.Points < reward.Points {
		return nil, errorx.New(errorx.InsufficientPoints,
			"Need %d points but only have %d", reward.Points, user.Points)
	}

	// The debit predicate re-checks the balance, so a stale read cannot
	// overspend.
	if err := d.userRepo.DecreasePoints(ctx, userID, reward.Points); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InsufficientPoints,
				"Need %d points but only have %d", reward.Points, user.Points)
		}

		xcontext.Logger(ctx).Errorf("Cannot decrease points: %v", err)
		return nil, errorx.Unknown
	}

	redemption, err := d.createWithUniqueCode(ctx, userID, reward)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	redemption.Reward = *reward
	resp := model.RedeemRewardResponse(convertRedemption(redemption))
	return &resp, nil
}

// createWithUniqueCode retries on code collision up to the configured limit.
func (d *redemptionDomain) createWithUniqueCode(
	ctx context.Context, userID string, reward *entity.Reward,
) (*entity.Redemption, error) {
	cfg := xcontext.Configs(ctx).Redemption

	for i := 0; i < cfg.CodeMaxRetry; i++ {
		redemption := &entity.Redemption{
			Base:        entity.Base{ID: uuid.NewString()},
			UserID:      userID,
			RewardID:    reward.ID,
			Code:        crypto.GenerateRandomAlphaNumeric(cfg.CodeLength),
			PointsSpent: reward.Points,
		}

		err := d.redemptionRepo.Create(ctx, redemption)
		if err == nil {
			return redemption, nil
		}

		// Only a code collision is worth retrying.
		if _, getErr := d.redemptionRepo.GetByCode(ctx, redemption.Code); getErr != nil {
			xcontext.Logger(ctx).Errorf("Cannot create redemption: %v", err)
			return nil, errorx.Unknown
		}

		xcontext.Logger(ctx).Warnf("Redemption code collision, retrying: %v", err)
	}

	xcontext.Logger(ctx).Errorf("Cannot generate an unused redemption code after %d tries",
		cfg.CodeMaxRetry)
	return nil, errorx.Unknown
}

func (d *redemptionDomain) GetMyRedemptions(
	ctx context.Context, req *model.GetMyRedemptionsRequest,
) (*model.GetMyRedemptionsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	redemptions, err := d.redemptionRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get redemptions: %v", err)
		return nil, errorx.Unknown
	}

	totalPointsSpent, err := d.redemptionRepo.TotalPointsSpent(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum points spent: %v", err)
		return nil, errorx.Unknown
	}

	modelRedemptions := []model.Redemption{}
	for i := range redemptions {
		modelRedemptions = append(modelRedemptions, convertRedemption(&redemptions[i]))
	}

	return &model.GetMyRedemptionsResponse{
		Redemptions:      modelRedemptions,
		TotalPointsSpent: totalPointsSpent,
	}, nil
}
