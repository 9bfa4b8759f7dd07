package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/volunhub/backend/internal/common"
	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/enum"
	"github.com/volunhub/backend/pkg/errorx"
	"github.com/volunhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RewardDomain interface {
	Create(context.Context, *model.CreateRewardRequest) (*model.CreateRewardResponse, error)
	Update(context.Context, *model.UpdateRewardRequest) (*model.UpdateRewardResponse, error)
	Deactivate(context.Context, *model.DeactivateRewardRequest) (*model.DeactivateRewardResponse, error)
	Get(context.Context, *model.GetRewardRequest) (*model.GetRewardResponse, error)
	GetList(context.Context, *model.GetListRewardRequest) (*model.GetListRewardResponse, error)
}

type rewardDomain struct {
	rewardRepo     repository.RewardRepository
	redemptionRepo repository.RedemptionRepository
	userRepo       repository.UserRepository
	roleVerifier   *common.GlobalRoleVerifier
}

func NewRewardDomain(
	rewardRepo repository.RewardRepository,
	redemptionRepo repository.RedemptionRepository,
	userRepo repository.UserRepository,
) *rewardDomain {
	return &rewardDomain{
		rewardRepo:     rewardRepo,
		redemptionRepo: redemptionRepo,
		userRepo:       userRepo,
		roleVerifier:   common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *rewardDomain) Create(
	ctx context.Context, req *model.CreateRewardRequest,
) (*model.CreateRewardResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Title is required")
	}

	if req.Points < 1 {
		return nil, errorx.New(errorx.BadRequest, "Points cost must be at least 1")
	}

	rewardType, err := enum.ToEnum[entity.RewardType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid reward type %s", req.Type)
	}

	if req.Quantity != nil && *req.Quantity < 1 {
		return nil, errorx.New(errorx.BadRequest, "Quantity must be at least 1")
	}

	if req.AvailableFrom != nil && req.AvailableUntil != nil &&
		!req.AvailableUntil.After(*req.AvailableFrom) {
		return nil, errorx.New(errorx.BadRequest,
			"Available until must be after available from")
	}

	reward := &entity.Reward{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Type:        rewardType,
		IsActive:    true,
		CreatedBy:   xcontext.RequestUserID(ctx),
	}

	if req.PartnerID != "" {
		partner, err := d.userRepo.GetByID(ctx, req.PartnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found partner")
			}

			xcontext.Logger(ctx).Errorf("Cannot get partner: %v", err)
			return nil, errorx.Unknown
		}

		reward.PartnerID = sql.NullString{Valid: true, String: partner.ID}
		reward.Partner = *partner
	}

	if req.Quantity != nil {
		reward.Quantity = sql.NullInt64{Valid: true, Int64: *req.Quantity}
	}

	if req.AvailableFrom != nil {
		reward.AvailableFrom = sql.NullTime{Valid: true, Time: *req.AvailableFrom}
	}

	if req.AvailableUntil != nil {
		reward.AvailableUntil = sql.NullTime{Valid: true, Time: *req.AvailableUntil}
	}

	if err := d.rewardRepo.Create(ctx, reward); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reward: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.CreateRewardResponse(convertReward(reward, 0))
	return &resp, nil
}

func (d *rewardDomain) Update(
	ctx context.Context, req *model.UpdateRewardRequest,
) (*model.UpdateRewardResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	reward, err := d.rewardRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reward: %v", err)
		return nil, errorx.Unknown
	}

	if req.Title != nil && *req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Title is required")
	}

	if req.Points != nil && *req.Points < 1 {
		return nil, errorx.New(errorx.BadRequest, "Points cost must be at least 1")
	}

	if req.Quantity != nil && *req.Quantity < 1 {
		return nil, errorx.New(errorx.BadRequest, "Quantity must be at least 1")
	}

	availableFrom, availableUntil := reward.AvailableFrom, reward.AvailableUntil
	if req.AvailableFrom != nil {
		availableFrom = sql.NullTime{Valid: true, Time: *req.AvailableFrom}
	}
	if req.AvailableUntil != nil {
		availableUntil = sql.NullTime{Valid: true, Time: *req.AvailableUntil}
	}
	if availableFrom.Valid && availableUntil.Valid &&
		!availableUntil.Time.After(availableFrom.Time) {
		return nil, errorx.New(errorx.BadRequest,
			"Available until must be after available from")
	}

	changes := &entity.Reward{
		AvailableFrom:  availableFrom,
		AvailableUntil: availableUntil,
	}
	if req.Title != nil {
		changes.Title = *req.Title
	}
	if req.Description != nil {
		changes.Description = *req.Description
	}
	if req.Points != nil {
		changes.Points = *req.Points
	}
	if req.Quantity != nil {
		changes.Quantity = sql.NullInt64{Valid: true, Int64: *req.Quantity}
	}

	if err := d.rewardRepo.UpdateByID(ctx, req.ID, changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update reward: %v", err)
		return nil, errorx.Unknown
	}

	view, err := d.loadView(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.UpdateRewardResponse(*view)
	return &resp, nil
}

func (d *rewardDomain) Deactivate(
	ctx context.Context, req *model.DeactivateRewardRequest,
) (*model.DeactivateRewardResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	reward, err := d.rewardRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reward: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.rewardRepo.DeactivateByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.StatusConflict, "This reward is already inactive")
		}

		xcontext.Logger(ctx).Errorf("Cannot deactivate reward: %v", err)
		return nil, errorx.Unknown
	}

	reward.IsActive = false

	redeemedCount, err := d.countRedeemed(ctx, reward)
	if err != nil {
		return nil, err
	}

	resp := model.DeactivateRewardResponse(convertReward(reward, redeemedCount))
	return &resp, nil
}

func (d *rewardDomain) Get(
	ctx context.Context, req *model.GetRewardRequest,
) (*model.GetRewardResponse, error) {
	view, err := d.loadView(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.GetRewardResponse(*view)
	return &resp, nil
}

func (d *rewardDomain) GetList(
	ctx context.Context, req *model.GetListRewardRequest,
) (*model.GetListRewardResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	rewards, err := d.rewardRepo.GetList(ctx, req.OnlyActive, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rewards: %v", err)
		return nil, errorx.Unknown
	}

	modelRewards := []model.Reward{}
	for i := range rewards {
		if err := d.loadPartner(ctx, &rewards[i]); err != nil {
			return nil, err
		}

		redeemedCount, err := d.countRedeemed(ctx, &rewards[i])
		if err != nil {
			return nil, err
		}

		modelRewards = append(modelRewards, convertReward(&rewards[i], redeemedCount))
	}

	return &model.GetListRewardResponse{Rewards: modelRewards}, nil
}

func (d *rewardDomain) loadView(ctx context.Context, id string) (*model.Reward, error) {
	reward, err := d.rewardRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reward: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.loadPartner(ctx, reward); err != nil {
		return nil, err
	}

	redeemedCount, err := d.countRedeemed(ctx, reward)
	if err != nil {
		return nil, err
	}

	view := convertReward(reward, redeemedCount)
	return &view, nil
}

func (d *rewardDomain) loadPartner(ctx context.Context, reward *entity.Reward) error {
	if !reward.PartnerID.Valid {
		return nil
	}

	partner, err := d.userRepo.GetByID(ctx, reward.PartnerID.String)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get partner of reward: %v", err)
		return errorx.Unknown
	}

	reward.Partner = *partner
	return nil
}

// countRedeemed queries the redemption counter only for stock-limited
// rewards.
func (d *rewardDomain) countRedeemed(
	ctx context.Context, reward *entity.Reward,
) (int64, error) {
	if _, ok := reward.StockLimit(); !ok {
		return 0, nil
	}

	count, err := d.redemptionRepo.CountByRewardID(ctx, reward.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count redemptions: %v", err)
		return 0, errorx.Unknown
	}

	return count, nil
}
