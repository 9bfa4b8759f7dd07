package repository

import (
	"context"

	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/pkg/xcontext"
)

type RedemptionRepository interface {
	Create(ctx context.Context, data *entity.Redemption) error
	GetByCode(ctx context.Context, code string) (*entity.Redemption, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Redemption, error)
	CountByRewardID(ctx context.Context, rewardID string) (int64, error)
	TotalPointsSpent(ctx context.Context, userID string) (uint64, error)
}

type redemptionRepository struct{}

func NewRedemptionRepository() *redemptionRepository {
	return &redemptionRepository{}
}

func (r *redemptionRepository) Create(ctx context.Context, data *entity.Redemption) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *redemptionRepository) GetByCode(ctx context.Context, code string) (*entity.Redemption, error) {
	var record entity.Redemption
	if err := xcontext.DB(ctx).Take(&record, "code=?", code).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *redemptionRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.Redemption, error) {
	var records []entity.Redemption
	err := xcontext.DB(ctx).
		Preload("Reward").
		Preload("Reward.Partner").
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// CountByRewardID re-derives the stock usage from the redemption rows. It
// must be called inside the same transaction as the redemption it guards.
func (r *redemptionRepository) CountByRewardID(
	ctx context.Context, rewardID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Redemption{}).
		Where("reward_id=?", rewardID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *redemptionRepository) TotalPointsSpent(
	ctx context.Context, userID string,
) (uint64, error) {
	var total uint64
	err := xcontext.DB(ctx).
		Model(&entity.Redemption{}).
		Where("user_id=?", userID).
		Select("COALESCE(SUM(points_spent), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}
