package repository

import (
	"context"

	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RewardRepository interface {
	Create(ctx context.Context, data *entity.Reward) error
	GetByID(ctx context.Context, id string) (*entity.Reward, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Reward, error)
	UpdateByID(ctx context.Context, id string, data *entity.Reward) error
	DeactivateByID(ctx context.Context, id string) error
	GetList(ctx context.Context, onlyActive bool, offset, limit int) ([]entity.Reward, error)
}

type rewardRepository struct{}

func NewRewardRepository() *rewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) Create(ctx context.Context, data *entity.Reward) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (*entity.Reward, error) {
	var record entity.Reward
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetByIDForUpdate locks the reward row until the surrounding transaction
// ends, serializing concurrent redemptions per reward.
func (r *rewardRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Reward, error) {
	var record entity.Reward
	err := lockForUpdate(xcontext.DB(ctx)).
		Take(&record, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *rewardRepository) UpdateByID(ctx context.Context, id string, data *entity.Reward) error {
	return xcontext.DB(ctx).
		Model(&entity.Reward{}).
		Where("id=?", id).
		Updates(data).Error
}

// DeactivateByID flips the active flag off. Deactivation is irreversible; an
// already-inactive reward surfaces as ErrRecordNotFound.
func (r *rewardRepository) DeactivateByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Reward{}).
		Where("id=? AND is_active=?", id, true).
		Update("is_active", false)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *rewardRepository) GetList(
	ctx context.Context, onlyActive bool, offset, limit int,
) ([]entity.Reward, error) {
	tx := xcontext.DB(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC")

	if onlyActive {
		tx = tx.Where("is_active=?", true)
	}

	var records []entity.Reward
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
