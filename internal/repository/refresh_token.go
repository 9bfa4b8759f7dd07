package repository

import (
	"context"

	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, data *entity.RefreshToken) error
	Get(ctx context.Context, token string) (*entity.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}

type refreshTokenRepository struct{}

func NewRefreshTokenRepository() *refreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(ctx context.Context, data *entity.RefreshToken) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *refreshTokenRepository) Get(ctx context.Context, token string) (*entity.RefreshToken, error) {
	var record entity.RefreshToken
	if err := xcontext.DB(ctx).Take(&record, "token=?", token).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *refreshTokenRepository) Delete(ctx context.Context, token string) error {
	tx := xcontext.DB(ctx).
		Where("token=?", token).
		Delete(&entity.RefreshToken{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
