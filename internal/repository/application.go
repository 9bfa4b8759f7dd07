package repository

import (
	"context"
	"time"

	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, data *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	Get(ctx context.Context, volunteerID, opportunityID string) (*entity.Application, error)
	GetListByVolunteerID(ctx context.Context, volunteerID string) ([]entity.Application, error)
	GetListByOpportunityID(ctx context.Context, opportunityID string) ([]entity.Application, error)
	CountApproved(ctx context.Context, opportunityID string) (int64, error)
	UpdateReviewByID(ctx context.Context, id string, data *entity.Application) error
	CompleteByID(ctx context.Context, id string, completedAt time.Time) error
}

type applicationRepository struct{}

func NewApplicationRepository() *applicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(ctx context.Context, data *entity.Application) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	var record entity.Application
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *applicationRepository) Get(
	ctx context.Context, volunteerID, opportunityID string,
) (*entity.Application, error) {
	var record entity.Application
	err := xcontext.DB(ctx).
		Take(&record, "volunteer_id=? AND opportunity_id=?", volunteerID, opportunityID).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *applicationRepository) GetListByVolunteerID(
	ctx context.Context, volunteerID string,
) ([]entity.Application, error) {
	var records []entity.Application
	err := xcontext.DB(ctx).
		Where("volunteer_id=?", volunteerID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *applicationRepository) GetListByOpportunityID(
	ctx context.Context, opportunityID string,
) ([]entity.Application, error) {
	var records []entity.Application
	err := xcontext.DB(ctx).
		Where("opportunity_id=?", opportunityID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// CountApproved re-derives the seat occupancy from the application rows. It
// must be called inside the same transaction as the approval it guards.
func (r *applicationRepository) CountApproved(
	ctx context.Context, opportunityID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Application{}).
		Where("opportunity_id=? AND status=?", opportunityID, entity.ApplicationApproved).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// UpdateReviewByID transitions a pending application. A non-pending row
// surfaces as ErrRecordNotFound.
func (r *applicationRepository) UpdateReviewByID(
	ctx context.Context, id string, data *entity.Application,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Application{}).
		Where("id=? AND status=?", id, entity.ApplicationPending).
		Updates(data)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// CompleteByID stamps an approved, not-yet-completed application.
func (r *applicationRepository) CompleteByID(
	ctx context.Context, id string, completedAt time.Time,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Application{}).
		Where("id=? AND status=? AND completed_at IS NULL", id, entity.ApplicationApproved).
		Update("completed_at", completedAt)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
