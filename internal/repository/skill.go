package repository

import (
	"context"

	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/pkg/xcontext"
)

type SkillRepository interface {
	Create(ctx context.Context, data *entity.Skill) error
	GetByID(ctx context.Context, id string) (*entity.Skill, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Skill, error)
	GetList(ctx context.Context) ([]entity.Skill, error)
}

type skillRepository struct{}

func NewSkillRepository() *skillRepository {
	return &skillRepository{}
}

func (r *skillRepository) Create(ctx context.Context, data *entity.Skill) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *skillRepository) GetByID(ctx context.Context, id string) (*entity.Skill, error) {
	var record entity.Skill
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *skillRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Skill, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Skill
	if err := xcontext.DB(ctx).Find(&records, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *skillRepository) GetList(ctx context.Context) ([]entity.Skill, error) {
	var records []entity.Skill
	if err := xcontext.DB(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
