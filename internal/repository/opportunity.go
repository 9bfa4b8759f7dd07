package repository

import (
	"context"
	"time"

	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// OpportunityFilter composes conjunctively; zero values mean "no constraint".
// SkillIDs are OR-matched: an opportunity qualifies if it requires any of
// them.
type OpportunityFilter struct {
	SkillIDs  []string
	StartFrom time.Time
	StartTo   time.Time
	MinPoints uint64
	MaxPoints uint64
	Status    entity.OpportunityStatus
}

type OpportunityRepository interface {
	Create(ctx context.Context, data *entity.Opportunity) error
	GetByID(ctx context.Context, id string) (*entity.Opportunity, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Opportunity, error)
	UpdateByID(ctx context.Context, id string, data *entity.Opportunity) error
	Transit(ctx context.Context, id string, from []entity.OpportunityStatus, to entity.OpportunityStatus) error
	GetList(ctx context.Context, filter *OpportunityFilter, offset, limit int) ([]entity.Opportunity, error)
	GetListByPromoterID(ctx context.Context, promoterID string) ([]entity.Opportunity, error)
	GetSkills(ctx context.Context, opportunityID string) ([]entity.Skill, error)
	ReplaceSkills(ctx context.Context, opportunityID string, skillIDs []string) error
}

type opportunityRepository struct{}

func NewOpportunityRepository() *opportunityRepository {
	return &opportunityRepository{}
}

func (r *opportunityRepository) Create(ctx context.Context, data *entity.Opportunity) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *opportunityRepository) GetByID(ctx context.Context, id string) (*entity.Opportunity, error) {
	var record entity.Opportunity
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetByIDForUpdate locks the opportunity row until the surrounding
// transaction ends, serializing concurrent approvals per opportunity.
func (r *opportunityRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Opportunity, error) {
	var record entity.Opportunity
	err := lockForUpdate(xcontext.DB(ctx)).
		Take(&record, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *opportunityRepository) UpdateByID(ctx context.Context, id string, data *entity.Opportunity) error {
	return xcontext.DB(ctx).
		Model(&entity.Opportunity{}).
		Where("id=?", id).
		Updates(data).Error
}

// Transit flips the status if the current status is one of from. A stale
// precondition surfaces as ErrRecordNotFound.
func (r *opportunityRepository) Transit(
	ctx context.Context, id string, from []entity.OpportunityStatus, to entity.OpportunityStatus,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Opportunity{}).
		Where("id=? AND status IN (?)", id, from).
		Update("status", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *opportunityRepository) GetList(
	ctx context.Context, filter *OpportunityFilter, offset, limit int,
) ([]entity.Opportunity, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Opportunity{}).
		Offset(offset).
		Limit(limit).
		Order("opportunities.start_date ASC")

	if len(filter.SkillIDs) > 0 {
		tx = tx.
			Joins("join opportunity_skills on opportunity_skills.opportunity_id = opportunities.id").
			Where("opportunity_skills.skill_id IN (?)", filter.SkillIDs).
			Distinct("opportunities.*")
	}

	if !filter.StartFrom.IsZero() {
		tx = tx.Where("opportunities.start_date >= ?", filter.StartFrom)
	}

	if !filter.StartTo.IsZero() {
		tx = tx.Where("opportunities.start_date <= ?", filter.StartTo)
	}

	if filter.MinPoints > 0 {
		tx = tx.Where("opportunities.points >= ?", filter.MinPoints)
	}

	if filter.MaxPoints > 0 {
		tx = tx.Where("opportunities.points <= ?", filter.MaxPoints)
	}

	if filter.Status != "" {
		tx = tx.Where("opportunities.status = ?", filter.Status)
	}

	var records []entity.Opportunity
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *opportunityRepository) GetListByPromoterID(
	ctx context.Context, promoterID string,
) ([]entity.Opportunity, error) {
	var records []entity.Opportunity
	err := xcontext.DB(ctx).
		Where("promoter_id=?", promoterID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *opportunityRepository) GetSkills(
	ctx context.Context, opportunityID string,
) ([]entity.Skill, error) {
	var records []entity.Skill
	err := xcontext.DB(ctx).
		Model(&entity.Skill{}).
		Joins("join opportunity_skills on opportunity_skills.skill_id = skills.id").
		Where("opportunity_skills.opportunity_id=?", opportunityID).
		Order("skills.name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *opportunityRepository) ReplaceSkills(
	ctx context.Context, opportunityID string, skillIDs []string,
) error {
	err := xcontext.DB(ctx).
		Where("opportunity_id=?", opportunityID).
		Delete(&entity.OpportunitySkill{}).Error
	if err != nil {
		return err
	}

	rows := make([]entity.OpportunitySkill, 0, len(skillIDs))
	for _, skillID := range skillIDs {
		rows = append(rows, entity.OpportunitySkill{
			OpportunityID: opportunityID,
			SkillID:       skillID,
		})
	}

	return xcontext.DB(ctx).Create(&rows).Error
}
