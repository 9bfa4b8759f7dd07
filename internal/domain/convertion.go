package domain

import (
	"time"

	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/pkg/enum"
)

const defaultTimeLayout string = time.RFC3339Nano

func convertUser(user *entity.User) model.User {
	if user == nil {
		return model.User{}
	}

	return model.User{
		ID:     user.ID,
		Name:   user.Name,
		Role:   enum.ToString(user.Role),
		Points: user.Points,
	}
}

func convertSkills(skills []entity.Skill) []model.Skill {
	modelSkills := []model.Skill{}
	for _, s := range skills {
		modelSkills = append(modelSkills, model.Skill{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
		})
	}
	return modelSkills
}

func convertOpportunity(
	opportunity *entity.Opportunity,
	skills []entity.Skill,
	approvedCount int64,
) model.Opportunity {
	if opportunity == nil {
		return model.Opportunity{}
	}

	return model.Opportunity{
		ID:            opportunity.ID,
		PromoterID:    opportunity.PromoterID,
		Title:         opportunity.Title,
		Description:   opportunity.Description,
		Location:      opportunity.Location.String,
		StartDate:     opportunity.StartDate.Format(defaultTimeLayout),
		EndDate:       opportunity.EndDate.Format(defaultTimeLayout),
		MaxVolunteers: opportunity.MaxVolunteers,
		ApprovedCount: approvedCount,
		Points:        opportunity.Points,
		Status:        enum.ToString(opportunity.Status),
		Skills:        convertSkills(skills),
	}
}

func convertApplication(application *entity.Application) model.Application {
	if application == nil {
		return model.Application{}
	}

	resp := model.Application{
		ID:            application.ID,
		OpportunityID: application.OpportunityID,
		VolunteerID:   application.VolunteerID,
		Message:       application.Message,
		Status:        enum.ToString(application.Status),
		ReviewerID:    application.ReviewerID,
		AppliedAt:     application.CreatedAt.Format(defaultTimeLayout),
	}

	if !application.ReviewedAt.IsZero() {
		resp.ReviewedAt = application.ReviewedAt.Format(defaultTimeLayout)
	}

	if application.CompletedAt.Valid {
		resp.CompletedAt = application.CompletedAt.Time.Format(defaultTimeLayout)
	}

	return resp
}

func convertReward(reward *entity.Reward, redeemedCount int64) model.Reward {
	if reward == nil {
		return model.Reward{}
	}

	resp := model.Reward{
		ID:          reward.ID,
		Title:       reward.Title,
		Description: reward.Description,
		Points:      reward.Points,
		Type:        enum.ToString(reward.Type),
		PartnerID:   reward.PartnerID.String,
		PartnerName: reward.Partner.Name,
		IsActive:    reward.IsActive,
	}

	if limit, ok := reward.StockLimit(); ok {
		remaining := limit - redeemedCount
		if remaining < 0 {
			remaining = 0
		}

		resp.Quantity = &limit
		resp.RemainingQuantity = &remaining
	}

	if reward.AvailableFrom.Valid {
		resp.AvailableFrom = reward.AvailableFrom.Time.Format(defaultTimeLayout)
	}

	if reward.AvailableUntil.Valid {
		resp.AvailableUntil = reward.AvailableUntil.Time.Format(defaultTimeLayout)
	}

	return resp
}

func convertRedemption(redemption *entity.Redemption) model.Redemption {
	if redemption == nil {
		return model.Redemption{}
	}

	return model.Redemption{
		ID:          redemption.ID,
		Code:        redemption.Code,
		PointsSpent: redemption.PointsSpent,
		RedeemedAt:  redemption.CreatedAt.Format(defaultTimeLayout),
		Reward: model.RewardSummary{
			ID:          redemption.RewardID,
			Title:       redemption.Reward.Title,
			Type:        enum.ToString(redemption.Reward.Type),
			PartnerName: redemption.Reward.Partner.Name,
		},
	}
}
