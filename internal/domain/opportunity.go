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
	"github.com/volunhub/backend/pkg/errorx"
	"github.com/volunhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type OpportunityDomain interface {
	Create(context.Context, *model.CreateOpportunityRequest) (*model.CreateOpportunityResponse, error)
	Update(context.Context, *model.UpdateOpportunityRequest) (*model.UpdateOpportunityResponse, error)
	Publish(context.Context, *model.PublishOpportunityRequest) (*model.PublishOpportunityResponse, error)
	Cancel(context.Context, *model.CancelOpportunityRequest) (*model.CancelOpportunityResponse, error)
	Get(context.Context, *model.GetOpportunityRequest) (*model.GetOpportunityResponse, error)
	GetMyList(context.Context, *model.GetMyOpportunitiesRequest) (*model.GetMyOpportunitiesResponse, error)
	GetList(context.Context, *model.GetListOpportunityRequest) (*model.GetListOpportunityResponse, error)
}

type opportunityDomain struct {
	opportunityRepo repository.OpportunityRepository
	applicationRepo repository.ApplicationRepository
	skillRepo       repository.SkillRepository
	globalVerifier  *common.GlobalRoleVerifier
	ownerVerifier   *common.OpportunityRoleVerifier
}

func NewOpportunityDomain(
	opportunityRepo repository.OpportunityRepository,
	applicationRepo repository.ApplicationRepository,
	skillRepo repository.SkillRepository,
	userRepo repository.UserRepository,
) *opportunityDomain {
	return &opportunityDomain{
		opportunityRepo: opportunityRepo,
		applicationRepo: applicationRepo,
		skillRepo:       skillRepo,
		globalVerifier:  common.NewGlobalRoleVerifier(userRepo),
		ownerVerifier:   common.NewOpportunityRoleVerifier(userRepo),
	}
}

// resolveSkills deduplicates ids and ensures every one of them exists.
func (d *opportunityDomain) resolveSkills(
	ctx context.Context, skillIDs []string,
) ([]string, []entity.Skill, error) {
	uniqueIDs := []string{}
	seen := map[string]bool{}
	for _, id := range skillIDs {
		if !seen[id] {
			seen[id] = true
			uniqueIDs = append(uniqueIDs, id)
		}
	}

	skills, err := d.skillRepo.GetByIDs(ctx, uniqueIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get skills: %v", err)
		return nil, nil, errorx.Unknown
	}

	found := map[string]bool{}
	for _, s := range skills {
		found[s.ID] = true
	}

	for _, id := range uniqueIDs {
		if !found[id] {
			return nil, nil, errorx.New(errorx.NotFound, "Not found skill %s", id)
		}
	}

	return uniqueIDs, skills, nil
}

func (d *opportunityDomain) Create(
	ctx context.Context, req *model.CreateOpportunityRequest,
) (*model.CreateOpportunityResponse, error) {
	if err := d.globalVerifier.Verify(ctx, entity.PromoterRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Title is required")
	}

	if req.MaxVolunteers < 1 {
		return nil, errorx.New(errorx.BadRequest, "Max volunteers must be at least 1")
	}

	if !req.EndDate.After(req.StartDate) {
		return nil, errorx.New(errorx.BadRequest, "End date must be after start date")
	}

	if len(req.SkillIDs) == 0 {
		return nil, errorx.New(errorx.BadRequest, "At least one skill is required")
	}

	skillIDs, skills, err := d.resolveSkills(ctx, req.SkillIDs)
	if err != nil {
		return nil, err
	}

	opportunity := &entity.Opportunity{
		Base:          entity.Base{ID: uuid.NewString()},
		PromoterID:    xcontext.RequestUserID(ctx),
		Title:         req.Title,
		Description:   req.Description,
		Location:      sql.NullString{Valid: req.Location != "", String: req.Location},
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		MaxVolunteers: req.MaxVolunteers,
		Points:        req.Points,
		Status:        entity.OpportunityDraft,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.opportunityRepo.Create(ctx, opportunity); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create opportunity: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.opportunityRepo.ReplaceSkills(ctx, opportunity.ID, skillIDs); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot assign skills: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	resp := model.CreateOpportunityResponse(convertOpportunity(opportunity, skills, 0))
	return &resp, nil
}

func (d *opportunityDomain) Update(
	ctx context.Context, req *model.UpdateOpportunityRequest,
) (*model.UpdateOpportunityResponse, error) {
	opportunity, err := d.opportunityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found opportunity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get opportunity: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.ownerVerifier.Verify(ctx, opportunity); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if !opportunity.IsEditable() {
		return nil, errorx.New(errorx.StatusConflict,
			"Cannot update a %s opportunity", opportunity.Status)
	}

	startDate, endDate := opportunity.StartDate, opportunity.EndDate
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	if req.EndDate != nil {
		endDate = *req.EndDate
	}
	if !endDate.After(startDate) {
		return nil, errorx.New(errorx.BadRequest, "End date must be after start date")
	}

	if req.Title != nil && *req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Title is required")
	}

	if req.SkillIDs != nil && len(req.SkillIDs) == 0 {
		return nil, errorx.New(errorx.BadRequest, "At least one skill is required")
	}

	if req.MaxVolunteers != nil && *req.MaxVolunteers < 1 {
		return nil, errorx.New(errorx.BadRequest, "Max volunteers must be at least 1")
	}

	changes := &entity.Opportunity{StartDate: startDate, EndDate: endDate}
	if req.Title != nil {
		changes.Title = *req.Title
	}
	if req.Description != nil {
		changes.Description = *req.Description
	}
	if req.Location != nil {
		changes.Location = sql.NullString{Valid: *req.Location != "", String: *req.Location}
	}
	if req.MaxVolunteers != nil {
		changes.MaxVolunteers = *req.MaxVolunteers
	}
	if req.Points != nil {
		changes.Points = *req.Points
	}

	var skillIDs []string
	if req.SkillIDs != nil {
		skillIDs, _, err = d.resolveSkills(ctx, req.SkillIDs)
		if err != nil {
			return nil, err
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if req.MaxVolunteers != nil {
		// Lock the row so the reduction check serializes with concurrent
		// approvals.
		if _, err := d.opportunityRepo.GetByIDForUpdate(ctx, req.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot lock opportunity: %v", err)
			return nil, errorx.Unknown
		}

		approvedCount, err := d.applicationRepo.CountApproved(ctx, req.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count approved applications: %v", err)
			return nil, errorx.Unknown
		}

		if int64(*req.MaxVolunteers) < approvedCount {
			return nil, errorx.New(errorx.BadRequest,
				"Cannot reduce max volunteers below %d approved volunteers", approvedCount)
		}
	}

	if err := d.opportunityRepo.UpdateByID(ctx, req.ID, changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update opportunity: %v", err)
		return nil, errorx.Unknown
	}

	if skillIDs != nil {
		if err := d.opportunityRepo.ReplaceSkills(ctx, req.ID, skillIDs); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot replace skills: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	view, err := d.loadView(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.UpdateOpportunityResponse(*view)
	return &resp, nil
}

func (d *opportunityDomain) Publish(
	ctx context.Context, req *model.PublishOpportunityRequest,
) (*model.PublishOpportunityResponse, error) {
	opportunity, err := d.opportunityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found opportunity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get opportunity: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.ownerVerifier.Verify(ctx, opportunity); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	err = d.opportunityRepo.Transit(ctx, req.ID,
		[]entity.OpportunityStatus{entity.OpportunityDraft}, entity.OpportunityOpen)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.StatusConflict,
				"Cannot publish a %s opportunity", opportunity.Status)
		}

		xcontext.Logger(ctx).Errorf("Cannot publish opportunity: %v", err)
		return nil, errorx.Unknown
	}

	view, err := d.loadView(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.PublishOpportunityResponse(*view)
	return &resp, nil
}

func (d *opportunityDomain) Cancel(
	ctx context.Context, req *model.CancelOpportunityRequest,
) (*model.CancelOpportunityResponse, error) {
	opportunity, err := d.opportunityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found opportunity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get opportunity: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.ownerVerifier.Verify(ctx, opportunity); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	from := []entity.OpportunityStatus{entity.OpportunityDraft, entity.OpportunityOpen}
	err = d.opportunityRepo.Transit(ctx, req.ID, from, entity.OpportunityCancelled)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.StatusConflict,
				"Cannot cancel a %s opportunity", opportunity.Status)
		}

		xcontext.Logger(ctx).Errorf("Cannot cancel opportunity: %v", err)
		return nil, errorx.Unknown
	}

	view, err := d.loadView(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.CancelOpportunityResponse(*view)
	return &resp, nil
}

func (d *opportunityDomain) Get(
	ctx context.Context, req *model.GetOpportunityRequest,
) (*model.GetOpportunityResponse, error) {
	view, err := d.loadView(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.GetOpportunityResponse(*view)
	return &resp, nil
}

func (d *opportunityDomain) GetMyList(
	ctx context.Context, req *model.GetMyOpportunitiesRequest,
) (*model.GetMyOpportunitiesResponse, error) {
	if err := d.globalVerifier.Verify(ctx, entity.PromoterRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	opportunities, err := d.opportunityRepo.GetListByPromoterID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get opportunities: %v", err)
		return nil, errorx.Unknown
	}

	views, err := d.loadViews(ctx, opportunities)
	if err != nil {
		return nil, err
	}

	return &model.GetMyOpportunitiesResponse{Opportunities: views}, nil
}

func (d *opportunityDomain) GetList(
	ctx context.Context, req *model.GetListOpportunityRequest,
) (*model.GetListOpportunityResponse, error) {
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

	filter := &repository.OpportunityFilter{
		SkillIDs:  req.SkillIDs,
		StartFrom: req.StartFrom,
		StartTo:   req.StartTo,
		MinPoints: req.MinPoints,
		MaxPoints: req.MaxPoints,
		Status:    entity.OpportunityOpen,
	}

	opportunities, err := d.opportunityRepo.GetList(ctx, filter, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get opportunities: %v", err)
		return nil, errorx.Unknown
	}

	views, err := d.loadViews(ctx, opportunities)
	if err != nil {
		return nil, err
	}

	return &model.GetListOpportunityResponse{Opportunities: views}, nil
}

func (d *opportunityDomain) loadView(
	ctx context.Context, id string,
) (*model.Opportunity, error) {
	opportunity, err := d.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found opportunity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get opportunity: %v", err)
		return nil, errorx.Unknown
	}

	skills, err := d.opportunityRepo.GetSkills(ctx, id)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get opportunity skills: %v", err)
		return nil, errorx.Unknown
	}

	approvedCount, err := d.applicationRepo.CountApproved(ctx, id)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count approved applications: %v", err)
		return nil, errorx.Unknown
	}

	view := convertOpportunity(opportunity, skills, approvedCount)
	return &view, nil
}

func (d *opportunityDomain) loadViews(
	ctx context.Context, opportunities []entity.Opportunity,
) ([]model.Opportunity, error) {
	views := []model.Opportunity{}
	for i := range opportunities {
		skills, err := d.opportunityRepo.GetSkills(ctx, opportunities[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get opportunity skills: %v", err)
			return nil, errorx.Unknown
		}

		approvedCount, err := d.applicationRepo.CountApproved(ctx, opportunities[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count approved applications: %v", err)
			return nil, errorx.Unknown
		}

		views = append(views, convertOpportunity(&opportunities[i], skills, approvedCount))
	}

	return views, nil
}
