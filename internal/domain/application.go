package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volunhub/backend/internal/common"
	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/errorx"
	"github.com/volunhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ApplicationDomain interface {
	Apply(context.Context, *model.ApplyRequest) (*model.ApplyResponse, error)
	Approve(context.Context, *model.ApproveApplicationRequest) (*model.ApproveApplicationResponse, error)
	Reject(context.Context, *model.RejectApplicationRequest) (*model.RejectApplicationResponse, error)
	Complete(context.Context, *model.CompleteApplicationRequest) (*model.CompleteApplicationResponse, error)
	GetMyApplications(context.Context, *model.GetMyApplicationsRequest) (*model.GetMyApplicationsResponse, error)
	GetListByOpportunity(context.Context, *model.GetListApplicationRequest) (*model.GetListApplicationResponse, error)
}

type applicationDomain struct {
	applicationRepo repository.ApplicationRepository
	opportunityRepo repository.OpportunityRepository
	userRepo        repository.UserRepository
	ownerVerifier   *common.OpportunityRoleVerifier
}

func NewApplicationDomain(
	applicationRepo repository.ApplicationRepository,
	opportunityRepo repository.OpportunityRepository,
	userRepo repository.UserRepository,
) *applicationDomain {
	return &applicationDomain{
		applicationRepo: applicationRepo,
		opportunityRepo: opportunityRepo,
		userRepo:        userRepo,
		ownerVerifier:   common.NewOpportunityRoleVerifier(userRepo),
	}
}

func (d *applicationDomain) Apply(
	ctx context.Context, req *model.ApplyRequest,
) (*model.ApplyResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	opportunity, err := d.opportunityRepo.GetByID(ctx, req.OpportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found opportunity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get opportunity: %v", err)
		return nil, errorx.Unknown
	}

	if opportunity.Status != entity.OpportunityOpen {
		return nil, errorx.New(errorx.StatusConflict,
			"This opportunity is not open for applications")
	}

	_, err = d.applicationRepo.Get(ctx, userID, req.OpportunityID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists,
			"You have already applied to this opportunity")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Lock the opportunity row so the capacity check serializes with
	// concurrent approvals.
	opportunity, err = d.opportunityRepo.GetByIDForUpdate(ctx, req.OpportunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot lock opportunity: %v", err)
		return nil, errorx.Unknown
	}

	approvedCount, err := d.applicationRepo.CountApproved(ctx, req.OpportunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count approved applications: %v", err)
		return nil, errorx.Unknown
	}

	if approvedCount >= int64(opportunity.MaxVolunteers) {
		return nil, errorx.New(errorx.CapacityExceeded, "No spots available")
	}

	application := &entity.Application{
		Base:          entity.Base{ID: uuid.NewString()},
		OpportunityID: req.OpportunityID,
		VolunteerID:   userID,
		Message:       req.Message,
		Status:        entity.ApplicationPending,
	}

	if err := d.applicationRepo.Create(ctx, application); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create application: %v", err)
		return nil, errorx.New(errorx.AlreadyExists,
			"You have already applied to this opportunity")
	}

	xcontext.WithCommitDBTransaction(ctx)

	resp := model.ApplyResponse(convertApplication(application))
	return &resp, nil
}

// review resolves an application, checks the caller owns its opportunity, and
// requires the application to still be pending.
func (d *applicationDomain) review(
	ctx context.Context, id string,
) (*entity.Application, *entity.Opportunity, error) {
	application, err := d.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, nil, errorx.Unknown
	}

	opportunity, err := d.opportunityRepo.GetByID(ctx, application.OpportunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get opportunity of application: %v", err)
		return nil, nil, errorx.Unknown
	}

	if err := d.ownerVerifier.Verify(ctx, opportunity); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return application, opportunity, nil
}

func (d *applicationDomain) Approve(
	ctx context.Context, req *model.ApproveApplicationRequest,
) (*model.ApproveApplicationResponse, error) {
	application, opportunity, err := d.review(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if application.Status != entity.ApplicationPending {
		return nil, errorx.New(errorx.StatusConflict,
			"Cannot approve a %s application", application.Status)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	opportunity, err = d.opportunityRepo.GetByIDForUpdate(ctx, opportunity.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot lock opportunity: %v", err)
		return nil, errorx.Unknown
	}

	approvedCount, err := d.applicationRepo.CountApproved(ctx, opportunity.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count approved applications: %v", err)
		return nil, errorx.Unknown
	}

	if approvedCount >= int64(opportunity.MaxVolunteers) {
		return nil, errorx.New(errorx.CapacityExceeded, "No spots available")
	}

	review := &entity.Application{
		Status:     entity.ApplicationApproved,
		ReviewerID: xcontext.RequestUserID(ctx),
		ReviewedAt: time.Now(),
	}

	if err := d.applicationRepo.UpdateReviewByID(ctx, application.ID, review); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.StatusConflict,
				"This application has already been reviewed")
		}

		xcontext.Logger(ctx).Errorf("Cannot approve application: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	application.Status = review.Status
	application.ReviewerID = review.ReviewerID
	application.ReviewedAt = review.ReviewedAt

	resp := model.ApproveApplicationResponse(convertApplication(application))
	return &resp, nil
}

func (d *applicationDomain) Reject(
	ctx context.Context, req *model.RejectApplicationRequest,
) (*model.RejectApplicationResponse, error) {
	application, _, err := d.review(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if application.Status != entity.ApplicationPending {
		return nil, errorx.New(errorx.StatusConflict,
			"Cannot reject a %s application", application.Status)
	}

	review := &entity.Application{
		Status:     entity.ApplicationRejected,
		ReviewerID: xcontext.RequestUserID(ctx),
		ReviewedAt: time.Now(),
	}

	if err := d.applicationRepo.UpdateReviewByID(ctx, application.ID, review); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.StatusConflict,
				"This application has already been reviewed")
		}

		xcontext.Logger(ctx).Errorf("Cannot reject application: %v", err)
		return nil, errorx.Unknown
	}

	application.Status = review.Status
	application.ReviewerID = review.ReviewerID
	application.ReviewedAt = review.ReviewedAt

	resp := model.RejectApplicationResponse(convertApplication(application))
	return &resp, nil
}

func (d *applicationDomain) Complete(
	ctx context.Context, req *model.CompleteApplicationRequest,
) (*model.CompleteApplicationResponse, error) {
	application, opportunity, err := d.review(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if application.Status != entity.ApplicationApproved {
		return nil, errorx.New(errorx.StatusConflict,
			"Cannot complete a %s application", application.Status)
	}

	if application.CompletedAt.Valid {
		return nil, errorx.New(errorx.StatusConflict,
			"This application has already been completed")
	}

	completedAt := time.Now()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.applicationRepo.CompleteByID(ctx, application.ID, completedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.StatusConflict,
				"This application has already been completed")
		}

		xcontext.Logger(ctx).Errorf("Cannot complete application: %v", err)
		return nil, errorx.Unknown
	}

	if opportunity.Points > 0 {
		err := d.userRepo.IncreasePoints(ctx, application.VolunteerID, opportunity.Points)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot credit points to volunteer: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	application.CompletedAt.Valid = true
	application.CompletedAt.Time = completedAt

	resp := model.CompleteApplicationResponse(convertApplication(application))
	return &resp, nil
}

func (d *applicationDomain) GetMyApplications(
	ctx context.Context, req *model.GetMyApplicationsRequest,
) (*model.GetMyApplicationsResponse, error) {
	applications, err := d.applicationRepo.GetListByVolunteerID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get applications: %v", err)
		return nil, errorx.Unknown
	}

	modelApplications := []model.Application{}
	for i := range applications {
		modelApplications = append(modelApplications, convertApplication(&applications[i]))
	}

	return &model.GetMyApplicationsResponse{Applications: modelApplications}, nil
}

func (d *applicationDomain) GetListByOpportunity(
	ctx context.Context, req *model.GetListApplicationRequest,
) (*model.GetListApplicationResponse, error) {
	opportunity, err := d.opportunityRepo.GetByID(ctx, req.OpportunityID)
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

	applications, err := d.applicationRepo.GetListByOpportunityID(ctx, req.OpportunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get applications: %v", err)
		return nil, errorx.Unknown
	}

	approvedCount, err := d.applicationRepo.CountApproved(ctx, req.OpportunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count approved applications: %v", err)
		return nil, errorx.Unknown
	}

	modelApplications := []model.Application{}
	for i := range applications {
		modelApplications = append(modelApplications, convertApplication(&applications[i]))
	}

	return &model.GetListApplicationResponse{
		Applications:  modelApplications,
		ApprovedCount: approvedCount,
	}, nil
}
