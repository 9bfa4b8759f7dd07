package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/volunhub/backend/internal/common"
	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/errorx"
	"github.com/volunhub/backend/pkg/xcontext"
)

type SkillDomain interface {
	Create(context.Context, *model.CreateSkillRequest) (*model.CreateSkillResponse, error)
	GetList(context.Context, *model.GetListSkillRequest) (*model.GetListSkillResponse, error)
}

type skillDomain struct {
	skillRepo    repository.SkillRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewSkillDomain(
	skillRepo repository.SkillRepository,
	userRepo repository.UserRepository,
) *skillDomain {
	return &skillDomain{
		skillRepo:    skillRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *skillDomain) Create(
	ctx context.Context, req *model.CreateSkillRequest,
) (*model.CreateSkillResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Name is required")
	}

	skill := &entity.Skill{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
	}

	if err := d.skillRepo.Create(ctx, skill); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create skill: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "This skill already exists")
	}

	return &model.CreateSkillResponse{ID: skill.ID}, nil
}

func (d *skillDomain) GetList(
	ctx context.Context, req *model.GetListSkillRequest,
) (*model.GetListSkillResponse, error) {
	skills, err := d.skillRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get skills: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetListSkillResponse{Skills: convertSkills(skills)}, nil
}
