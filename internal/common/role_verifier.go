package common

import (
	"context"
	"errors"

	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type GlobalRoleVerifier struct {
	userRepo repository.UserRepository
}

func NewGlobalRoleVerifier(userRepo repository.UserRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo}
}

func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.GlobalRole) error {
	userID := xcontext.RequestUserID(ctx)
	u, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.New("user is not valid")
	}

	if !slices.Contains(requiredRoles, u.Role) {
		return errors.New("user role does not have permission")
	}

	return nil
}

// OpportunityRoleVerifier is the single capability check for mutating an
// opportunity or its applications: the acting user must be the owning
// promoter or a global admin.
type OpportunityRoleVerifier struct {
	userRepo repository.UserRepository
}

func NewOpportunityRoleVerifier(userRepo repository.UserRepository) *OpportunityRoleVerifier {
	return &OpportunityRoleVerifier{userRepo: userRepo}
}

func (verifier *OpportunityRoleVerifier) Verify(ctx context.Context, opportunity *entity.Opportunity) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == opportunity.PromoterID {
		return nil
	}

	u, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.New("user is not valid")
	}

	if !slices.Contains(entity.GlobalAdminRoles, u.Role) {
		return errors.New("user is not the owning promoter or an admin")
	}

	return nil
}
