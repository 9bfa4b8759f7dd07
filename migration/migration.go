package migration

import (
	"context"

	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/pkg/xcontext"
)

func Migrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.RefreshToken{},
		&entity.Skill{},
		&entity.Opportunity{},
		&entity.OpportunitySkill{},
		&entity.Application{},
		&entity.Reward{},
		&entity.Redemption{},
	)
}
