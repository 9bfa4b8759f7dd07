package testutil

import (
	"context"
	"time"

	"github.com/volunhub/backend/config"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/migration"
	"github.com/volunhub/backend/pkg/authenticator"
	"github.com/volunhub/backend/pkg/logger"
	"github.com/volunhub/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewMockContext returns a context carrying an in-memory database with a
// migrated schema, test configs, a logger, and a token engine.
func NewMockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "testing",
		ApiServer: config.ServerConfigs{
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: config.Duration{Duration: time.Minute},
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: config.Duration{Duration: time.Minute},
			},
		},
		Redemption: config.RedemptionConfigs{
			CodeLength:   10,
			CodeMaxRetry: 5,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.ERROR))
	ctx = xcontext.WithTokenEngine(ctx,
		authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.TokenSecret))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.Migrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func NewMockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}
